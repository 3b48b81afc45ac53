package affect

import "time"

// DefaultRuminationThreshold and DefaultRuminationMaxStages are the
// fallbacks used when internal/config does not override them.
const (
	DefaultRuminationThreshold = 0.6
	DefaultRuminationMaxStages = 5
	ruminationDecayFactor      = 0.8
	ruminationExpiryIntensity  = 0.05
	ruminationEffectScale      = 0.3
)

// ruminationProbability derives the personality p used by the ignition rule
// from neuroticism: more neurotic personalities ruminate more readily.
func ruminationProbability(p Personality) float64 {
	return clamp01(p.Neuroticism)
}

// shouldIgnite applies spec.md §4.5's deterministic ignition rule.
func shouldIgnite(intensity, threshold, probability float64) bool {
	switch {
	case probability <= 0:
		return false
	case probability >= 1:
		return intensity > threshold
	default:
		return intensity > threshold+0.3*(1-probability)
	}
}

// igniteRumination returns a fresh entry list with a new entry appended for
// the stimulus if the ignition rule fires and no entry already tracks this
// stimulus ID; otherwise it returns entries unchanged.
func igniteRumination(entries []RuminationEntry, stim Stimulus, p Personality, threshold float64, now time.Time) []RuminationEntry {
	prob := ruminationProbability(p)
	if !shouldIgnite(stim.Intensity, threshold, prob) {
		return entries
	}
	for _, e := range entries {
		if e.StimulusID == stim.ID {
			return entries
		}
	}
	out := make([]RuminationEntry, len(entries), len(entries)+1)
	copy(out, entries)
	out = append(out, RuminationEntry{
		StimulusID:    stim.ID,
		Label:         stim.Label,
		Stage:         0,
		Intensity:     stim.Intensity,
		LastStageTime: now,
	})
	return out
}

// advanceRumination raises every active entry's stage by one, decays its
// intensity by ruminationDecayFactor, and drops entries that have expired
// (spec.md §4.5). maxStages defaults to DefaultRuminationMaxStages.
func advanceRumination(entries []RuminationEntry, maxStages int, now time.Time) []RuminationEntry {
	if maxStages <= 0 {
		maxStages = DefaultRuminationMaxStages
	}
	out := make([]RuminationEntry, 0, len(entries))
	for _, e := range entries {
		e.Stage++
		e.Intensity *= ruminationDecayFactor
		e.LastStageTime = now
		if e.Stage >= maxStages || e.Intensity < ruminationExpiryIntensity {
			continue
		}
		out = append(out, e)
	}
	return out
}

// applyRuminationEffects re-applies each active entry's label mapping at
// effective intensity entry.Intensity*ruminationEffectScale, composing
// left-to-right and clamping after each (spec.md §4.5).
func applyRuminationEffects(dims Dimensions, emo Emotions, entries []RuminationEntry, tax *Taxonomy) (Dimensions, Emotions) {
	for _, e := range entries {
		rec, ok := tax.Resolve(e.Label)
		if !ok {
			continue
		}
		effective := e.Intensity * ruminationEffectScale
		dims, emo = applyDeltaRecord(dims, emo, rec, effective)
	}
	return dims, emo
}
