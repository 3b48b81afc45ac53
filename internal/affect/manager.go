package affect

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store abstracts durable persistence for a single agent's State. Concrete
// implementations (internal/persistence) handle atomic writes, locking and
// schema migration; the manager only calls Load/Save.
type Store interface {
	Load() (*State, error)
	Save(*State) error
}

// Config holds the manager's tunable, bounds-validated parameters
// (spec.md §6).
type Config struct {
	HalfLifeHours       float64
	MaxHistory          int
	RuminationThreshold float64
	RuminationMaxStages int
}

// DefaultConfig returns the spec's defaults.
func DefaultConfig() Config {
	return Config{
		HalfLifeHours:       DefaultHalfLifeHours,
		MaxHistory:          10,
		RuminationThreshold: DefaultRuminationThreshold,
		RuminationMaxStages: DefaultRuminationMaxStages,
	}
}

// Manager orchestrates the decay -> stimulus -> rumination pipeline over a
// Store-backed State. It holds no mutex and caches no state: every operation
// takes a state and returns a fresh one, and only Read and Save touch the
// Store.
type Manager struct {
	store    Store
	cfg      Config
	taxonomy *Taxonomy
}

// NewManager constructs a Manager. custom is the user-supplied taxonomy
// overlay (may be nil).
func NewManager(store Store, cfg Config, custom map[string]DeltaRecord) *Manager {
	return &Manager{
		store:    store,
		cfg:      cfg,
		taxonomy: NewTaxonomy(custom),
	}
}

// Read loads state from disk, or builds a freshly-initialised default state
// if the underlying store reports a read failure. Never fails
// (spec.md §4.6 op 1, invariant 7).
func (m *Manager) Read() *State {
	s, err := m.store.Load()
	if err != nil {
		logf("read failed, falling back to default state: %v", err)
		if s != nil {
			return s
		}
		return NewDefaultState(DefaultPersonality(), time.Now().UTC())
	}
	return s
}

// ApplyDecay returns a fresh state with every dimension and basic emotion
// moved toward its baseline/zero for the elapsed time since
// state.LastUpdated up to now (spec.md §4.6 op 2). lastUpdated is left
// untouched; it only advances on Save.
func (m *Manager) ApplyDecay(state *State, now time.Time) *State {
	out := cloneState(state)
	elapsedHours := now.Sub(state.LastUpdated).Hours()
	if elapsedHours < 0 {
		elapsedHours = 0
	}
	out.Dimensions, out.BasicEmotions = applyDecayStep(
		out.Dimensions, out.Baseline, out.DecayRates,
		out.BasicEmotions, out.EmotionDecayRates,
		elapsedHours,
	)
	return out
}

// ApplyStimulus resolves label via the merged taxonomy, applies goal
// modulation, applies the resulting deltas, optionally ignites rumination,
// and appends the stimulus to history (spec.md §4.6 op 3).
func (m *Manager) ApplyStimulus(state *State, label string, intensity float64, reason string, confidence float64, now time.Time) *State {
	out := cloneState(state)

	intensity = clamp01(intensity)
	confidence = clamp01(confidence)

	stim := Stimulus{
		ID:         uuid.NewString(),
		Timestamp:  now,
		Label:      label,
		Intensity:  intensity,
		Reason:     reason,
		Confidence: confidence,
	}

	rec, known := m.taxonomy.Resolve(label)
	if known {
		goals := InferGoals(out.Personality)
		effective, _ := ModulateIntensity(canonicalizeLabel(label), intensity, goals)
		out.Dimensions, out.BasicEmotions = applyDeltaRecord(out.Dimensions, out.BasicEmotions, rec, effective)

		threshold := m.cfg.RuminationThreshold
		out.Rumination.Active = igniteRumination(out.Rumination.Active, stim, out.Personality, threshold, now)
	}

	out.RecentStimuli = pushStimulus(out.RecentStimuli, stim, maxHistoryOrDefault(m.cfg.MaxHistory))
	out.Meta.TotalUpdates++

	return out
}

func maxHistoryOrDefault(n int) int {
	if n <= 0 {
		return 10
	}
	return n
}

// canonicalizeLabel resolves aliases to their canonical static-table key so
// that goal threat/achievement label sets (which are written in canonical
// form) match alias surface forms too.
func canonicalizeLabel(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := aliasTable[key]; ok {
		return canonical
	}
	return key
}

func pushStimulus(history []Stimulus, stim Stimulus, maxHistory int) []Stimulus {
	out := make([]Stimulus, 0, maxHistory)
	out = append(out, stim)
	out = append(out, history...)
	if len(out) > maxHistory {
		out = out[:maxHistory]
	}
	return out
}

// AdvanceRumination performs one advance step and re-applies active
// rumination entries' effects (spec.md §4.6 op 4).
func (m *Manager) AdvanceRumination(state *State, now time.Time) *State {
	out := cloneState(state)
	out.Rumination.Active = advanceRumination(out.Rumination.Active, m.cfg.RuminationMaxStages, now)
	out.Dimensions, out.BasicEmotions = applyRuminationEffects(out.Dimensions, out.BasicEmotions, out.Rumination.Active, m.taxonomy)
	out.Dimensions = clampState(out.Dimensions)
	out.BasicEmotions = clampEmotions(out.BasicEmotions)
	return out
}

// SetPersonalityTrait clamps value, stores it, and recomputes baseline and
// both decay tables atomically (spec.md §4.6 op 5, invariant 2). Returns a
// *Error of kind ValidationError if trait is unrecognised.
func (m *Manager) SetPersonalityTrait(state *State, trait string, value float64) (*State, error) {
	out := cloneState(state)
	value = clamp01(value)

	switch trait {
	case "openness":
		out.Personality.Openness = value
	case "conscientiousness":
		out.Personality.Conscientiousness = value
	case "extraversion":
		out.Personality.Extraversion = value
	case "agreeableness":
		out.Personality.Agreeableness = value
	case "neuroticism":
		out.Personality.Neuroticism = value
	default:
		return state, NewError(ValidationError, "unknown personality trait: "+trait, nil)
	}

	out.Baseline = DeriveBaseline(out.Personality)
	out.DecayRates = DeriveDecayRates(out.Personality, m.cfg.HalfLifeHours)
	out.EmotionDecayRates = DeriveEmotionDecayRates(out.Personality, m.cfg.HalfLifeHours)
	return out, nil
}

// ApplyPreset overwrites personality from a catalogued preset, recomputes
// baseline and decay tables, and increments totalUpdates (spec.md §6).
// Returns a *Error of kind ConfigError for an unknown preset id.
func (m *Manager) ApplyPreset(state *State, id string) (*State, error) {
	preset, ok := FindPreset(id)
	if !ok {
		return state, NewError(ConfigError, "unknown preset id: "+id, nil)
	}
	out := cloneState(state)
	out.Personality = clampPersonality(preset.Personality)
	out.Baseline = DeriveBaseline(out.Personality)
	out.DecayRates = DeriveDecayRates(out.Personality, m.cfg.HalfLifeHours)
	out.EmotionDecayRates = DeriveEmotionDecayRates(out.Personality, m.cfg.HalfLifeHours)
	out.Meta.TotalUpdates++
	return out, nil
}

// Reset sets dimensions/emotions/rumination/stimuli to defaults, retaining
// personality, baseline and meta.createdAt (spec.md §4.6 op 6).
func (m *Manager) Reset(state *State) *State {
	out := cloneState(state)
	out.Dimensions = out.Baseline
	out.BasicEmotions = Emotions{}
	out.Rumination = Rumination{}
	out.RecentStimuli = nil
	out.Meta.TotalUpdates++
	return out
}

// Save persists state atomically and sets LastUpdated = now
// (spec.md §4.6 op 7). Returns an *Error of kind IOError on failure.
func (m *Manager) Save(state *State, now time.Time) (*State, error) {
	out := cloneState(state)
	out.LastUpdated = now
	if err := m.store.Save(out); err != nil {
		return state, NewError(IOError, "failed to persist state", err)
	}
	return out, nil
}

func cloneState(s *State) *State {
	c := *s
	c.RecentStimuli = append([]Stimulus(nil), s.RecentStimuli...)
	c.Rumination.Active = append([]RuminationEntry(nil), s.Rumination.Active...)
	c.Users = cloneBuckets(s.Users)
	c.Agents = cloneBuckets(s.Agents)
	return &c
}

func cloneBuckets(m map[string]RoleBucket) map[string]RoleBucket {
	out := make(map[string]RoleBucket, len(m))
	for k, v := range m {
		nb := RoleBucket{History: append([]Stimulus(nil), v.History...)}
		if v.Latest != nil {
			latest := *v.Latest
			nb.Latest = &latest
		}
		out[k] = nb
	}
	return out
}
