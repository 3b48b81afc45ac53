package affect

// DefaultHalfLifeHours is the configured base half-life H, in hours, used
// when no override is supplied by internal/config.
const DefaultHalfLifeHours = 12.0

// DeriveBaseline computes the personality-derived resting value of each
// dimension (spec.md §4.2). Coefficients are a design choice; the signs and
// monotonic relationships they express are load-bearing and must not change.
func DeriveBaseline(p Personality) Dimensions {
	p = clampPersonality(p)

	pleasureBase := 0.3 * (p.Agreeableness - p.Neuroticism)
	arousalBase := 0.3 * (p.Extraversion - 0.5) * 2
	dominanceBase := 0.3 * (p.Conscientiousness - 0.5) * 2
	connectionBase := 0.3 + 0.4*p.Agreeableness
	curiosityBase := 0.3 + 0.4*p.Openness
	energyBase := 0.3 + 0.4*p.Extraversion
	trustBase := 0.3 + 0.4*(p.Agreeableness-0.5*p.Neuroticism+0.5)

	return clampState(Dimensions{
		Pleasure:   pleasureBase,
		Arousal:    arousalBase,
		Dominance:  dominanceBase,
		Connection: connectionBase,
		Curiosity:  curiosityBase,
		Energy:     energyBase,
		Trust:      trustBase,
	})
}

// DeriveDecayRates computes per-dimension half-lives (hours) from base
// half-life H and personality (spec.md §4.2): bipolar dimensions shorten
// with neuroticism, unipolar dimensions lengthen with conscientiousness.
func DeriveDecayRates(p Personality, h float64) DecayRates {
	p = clampPersonality(p)

	bipolar := h / (1 + 0.5*p.Neuroticism)
	unipolar := h * (1 + 0.5*p.Conscientiousness)

	return DecayRates{
		Pleasure:   bipolar,
		Arousal:    bipolar,
		Dominance:  bipolar,
		Connection: unipolar,
		Curiosity:  unipolar,
		Energy:     unipolar,
		Trust:      unipolar,
	}
}

// DeriveEmotionDecayRates computes per-basic-emotion half-lives (hours) from
// base half-life H and personality (spec.md §4.2): anger/fear shorten with
// neuroticism, happiness lengthens with extraversion, others use H unchanged.
func DeriveEmotionDecayRates(p Personality, h float64) EmotionDecayRates {
	p = clampPersonality(p)

	return EmotionDecayRates{
		Happiness: h * (1 + 0.3*p.Extraversion),
		Sadness:   h,
		Anger:     h / (1 + 0.5*p.Neuroticism),
		Fear:      h / (1 + 0.5*p.Neuroticism),
		Disgust:   h,
		Surprise:  h,
	}
}
