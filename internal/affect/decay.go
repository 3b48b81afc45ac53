package affect

import "math"

// decayStep moves value toward target by Δ = (value-target)*(1-2^(-elapsed/halflife))
// (spec.md §4.6). A non-positive half-life or elapsed leaves value unchanged.
func decayStep(value, target, halfLifeHours, elapsedHours float64) float64 {
	if halfLifeHours <= 0 || elapsedHours <= 0 {
		return value
	}
	factor := 1 - math.Exp2(-elapsedHours/halfLifeHours)
	return value - (value-target)*factor
}

// applyDecayStep moves every dimension toward baseline and every basic emotion
// toward zero, by elapsedHours of wall-clock time, per their respective
// half-lives (spec.md §4.6). Returns fresh values; inputs are not mutated.
func applyDecayStep(dims Dimensions, baseline Dimensions, rates DecayRates, emo Emotions, eRates EmotionDecayRates, elapsedHours float64) (Dimensions, Emotions) {
	outDims := Dimensions{
		Pleasure:   decayStep(dims.Pleasure, baseline.Pleasure, rates.Pleasure, elapsedHours),
		Arousal:    decayStep(dims.Arousal, baseline.Arousal, rates.Arousal, elapsedHours),
		Dominance:  decayStep(dims.Dominance, baseline.Dominance, rates.Dominance, elapsedHours),
		Connection: decayStep(dims.Connection, baseline.Connection, rates.Connection, elapsedHours),
		Curiosity:  decayStep(dims.Curiosity, baseline.Curiosity, rates.Curiosity, elapsedHours),
		Energy:     decayStep(dims.Energy, baseline.Energy, rates.Energy, elapsedHours),
		Trust:      decayStep(dims.Trust, baseline.Trust, rates.Trust, elapsedHours),
	}
	outEmo := Emotions{
		Happiness: decayStep(emo.Happiness, 0, eRates.Happiness, elapsedHours),
		Sadness:   decayStep(emo.Sadness, 0, eRates.Sadness, elapsedHours),
		Anger:     decayStep(emo.Anger, 0, eRates.Anger, elapsedHours),
		Fear:      decayStep(emo.Fear, 0, eRates.Fear, elapsedHours),
		Disgust:   decayStep(emo.Disgust, 0, eRates.Disgust, elapsedHours),
		Surprise:  decayStep(emo.Surprise, 0, eRates.Surprise, elapsedHours),
	}
	return clampState(outDims), clampEmotions(outEmo)
}
