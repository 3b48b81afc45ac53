// Package affect implements the persistent affective state engine: a
// dimensional mood model, six basic emotions, an OCEAN personality profile,
// rumination, and goal modulation, orchestrated by a state manager.
package affect

import "time"

// Dimensions holds the seven named real-valued mood axes. Pleasure, Arousal
// and Dominance are bipolar ([-1,1]); Connection, Curiosity, Energy and Trust
// are unipolar ([0,1]).
type Dimensions struct {
	Pleasure   float64 `json:"pleasure"`
	Arousal    float64 `json:"arousal"`
	Dominance  float64 `json:"dominance"`
	Connection float64 `json:"connection"`
	Curiosity  float64 `json:"curiosity"`
	Energy     float64 `json:"energy"`
	Trust      float64 `json:"trust"`
}

// DefaultDimensions returns the zero/midpoint defaults before any personality
// baseline is applied: bipolar axes at 0, unipolar axes at 0.5.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Pleasure:   0,
		Arousal:    0,
		Dominance:  0,
		Connection: 0.5,
		Curiosity:  0.5,
		Energy:     0.5,
		Trust:      0.5,
	}
}

// Emotions holds the six non-negative basic emotion levels, each in [0,1].
type Emotions struct {
	Happiness float64 `json:"happiness"`
	Sadness   float64 `json:"sadness"`
	Anger     float64 `json:"anger"`
	Fear      float64 `json:"fear"`
	Disgust   float64 `json:"disgust"`
	Surprise  float64 `json:"surprise"`
}

// Personality holds the five OCEAN traits, each in [0,1], default 0.5.
type Personality struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

// DefaultPersonality returns the neutral OCEAN midpoint.
func DefaultPersonality() Personality {
	return Personality{
		Openness:          0.5,
		Conscientiousness: 0.5,
		Extraversion:      0.5,
		Agreeableness:     0.5,
		Neuroticism:       0.5,
	}
}

// DecayRates holds per-dimension half-lives in hours.
type DecayRates struct {
	Pleasure   float64 `json:"pleasure"`
	Arousal    float64 `json:"arousal"`
	Dominance  float64 `json:"dominance"`
	Connection float64 `json:"connection"`
	Curiosity  float64 `json:"curiosity"`
	Energy     float64 `json:"energy"`
	Trust      float64 `json:"trust"`
}

// EmotionDecayRates holds per-basic-emotion half-lives in hours.
type EmotionDecayRates struct {
	Happiness float64 `json:"happiness"`
	Sadness   float64 `json:"sadness"`
	Anger     float64 `json:"anger"`
	Fear      float64 `json:"fear"`
	Disgust   float64 `json:"disgust"`
	Surprise  float64 `json:"surprise"`
}

// Stimulus is a classified emotional event applied to state.
type Stimulus struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Label      string    `json:"label"`
	Intensity  float64   `json:"intensity"`
	Reason     string    `json:"reason"`
	Confidence float64   `json:"confidence"`
}

// RuminationEntry is a multi-stage decaying re-application of a past
// stimulus's effects. It expires when Stage >= maxStages or Intensity < 0.05.
type RuminationEntry struct {
	StimulusID       string    `json:"stimulusId"`
	Label            string    `json:"label"`
	Stage            int       `json:"stage"`
	Intensity        float64   `json:"intensity"`
	LastStageTime    time.Time `json:"lastStageTimestamp"`
}

// Rumination wraps the active rumination entry list.
type Rumination struct {
	Active []RuminationEntry `json:"active"`
}

// RoleBucket tracks the latest and historical stimuli seen for one actor
// (a user or a sibling agent).
type RoleBucket struct {
	Latest  *Stimulus  `json:"latest,omitempty"`
	History []Stimulus `json:"history"`
}

// Meta holds bookkeeping fields that are not part of the affective model
// proper but must survive persistence.
type Meta struct {
	TotalUpdates int       `json:"totalUpdates"`
	CreatedAt    time.Time `json:"createdAt"`
}

// State is the full top-level persisted document (schema version 2).
type State struct {
	Version           int                   `json:"version"`
	LastUpdated       time.Time             `json:"lastUpdated"`
	Personality       Personality           `json:"personality"`
	Dimensions        Dimensions            `json:"dimensions"`
	Baseline          Dimensions            `json:"baseline"`
	DecayRates        DecayRates            `json:"decayRates"`
	EmotionDecayRates EmotionDecayRates     `json:"emotionDecayRates"`
	BasicEmotions     Emotions              `json:"basicEmotions"`
	RecentStimuli     []Stimulus            `json:"recentStimuli"`
	Rumination        Rumination            `json:"rumination"`
	Users             map[string]RoleBucket `json:"users"`
	Agents            map[string]RoleBucket `json:"agents"`
	Meta              Meta                  `json:"meta"`
}

// CurrentSchemaVersion is the version this package reads and writes.
const CurrentSchemaVersion = 2

// NewDefaultState builds a freshly initialised state for the given
// personality, with baseline and decay tables derived from it.
func NewDefaultState(p Personality, now time.Time) *State {
	s := &State{
		Version:       CurrentSchemaVersion,
		LastUpdated:   now,
		Personality:   p,
		Dimensions:    DeriveBaseline(p),
		BasicEmotions: Emotions{},
		RecentStimuli: nil,
		Rumination:    Rumination{Active: nil},
		Users:         map[string]RoleBucket{},
		Agents:        map[string]RoleBucket{},
		Meta: Meta{
			TotalUpdates: 0,
			CreatedAt:    now,
		},
	}
	s.Baseline = DeriveBaseline(p)
	s.DecayRates = DeriveDecayRates(p, DefaultHalfLifeHours)
	s.EmotionDecayRates = DeriveEmotionDecayRates(p, DefaultHalfLifeHours)
	return s
}
