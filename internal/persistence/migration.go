package persistence

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/affectengine/affectengine/internal/affect"
)

// v1Stimulus mirrors the legacy wire shape, where Intensity was a
// qualitative label instead of a number.
type v1Stimulus struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Label      string    `json:"label"`
	Intensity  string    `json:"intensity"`
	Reason     string    `json:"reason"`
	Confidence float64   `json:"confidence"`
}

type v1RoleBucket struct {
	Latest  *v1Stimulus  `json:"latest,omitempty"`
	History []v1Stimulus `json:"history"`
}

type v1Document struct {
	Version     int                      `json:"version"`
	Personality affect.Personality       `json:"personality"`
	Users       map[string]v1RoleBucket  `json:"users"`
	Agents      map[string]v1RoleBucket  `json:"agents"`
}

// v1IntensityToNumeric converts the legacy qualitative labels to the v2
// numeric scale (spec.md §4.7).
func v1IntensityToNumeric(label string) float64 {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "low":
		return 0.3
	case "medium":
		return 0.6
	case "high":
		return 0.9
	default:
		return 0
	}
}

func migrateStimulus(s v1Stimulus) affect.Stimulus {
	return affect.Stimulus{
		ID:         s.ID,
		Timestamp:  s.Timestamp,
		Label:      s.Label,
		Intensity:  v1IntensityToNumeric(s.Intensity),
		Reason:     s.Reason,
		Confidence: s.Confidence,
	}
}

func migrateBucket(b v1RoleBucket) affect.RoleBucket {
	out := affect.RoleBucket{History: make([]affect.Stimulus, 0, len(b.History))}
	for _, s := range b.History {
		out.History = append(out.History, migrateStimulus(s))
	}
	if b.Latest != nil {
		latest := migrateStimulus(*b.Latest)
		out.Latest = &latest
	}
	return out
}

// MigrateV1 rebuilds a v1 JSON document as a fresh v2 default state, then
// copies each users/agents bucket across, converting string intensities to
// numeric (spec.md §4.7). Null/undefined input yields an empty v2 state.
func MigrateV1(data []byte) (*affect.State, error) {
	now := time.Now().UTC()

	if len(data) == 0 || string(data) == "null" {
		return affect.NewDefaultState(affect.DefaultPersonality(), now), nil
	}

	var doc v1Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	personality := doc.Personality
	if personality == (affect.Personality{}) {
		personality = affect.DefaultPersonality()
	}

	state := affect.NewDefaultState(personality, now)

	for id, bucket := range doc.Users {
		state.Users[id] = migrateBucket(bucket)
	}
	for id, bucket := range doc.Agents {
		state.Agents[id] = migrateBucket(bucket)
	}

	return state, nil
}
