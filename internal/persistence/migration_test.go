package persistence

import (
	"encoding/json"
	"testing"

	"github.com/affectengine/affectengine/internal/affect"
)

func TestV1IntensityToNumeric(t *testing.T) {
	cases := map[string]float64{
		"low":    0.3,
		"medium": 0.6,
		"high":   0.9,
		"HIGH":   0.9,
		" Low ":  0.3,
		"":       0,
		"huge":   0,
	}
	for label, want := range cases {
		if got := v1IntensityToNumeric(label); got != want {
			t.Fatalf("v1IntensityToNumeric(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestMigrateV1ConvertsIntensitiesAndPreservesBuckets(t *testing.T) {
	doc := map[string]any{
		"version":     1,
		"personality": map[string]float64{"openness": 0.8, "conscientiousness": 0.5, "extraversion": 0.5, "agreeableness": 0.5, "neuroticism": 0.5},
		"users": map[string]any{
			"alice": map[string]any{
				"latest": map[string]any{"id": "s1", "label": "happy", "intensity": "high", "reason": "greeting", "confidence": 0.9},
				"history": []any{
					map[string]any{"id": "s0", "label": "sad", "intensity": "low", "confidence": 0.5},
				},
			},
		},
		"agents": map[string]any{},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture failed: %v", err)
	}

	state, err := MigrateV1(data)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if state.Version != affect.CurrentSchemaVersion {
		t.Fatalf("migrated state should be current schema version, got %d", state.Version)
	}
	if state.Personality.Openness != 0.8 {
		t.Fatalf("migrated personality not preserved: %+v", state.Personality)
	}

	bucket, ok := state.Users["alice"]
	if !ok {
		t.Fatalf("migrated state missing alice bucket")
	}
	if bucket.Latest == nil || bucket.Latest.Intensity != 0.9 {
		t.Fatalf("latest intensity should convert 'high' -> 0.9, got %+v", bucket.Latest)
	}
	if len(bucket.History) != 1 || bucket.History[0].Intensity != 0.3 {
		t.Fatalf("history intensity should convert 'low' -> 0.3, got %+v", bucket.History)
	}
}

func TestMigrateV1EmptyDataYieldsDefaultState(t *testing.T) {
	state, err := MigrateV1(nil)
	if err != nil {
		t.Fatalf("empty data should not error: %v", err)
	}
	if state.Version != affect.CurrentSchemaVersion {
		t.Fatalf("empty data should yield a current-version default state")
	}

	state2, err := MigrateV1([]byte("null"))
	if err != nil || state2.Version != affect.CurrentSchemaVersion {
		t.Fatalf("'null' input should also yield a current-version default state")
	}
}

func TestMigrateV1MissingPersonalityUsesDefault(t *testing.T) {
	data, _ := json.Marshal(map[string]any{"version": 1})
	state, err := MigrateV1(data)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if state.Personality != affect.DefaultPersonality() {
		t.Fatalf("missing personality should default to midpoint, got %+v", state.Personality)
	}
}

func TestMigrateV1MalformedJSONErrors(t *testing.T) {
	if _, err := MigrateV1([]byte("{not json")); err == nil {
		t.Fatalf("malformed v1 JSON should return an error")
	}
}
