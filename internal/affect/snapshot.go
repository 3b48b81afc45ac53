package affect

import "time"

// GoalSnapshot is a read-only view of one active goal for observation API
// consumers (spec.md §6 "goal-strength snapshot").
type GoalSnapshot struct {
	Name     string  `json:"name"`
	Strength float64 `json:"strength"`
}

// Snapshot is the read-only observation view served to the dashboard, CLI
// and MCP glue (SPEC_FULL.md §7, extending spec.md §6).
type Snapshot struct {
	Dimensions       Dimensions     `json:"dimensions"`
	BasicEmotions    Emotions       `json:"basicEmotions"`
	Personality      Personality    `json:"personality"`
	PrimaryEmotion   string         `json:"primaryEmotion"`
	MoodLabel        string         `json:"moodLabel"`
	OverallIntensity float64        `json:"overallIntensity"`
	Activation       float64        `json:"activation"`
	RecentStimuli    []Stimulus     `json:"recentStimuli"`
	Rumination       Rumination     `json:"rumination"`
	Baseline         Dimensions     `json:"baseline"`
	ActiveGoals      []GoalSnapshot `json:"activeGoals"`
	Meta             Meta           `json:"meta"`
	LastUpdated      time.Time      `json:"lastUpdated"`
}

const maxSnapshotStimuli = 10

// BuildSnapshot derives the read-only observation view from state. Readers
// apply decay against a copy before snapshotting if they want an
// up-to-the-moment view; BuildSnapshot itself never mutates or persists.
func BuildSnapshot(state *State) Snapshot {
	primary := primaryEmotion(state.BasicEmotions)
	intensity := overallIntensity(state.BasicEmotions)

	stimuli := state.RecentStimuli
	if len(stimuli) > maxSnapshotStimuli {
		stimuli = stimuli[:maxSnapshotStimuli]
	}

	goals := InferGoals(state.Personality)
	goalSnapshots := make([]GoalSnapshot, 0, len(goals))
	for _, g := range goals {
		goalSnapshots = append(goalSnapshots, GoalSnapshot{Name: g.Name, Strength: g.Strength})
	}

	return Snapshot{
		Dimensions:       state.Dimensions,
		BasicEmotions:    state.BasicEmotions,
		Personality:      state.Personality,
		PrimaryEmotion:   primary,
		MoodLabel:        MoodLabel(primary, intensity),
		OverallIntensity: intensity,
		Activation:       EmotionalActivation(state.BasicEmotions, state.Dimensions.Arousal),
		RecentStimuli:    append([]Stimulus(nil), stimuli...),
		Rumination:       state.Rumination,
		Baseline:         state.Baseline,
		ActiveGoals:      goalSnapshots,
		Meta:             state.Meta,
		LastUpdated:      state.LastUpdated,
	}
}
