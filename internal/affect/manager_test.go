package affect

import (
	"errors"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for manager tests.
type fakeStore struct {
	state   *State
	saveErr error
}

func (f *fakeStore) Load() (*State, error) {
	if f.state == nil {
		return NewDefaultState(DefaultPersonality(), time.Now().UTC()), nil
	}
	return f.state, nil
}

func (f *fakeStore) Save(s *State) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = s
	return nil
}

func newTestManager() (*Manager, *fakeStore) {
	store := &fakeStore{}
	mgr := NewManager(store, DefaultConfig(), nil)
	return mgr, store
}

func TestJoyPulseScenario(t *testing.T) {
	mgr, _ := newTestManager()
	now := time.Now().UTC()
	state := NewDefaultState(DefaultPersonality(), now)

	out := mgr.ApplyStimulus(state, "happy", 0.7, "t", 1.0, now)

	if out.Dimensions.Pleasure <= 0 {
		t.Fatalf("pleasure should be > 0, got %v", out.Dimensions.Pleasure)
	}
	if out.BasicEmotions.Happiness <= 0 {
		t.Fatalf("happiness should be > 0, got %v", out.BasicEmotions.Happiness)
	}
	if primaryEmotion(out.BasicEmotions) != "happiness" {
		t.Fatalf("primary emotion should be happiness, got %v", primaryEmotion(out.BasicEmotions))
	}
	if len(out.RecentStimuli) != 1 {
		t.Fatalf("recentStimuli should have 1 entry, got %d", len(out.RecentStimuli))
	}
	if out.Meta.TotalUpdates != 1 {
		t.Fatalf("totalUpdates should be 1, got %d", out.Meta.TotalUpdates)
	}
}

func TestDecayToBaselineScenario(t *testing.T) {
	mgr, _ := newTestManager()
	now := time.Now().UTC()
	state := NewDefaultState(DefaultPersonality(), now)

	pulsed := mgr.ApplyStimulus(state, "happy", 0.7, "t", 1.0, now)
	saved, err := mgr.Save(pulsed, now)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	later := now.Add(time.Duration(saved.DecayRates.Pleasure * float64(time.Hour)))
	decayed := mgr.ApplyDecay(saved, later)

	wantPleasure := (pulsed.Dimensions.Pleasure + saved.Baseline.Pleasure) / 2
	if diff := decayed.Dimensions.Pleasure - wantPleasure; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("pleasure should be halfway to baseline: got %v, want %v", decayed.Dimensions.Pleasure, wantPleasure)
	}
}

func TestRuminationIgnitionScenario(t *testing.T) {
	cfg := DefaultConfig()
	store := &fakeStore{}
	mgr := NewManager(store, cfg, nil)

	now := time.Now().UTC()
	p := Personality{Openness: 0.5, Conscientiousness: 0.5, Extraversion: 0.5, Agreeableness: 0.5, Neuroticism: 0.8}
	state := NewDefaultState(p, now)

	stimulated := mgr.ApplyStimulus(state, "angry", 0.9, "", 1.0, now)
	if len(stimulated.Rumination.Active) != 1 {
		t.Fatalf("expected one active rumination entry, got %d", len(stimulated.Rumination.Active))
	}
	entry := stimulated.Rumination.Active[0]
	if entry.Stage != 0 || entry.Intensity != 0.9 {
		t.Fatalf("expected stage=0 intensity=0.9, got %+v", entry)
	}

	advanced := mgr.AdvanceRumination(stimulated, now)
	advanced = mgr.AdvanceRumination(advanced, now)
	if len(advanced.Rumination.Active) != 1 {
		t.Fatalf("entry should still be active after 2 advances, got %d", len(advanced.Rumination.Active))
	}
	if advanced.Rumination.Active[0].Stage != 2 {
		t.Fatalf("stage should be 2, got %d", advanced.Rumination.Active[0].Stage)
	}
	if diff := advanced.Rumination.Active[0].Intensity - 0.576; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("intensity should be ~0.576, got %v", advanced.Rumination.Active[0].Intensity)
	}

	for i := 0; i < 20; i++ {
		advanced = mgr.AdvanceRumination(advanced, now)
	}
	if len(advanced.Rumination.Active) != 0 {
		t.Fatalf("enough advances should empty active rumination, got %d", len(advanced.Rumination.Active))
	}
}

func TestGoalAmplificationScenario(t *testing.T) {
	mgr, _ := newTestManager()
	now := time.Now().UTC()

	modulated := Personality{Openness: 0.5, Conscientiousness: 0.9, Extraversion: 0.5, Agreeableness: 0.5, Neuroticism: 0.2}
	neutral := DefaultPersonality()

	modState := NewDefaultState(modulated, now)
	neutState := NewDefaultState(neutral, now)

	modOut := mgr.ApplyStimulus(modState, "frustrated", 0.5, "", 1.0, now)
	neutOut := mgr.ApplyStimulus(neutState, "frustrated", 0.5, "", 1.0, now)

	modDrop := modState.Dimensions.Pleasure - modOut.Dimensions.Pleasure
	neutDrop := neutState.Dimensions.Pleasure - neutOut.Dimensions.Pleasure
	if modDrop <= neutDrop {
		t.Fatalf("goal-amplified stimulus should cause a stronger pleasure drop: mod=%v neut=%v", modDrop, neutDrop)
	}
}

func TestPresetSwitchScenario(t *testing.T) {
	mgr, _ := newTestManager()
	now := time.Now().UTC()
	state := NewDefaultState(DefaultPersonality(), now)

	applied, err := mgr.ApplyPreset(state, "mandela")
	if err != nil {
		t.Fatalf("apply preset failed: %v", err)
	}
	preset, _ := FindPreset("mandela")
	if applied.Personality != preset.Personality {
		t.Fatalf("personality should exactly match the catalogued preset: %+v != %+v", applied.Personality, preset.Personality)
	}
	if applied.Baseline.Pleasure <= 0 {
		t.Fatalf("mandela baseline pleasure should be > 0, got %v", applied.Baseline.Pleasure)
	}
	if applied.Meta.TotalUpdates != state.Meta.TotalUpdates+1 {
		t.Fatalf("totalUpdates should increment by 1")
	}
}

func TestApplyPresetUnknownIDIsFatal(t *testing.T) {
	mgr, _ := newTestManager()
	state := NewDefaultState(DefaultPersonality(), time.Now().UTC())

	_, err := mgr.ApplyPreset(state, "does-not-exist")
	var affErr *Error
	if !errors.As(err, &affErr) || affErr.Kind != ConfigError {
		t.Fatalf("unknown preset id should return a ConfigError, got %v", err)
	}
}

func TestZeroIntensityStimulusLeavesStateUnchanged(t *testing.T) {
	mgr, _ := newTestManager()
	now := time.Now().UTC()
	state := NewDefaultState(DefaultPersonality(), now)

	out := mgr.ApplyStimulus(state, "happy", 0, "", 1.0, now)
	if out.Dimensions != state.Dimensions {
		t.Fatalf("zero-intensity stimulus should not change dimensions: %+v != %+v", out.Dimensions, state.Dimensions)
	}
	if out.BasicEmotions != state.BasicEmotions {
		t.Fatalf("zero-intensity stimulus should not change emotions")
	}
	if len(out.RecentStimuli) != 1 {
		t.Fatalf("zero-intensity stimulus should still be recorded, got %d entries", len(out.RecentStimuli))
	}
}

func TestUnknownLabelLeavesStateUnchanged(t *testing.T) {
	mgr, _ := newTestManager()
	now := time.Now().UTC()
	state := NewDefaultState(DefaultPersonality(), now)

	out := mgr.ApplyStimulus(state, "glibbering", 0.9, "", 1.0, now)
	if out.Dimensions != state.Dimensions || out.BasicEmotions != state.BasicEmotions {
		t.Fatalf("unknown label should leave dimensions/emotions unchanged")
	}
	if len(out.RecentStimuli) != 1 {
		t.Fatalf("unknown label should still be recorded as a no-op stimulus")
	}
}

func TestSetPersonalityTraitRecomputesAtomically(t *testing.T) {
	mgr, _ := newTestManager()
	state := NewDefaultState(DefaultPersonality(), time.Now().UTC())

	out, err := mgr.SetPersonalityTrait(state, "neuroticism", 0.9)
	if err != nil {
		t.Fatalf("set trait failed: %v", err)
	}
	if out.Personality.Neuroticism != 0.9 {
		t.Fatalf("trait not updated: %v", out.Personality.Neuroticism)
	}
	wantBaseline := DeriveBaseline(out.Personality)
	if out.Baseline != wantBaseline {
		t.Fatalf("baseline not recomputed: %+v != %+v", out.Baseline, wantBaseline)
	}
}

func TestSetPersonalityTraitUnknownTraitIsValidationError(t *testing.T) {
	mgr, _ := newTestManager()
	state := NewDefaultState(DefaultPersonality(), time.Now().UTC())

	_, err := mgr.SetPersonalityTrait(state, "luckiness", 0.5)
	var affErr *Error
	if !errors.As(err, &affErr) || affErr.Kind != ValidationError {
		t.Fatalf("unknown trait should return a ValidationError, got %v", err)
	}
}

func TestResetRetainsPersonalityAndCreatedAt(t *testing.T) {
	mgr, _ := newTestManager()
	now := time.Now().UTC()
	state := NewDefaultState(DefaultPersonality(), now)
	stimulated := mgr.ApplyStimulus(state, "happy", 0.7, "", 1.0, now)

	reset := mgr.Reset(stimulated)
	if reset.Personality != stimulated.Personality {
		t.Fatalf("reset should retain personality")
	}
	if !reset.Meta.CreatedAt.Equal(stimulated.Meta.CreatedAt) {
		t.Fatalf("reset should retain meta.createdAt")
	}
	if reset.Dimensions != reset.Baseline {
		t.Fatalf("reset should move dimensions back to baseline")
	}
	if len(reset.RecentStimuli) != 0 || len(reset.Rumination.Active) != 0 {
		t.Fatalf("reset should clear stimuli and rumination")
	}
	if reset.Meta.TotalUpdates != stimulated.Meta.TotalUpdates+1 {
		t.Fatalf("reset should increment totalUpdates")
	}
}

func TestSaveSetsLastUpdatedAndSurfacesIOError(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	mgr := NewManager(store, DefaultConfig(), nil)
	state := NewDefaultState(DefaultPersonality(), time.Now().UTC())

	_, err := mgr.Save(state, time.Now().UTC())
	var affErr *Error
	if !errors.As(err, &affErr) || affErr.Kind != IOError {
		t.Fatalf("save failure should surface an IOError, got %v", err)
	}

	okMgr, _ := newTestManager()
	later := state.LastUpdated.Add(time.Hour)
	saved, err := okMgr.Save(state, later)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !saved.LastUpdated.Equal(later) {
		t.Fatalf("save should set lastUpdated to now: got %v, want %v", saved.LastUpdated, later)
	}
}

func TestMaxHistoryBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistory = 10
	store := &fakeStore{}
	mgr := NewManager(store, cfg, nil)

	now := time.Now().UTC()
	state := NewDefaultState(DefaultPersonality(), now)
	for i := 0; i < 15; i++ {
		state = mgr.ApplyStimulus(state, "happy", 0.1, "", 1.0, now)
	}
	if len(state.RecentStimuli) != 10 {
		t.Fatalf("recentStimuli should be bounded at 10, got %d", len(state.RecentStimuli))
	}
	if state.Meta.TotalUpdates != 15 {
		t.Fatalf("totalUpdates should count every apply, got %d", state.Meta.TotalUpdates)
	}
}
