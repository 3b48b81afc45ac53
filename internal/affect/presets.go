package affect

// Preset is a named, catalogued OCEAN profile (spec.md §6).
type Preset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Rationale   string      `json:"rationale"`
	Personality Personality `json:"personality"`
}

// presetCatalogue is the static, read-only personality preset list.
var presetCatalogue = []Preset{
	{
		ID:          "mandela",
		Name:        "Mandela",
		Description: "Warm, steady, forgiving under pressure.",
		Rationale:   "High agreeableness and conscientiousness, low neuroticism — composed and other-directed.",
		Personality: Personality{Openness: 0.6, Conscientiousness: 0.8, Extraversion: 0.6, Agreeableness: 0.9, Neuroticism: 0.15},
	},
	{
		ID:          "curious_explorer",
		Name:        "Curious Explorer",
		Description: "Novelty-seeking, energetic, quick to engage new ideas.",
		Rationale:   "High openness and extraversion drive exploration and novelty-seeking goals.",
		Personality: Personality{Openness: 0.85, Conscientiousness: 0.5, Extraversion: 0.75, Agreeableness: 0.55, Neuroticism: 0.35},
	},
	{
		ID:          "stoic_analyst",
		Name:        "Stoic Analyst",
		Description: "Measured, task-focused, low emotional volatility.",
		Rationale:   "High conscientiousness with low neuroticism activates task_completion and self_regulation.",
		Personality: Personality{Openness: 0.5, Conscientiousness: 0.85, Extraversion: 0.35, Agreeableness: 0.5, Neuroticism: 0.2},
	},
	{
		ID:          "anxious_helper",
		Name:        "Anxious Helper",
		Description: "Eager to please, easily rattled, strongly relationship-oriented.",
		Rationale:   "High agreeableness with high neuroticism produces fast swings and strong social_harmony pull.",
		Personality: Personality{Openness: 0.55, Conscientiousness: 0.55, Extraversion: 0.45, Agreeableness: 0.85, Neuroticism: 0.75},
	},
	{
		ID:          "guarded_skeptic",
		Name:        "Guarded Skeptic",
		Description: "Reserved, slow to trust, deliberate.",
		Rationale:   "Low agreeableness and extraversion with moderate conscientiousness, low baseline trust and connection.",
		Personality: Personality{Openness: 0.4, Conscientiousness: 0.6, Extraversion: 0.25, Agreeableness: 0.3, Neuroticism: 0.45},
	},
}

// Presets returns the static preset catalogue.
func Presets() []Preset {
	return presetCatalogue
}

// FindPreset looks up a preset by id.
func FindPreset(id string) (Preset, bool) {
	for _, p := range presetCatalogue {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
