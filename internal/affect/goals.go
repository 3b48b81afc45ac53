package affect

// Goal is an implicit behavioral goal inferred from personality traits. It
// declares how strongly it is currently held and which emotion labels
// threaten or achieve it.
type Goal struct {
	Name     string   `json:"name"`
	Strength float64  `json:"strength"`
	Threats  []string `json:"-"`
	Achieves []string `json:"-"`
}

// goalDef is the static definition of one goal's activation rule and label
// sets (spec.md §4.4).
type goalDef struct {
	name     string
	threats  []string
	achieves []string
	activate func(p Personality) (active bool, strength float64)
}

func normalizedStrength(trait, threshold float64) float64 {
	if trait <= threshold {
		return 0
	}
	return clamp01((trait - threshold) / (1 - threshold))
}

var goalDefs = []goalDef{
	{
		name:     "task_completion",
		threats:  []string{"frustrated", "anxious", "confused", "fatigued"},
		achieves: []string{"happy", "relieved", "energized", "focused"},
		activate: func(p Personality) (bool, float64) {
			s := normalizedStrength(p.Conscientiousness, 0.6)
			return p.Conscientiousness > 0.6, s
		},
	},
	{
		name:     "exploration",
		threats:  []string{"bored", "frustrated"},
		achieves: []string{"curious", "excited", "surprised"},
		activate: func(p Personality) (bool, float64) {
			s := normalizedStrength(p.Openness, 0.6)
			return p.Openness > 0.6, s
		},
	},
	{
		name:     "social_harmony",
		threats:  []string{"angry", "disgusted", "lonely"},
		achieves: []string{"connected", "trusting", "happy", "calm"},
		activate: func(p Personality) (bool, float64) {
			s := normalizedStrength(p.Agreeableness, 0.6)
			return p.Agreeableness > 0.6, s
		},
	},
	{
		name:     "self_regulation",
		threats:  []string{"angry", "anxious"},
		achieves: []string{"calm", "focused", "relieved"},
		activate: func(p Personality) (bool, float64) {
			active := p.Conscientiousness > 0.6 && p.Neuroticism < 0.4
			cStrength := normalizedStrength(p.Conscientiousness, 0.6)
			nStrength := clamp01((0.4 - p.Neuroticism) / 0.4)
			s := cStrength
			if nStrength < s {
				s = nStrength
			}
			return active, s
		},
	},
	{
		name:     "novelty_seeking",
		threats:  []string{"bored", "fatigued"},
		achieves: []string{"excited", "curious", "surprised", "energized"},
		activate: func(p Personality) (bool, float64) {
			active := p.Openness > 0.7 && p.Extraversion > 0.6
			oStrength := normalizedStrength(p.Openness, 0.7)
			eStrength := normalizedStrength(p.Extraversion, 0.6)
			s := oStrength
			if eStrength < s {
				s = eStrength
			}
			return active, s
		},
	},
}

// InferGoals returns every goal currently active for the given personality,
// with its strength (spec.md §4.4). Strength is the normalised distance past
// threshold, clipped to [0,1]; conjunctive goals take the min of their
// component strengths.
func InferGoals(p Personality) []Goal {
	p = clampPersonality(p)
	var active []Goal
	for _, def := range goalDefs {
		ok, strength := def.activate(p)
		if !ok {
			continue
		}
		active = append(active, Goal{
			Name:     def.name,
			Strength: clamp01(strength),
			Threats:  def.threats,
			Achieves: def.achieves,
		})
	}
	return active
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// ModulateIntensity amplifies a stimulus's intensity for a resolved label
// against the currently active goals (spec.md §4.4): the multiplier starts
// at 1.0, accumulates +0.3*strength per threatening goal and +0.2*strength
// per achieving goal, and the final intensity is min(1, intensity*multiplier).
func ModulateIntensity(label string, intensity float64, goals []Goal) (effective float64, multiplier float64) {
	multiplier = 1.0
	for _, g := range goals {
		if containsLabel(g.Threats, label) {
			multiplier += 0.3 * g.Strength
		}
		if containsLabel(g.Achieves, label) {
			multiplier += 0.2 * g.Strength
		}
	}
	effective = clamp01(intensity * multiplier)
	return effective, multiplier
}
