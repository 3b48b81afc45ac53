package affect

import "strings"

// DeltaRecord is the effect a resolved emotion label has on state: a set of
// named dimension deltas and named emotion deltas, applied additively.
type DeltaRecord struct {
	Dimensions map[string]float64 `json:"dimensions,omitempty"`
	Emotions   map[string]float64 `json:"emotions,omitempty"`
}

// staticTable is the built-in label -> DeltaRecord dictionary. Keys are
// canonical, lowercase labels; aliasTable maps surface forms onto these
// canonical keys.
var staticTable = map[string]DeltaRecord{
	"happy": {
		Dimensions: map[string]float64{"pleasure": 0.3, "energy": 0.1},
		Emotions:   map[string]float64{"happiness": 0.4},
	},
	"sad": {
		Dimensions: map[string]float64{"pleasure": -0.3, "arousal": -0.2},
		Emotions:   map[string]float64{"sadness": 0.4},
	},
	"angry": {
		Dimensions: map[string]float64{"pleasure": -0.3, "arousal": 0.3, "dominance": 0.1},
		Emotions:   map[string]float64{"anger": 0.4},
	},
	"fearful": {
		Dimensions: map[string]float64{"pleasure": -0.2, "arousal": 0.3, "dominance": -0.2},
		Emotions:   map[string]float64{"fear": 0.4},
	},
	"disgusted": {
		Dimensions: map[string]float64{"pleasure": -0.25},
		Emotions:   map[string]float64{"disgust": 0.4},
	},
	"surprised": {
		Dimensions: map[string]float64{"arousal": 0.3},
		Emotions:   map[string]float64{"surprise": 0.4},
	},
	"curious": {
		Dimensions: map[string]float64{"curiosity": 0.3, "arousal": 0.1},
		Emotions:   map[string]float64{"surprise": 0.05},
	},
	"connected": {
		Dimensions: map[string]float64{"connection": 0.3, "trust": 0.1},
		Emotions:   map[string]float64{"happiness": 0.1},
	},
	"trusting": {
		Dimensions: map[string]float64{"trust": 0.3},
		Emotions:   map[string]float64{},
	},
	"excited": {
		Dimensions: map[string]float64{"arousal": 0.3, "energy": 0.2, "pleasure": 0.1},
		Emotions:   map[string]float64{"happiness": 0.2, "surprise": 0.1},
	},
	"calm": {
		Dimensions: map[string]float64{"arousal": -0.3, "pleasure": 0.1},
		Emotions:   map[string]float64{},
	},
	"relieved": {
		Dimensions: map[string]float64{"pleasure": 0.25, "arousal": -0.2},
		Emotions:   map[string]float64{"happiness": 0.1},
	},
	"focused": {
		Dimensions: map[string]float64{"dominance": 0.2, "energy": 0.1},
		Emotions:   map[string]float64{},
	},
	"energized": {
		Dimensions: map[string]float64{"energy": 0.3, "arousal": 0.2},
		Emotions:   map[string]float64{"happiness": 0.1},
	},
	"frustrated": {
		Dimensions: map[string]float64{"pleasure": -0.25, "dominance": -0.1, "arousal": 0.2},
		Emotions:   map[string]float64{"anger": 0.3},
	},
	"anxious": {
		Dimensions: map[string]float64{"pleasure": -0.2, "arousal": 0.3, "dominance": -0.2},
		Emotions:   map[string]float64{"fear": 0.3},
	},
	"confused": {
		Dimensions: map[string]float64{"dominance": -0.15},
		Emotions:   map[string]float64{"surprise": 0.15},
	},
	"fatigued": {
		Dimensions: map[string]float64{"energy": -0.3, "arousal": -0.2},
		Emotions:   map[string]float64{"sadness": 0.1},
	},
	"bored": {
		Dimensions: map[string]float64{"arousal": -0.2, "curiosity": -0.1},
		Emotions:   map[string]float64{"sadness": 0.05},
	},
	"lonely": {
		Dimensions: map[string]float64{"connection": -0.3, "pleasure": -0.2},
		Emotions:   map[string]float64{"sadness": 0.3},
	},
	"neutral": {
		Dimensions: map[string]float64{},
		Emotions:   map[string]float64{},
	},
}

// aliasTable maps surface forms onto a canonical staticTable key. Lookup is
// case-insensitive; callers lowercase before consulting this table.
var aliasTable = map[string]string{
	"joy":        "happy",
	"joyful":     "happy",
	"glad":       "happy",
	"delighted":  "happy",
	"unhappy":    "sad",
	"sorrowful":  "sad",
	"depressed":  "sad",
	"mad":        "angry",
	"furious":    "angry",
	"irritated":  "angry",
	"afraid":     "fearful",
	"scared":     "fearful",
	"terrified":  "fearful",
	"disgust":    "disgusted",
	"grossed-out": "disgusted",
	"surprise":   "surprised",
	"shocked":    "surprised",
	"curiosity":  "curious",
	"intrigued":  "curious",
	"interested": "curious",
	"connection": "connected",
	"bonded":     "connected",
	"trust":      "trusting",
	"thrilled":   "excited",
	"peaceful":   "calm",
	"relaxed":    "calm",
	"relief":     "relieved",
}

// validDimensionNames and validEmotionNames gate custom-mapping validation.
var validDimensionNames = map[string]bool{
	"pleasure": true, "arousal": true, "dominance": true,
	"connection": true, "curiosity": true, "energy": true, "trust": true,
}

var validEmotionNames = map[string]bool{
	"happiness": true, "sadness": true, "anger": true,
	"fear": true, "disgust": true, "surprise": true,
}

// Taxonomy is the merged static table plus any custom overlay, consulted
// first. It is built once and is safe for concurrent read-only use.
type Taxonomy struct {
	overlay map[string]DeltaRecord
}

// NewTaxonomy builds a taxonomy from user-supplied custom mappings. Entries
// referencing unknown dimension or emotion names are silently dropped field
// by field (not rejected wholesale); keys are lowercased.
func NewTaxonomy(custom map[string]DeltaRecord) *Taxonomy {
	overlay := make(map[string]DeltaRecord, len(custom))
	for label, rec := range custom {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			continue
		}
		overlay[key] = sanitizeDeltaRecord(rec)
	}
	return &Taxonomy{overlay: overlay}
}

func sanitizeDeltaRecord(rec DeltaRecord) DeltaRecord {
	out := DeltaRecord{Dimensions: map[string]float64{}, Emotions: map[string]float64{}}
	for name, v := range rec.Dimensions {
		n := strings.ToLower(strings.TrimSpace(name))
		if validDimensionNames[n] {
			out.Dimensions[n] = v
		}
	}
	for name, v := range rec.Emotions {
		n := strings.ToLower(strings.TrimSpace(name))
		if validEmotionNames[n] {
			out.Emotions[n] = v
		}
	}
	return out
}

// applyDeltaRecord applies every delta in rec, scaled by intensity, to dims
// and emo, clamping after each individual delta, and returns fresh values.
func applyDeltaRecord(dims Dimensions, emo Emotions, rec DeltaRecord, intensity float64) (Dimensions, Emotions) {
	for name, delta := range rec.Dimensions {
		dims = applyDelta(dims, name, delta*intensity)
	}
	for name, delta := range rec.Emotions {
		emo = applyEmotionDelta(emo, name, delta*intensity)
	}
	return dims, emo
}

// Resolve looks up a label (case-insensitive, alias-resolved) in the
// overlay first, then the static table. ok is false for unknown labels.
func (t *Taxonomy) Resolve(label string) (DeltaRecord, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return DeltaRecord{}, false
	}
	if t != nil {
		if rec, ok := t.overlay[key]; ok {
			return rec, true
		}
	}
	if canonical, ok := aliasTable[key]; ok {
		key = canonical
	}
	if t != nil {
		if rec, ok := t.overlay[key]; ok {
			return rec, true
		}
	}
	rec, ok := staticTable[key]
	return rec, ok
}
