package affect

import "testing"

func TestStaticTableQualitativeProperties(t *testing.T) {
	tax := NewTaxonomy(nil)

	happy, ok := tax.Resolve("happy")
	if !ok || happy.Dimensions["pleasure"] <= 0 || happy.Emotions["happiness"] <= 0 {
		t.Fatalf("happy should raise pleasure and happiness: %+v", happy)
	}
	joy, ok := tax.Resolve("joy")
	if !ok || joy.Dimensions["pleasure"] <= 0 || joy.Emotions["happiness"] <= 0 {
		t.Fatalf("joy (alias of happy) should raise pleasure and happiness: %+v", joy)
	}

	angry, ok := tax.Resolve("angry")
	if !ok || angry.Dimensions["pleasure"] >= 0 || angry.Dimensions["arousal"] <= 0 || angry.Emotions["anger"] <= 0 {
		t.Fatalf("angry should lower pleasure, raise arousal and anger: %+v", angry)
	}

	sad, ok := tax.Resolve("sad")
	if !ok || sad.Dimensions["pleasure"] >= 0 || sad.Dimensions["arousal"] >= 0 || sad.Emotions["sadness"] <= 0 {
		t.Fatalf("sad should lower pleasure and arousal, raise sadness: %+v", sad)
	}

	fearful, ok := tax.Resolve("fearful")
	if !ok || fearful.Dimensions["pleasure"] >= 0 || fearful.Dimensions["arousal"] <= 0 || fearful.Emotions["fear"] <= 0 {
		t.Fatalf("fearful should lower pleasure, raise arousal and fear: %+v", fearful)
	}

	curious, ok := tax.Resolve("curious")
	if !ok || curious.Dimensions["curiosity"] <= 0 {
		t.Fatalf("curious should raise curiosity: %+v", curious)
	}

	connected, ok := tax.Resolve("connected")
	if !ok || connected.Dimensions["connection"] <= 0 {
		t.Fatalf("connected should raise connection: %+v", connected)
	}

	neutral, ok := tax.Resolve("neutral")
	if !ok || len(neutral.Dimensions) != 0 || len(neutral.Emotions) != 0 {
		t.Fatalf("neutral should have no deltas: %+v", neutral)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	tax := NewTaxonomy(nil)
	lower, ok1 := tax.Resolve("happy")
	upper, ok2 := tax.Resolve("HAPPY")
	mixed, ok3 := tax.Resolve(" Happy ")
	if !ok1 || !ok2 || !ok3 {
		t.Fatalf("case/whitespace variants should all resolve")
	}
	if lower.Dimensions["pleasure"] != upper.Dimensions["pleasure"] || lower.Dimensions["pleasure"] != mixed.Dimensions["pleasure"] {
		t.Fatalf("case/whitespace variants should resolve identically")
	}
}

func TestUnknownLabelResolvesToNone(t *testing.T) {
	tax := NewTaxonomy(nil)
	if _, ok := tax.Resolve("glibbering"); ok {
		t.Fatalf("unknown label should not resolve")
	}
}

func TestCustomTaxonomyMergeDropsInvalidNamesAndOverlays(t *testing.T) {
	custom := map[string]DeltaRecord{
		"Happy": {
			Dimensions: map[string]float64{"pleasure": 0.9, "not_a_dimension": 5},
			Emotions:   map[string]float64{"happiness": 0.9, "not_an_emotion": 5},
		},
		"brandnew": {
			Dimensions: map[string]float64{"trust": 0.2},
		},
	}
	tax := NewTaxonomy(custom)

	happy, ok := tax.Resolve("happy")
	if !ok {
		t.Fatalf("overlay entry should resolve")
	}
	if happy.Dimensions["pleasure"] != 0.9 {
		t.Fatalf("overlay should shadow the static table: got %v", happy.Dimensions["pleasure"])
	}
	if _, present := happy.Dimensions["not_a_dimension"]; present {
		t.Fatalf("unknown dimension name should be dropped")
	}
	if _, present := happy.Emotions["not_an_emotion"]; present {
		t.Fatalf("unknown emotion name should be dropped")
	}

	brandnew, ok := tax.Resolve("BrandNew")
	if !ok || brandnew.Dimensions["trust"] != 0.2 {
		t.Fatalf("custom label should resolve case-insensitively: %+v", brandnew)
	}
}
