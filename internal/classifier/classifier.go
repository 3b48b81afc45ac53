// Package classifier defines the contract for turning a text message into
// an emotional classification, and an HTTP implementation against either a
// bypass URL or an Anthropic/OpenAI-shaped chat endpoint.
package classifier

import "context"

// Classification is the classifier's output: a resolved emotion label with
// intensity and confidence (spec.md §6).
type Classification struct {
	Label      string  `json:"label"`
	Intensity  float64 `json:"intensity"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// Neutral is the fallback classification returned whenever classification
// fails for any non-configuration reason (spec.md §4.6 failure semantics).
func Neutral(reason string) Classification {
	return Classification{Label: "neutral", Intensity: 0, Reason: reason, Confidence: 0}
}

// Role distinguishes the speaker a message is attributed to.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Classifier is the blocking classification contract the state manager's
// caller depends on; the classifier itself is an external collaborator
// (spec.md §1).
type Classifier interface {
	Classify(ctx context.Context, text string, role Role) (Classification, error)
}
