// Package mcpglue provides thin tool wrapper functions over the affect
// manager, shaped the way an MCP SDK tool handler expects: plain
// (args map[string]any) (any, error). No MCP protocol library is vendored
// since none is grounded in the retrieval pack.
package mcpglue

import (
	"time"

	"github.com/affectengine/affectengine/internal/affect"
)

// Glue wires a manager into the four exported tool functions.
type Glue struct {
	manager *affect.Manager
}

// New builds a Glue around manager.
func New(manager *affect.Manager) *Glue {
	return &Glue{manager: manager}
}

// ReadStateTool returns the current snapshot, decayed to now. args is
// ignored; present for signature uniformity with the other tools.
func (g *Glue) ReadStateTool(args map[string]any) (any, error) {
	state := g.manager.Read()
	decayed := g.manager.ApplyDecay(state, time.Now().UTC())
	return affect.BuildSnapshot(decayed), nil
}

// ApplyStimulusTool applies a stimulus and persists the result. Required
// args: "label" (string), "intensity" (number 0-1). Optional: "reason"
// (string), "confidence" (number 0-1).
func (g *Glue) ApplyStimulusTool(args map[string]any) (any, error) {
	label, ok := args["label"].(string)
	if !ok || label == "" {
		return nil, affect.NewError(affect.ValidationError, "label is required", nil)
	}
	intensity, ok := args["intensity"].(float64)
	if !ok {
		return nil, affect.NewError(affect.ValidationError, "intensity is required", nil)
	}
	reason, _ := args["reason"].(string)
	confidence, _ := args["confidence"].(float64)

	now := time.Now().UTC()
	state := g.manager.Read()
	decayed := g.manager.ApplyDecay(state, now)
	stimulated := g.manager.ApplyStimulus(decayed, label, intensity, reason, confidence, now)
	advanced := g.manager.AdvanceRumination(stimulated, now)

	saved, err := g.manager.Save(advanced, now)
	if err != nil {
		return nil, err
	}
	return affect.BuildSnapshot(saved), nil
}

// ResetTool reinitialises dimensions/emotions/rumination/stimuli to
// defaults, retaining personality, and persists the result.
func (g *Glue) ResetTool(args map[string]any) (any, error) {
	now := time.Now().UTC()
	state := g.manager.Read()
	reset := g.manager.Reset(state)
	saved, err := g.manager.Save(reset, now)
	if err != nil {
		return nil, err
	}
	return affect.BuildSnapshot(saved), nil
}

// ApplyPresetTool overwrites personality from a catalogued preset. Required
// arg: "id" (string).
func (g *Glue) ApplyPresetTool(args map[string]any) (any, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return nil, affect.NewError(affect.ValidationError, "id is required", nil)
	}

	now := time.Now().UTC()
	state := g.manager.Read()
	applied, err := g.manager.ApplyPreset(state, id)
	if err != nil {
		return nil, err
	}
	saved, err := g.manager.Save(applied, now)
	if err != nil {
		return nil, err
	}
	return affect.BuildSnapshot(saved), nil
}
