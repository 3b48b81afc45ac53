package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/affectengine/affectengine/internal/affect"
)

// PeekResult is one sibling agent's latest observed stimulus
// (spec.md §4.8).
type PeekResult struct {
	ID     string          `json:"id"`
	Latest *affect.Stimulus `json:"latest,omitempty"`
}

// DefaultPeekLimit caps the number of sibling agents a single peek call
// will return, guarding against unbounded directory scans.
const DefaultPeekLimit = 50

// Peek lists the immediate subdirectories of agentsRoot, skips currentID,
// and for each reads <agentsRoot>/<id>/agent/emotion-engine.json. latest
// falls back to the first agent bucket (in key order) that has a latest
// stimulus if the id-keyed one is absent.
// Unreadable files are silently skipped; results are capped at limit
// (spec.md §4.8). limit <= 0 uses DefaultPeekLimit.
func Peek(agentsRoot, currentID string, limit int) ([]PeekResult, error) {
	if limit <= 0 {
		limit = DefaultPeekLimit
	}

	entries, err := os.ReadDir(agentsRoot)
	if err != nil {
		return nil, err
	}

	var results []PeekResult
	for _, entry := range entries {
		if len(results) >= limit {
			break
		}
		if !entry.IsDir() || entry.Name() == currentID {
			continue
		}

		stim, ok := readPeekLatest(agentsRoot, entry.Name())
		if !ok {
			continue
		}
		results = append(results, PeekResult{ID: entry.Name(), Latest: stim})
	}
	return results, nil
}

func readPeekLatest(agentsRoot, id string) (*affect.Stimulus, bool) {
	path := filepath.Join(agentsRoot, id, "agent", "emotion-engine.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var state affect.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false
	}

	if bucket, ok := state.Agents[id]; ok && bucket.Latest != nil {
		return bucket.Latest, true
	}
	keys := make([]string, 0, len(state.Agents))
	for k := range state.Agents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if bucket := state.Agents[k]; bucket.Latest != nil {
			return bucket.Latest, true
		}
	}
	return nil, false
}
