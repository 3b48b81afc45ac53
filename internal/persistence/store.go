// Package persistence implements crash-safe JSON persistence for affect
// state: atomic tmp+rename writes, an advisory lock file, v1->v2 schema
// migration, and multi-agent peek.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/affectengine/affectengine/internal/affect"
)

// FileStore implements affect.Store against a single JSON file path,
// following the teacher's atomic tmp+rename discipline
// (datastore/datastore.go's writeFileAtomic) plus an advisory lock file
// spec.md's datastore lacked.
type FileStore struct {
	path        string
	lock        *lockFile
	personality affect.Personality
}

// NewFileStore builds a store rooted at path. defaultPersonality seeds a
// freshly-built default state when the file does not yet exist.
func NewFileStore(path string, defaultPersonality affect.Personality) *FileStore {
	return &FileStore{
		path:        path,
		lock:        newLockFile(path + ".lock"),
		personality: defaultPersonality,
	}
}

// Load reads and parses the state file, migrating v1 documents to v2 and
// falling back to a freshly-built default state on any read or parse
// failure (spec.md invariant 7, §4.7).
func (s *FileStore) Load() (*affect.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return affect.NewDefaultState(s.personality, time.Now().UTC()), nil
		}
		return affect.NewDefaultState(s.personality, time.Now().UTC()),
			affect.NewError(affect.SchemaError, "failed to read state file", err)
	}

	version, verr := peekVersion(data)
	if verr != nil {
		return affect.NewDefaultState(s.personality, time.Now().UTC()),
			affect.NewError(affect.SchemaError, "malformed state file", verr)
	}

	switch version {
	case affect.CurrentSchemaVersion:
		var state affect.State
		if err := json.Unmarshal(data, &state); err != nil {
			return affect.NewDefaultState(s.personality, time.Now().UTC()),
				affect.NewError(affect.SchemaError, "malformed v2 state file", err)
		}
		return &state, nil
	case 1:
		migrated, err := MigrateV1(data)
		if err != nil {
			return affect.NewDefaultState(s.personality, time.Now().UTC()),
				affect.NewError(affect.SchemaError, "failed to migrate v1 state file", err)
		}
		return migrated, nil
	default:
		return affect.NewDefaultState(s.personality, time.Now().UTC()), nil
	}
}

// Save acquires the advisory lock, marshals state as pretty JSON, writes it
// to a sibling *.tmp file, and renames it over the target (spec.md §4.7).
func (s *FileStore) Save(state *affect.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	if !s.lock.Acquire() {
		return fmt.Errorf("could not acquire lock for %s", s.path)
	}
	defer s.lock.Release()

	return writeFileAtomic(s.path, state)
}

func writeFileAtomic(path string, state *affect.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open tmp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write tmp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("fsync tmp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close tmp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename tmp file over target: %w", err)
	}
	return nil
}

// peekVersion extracts just the "version" field without fully unmarshalling
// the document, so that v1 and v2 payloads (which otherwise differ in
// shape) can be routed to the right reader.
func peekVersion(data []byte) (int, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, err
	}
	return probe.Version, nil
}
