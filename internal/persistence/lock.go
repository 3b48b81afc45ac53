package persistence

import (
	"log"
	"os"
	"time"
)

// DefaultStaleTimeout is how old an existing lock file's mtime must be
// before it is considered abandoned and unlinked (spec.md §4.7).
const DefaultStaleTimeout = 10 * time.Second

// lockFile is a sibling *.lock file acquired via exclusive create. It has
// no analogue in the teacher's datastore.go, which never locks; this is
// authored fresh to satisfy the spec's crash-consistent single-writer model.
type lockFile struct {
	path         string
	staleTimeout time.Duration
}

func newLockFile(path string) *lockFile {
	return &lockFile{path: path, staleTimeout: DefaultStaleTimeout}
}

// Acquire attempts an O_EXCL create. If an existing lock is older than the
// stale timeout it is unlinked and acquisition is retried exactly once.
// Returns false on failure to acquire (spec.md §4.7).
func (l *lockFile) Acquire() bool {
	if l.tryCreate() {
		return true
	}

	info, err := os.Stat(l.path)
	if err != nil {
		// Lock disappeared between our failed create and this stat; retry.
		return l.tryCreate()
	}

	if time.Since(info.ModTime()) > l.staleTimeout {
		log.Printf("[AFFECT] stale lock %s (age %s), removing", l.path, time.Since(info.ModTime()))
		os.Remove(l.path)
		return l.tryCreate()
	}

	return false
}

func (l *lockFile) tryCreate() bool {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Release unlinks the lock file. Safe to call even if never acquired.
func (l *lockFile) Release() {
	os.Remove(l.path)
}
