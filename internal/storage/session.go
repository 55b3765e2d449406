package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	tempFilePrefix = "sd_prompt_"
	tempFileSuffix = ".txt"
)

// Session owns this run's batch export temp file in the OS temp directory.
// The file itself is created lazily, on first export; exit removes it.
type Session struct {
	id   string
	path string
}

// NewSession mints a session identity and the temp-file path derived from it.
func NewSession() *Session {
	id := uuid.New().String()
	return &Session{
		id:   id,
		path: filepath.Join(os.TempDir(), tempFilePrefix+id+tempFileSuffix),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Path returns the session's batch export file path.
func (s *Session) Path() string {
	return s.path
}

// Cleanup removes the session temp file if it was written.
func (s *Session) Cleanup() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to remove session temp file: %v\n", err)
	}
}

// SweepOrphans deletes batch temp files left behind by prior, possibly
// crashed, sessions. The current session's file is spared. Per-file errors
// are logged and skipped; housekeeping never aborts. Returns the number of
// files removed.
func (s *Session) SweepOrphans() int {
	pattern := filepath.Join(os.TempDir(), tempFilePrefix+"*"+tempFileSuffix)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		// Only a malformed pattern reaches here; nothing to sweep.
		return 0
	}

	removed := 0
	for _, match := range matches {
		if match == s.path {
			continue
		}
		if err := os.Remove(match); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove orphan temp file %s: %v\n", match, err)
			continue
		}
		removed++
	}

	return removed
}
