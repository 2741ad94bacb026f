// Package history holds the bounded, deduplicated clipboard history.
//
// The Store is the single owner of the entry sequence. Every mutation takes
// one mutex for the minimum critical section and bumps a version counter that
// presentation layers poll to decide whether to re-render. Readers only ever
// see copies.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// DefaultMaxItems is the history bound used when none is configured.
const DefaultMaxItems = 50

// Store is a bounded, most-recent-first list of entries persisted as a JSON
// array. It is safe for concurrent use.
type Store struct {
	path     string
	maxItems int

	mu      sync.Mutex
	entries []Entry
	version atomic.Uint64 // only incremented while mu is held

	// saveMu orders writers so an older snapshot never lands on disk after
	// a newer one. It is never held together with mu across I/O.
	saveMu sync.Mutex
}

// New returns an empty store persisted at path. An empty path keeps the
// history in memory only. maxItems <= 0 selects DefaultMaxItems.
func New(path string, maxItems int) *Store {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Store{path: path, maxItems: maxItems}
}

// Path returns the history file path.
func (s *Store) Path() string { return s.path }

// MaxItems returns the configured bound.
func (s *Store) MaxItems() int { return s.maxItems }

// Load replaces the in-memory history with the persisted one.
//
// A missing file is created holding an empty array. An empty, malformed or
// non-array file is logged and reset to an empty array on disk; that is not
// an error. Load only fails when the file exists but cannot be read, or when
// writing the reset state fails.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("history file not found, creating", "path", s.path)
		return s.Save()
	case err != nil:
		return fmt.Errorf("history: read %s: %w", s.path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		s.Clear()
		return s.Save()
	}

	// json.Unmarshal accepts null into a slice, so check the shape first.
	var entries []Entry
	if data[0] != '[' {
		err = errors.New("history is not a JSON array")
	} else {
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		slog.Error("history file corrupt, resetting", "path", s.path, "err", err)
		s.Clear()
		return s.Save()
	}
	if len(entries) > s.maxItems {
		entries = entries[:s.maxItems]
	}

	s.mu.Lock()
	s.entries = entries
	s.version.Add(1)
	s.mu.Unlock()

	slog.Debug("history loaded", "path", s.path, "entries", len(entries))
	return nil
}

// Add records e as the newest entry. It reports false without changing
// anything when e is blank or equal to the current head. The caller is
// responsible for persisting after a true return.
func (s *Store) Add(e Entry) bool {
	if e.Blank() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 && s.entries[0].Equal(e) {
		return false
	}

	n := min(len(s.entries)+1, s.maxItems)
	next := make([]Entry, n)
	next[0] = e
	copy(next[1:], s.entries)
	s.entries = next
	s.version.Add(1)
	return true
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.version.Add(1)
	s.mu.Unlock()
}

// Snapshot returns an independent copy of the history, most recent first.
func (s *Store) Snapshot() []Entry {
	entries, _ := s.SnapshotVersion()
	return entries
}

// SnapshotVersion returns a copy of the history together with the version it
// reflects.
func (s *Store) SnapshotVersion() ([]Entry, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, s.version.Load()
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Version returns the mutation counter. It never waits on the store lock.
func (s *Store) Version() uint64 { return s.version.Load() }

// Save writes the current history to disk. The entries are copied under the
// store lock and written after it is released, through a temp file renamed
// over the target.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	entries := s.Snapshot()
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("history: write %s: %w", s.path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
