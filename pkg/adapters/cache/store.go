// Package cache memoizes linter diagnostics on disk, keyed by the linter
// identity and the exact sample text.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/natefinch/atomic"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aretw0/errdocs/pkg/core"
)

// DefaultFile is the cache file name used when only a directory is known.
const DefaultFile = "errdocs-lint.cache"

const indexVersion = 1

// entry holds the diagnostics reported for a single sample.
type entry struct {
	Diagnostics []core.Diagnostic `msgpack:"diagnostics"`
	Stored      time.Time         `msgpack:"stored"`
}

// index represents the persistent cache state.
type index struct {
	Version int               `msgpack:"version"`
	Entries map[string]*entry `msgpack:"entries"` // key is Key(identity, text)
}

// Store manages the loading, updating and saving of the index.
type Store struct {
	Path string

	mu     sync.RWMutex
	index  index
	used   map[string]bool
	dirty  bool
	loaded bool
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{
		Path: path,
		index: index{
			Version: indexVersion,
			Entries: make(map[string]*entry),
		},
		used: make(map[string]bool),
	}
}

// Key identifies a sample linted by a given linter.
func Key(identity, text string) string {
	sum := sha256.Sum256([]byte(identity + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Load reads the cache from disk. A missing, corrupted or outdated file
// yields an empty cache.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	var idx index
	if err := msgpack.Unmarshal(data, &idx); err != nil || idx.Version != indexVersion || idx.Entries == nil {
		s.index.Entries = make(map[string]*entry)
		s.dirty = true
		s.loaded = true
		return nil
	}

	s.index = idx
	s.dirty = false
	s.loaded = true
	return nil
}

// begin starts a run: the store is loaded on first use and usage tracking
// for Prune starts over.
func (s *Store) begin() error {
	s.mu.Lock()
	loaded := s.loaded
	s.used = make(map[string]bool)
	s.mu.Unlock()

	if loaded {
		return nil
	}
	return s.Load()
}

// Save persists the cache if it changed since it was loaded.
func (s *Store) Save() error {
	s.mu.RLock()
	if !s.dirty {
		s.mu.RUnlock()
		return nil
	}
	data, err := msgpack.Marshal(&s.index)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return err
	}
	if err := atomic.WriteFile(s.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Get returns the diagnostics stored under key.
func (s *Store) Get(key string) ([]core.Diagnostic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.Entries[key]
	if !ok {
		return nil, false
	}
	s.used[key] = true
	return slices.Clone(e.Diagnostics), true
}

// Set stores diagnostics under key.
func (s *Store) Set(key string, diags []core.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index.Entries[key] = &entry{Diagnostics: slices.Clone(diags), Stored: time.Now().UTC()}
	s.used[key] = true
	s.dirty = true
}

// Prune removes the entries not read or written during the current run.
func (s *Store) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.index.Entries {
		if !s.used[key] {
			delete(s.index.Entries, key)
			s.dirty = true
		}
	}
}

// Len returns the number of entries in the cache.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index.Entries)
}
