// Package store is the persistent key-value collaborator.
//
// Values live in a single flat JSON object. Keys are arbitrary strings,
// including URLs; they are escaped before being used as gjson/sjson paths so
// dots and wildcards are taken literally.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	// ErrCorrupt is returned when a state file does not hold a JSON object.
	ErrCorrupt = errors.New("store: state file is not a JSON object")

	// ErrEmptyKey is returned by Set and Delete for an empty key.
	ErrEmptyKey = errors.New("store: empty key")
)

// Store is an in-memory JSON document with optional file backing.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	doc   string
	path  string
	dirty bool
}

// New creates an empty, memory-only store.
func New() *Store {
	return &Store{doc: "{}"}
}

// Open loads the store at path. A missing file yields an empty store that is
// written on the first Save.
func Open(path string) (*Store, error) {
	s := &Store{doc: "{}", path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, path)
	}
	s.doc = string(data)
	return s, nil
}

// Path returns the backing file path, empty for memory-only stores.
func (s *Store) Path() string {
	return s.path
}

// Get returns the raw result stored under key.
func (s *Store) Get(key string) (gjson.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := gjson.Get(s.doc, gjson.Escape(key))
	return res, res.Exists()
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Bool returns the boolean under key, or def when absent.
func (s *Store) Bool(key string, def bool) bool {
	if res, ok := s.Get(key); ok {
		return res.Bool()
	}
	return def
}

// Float returns the number under key, or def when absent.
func (s *Store) Float(key string, def float64) float64 {
	if res, ok := s.Get(key); ok {
		return res.Float()
	}
	return def
}

// Int returns the integer under key, or def when absent.
func (s *Store) Int(key string, def int) int {
	if res, ok := s.Get(key); ok {
		return int(res.Int())
	}
	return def
}

// String returns the string under key, or def when absent.
func (s *Store) String(key string, def string) string {
	if res, ok := s.Get(key); ok {
		return res.String()
	}
	return def
}

// Set stores value under key. Structs and maps are stored as JSON objects.
func (s *Store) Set(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := sjson.Set(s.doc, gjson.Escape(key), value)
	if err != nil {
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	s.doc = doc
	s.dirty = true
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := sjson.Delete(s.doc, gjson.Escape(key))
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	if doc != s.doc {
		s.doc = doc
		s.dirty = true
	}
	return nil
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	gjson.Parse(s.doc).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	sort.Strings(keys)
	return keys
}

// Dirty reports whether there are unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// JSON returns the raw document.
func (s *Store) JSON() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Save writes the document to its file. Memory-only stores and clean stores
// are no-ops.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" || !s.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(s.doc), 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: rename %s: %w", tmp, err)
	}
	s.dirty = false
	return nil
}
