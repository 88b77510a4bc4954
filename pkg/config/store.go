package config

import (
	"fmt"

	"github.com/utkarsh5026/grut/pkg/common/fileops"
)

// Store is one JSON configuration file at one level.
type Store struct {
	path    string
	level   ConfigLevel
	entries map[string]*ConfigEntry
	parser  *Parser
}

// NewStore creates a new configuration store for a specific file and level
func NewStore(path string, level ConfigLevel) *Store {
	return &Store{
		path:    path,
		level:   level,
		entries: make(map[string]*ConfigEntry),
		parser:  &Parser{},
	}
}

// Load reads and parses the configuration file. A missing file is an
// empty configuration.
func (s *Store) Load() error {
	content, err := fileops.ReadBytes(s.path)
	if err != nil {
		return loadError(s.path, s.level, err)
	}

	entries, err := s.parser.Parse(content, NewFileSource(s.path), s.level)
	if err != nil {
		return err
	}

	s.entries = entries
	return nil
}

// Save writes the configuration to disk atomically
func (s *Store) Save() error {
	content, err := s.parser.Serialize(s.entries)
	if err != nil {
		return err
	}

	if err := fileops.EnsureParentDir(s.path); err != nil {
		return NewInvalidFormatError("save", s.path, fmt.Errorf("failed to create directory: %w", err))
	}

	if err := fileops.AtomicWrite(s.path, content, 0644); err != nil {
		return NewInvalidFormatError("save", s.path, err)
	}

	return nil
}

// Get returns a copy of the entry for key, or nil.
func (s *Store) Get(key string) *ConfigEntry {
	entry, exists := s.entries[key]
	if !exists {
		return nil
	}
	return entry.Clone()
}

// Keys returns every key present in this store.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}

// Set replaces the value for a key
func (s *Store) Set(key, value string) {
	s.entries[key] = NewEntry(key, value, s.level, NewFileSource(s.path))
}

// Unset removes the value for a key and reports whether it was present.
func (s *Store) Unset(key string) bool {
	_, exists := s.entries[key]
	delete(s.entries, key)
	return exists
}

// Path returns the file path for this store
func (s *Store) Path() string {
	return s.path
}

// Level returns the configuration level for this store
func (s *Store) Level() ConfigLevel {
	return s.level
}
