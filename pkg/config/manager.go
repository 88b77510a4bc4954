package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Default configuration paths
const (
	AppDirName     = "grut"
	ConfigFileName = "config.json"
)

// Manager is the central configuration manager that handles the hierarchy of config files
// It is thread-safe and can be used concurrently
type Manager struct {
	mu              sync.RWMutex
	stores          map[ConfigLevel]*Store
	commandLine     map[string]string
	builtinDefaults map[string]string
	validator       *Validator
}

// NewManager creates a new configuration manager. repositoryConfigPath is
// the repository's config.json; pass "" outside a repository.
func NewManager(repositoryConfigPath string) *Manager {
	m := &Manager{
		stores:          make(map[ConfigLevel]*Store),
		commandLine:     make(map[string]string),
		builtinDefaults: make(map[string]string),
		validator:       &Validator{},
	}

	m.initializeStores(repositoryConfigPath)
	m.loadBuiltinDefaults()

	return m
}

// Load reads all configuration files from disk concurrently.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	for _, store := range m.stores {
		s := store
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.Load()
		})
	}

	return g.Wait()
}

// Get retrieves a configuration value, respecting the hierarchy
// Returns the highest precedence value, or nil if not found
func (m *Manager) Get(key string) *ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUnsafe(key)
}

// Set validates value and writes it at level.
func (m *Manager) Set(key, value string, level ConfigLevel) error {
	if err := m.validator.ValidateKeyValue(key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.validateStore("set", key, level)
	if err != nil {
		return err
	}

	store.Set(key, value)
	return store.Save()
}

// Unset removes a configuration key at a specific level
func (m *Manager) Unset(key string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.validateStore("unset", key, level)
	if err != nil {
		return err
	}

	if !store.Unset(key) {
		return NewNotFoundError(key, level.String())
	}
	return store.Save()
}

func (m *Manager) validateStore(operation string, key string, level ConfigLevel) (*Store, error) {
	if !level.CanWrite() {
		return nil, readOnlyError(operation, key, level)
	}

	store, exists := m.stores[level]
	if !exists {
		return nil, missingStoreError(operation, key, level)
	}

	return store, nil
}

// SetCommandLine sets a command-line configuration value
func (m *Manager) SetCommandLine(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandLine[key] = value
}

// List returns all effective configuration entries sorted by key.
func (m *Manager) List() []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	allKeys := make(map[string]struct{})
	for key := range m.commandLine {
		allKeys[key] = struct{}{}
	}
	for _, store := range m.stores {
		for _, key := range store.Keys() {
			allKeys[key] = struct{}{}
		}
	}
	for key := range m.builtinDefaults {
		allKeys[key] = struct{}{}
	}

	entries := make([]*ConfigEntry, 0, len(allKeys))
	for key := range allKeys {
		if entry := m.getUnsafe(key); entry != nil {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// GetStore returns the store for a specific level
// Returns nil if the store doesn't exist
func (m *Manager) GetStore(level ConfigLevel) *Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stores[level]
}

// initializeStores creates stores for different configuration levels
func (m *Manager) initializeStores(repositoryConfigPath string) {
	if userPath := userConfigPath(); userPath != "" {
		m.stores[UserLevel] = NewStore(userPath, UserLevel)
	}

	if repositoryConfigPath != "" {
		m.stores[RepositoryLevel] = NewStore(repositoryConfigPath, RepositoryLevel)
	}
}

// userConfigPath honors $XDG_CONFIG_HOME through os.UserConfigDir. It
// returns "" when no home directory can be determined.
func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppDirName, ConfigFileName)
}

// loadBuiltinDefaults initializes hardcoded default values
func (m *Manager) loadBuiltinDefaults() {
	m.builtinDefaults[KeyObjectStore] = DefaultObjectStore
	m.builtinDefaults[KeyCompression] = strconv.Itoa(DefaultCompression)
	m.builtinDefaults[KeyHistoryDepth] = strconv.Itoa(DefaultHistoryDepth)
	m.builtinDefaults[KeyLogLevel] = DefaultLogLevel
	m.builtinDefaults[KeyLogFormat] = DefaultLogFormat
	m.builtinDefaults[KeyVerifyWorkers] = strconv.Itoa(DefaultVerifyWorkers)
}

// getUnsafe is the internal implementation of Get without locking
// Caller must hold at least read lock
func (m *Manager) getUnsafe(key string) *ConfigEntry {
	if value, exists := m.commandLine[key]; exists {
		return NewCommandLineEntry(key, value)
	}

	for _, level := range []ConfigLevel{RepositoryLevel, UserLevel} {
		if store, exists := m.stores[level]; exists {
			if entry := store.Get(key); entry != nil {
				return entry
			}
		}
	}

	if value, exists := m.builtinDefaults[key]; exists {
		return NewBuiltinEntry(key, value)
	}

	return nil
}
