package config

import (
	"strings"
)

// TypedConfig reads recognized keys with their types. Values that fail to
// convert fall back to the builtin default.
type TypedConfig struct {
	manager *Manager
}

// NewTypedConfig wraps manager.
func NewTypedConfig(manager *Manager) *TypedConfig {
	return &TypedConfig{manager: manager}
}

// ObjectStore returns the object store backend name ("file" or "badger").
func (tc *TypedConfig) ObjectStore() string {
	return strings.ToLower(tc.stringOr(KeyObjectStore, DefaultObjectStore))
}

// Compression returns the zlib level for file objects.
func (tc *TypedConfig) Compression() int {
	return tc.intOr(KeyCompression, DefaultCompression)
}

// HistoryMaxDepth returns the walk depth bound.
func (tc *TypedConfig) HistoryMaxDepth() int {
	return tc.intOr(KeyHistoryDepth, DefaultHistoryDepth)
}

// LogLevel returns the configured log level name.
func (tc *TypedConfig) LogLevel() string {
	return tc.stringOr(KeyLogLevel, DefaultLogLevel)
}

// LogFormat returns "text" or "json".
func (tc *TypedConfig) LogFormat() string {
	return tc.stringOr(KeyLogFormat, DefaultLogFormat)
}

// VerifyWorkers returns how many goroutines verify may use.
func (tc *TypedConfig) VerifyWorkers() int {
	return tc.intOr(KeyVerifyWorkers, DefaultVerifyWorkers)
}

// GetString returns a configuration value as a string
func (tc *TypedConfig) GetString(key string) string {
	return tc.stringOr(key, "")
}

// GetInt returns a configuration value as an integer
func (tc *TypedConfig) GetInt(key string) (int, error) {
	entry := tc.manager.Get(key)
	if entry == nil {
		return 0, NewNotFoundError(key, "")
	}
	return entry.AsInt()
}

func (tc *TypedConfig) stringOr(key, fallback string) string {
	entry := tc.manager.Get(key)
	if entry == nil || strings.TrimSpace(entry.Value) == "" {
		return fallback
	}
	return strings.TrimSpace(entry.AsString())
}

func (tc *TypedConfig) intOr(key string, fallback int) int {
	entry := tc.manager.Get(key)
	if entry == nil {
		return fallback
	}
	val, err := entry.AsInt()
	if err != nil {
		return fallback
	}
	return val
}
