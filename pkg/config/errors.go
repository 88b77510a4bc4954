package config

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/grut/pkg/common/err"
)

const pkgName = "config"

// Codes used only by this package. Everything else reuses pkg/common/err.
const (
	CodeConversion   = "CONVERSION_FAILED"
	CodeInvalidLevel = "INVALID_LEVEL"
)

// ConfigError is an err.Error annotated with the key, file and level it
// concerns. Empty annotations are left out of the message.
type ConfigError struct {
	base  *err.Error
	Key   string
	Path  string
	Level string
}

func (e *ConfigError) Error() string {
	var attrs []string
	for _, kv := range [][2]string{{"key", e.Key}, {"path", e.Path}, {"level", e.Level}} {
		if kv[1] != "" {
			attrs = append(attrs, kv[0]+"="+kv[1])
		}
	}
	if len(attrs) == 0 {
		return e.base.Error()
	}
	return e.base.Error() + " (" + strings.Join(attrs, ", ") + ")"
}

func (e *ConfigError) Unwrap() error {
	return e.base
}

// NewInvalidFormatError reports an unreadable or unwritable configuration file.
func NewInvalidFormatError(op, path string, cause error) *ConfigError {
	return &ConfigError{base: err.New(pkgName, err.CodeInvalidFormat, op, "", cause), Path: path}
}

// NewInvalidValueError reports a value that fails validation for key.
func NewInvalidValueError(key string, cause error) *ConfigError {
	return &ConfigError{base: err.New(pkgName, err.CodeInvalidInput, "validate", "", cause), Key: key}
}

// NewNotFoundError reports a key with no value at level.
func NewNotFoundError(key, level string) *ConfigError {
	return &ConfigError{
		base:  err.New(pkgName, err.CodeNotFound, "get", "configuration key not found", nil),
		Key:   key,
		Level: level,
	}
}

func readOnlyError(op, key string, level ConfigLevel) *ConfigError {
	return &ConfigError{
		base:  err.New(pkgName, err.CodeReadOnly, op, "level is not backed by a file", nil),
		Key:   key,
		Level: level.String(),
	}
}

func missingStoreError(op, key string, level ConfigLevel) *ConfigError {
	return &ConfigError{
		base:  err.New(pkgName, err.CodeNotFound, op, "no configuration file for level", nil),
		Key:   key,
		Level: level.String(),
	}
}

func loadError(path string, level ConfigLevel, cause error) *ConfigError {
	return &ConfigError{base: err.New(pkgName, err.CodeInternal, "load", "", cause), Path: path, Level: level.String()}
}

func conversionError(e *ConfigEntry, target string, cause error) *ConfigError {
	message := fmt.Sprintf("%q is not a valid %s", e.Value, target)
	return &ConfigError{
		base:  err.New(pkgName, CodeConversion, "convert", message, cause),
		Key:   e.Key,
		Level: e.Level.String(),
	}
}

func invalidLevelError(name string) *ConfigError {
	return &ConfigError{base: err.New(pkgName, CodeInvalidLevel, "parse level", "unknown level "+name, nil)}
}

// IsNotFound reports whether e is a missing key or store.
func IsNotFound(e error) bool {
	return err.IsCode(e, err.CodeNotFound)
}

// IsInvalidFormat reports whether e is an unreadable configuration file.
func IsInvalidFormat(e error) bool {
	return err.IsCode(e, err.CodeInvalidFormat)
}

// IsReadOnly reports whether e is a write to a level without a file.
func IsReadOnly(e error) bool {
	return err.IsCode(e, err.CodeReadOnly)
}

// IsConversion reports whether e is a failed type conversion.
func IsConversion(e error) bool {
	return err.IsCode(e, CodeConversion)
}
