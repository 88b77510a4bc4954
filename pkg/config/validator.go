package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Validator checks values before they are written to a config file.
type Validator struct{}

// ValidateKeyValue returns nil if value is acceptable for key. Unknown
// keys are rejected so typos do not silently do nothing.
func (v *Validator) ValidateKeyValue(key, value string) error {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return NewInvalidValueError(key, fmt.Errorf("configuration key must have section.name format"))
	}

	switch key {
	case KeyObjectStore:
		return v.validateOneOf(key, value, "file", "badger")
	case KeyCompression:
		return v.validateIntRange(key, value, -1, 9)
	case KeyHistoryDepth:
		return v.validateIntRange(key, value, 1, 1<<30)
	case KeyLogLevel:
		return v.validateOneOf(key, value, "debug", "info", "warn", "warning", "error")
	case KeyLogFormat:
		return v.validateOneOf(key, value, "text", "json")
	case KeyVerifyWorkers:
		return v.validateIntRange(key, value, 1, 256)
	default:
		return NewInvalidValueError(key, fmt.Errorf("unknown configuration key"))
	}
}

func (v *Validator) validateOneOf(key, value string, allowed ...string) error {
	if slices.Contains(allowed, strings.ToLower(strings.TrimSpace(value))) {
		return nil
	}
	return NewInvalidValueError(key, fmt.Errorf("%q is not one of %s", value, strings.Join(allowed, ", ")))
}

func (v *Validator) validateIntRange(key, value string, lo, hi int) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return NewInvalidValueError(key, fmt.Errorf("%q is not an integer", value))
	}
	if n < lo || n > hi {
		return NewInvalidValueError(key, fmt.Errorf("%d is outside [%d, %d]", n, lo, hi))
	}
	return nil
}
