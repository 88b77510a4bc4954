package config

import "strings"

// ConfigLevel is where a value came from. Lower values win.
type ConfigLevel int

const (
	// CommandLineLevel holds -c overrides and explicitly set logging flags.
	CommandLineLevel ConfigLevel = iota

	// RepositoryLevel is .grut/config.json.
	RepositoryLevel

	// UserLevel is $XDG_CONFIG_HOME/grut/config.json.
	UserLevel

	// BuiltinLevel is the compiled-in defaults.
	BuiltinLevel
)

var levelNames = [...]string{
	CommandLineLevel: "command-line",
	RepositoryLevel:  "repository",
	UserLevel:        "user",
	BuiltinLevel:     "builtin",
}

func (l ConfigLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// CanWrite reports whether the level is backed by a file.
func (l ConfigLevel) CanWrite() bool {
	return l == RepositoryLevel || l == UserLevel
}

// ParseLevel accepts a level name as printed by String, plus "repo".
func ParseLevel(s string) (ConfigLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "repo" {
		return RepositoryLevel, nil
	}
	for level, levelName := range levelNames {
		if levelName == name {
			return ConfigLevel(level), nil
		}
	}
	return 0, invalidLevelError(s)
}
