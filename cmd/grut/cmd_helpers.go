package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/config"
	"github.com/utkarsh5026/grut/pkg/grut"
)

// configOverrides turns -c key=value pairs and explicitly set logging flags into
// command-line configuration values.
func (f *globalFlags) configOverrides(cmd *cobra.Command) (map[string]string, error) {
	values := make(map[string]string, len(f.overrides)+2)
	for _, kv := range f.overrides {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid config override %q: expected key=value", kv)
		}
		values[key] = value
	}

	if cmd.Flags().Changed("log-level") {
		values[config.KeyLogLevel] = f.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		values[config.KeyLogFormat] = f.logFormat
	}
	return values, nil
}

// findRepository opens the repository containing the current directory.
func findRepository(cmd *cobra.Command, flags *globalFlags) (*grut.Repo, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	overrides, err := flags.configOverrides(cmd)
	if err != nil {
		return nil, err
	}

	return grut.Discover(cmd.Context(), cwd, grut.OpenOptions{Overrides: overrides})
}

// loadConfig loads the configuration hierarchy for the current directory.
// Outside a repository only the user and builtin levels exist.
func loadConfig(ctx context.Context, cmd *cobra.Command, flags *globalFlags) (*config.Manager, error) {
	repoConfig := ""
	if cwd, err := os.Getwd(); err == nil {
		if root, err := grut.FindRoot(cwd); err == nil {
			repoConfig = root.SourcePath().ConfigPath().String()
		}
	}

	overrides, err := flags.configOverrides(cmd)
	if err != nil {
		return nil, err
	}

	mgr := config.NewManager(repoConfig)
	for key, value := range overrides {
		mgr.SetCommandLine(key, value)
	}
	if err := mgr.Load(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}

// setupLogging replaces the default logger. Flags win; otherwise log.level
// and log.format come from configuration.
func setupLogging(cmd *cobra.Command, flags *globalFlags) error {
	levelName, formatName := flags.logLevel, flags.logFormat

	if mgr, err := loadConfig(cmd.Context(), cmd, flags); err == nil {
		typed := config.NewTypedConfig(mgr)
		levelName = typed.LogLevel()
		formatName = typed.LogFormat()
	}
	if flags.verbose {
		levelName = "debug"
	}

	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return err
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// closeRepository releases the repository, keeping the first error.
func closeRepository(repo *grut.Repo, errp *error) {
	if err := repo.Close(); err != nil && *errp == nil {
		*errp = err
	}
}
