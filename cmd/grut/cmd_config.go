package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/pkg/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration values",
		Long: `Read and write configuration. Values are looked up in order:
command line (-c key=value), repository (.grut/config.json),
user ($XDG_CONFIG_HOME/grut/config.json), builtin defaults.`,
	}

	cmd.AddCommand(newConfigGetCmd(flags))
	cmd.AddCommand(newConfigSetCmd(flags))
	cmd.AddCommand(newConfigUnsetCmd(flags))
	cmd.AddCommand(newConfigListCmd(flags))

	return cmd
}

func newConfigGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadConfig(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}

			entry := mgr.Get(args[0])
			if entry == nil {
				return config.NewNotFoundError(args[0], "any")
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.AsString())
			return nil
		},
	}
}

func newConfigSetCmd(flags *globalFlags) *cobra.Command {
	var levelName string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a value at the repository or user level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadConfig(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			level, err := writableLevel(mgr, levelName)
			if err != nil {
				return err
			}
			return mgr.Set(args[0], args[1], level)
		},
	}

	cmd.Flags().StringVar(&levelName, "level", "", "Level to write (repository, user); defaults to repository inside a repository")

	return cmd
}

func newConfigUnsetCmd(flags *globalFlags) *cobra.Command {
	var levelName string

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a value from the repository or user level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadConfig(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			level, err := writableLevel(mgr, levelName)
			if err != nil {
				return err
			}
			return mgr.Unset(args[0], level)
		},
	}

	cmd.Flags().StringVar(&levelName, "level", "", "Level to modify (repository, user); defaults to repository inside a repository")

	return cmd
}

func newConfigListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every effective value and where it comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadConfig(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Key", "Value", "Level")
			for _, entry := range mgr.List() {
				table.Append(entry.Key, entry.Value, entry.Level.String())
			}
			table.Render()
			return nil
		},
	}
}

// writableLevel resolves --level, preferring the repository store when one
// is loaded.
func writableLevel(mgr *config.Manager, name string) (config.ConfigLevel, error) {
	if name != "" {
		return config.ParseLevel(name)
	}
	if mgr.GetStore(config.RepositoryLevel) != nil {
		return config.RepositoryLevel, nil
	}
	return config.UserLevel, nil
}
