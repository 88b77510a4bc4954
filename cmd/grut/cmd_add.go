package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/cmd/ui"
)

func newAddCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file...>",
		Short: "Add file contents to the staging area",
		Long: `Store the contents of each file and record it in the index.
Staging a path again replaces its earlier entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			repo, err := findRepository(cmd, flags)
			if err != nil {
				return err
			}
			defer closeRepository(repo, &err)

			out := cmd.OutOrStdout()
			for _, arg := range args {
				absPath, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("failed to resolve %s: %w", arg, err)
				}

				result, err := repo.StageFile(cmd.Context(), absPath)
				if err != nil {
					return err
				}

				verb := "Added"
				if result.Replaced {
					verb = "Updated"
				}
				fmt.Fprintf(out, "%s %s\n", ui.Green(verb), result.Path)
			}
			return nil
		},
	}

	return cmd
}
