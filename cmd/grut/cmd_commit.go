package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/cmd/ui"
)

func newCommitCmd(flags *globalFlags) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit [message]",
		Short: "Record the staged files as a new commit",
		Long: `Create a commit from the index and move HEAD to it.
The message comes from -m or the positional arguments.
With nothing staged, no commit is made.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if message == "" {
				message = strings.Join(args, " ")
			}

			repo, err := findRepository(cmd, flags)
			if err != nil {
				return err
			}
			defer closeRepository(repo, &err)

			result, err := repo.Commit(cmd.Context(), message)
			if err != nil {
				return fmt.Errorf("failed to create commit: %w", err)
			}

			out := cmd.OutOrStdout()
			if result.NothingToCommit {
				fmt.Fprintln(out, ui.WarningMessage("Nothing to commit"))
				return nil
			}

			fmt.Fprintf(out, "Committed as %s\n", ui.Yellow(result.Digest.String()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")

	return cmd
}
