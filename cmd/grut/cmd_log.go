package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/cmd/ui"
	"github.com/utkarsh5026/grut/pkg/grut"
)

func newLogCmd(flags *globalFlags) *cobra.Command {
	var limit int
	var useTable bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit logs",
		Long:  `Show the commit history starting from HEAD, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			repo, err := findRepository(cmd, flags)
			if err != nil {
				return err
			}
			defer closeRepository(repo, &err)

			history, err := repo.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintln(out, ui.WarningMessage("No commits yet"))
				return nil
			}

			if useTable {
				displayCommitsAsTable(out, history)
			} else {
				displayCommitsDetailed(out, history)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of commits to show (0 shows all)")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")

	return cmd
}

func displayCommitsDetailed(out io.Writer, history []grut.HistoryEntry) {
	for i, entry := range history {
		fmt.Fprintln(out, ui.FormatCommitDetailed(ui.CommitInfo{
			Digest:  "commit " + entry.Digest.String(),
			Date:    "Date: " + entry.Timestamp.Format(time.RFC3339),
			Message: "Message: " + entry.Message,
		}))

		if i < len(history)-1 {
			fmt.Fprintln(out, ui.FormatCommitSeparator())
		}
	}
}

func displayCommitsAsTable(out io.Writer, history []grut.HistoryEntry) {
	table := tablewriter.NewWriter(out)
	table.Header("Commit", "Date", "Message")

	for _, entry := range history {
		message := truncate(firstLine(entry.Message), 50)

		table.Append(
			ui.Yellow(entry.Digest.Short()),
			ui.Magenta(entry.Timestamp.Format("2006-01-02 15:04")),
			message,
		)
	}

	table.Render()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
