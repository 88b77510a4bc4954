package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/cmd/ui"
)

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var useTable bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show HEAD and the staged files",
		Long: `Show the current HEAD commit and the files staged for the next commit,
in the order they were staged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			repo, err := findRepository(cmd, flags)
			if err != nil {
				return err
			}
			defer closeRepository(repo, &err)

			head, err := repo.Head()
			if err != nil {
				return err
			}
			entries, err := repo.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Header(" Repository Status "))
			if head.IsZero() {
				fmt.Fprintf(out, "%s %s\n\n", ui.Cyan(ui.IconCommit), ui.Blue("HEAD: no commits yet"))
			} else {
				fmt.Fprintf(out, "%s %s\n\n", ui.Cyan(ui.IconCommit), ui.Blue("HEAD: "+head.String()))
			}

			if len(entries) == 0 {
				fmt.Fprintf(out, "  %s\n", ui.Green(ui.IconCheck+"  Nothing staged"))
				return nil
			}

			fmt.Fprintln(out, ui.Section("Changes to be committed:"))
			if useTable {
				table := tablewriter.NewWriter(out)
				table.Header("Path", "Digest")
				for _, entry := range entries {
					table.Append(entry.Path.String(), entry.Digest.String())
				}
				table.Render()
				return nil
			}

			for _, entry := range entries {
				fmt.Fprintln(out, ui.FormatStaged(entry.Path.String(), entry.Digest.Short()))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Dim("  Use 'grut commit -m <message>' to record them"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display staged files in table format")

	return cmd
}
