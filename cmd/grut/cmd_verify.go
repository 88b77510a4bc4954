package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/cmd/ui"
)

func newVerifyCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every stored object against its digest",
		Long: `Re-read every object in the store and recompute its digest.
Exits with an error when any object is damaged. Nothing is modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			repo, err := findRepository(cmd, flags)
			if err != nil {
				return err
			}
			defer closeRepository(repo, &err)

			report, err := repo.Verify(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to verify objects: %w", err)
			}

			out := cmd.OutOrStdout()
			if report.OK() {
				fmt.Fprintln(out, ui.SuccessMessage("All objects intact", fmt.Sprintf("(%d checked)", report.Checked)))
				return nil
			}

			for _, bad := range report.Corrupt {
				fmt.Fprintf(out, "  %s %s %s\n", ui.Red(ui.IconCross), ui.Red(bad.Digest.String()), ui.Dim(bad.Reason))
			}
			return fmt.Errorf("%d of %d objects are corrupt", len(report.Corrupt), report.Checked)
		},
	}

	return cmd
}
