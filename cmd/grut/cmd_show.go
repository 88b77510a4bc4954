package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/cmd/ui"
	grerr "github.com/utkarsh5026/grut/pkg/common/err"
	"github.com/utkarsh5026/grut/pkg/diff"
)

func newShowCmd(flags *globalFlags) *cobra.Command {
	var unified bool
	var context int

	cmd := &cobra.Command{
		Use:   "show <digest>",
		Short: "Show the changes a commit made",
		Long: `Compare every file of a commit with its parent commit.
Files absent from the parent are shown in full as new files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			repo, err := findRepository(cmd, flags)
			if err != nil {
				return err
			}
			defer closeRepository(repo, &err)

			reports, err := repo.ShowCommit(cmd.Context(), args[0])
			if errors.Is(err, grerr.ErrNotFound) {
				return fmt.Errorf("commit not found: %w", err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Header(" Changes "))
			for i, report := range reports {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if unified {
					if err := displayUnified(out, report, context); err != nil {
						return err
					}
					continue
				}
				displayReport(out, report)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unified, "unified", "u", false, "Print unified diffs with context")
	cmd.Flags().IntVarP(&context, "context", "U", diff.DefaultContext, "Context lines for --unified")

	return cmd
}

func displayReport(out io.Writer, report diff.FileReport) {
	fmt.Fprintln(out, ui.FileHeader(report))
	if report.Kind == diff.NewFile {
		fmt.Fprint(out, report.Content)
		if report.Content != "" && !strings.HasSuffix(report.Content, "\n") {
			fmt.Fprintln(out)
		}
		return
	}

	for _, run := range report.Runs {
		fmt.Fprint(out, ui.FormatRun(run))
	}
}

func displayUnified(out io.Writer, report diff.FileReport, context int) error {
	text, err := diff.Unified(report, context)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Fprintln(out, ui.FileHeader(report))
		return nil
	}
	fmt.Fprint(out, ui.FormatUnified(text))
	return nil
}
