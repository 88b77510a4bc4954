package ui

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/grut/pkg/diff"
)

// FormatStaged formats one index entry for status output.
func FormatStaged(path, digest string) string {
	return fmt.Sprintf("  %s  %s %s", Green(IconStaged), Green(path), Dim(digest))
}

// FormatRun renders a diff run with one prefixed line per row: "+ " in
// green for added lines, "- " in red for removed ones and two spaces for
// unchanged context.
func FormatRun(run diff.Run) string {
	var b strings.Builder
	for _, line := range run.Lines {
		text := strings.TrimSuffix(line, "\n")
		switch run.Kind {
		case diff.Added:
			b.WriteString(AddedLineStyle.Render("+ " + text))
		case diff.Removed:
			b.WriteString(RemovedLineStyle.Render("- " + text))
		default:
			b.WriteString("  " + text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatUnified colors a unified diff produced by diff.Unified.
func FormatUnified(text string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			b.WriteString(Section(body))
		case strings.HasPrefix(body, "@@"):
			b.WriteString(HunkStyle.Render(body))
		case strings.HasPrefix(body, "+"):
			b.WriteString(AddedLineStyle.Render(body))
		case strings.HasPrefix(body, "-"):
			b.WriteString(RemovedLineStyle.Render(body))
		default:
			b.WriteString(body)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FileHeader introduces one file of a shown commit.
func FileHeader(report diff.FileReport) string {
	if report.Kind == diff.NewFile {
		return fmt.Sprintf("%s %s", Yellow(IconNewFile), Green("New file: "+report.Path.String()))
	}
	return fmt.Sprintf("%s %s %s", Cyan(IconChanged), Cyan("Diff for "+report.Path.String()+":"),
		Dim(fmt.Sprintf("(+%d -%d)", report.Stats.Added, report.Stats.Removed)))
}

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheck), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// CommitInfo is what the log shows for one commit.
type CommitInfo struct {
	Digest  string
	Date    string
	Message string
}

// FormatCommitDetailed formats a commit in a box.
func FormatCommitDetailed(c CommitInfo) string {
	var content strings.Builder
	fmt.Fprintf(&content, "%s %s\n", Yellow(IconCommit), Yellow(c.Digest))
	fmt.Fprintf(&content, "%s %s\n\n", Magenta(IconDate), Magenta(c.Date))
	content.WriteString(c.Message)
	return CommitBoxStyle.Render(content.String())
}

// FormatCommitSeparator draws the connector between two log boxes.
func FormatCommitSeparator() string {
	return Dim("  " + IconSeparator)
}

func ErrorMessage(message string) string {
	return Red(message)
}

func WarningMessage(message string) string {
	return Yellow(message)
}
