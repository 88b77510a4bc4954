package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of context lines in unified output.
const DefaultContext = 3

// Unified renders a Changed report as a unified diff with the given number
// of context lines. NewFile reports render as a diff against nothing.
func Unified(report FileReport, context int) (string, error) {
	var oldText, newText string
	fromFile := "a/" + report.Path.String()
	if report.Kind == NewFile {
		newText = report.Content
		fromFile = "/dev/null"
	} else {
		oldText = OldText(report.Runs)
		newText = NewText(report.Runs)
	}

	ud := difflib.UnifiedDiff{
		A:        terminated(SplitLines(oldText)),
		B:        terminated(SplitLines(newText)),
		FromFile: fromFile,
		ToFile:   "b/" + report.Path.String(),
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(ud)
}

// terminated makes sure the last line ends in a newline so hunks print
// one line per row.
func terminated(lines []string) []string {
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n"
	}
	return lines
}
