// Package diff computes line-level edit scripts between file versions and
// resolves, for a commit, which version of each file to compare against.
package diff

import (
	"strings"
)

// Kind tags a run of lines.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Run is a maximal span of consecutive lines with the same Kind. Each line
// keeps its terminator; only the last line of a file may lack one.
type Run struct {
	Kind  Kind
	Lines []string
}

// Text returns the lines of the run joined back together.
func (r Run) Text() string {
	return strings.Join(r.Lines, "")
}

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

// SplitLines breaks s after every "\n". A final fragment without a newline
// is its own line. The empty string has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Lines diffs oldText against newText.
//
// The result is lossless: joining the Unchanged and Removed runs gives
// oldText back, and joining the Unchanged and Added runs gives newText.
// Within each changed block the Removed run comes before the Added run.
//
// The edit script is a shortest one, found with Myers' linear-space
// algorithm: memory stays proportional to the number of lines.
func Lines(oldText, newText string) []Run {
	a, b := SplitLines(oldText), SplitLines(newText)
	return group(editOps(a, b))
}

type op struct {
	kind Kind
	line string
}

// editOps marks every line of a as removed or kept and every line of b as
// added or kept, then interleaves them, emitting pending removals before
// pending additions.
func editOps(a, b []string) []op {
	d := newDiffer(a, b)
	d.compare(0, len(a), 0, len(b))

	ops := make([]op, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && d.removed[i]:
			ops = append(ops, op{Removed, a[i]})
			i++
		case j < len(b) && d.added[j]:
			ops = append(ops, op{Added, b[j]})
			j++
		default:
			ops = append(ops, op{Unchanged, a[i]})
			i++
			j++
		}
	}
	return ops
}

// differ holds lines interned as ints plus the forward and backward
// furthest-reaching arrays, allocated once and reused by every recursive
// call.
type differ struct {
	a, b    []int
	removed []bool
	added   []bool
	vf, vb  []int
	offset  int
}

func newDiffer(a, b []string) *differ {
	ids := make(map[string]int, len(a)+len(b))
	intern := func(lines []string) []int {
		out := make([]int, len(lines))
		for i, line := range lines {
			id, ok := ids[line]
			if !ok {
				id = len(ids)
				ids[line] = id
			}
			out[i] = id
		}
		return out
	}

	maxD := (len(a) + len(b) + 1) / 2
	return &differ{
		a:       intern(a),
		b:       intern(b),
		removed: make([]bool, len(a)),
		added:   make([]bool, len(b)),
		vf:      make([]int, 2*maxD+3),
		vb:      make([]int, 2*maxD+3),
		offset:  maxD + 1,
	}
}

// compare marks the edits between a[aLo:aHi] and b[bLo:bHi].
func (d *differ) compare(aLo, aHi, bLo, bHi int) {
	for aLo < aHi && bLo < bHi && d.a[aLo] == d.b[bLo] {
		aLo++
		bLo++
	}
	for aLo < aHi && bLo < bHi && d.a[aHi-1] == d.b[bHi-1] {
		aHi--
		bHi--
	}

	switch {
	case aLo == aHi:
		for j := bLo; j < bHi; j++ {
			d.added[j] = true
		}
	case bLo == bHi:
		for i := aLo; i < aHi; i++ {
			d.removed[i] = true
		}
	default:
		x, y := d.split(aLo, aHi, bLo, bHi)
		d.compare(aLo, x, bLo, y)
		d.compare(x, aHi, y, bHi)
	}
}

// split finds the middle snake of a shortest edit path between two
// non-empty ranges whose first and last lines differ, and returns a point
// on that path strictly inside both corners.
func (d *differ) split(aLo, aHi, bLo, bHi int) (int, int) {
	n, m := aHi-aLo, bHi-bLo
	delta := n - m
	odd := delta%2 != 0
	maxD := (n + m + 1) / 2
	vf, vb, off := d.vf, d.vb, d.offset

	vf[off+1] = 0
	vb[off+1] = 0

	for step := 0; step <= maxD; step++ {
		for k := -step; k <= step; k += 2 {
			var x int
			if k == -step || (k != step && vf[off+k-1] < vf[off+k+1]) {
				x = vf[off+k+1]
			} else {
				x = vf[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && d.a[aLo+x] == d.b[bLo+y] {
				x++
				y++
			}
			vf[off+k] = x

			if kr := delta - k; odd && kr >= -(step-1) && kr <= step-1 && vb[off+kr]+x >= n {
				return aLo + x, bLo + y
			}
		}

		for k := -step; k <= step; k += 2 {
			var x int
			if k == -step || (k != step && vb[off+k-1] < vb[off+k+1]) {
				x = vb[off+k+1]
			} else {
				x = vb[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && d.a[aHi-1-x] == d.b[bHi-1-y] {
				x++
				y++
			}
			vb[off+k] = x

			if kf := delta - k; !odd && kf >= -step && kf <= step && vf[off+kf]+x >= n {
				return aHi - x, bHi - y
			}
		}
	}

	// Unreachable: a path of at most n+m edits always exists.
	return aLo + n/2, bLo
}

// group merges per-line ops into runs. Every stretch of changed lines
// between two unchanged lines becomes at most one Removed run followed by
// at most one Added run.
func group(ops []op) []Run {
	runs := make([]Run, 0)
	var removed, added []string

	flush := func() {
		if len(removed) > 0 {
			runs = append(runs, Run{Kind: Removed, Lines: removed})
			removed = nil
		}
		if len(added) > 0 {
			runs = append(runs, Run{Kind: Added, Lines: added})
			added = nil
		}
	}

	for _, o := range ops {
		switch o.kind {
		case Removed:
			removed = append(removed, o.line)
		case Added:
			added = append(added, o.line)
		default:
			flush()
			if n := len(runs); n > 0 && runs[n-1].Kind == Unchanged {
				runs[n-1].Lines = append(runs[n-1].Lines, o.line)
			} else {
				runs = append(runs, Run{Kind: Unchanged, Lines: []string{o.line}})
			}
		}
	}
	flush()

	return runs
}

// OldText rebuilds the old content from runs.
func OldText(runs []Run) string {
	return join(runs, Removed)
}

// NewText rebuilds the new content from runs.
func NewText(runs []Run) string {
	return join(runs, Added)
}

func join(runs []Run, side Kind) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Kind == Unchanged || r.Kind == side {
			sb.WriteString(r.Text())
		}
	}
	return sb.String()
}

// CountLines tallies added and removed lines in runs.
func CountLines(runs []Run) Stats {
	var s Stats
	for _, r := range runs {
		switch r.Kind {
		case Added:
			s.Added += len(r.Lines)
		case Removed:
			s.Removed += len(r.Lines)
		}
	}
	return s
}
