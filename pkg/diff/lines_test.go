package diff

import (
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"\n\n", []string{"\n", "\n"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines(tt.in), "input %q", tt.in)
	}
}

func TestLines_AppendedLine(t *testing.T) {
	runs := Lines("hello\n", "hello\nworld\n")

	assert.Equal(t, []Run{
		{Kind: Unchanged, Lines: []string{"hello\n"}},
		{Kind: Added, Lines: []string{"world\n"}},
	}, runs)
}

func TestLines_Identical(t *testing.T) {
	runs := Lines("a\nb\n", "a\nb\n")
	require.Len(t, runs, 1)
	assert.Equal(t, Unchanged, runs[0].Kind)
	assert.Equal(t, Stats{}, CountLines(runs))
}

func TestLines_EmptySides(t *testing.T) {
	assert.Empty(t, Lines("", ""))

	runs := Lines("", "x\ny\n")
	assert.Equal(t, []Run{{Kind: Added, Lines: []string{"x\n", "y\n"}}}, runs)

	runs = Lines("x\n", "")
	assert.Equal(t, []Run{{Kind: Removed, Lines: []string{"x\n"}}}, runs)
}

func TestLines_RemovedBeforeAdded(t *testing.T) {
	runs := Lines("a\nold1\nold2\nz\n", "a\nnew1\nnew2\nz\n")

	assert.Equal(t, []Run{
		{Kind: Unchanged, Lines: []string{"a\n"}},
		{Kind: Removed, Lines: []string{"old1\n", "old2\n"}},
		{Kind: Added, Lines: []string{"new1\n", "new2\n"}},
		{Kind: Unchanged, Lines: []string{"z\n"}},
	}, runs)
	assert.Equal(t, Stats{Added: 2, Removed: 2}, CountLines(runs))
}

func TestLines_MissingTrailingNewline(t *testing.T) {
	old := "a\nb"
	new := "a\nb\n"

	runs := Lines(old, new)
	assert.Equal(t, old, OldText(runs))
	assert.Equal(t, new, NewText(runs))
	assert.Equal(t, Stats{Added: 1, Removed: 1}, CountLines(runs))
}

func TestLines_NoAdjacentRunsShareKind(t *testing.T) {
	runs := Lines("a\nb\nc\nd\ne\n", "a\nx\nc\ny\ne\nf\n")
	for i := 1; i < len(runs); i++ {
		assert.NotEqual(t, runs[i-1].Kind, runs[i].Kind, "runs %d and %d", i-1, i)
	}
}

func TestLines_Reconstruction(t *testing.T) {
	cases := []struct{ old, new string }{
		{"", ""},
		{"a\n", "b\n"},
		{"a\nb\nc\n", "c\nb\na\n"},
		{"same\nsame\nsame\n", "same\n"},
		{"x", "y"},
		{"line\n", "line"},
		{"1\n2\n3\n4\n5\n", "0\n1\n3\n5\n6\n"},
	}

	for _, c := range cases {
		runs := Lines(c.old, c.new)
		assert.Equal(t, c.old, OldText(runs), "old %q new %q", c.old, c.new)
		assert.Equal(t, c.new, NewText(runs), "old %q new %q", c.old, c.new)
	}
}

func TestLines_ReconstructionRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a\n", "b\n", "c\n", "\n", "d"}

	gen := func() string {
		var sb strings.Builder
		for range rng.Intn(12) {
			sb.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		return sb.String()
	}

	for range 500 {
		old, new := gen(), gen()
		runs := Lines(old, new)
		require.Equal(t, old, OldText(runs), "old %q new %q", old, new)
		require.Equal(t, new, NewText(runs), "old %q new %q", old, new)
	}
}

func TestLines_IsMinimal(t *testing.T) {
	// "b\n" and "c\n" are common; only "a\n" and "d\n" change.
	runs := Lines("a\nb\nc\n", "b\nc\nd\n")
	assert.Equal(t, Stats{Added: 1, Removed: 1}, CountLines(runs))
}

func TestLines_MinimalRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []string{"a\n", "b\n", "c\n", "d\n"}

	gen := func() []string {
		lines := make([]string, rng.Intn(20))
		for i := range lines {
			lines[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return lines
	}

	for range 300 {
		a, b := gen(), gen()
		stats := CountLines(Lines(strings.Join(a, ""), strings.Join(b, "")))
		want := len(a) + len(b) - 2*commonLength(a, b)
		require.Equal(t, want, stats.Added+stats.Removed, "old %q new %q", a, b)
	}
}

// commonLength is the textbook quadratic LCS length, used as a reference.
func commonLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			switch {
			case a[i] == b[j]:
				cur[j+1] = prev[j] + 1
			case prev[j+1] >= cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func TestLines_LargeInputBoundedMemory(t *testing.T) {
	const n = 4000

	var oldText, newText strings.Builder
	for i := range n {
		fmt.Fprintf(&oldText, "old line %d\n", i)
		fmt.Fprintf(&newText, "new line %d\n", i)
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	runs := Lines(oldText.String(), newText.String())
	runtime.ReadMemStats(&after)

	// A full n*m table of ints would need over 100 MiB here.
	allocated := after.TotalAlloc - before.TotalAlloc
	assert.Less(t, allocated, uint64(16<<20), "allocated %d bytes", allocated)

	require.Len(t, runs, 2)
	assert.Equal(t, Removed, runs[0].Kind)
	assert.Equal(t, Added, runs[1].Kind)
	assert.Equal(t, oldText.String(), OldText(runs))
	assert.Equal(t, newText.String(), NewText(runs))
}

func TestLines_LargeFileScatteredEdits(t *testing.T) {
	const n = 50000

	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d\n", i)
	}
	oldText := strings.Join(lines, "")
	for _, i := range []int{10, 12000, 25000, 49990} {
		lines[i] = fmt.Sprintf("edited %d\n", i)
	}
	newText := strings.Join(lines, "")

	runs := Lines(oldText, newText)
	assert.Equal(t, Stats{Added: 4, Removed: 4}, CountLines(runs))
	assert.Equal(t, oldText, OldText(runs))
	assert.Equal(t, newText, NewText(runs))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "removed", Removed.String())
}
