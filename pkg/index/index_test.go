package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grerr "github.com/utkarsh5026/grut/pkg/common/err"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

var (
	d1 = objects.Sum([]byte("one\n"))
	d2 = objects.Sum([]byte("two\n"))
)

func TestIndex_AddReplacesSamePath(t *testing.T) {
	idx := NewIndex()

	assert.False(t, idx.Add(Entry{Path: "a.txt", Digest: d1}))
	assert.False(t, idx.Add(Entry{Path: "b.txt", Digest: d1}))
	assert.True(t, idx.Add(Entry{Path: "a.txt", Digest: d2}))

	require.Equal(t, 2, idx.Count())
	e, ok := idx.Get("a.txt")
	require.True(t, ok)
	assert.Equal(t, d2, e.Digest)

	// A restaged path moves to the end.
	assert.Equal(t, []layout.RelativePath{"b.txt", "a.txt"}, idx.Paths())
}

func TestIndex_RemoveAndClear(t *testing.T) {
	idx := NewIndex()
	idx.Add(Entry{Path: "a.txt", Digest: d1})

	assert.True(t, idx.Remove("a.txt"))
	assert.False(t, idx.Remove("a.txt"))
	assert.False(t, idx.Has("a.txt"))

	idx.Add(Entry{Path: "b.txt", Digest: d1})
	idx.Clear()
	assert.Equal(t, 0, idx.Count())
}

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{name: "ok", entry: Entry{Path: "dir/a.txt", Digest: d1}},
		{name: "empty path", entry: Entry{Path: "", Digest: d1}, wantErr: true},
		{name: "escapes root", entry: Entry{Path: "../a.txt", Digest: d1}, wantErr: true},
		{name: "absolute", entry: Entry{Path: "/etc/passwd", Digest: d1}, wantErr: true},
		{name: "not normalized", entry: Entry{Path: "dir/../a.txt", Digest: d1}, wantErr: true},
		{name: "bad digest", entry: Entry{Path: "a.txt", Digest: "xyz"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")

	idx := NewIndex()
	idx.Add(Entry{Path: "a.txt", Digest: d1})
	idx.Add(Entry{Path: "sub/b.txt", Digest: d2})
	require.NoError(t, idx.Write(path))

	loaded, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, idx.Entries(), loaded.Entries())
}

func TestRead_MissingIsEmpty(t *testing.T) {
	idx, err := Read(filepath.Join(t.TempDir(), "index"))
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Count())
}

func TestRead_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":       "{{{",
		"object":         `{"path":"a"}`,
		"bad digest":     `[{"path":"a.txt","digest":"nope"}]`,
		"duplicate path": `[{"path":"a.txt","digest":"` + d1.String() + `"},{"path":"a.txt","digest":"` + d2.String() + `"}]`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "index")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := Read(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, grerr.ErrInvalidFormat))
		})
	}
}

func TestManager_Stage(t *testing.T) {
	m := NewManager(layout.SourcePath(filepath.Join(t.TempDir(), "index")))

	replaced, err := m.Stage("p", d1)
	require.NoError(t, err)
	assert.False(t, replaced)

	replaced, err = m.Stage("p", d2)
	require.NoError(t, err)
	assert.True(t, replaced)

	entries, err := m.Current()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Path: "p", Digest: d2}, entries[0])
}

func TestManager_StageRejectsInvalidEntry(t *testing.T) {
	m := NewManager(layout.SourcePath(filepath.Join(t.TempDir(), "index")))

	_, err := m.Stage("../outside", d1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrInvalidInput))
}

func TestManager_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	m := NewManager(layout.SourcePath(path))

	_, err := m.Stage("a.txt", d1)
	require.NoError(t, err)
	require.NoError(t, m.Clear())

	entries, err := m.Current()
	require.NoError(t, err)
	assert.Empty(t, entries)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}
