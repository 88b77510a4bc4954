package layout

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryPath_SourceLayout(t *testing.T) {
	root, err := NewRepositoryPath(t.TempDir())
	require.NoError(t, err)

	src := root.SourcePath()
	assert.Equal(t, filepath.Join(root.String(), ".grut"), src.String())
	assert.Equal(t, filepath.Join(src.String(), "objects"), src.ObjectsPath().String())
	assert.Equal(t, filepath.Join(src.String(), "HEAD"), src.HeadPath().String())
	assert.Equal(t, filepath.Join(src.String(), "index"), src.IndexPath().String())
	assert.Equal(t, filepath.Join(src.String(), "config.json"), src.ConfigPath().String())
}

func TestSourcePath_ObjectFilePath(t *testing.T) {
	objects := SourcePath("/r/.grut/objects")
	digest := "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"

	got := objects.ObjectFilePath(digest)
	assert.Equal(t, filepath.Join("/r/.grut/objects", "2a", digest[2:]), got.String())
	assert.Empty(t, objects.ObjectFilePath("ab"))
}

func TestRepositoryPath_Relativize(t *testing.T) {
	root, err := NewRepositoryPath(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      string
		want    RelativePath
		wantErr bool
	}{
		{name: "plain", in: "a.txt", want: "a.txt"},
		{name: "dot prefix", in: "./docs/b.md", want: "docs/b.md"},
		{name: "cleaned", in: "docs/../c.txt", want: "c.txt"},
		{name: "absolute inside", in: filepath.Join(root.String(), "src", "main.go"), want: "src/main.go"},
		{name: "escapes", in: "../outside.txt", wantErr: true},
		{name: "absolute outside", in: filepath.Join(filepath.Dir(root.String()), "x"), wantErr: true},
		{name: "root itself", in: ".", wantErr: true},
		{name: "empty", in: "  ", wantErr: true},
		{name: "metadata dir", in: ".grut/HEAD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := root.Relativize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, filepath.Join(root.String(), filepath.FromSlash(string(tt.want))), root.Abs(got))
		})
	}
}

func TestRelativePath_IsValid(t *testing.T) {
	assert.True(t, RelativePath("a/b.txt").IsValid())
	assert.True(t, RelativePath("a..b").IsValid())
	assert.False(t, RelativePath("").IsValid())
	assert.False(t, RelativePath("..").IsValid())
	assert.False(t, RelativePath("../x").IsValid())
	assert.False(t, RelativePath("/abs").IsValid())
}
