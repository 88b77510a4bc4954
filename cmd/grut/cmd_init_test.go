package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	th := NewTestHelper(t)

	out := th.MustRun("init")
	assert.Contains(t, out, "Initialized empty grut repository")
	assert.Contains(t, out, "object store: file")

	sourceDir := filepath.Join(th.TempDir(), ".grut")
	for _, name := range []string{"HEAD", "index", "objects", "config.json"} {
		_, err := os.Stat(filepath.Join(sourceDir, name))
		assert.NoError(t, err, "%s should exist", name)
	}

	head, err := os.ReadFile(filepath.Join(sourceDir, "HEAD"))
	require.NoError(t, err)
	assert.Empty(t, head)

	index, err := os.ReadFile(filepath.Join(sourceDir, "index"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(index))
}

func TestInitCommand_AlreadyInitialized(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	digest := th.Commit("first", th.WriteFile("a.txt", "hello\n"))

	out := th.MustRun("init")
	assert.Contains(t, out, "Repository already initialized.")

	log := th.MustRun("log")
	assert.Contains(t, log, digest.String())
}

func TestInitCommand_PathArgument(t *testing.T) {
	th := NewTestHelper(t)

	th.MustRun("init", "nested/project")

	_, err := os.Stat(filepath.Join(th.TempDir(), "nested", "project", ".grut", "HEAD"))
	assert.NoError(t, err)
}

func TestInitCommand_Badger(t *testing.T) {
	th := NewTestHelper(t)

	out := th.MustRun("init", "--object-store", "badger")
	assert.Contains(t, out, "object store: badger")

	assert.Equal(t, "badger\n", th.MustRun("config", "get", "core.objectstore"))

	digest := th.Commit("on badger", th.WriteFile("a.txt", "hello\n"))
	assert.Contains(t, th.MustRun("log"), digest.String())
	assert.Contains(t, th.MustRun("verify"), "All objects intact")
}

func TestInitCommand_UnknownBackend(t *testing.T) {
	th := NewTestHelper(t)

	_, err := th.Run("init", "--object-store", "s3")
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(th.TempDir(), ".grut"))
	assert.True(t, os.IsNotExist(statErr))
}
