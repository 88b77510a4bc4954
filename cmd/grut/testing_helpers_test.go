package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/grut/pkg/objects"
)

var digestPattern = regexp.MustCompile(`[0-9a-f]{40}`)

// TestHelper runs grut commands inside a throwaway directory.
type TestHelper struct {
	t       *testing.T
	tempDir string
}

// NewTestHelper creates a temp directory, makes it the working directory
// and points the user config at a private location.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "xdg"))
	t.Chdir(tempDir)

	return &TestHelper{t: t, tempDir: tempDir}
}

// TempDir returns the temporary directory path
func (th *TestHelper) TempDir() string {
	return th.tempDir
}

// Run executes a fresh command tree with args and returns stdout.
func (th *TestHelper) Run(args ...string) (string, error) {
	th.t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

// MustRun is Run that fails the test on error.
func (th *TestHelper) MustRun(args ...string) string {
	th.t.Helper()

	out, err := th.Run(args...)
	require.NoError(th.t, err, "grut %v", args)
	return out
}

// InitRepo runs grut init in the temp directory.
func (th *TestHelper) InitRepo(extra ...string) {
	th.t.Helper()
	th.MustRun(append([]string{"init"}, extra...)...)
}

// WriteFile creates a test file with content
func (th *TestHelper) WriteFile(name, content string) string {
	th.t.Helper()

	filePath := filepath.Join(th.tempDir, name)
	require.NoError(th.t, os.MkdirAll(filepath.Dir(filePath), 0755))
	require.NoError(th.t, os.WriteFile(filePath, []byte(content), 0644))
	return filePath
}

// Commit stages files and commits them, returning the new digest.
func (th *TestHelper) Commit(message string, files ...string) objects.Digest {
	th.t.Helper()

	th.MustRun(append([]string{"add"}, files...)...)
	out := th.MustRun("commit", "-m", message)

	found := digestPattern.FindString(out)
	require.NotEmpty(th.t, found, "no digest in %q", out)
	return objects.Digest(found)
}
