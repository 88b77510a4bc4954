package layout

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryPath is the absolute root of a working tree.
// Example: "/home/user/project"
type RepositoryPath string

// SourcePath is a path inside the .grut directory.
// Example: "/home/user/project/.grut/objects"
type SourcePath string

// RelativePath is a slash-separated path relative to the repository root,
// cleaned and never escaping it. It is the form stored in the index.
// Example: "docs/notes.txt"
type RelativePath string

// NewRepositoryPath resolves path to an absolute RepositoryPath.
func NewRepositoryPath(path string) (RepositoryPath, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return RepositoryPath(absPath), nil
}

func (rp RepositoryPath) String() string {
	return string(rp)
}

// SourcePath returns <root>/.grut.
func (rp RepositoryPath) SourcePath() SourcePath {
	return SourcePath(filepath.Join(string(rp), SourceDir))
}

// Relativize converts a user-supplied path (absolute, or relative to the
// root) into a RelativePath. Paths outside the root and paths into the
// .grut directory are rejected.
func (rp RepositoryPath) Relativize(path string) (RelativePath, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty path")
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(string(rp), path)
	}

	rel, err := filepath.Rel(string(rp), filepath.Clean(abs))
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", path, err)
	}

	normalized := RelativePath(rel).Normalize()
	if !normalized.IsValid() {
		return "", fmt.Errorf("path escapes repository: %s", path)
	}
	if normalized == SourceDir || strings.HasPrefix(string(normalized), SourceDir+"/") {
		return "", fmt.Errorf("path is inside %s: %s", SourceDir, path)
	}

	return normalized, nil
}

// Abs joins a RelativePath back onto the root.
func (rp RepositoryPath) Abs(rel RelativePath) string {
	return filepath.Join(string(rp), filepath.FromSlash(string(rel)))
}

func (sp SourcePath) String() string {
	return string(sp)
}

// Join joins path elements to the source path.
func (sp SourcePath) Join(elem ...string) SourcePath {
	parts := append([]string{string(sp)}, elem...)
	return SourcePath(filepath.Join(parts...))
}

func (sp SourcePath) ObjectsPath() SourcePath { return sp.Join(ObjectsDir) }
func (sp SourcePath) HeadPath() SourcePath { return sp.Join(HeadFile) }
func (sp SourcePath) IndexPath() SourcePath { return sp.Join(IndexFile) }
func (sp SourcePath) ConfigPath() SourcePath { return sp.Join(ConfigFile) }
func (sp SourcePath) LockPath() SourcePath { return sp.Join(IndexLockFile) }

// ObjectFilePath fans a hex digest out into <objects>/<first 2>/<rest>.
// It returns "" for digests shorter than three characters.
func (sp SourcePath) ObjectFilePath(digest string) SourcePath {
	if len(digest) < 3 {
		return ""
	}
	return sp.Join(digest[:2], digest[2:])
}

func (rp RelativePath) String() string {
	return string(rp)
}

// Normalize converts to forward slashes and cleans the path.
func (rp RelativePath) Normalize() RelativePath {
	normalized := filepath.ToSlash(filepath.Clean(string(rp)))
	normalized = strings.TrimPrefix(normalized, "./")
	return RelativePath(normalized)
}

// IsValid reports whether rp is a non-empty relative path that stays
// inside the root.
func (rp RelativePath) IsValid() bool {
	s := string(rp)
	if s == "" || s == "." {
		return false
	}
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") {
		return false
	}
	return s != ".." && !strings.HasPrefix(s, "../")
}
