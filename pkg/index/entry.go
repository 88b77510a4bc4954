package index

import (
	"fmt"

	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// Entry maps one working path to the digest of its staged content.
type Entry struct {
	Path   layout.RelativePath `json:"path"`
	Digest objects.Digest      `json:"digest"`
}

// NewEntry builds an entry and validates it.
func NewEntry(path layout.RelativePath, digest objects.Digest) (Entry, error) {
	e := Entry{Path: path, Digest: digest}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate checks that the path is normalized and stays inside the
// repository, and that the digest is well formed.
func (e Entry) Validate() error {
	if !e.Path.IsValid() {
		return fmt.Errorf("invalid path %q", e.Path)
	}
	if e.Path.Normalize() != e.Path {
		return fmt.Errorf("path %q is not normalized", e.Path)
	}
	if err := e.Digest.Validate(); err != nil {
		return fmt.Errorf("entry %s: %w", e.Path, err)
	}
	return nil
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s", e.Digest.Short(), e.Path)
}
