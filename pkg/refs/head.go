// Package refs manages HEAD, the single mutable pointer to the tip of the
// history.
package refs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/utkarsh5026/grut/pkg/common/fileops"
	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// HeadManager reads and moves HEAD. The file holds either nothing (no
// commits yet) or one commit digest followed by a newline.
type HeadManager struct {
	headPath layout.SourcePath
	logger   *slog.Logger
}

// NewHeadManager creates a manager for the HEAD file at headPath.
func NewHeadManager(headPath layout.SourcePath) *HeadManager {
	return &HeadManager{
		headPath: headPath,
		logger:   logger.Component("refs"),
	}
}

// Init creates an empty HEAD unless one already exists. An existing HEAD
// is left untouched.
func (hm *HeadManager) Init() (created bool, err error) {
	created, err = fileops.CreateExclusive(hm.headPath.String(), nil, 0644)
	if err != nil {
		return false, internal("init", fmt.Errorf("failed to create HEAD file: %w", err))
	}
	return created, nil
}

// Read returns the digest HEAD points at, or the zero digest when there
// are no commits yet. A missing file reads as empty.
func (hm *HeadManager) Read() (objects.Digest, error) {
	data, err := fileops.ReadBytes(hm.headPath.String())
	if err != nil {
		return "", internal("read", fmt.Errorf("error reading HEAD: %w", err))
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", nil
	}

	digest := objects.Digest(content)
	if err := digest.Validate(); err != nil {
		return "", corruptHead("read", fmt.Sprintf("HEAD holds %q", content), err)
	}
	return digest, nil
}

// Update points HEAD at digest. The write goes through a temp file and a
// rename, so readers see either the old or the new value.
func (hm *HeadManager) Update(digest objects.Digest) error {
	if err := digest.Validate(); err != nil {
		return invalidDigest("update", err)
	}

	content := []byte(digest.String() + "\n")
	if err := fileops.AtomicWrite(hm.headPath.String(), content, 0644); err != nil {
		return internal("update", fmt.Errorf("failed to write HEAD: %w", err))
	}

	hm.logger.Debug("HEAD moved", "digest", digest)
	return nil
}

// Path returns the location of the HEAD file.
func (hm *HeadManager) Path() layout.SourcePath {
	return hm.headPath
}
