package index

import (
	"log/slog"

	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// Manager loads and stores the index file. It keeps no index in memory:
// every call reads the file, so the file is the single source of truth.
//
// Manager itself does not lock. Callers that read-modify-write the index
// hold a LockFile around the whole sequence, as the repository facade does
// for add and commit.
type Manager struct {
	indexPath layout.SourcePath
	logger    *slog.Logger
}

// NewManager creates a manager for the index file at indexPath.
func NewManager(indexPath layout.SourcePath) *Manager {
	return &Manager{
		indexPath: indexPath,
		logger:    logger.Component("index"),
	}
}

// Load reads the persisted index.
func (m *Manager) Load() (*Index, error) {
	return Read(m.indexPath.String())
}

// Save persists idx.
func (m *Manager) Save(idx *Index) error {
	return idx.Write(m.indexPath.String())
}

// Stage records path -> digest, replacing any previous entry for path.
// The blob must already be in the object store.
func (m *Manager) Stage(path layout.RelativePath, digest objects.Digest) (replaced bool, err error) {
	entry, err := NewEntry(path, digest)
	if err != nil {
		return false, invalidEntry("stage", string(path), err)
	}

	idx, err := m.Load()
	if err != nil {
		return false, err
	}

	replaced = idx.Add(entry)
	if err := m.Save(idx); err != nil {
		return false, err
	}

	m.logger.Debug("staged", "path", path, "digest", digest, "replaced", replaced)
	return replaced, nil
}

// Current returns the persisted entries in staging order.
func (m *Manager) Current() ([]Entry, error) {
	idx, err := m.Load()
	if err != nil {
		return nil, err
	}
	return idx.Entries(), nil
}

// Clear persists an empty index.
func (m *Manager) Clear() error {
	if err := m.Save(NewIndex()); err != nil {
		return err
	}
	m.logger.Debug("index cleared")
	return nil
}
