package commitmanager

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/index"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/objects/commit"
	"github.com/utkarsh5026/grut/pkg/refs"
	"github.com/utkarsh5026/grut/pkg/store"
)

// Manager creates commits and reads them back.
//
// The commit creation process follows these steps:
//  1. Read the index to get staged files
//  2. Read HEAD to get the parent
//  3. Build and serialize the commit record
//  4. Put the record in the object store
//  5. Move HEAD to the new digest
//  6. Clear the index
//
// If the process dies between 4 and 5 the commit object is orphaned and
// the repository stays at its previous state.
//
// Thread Safety:
// Manager is not thread-safe. External synchronization is required when
// accessing a Manager instance from multiple goroutines.
type Manager struct {
	store    store.ObjectStore
	index    *index.Manager
	head     *refs.HeadManager
	maxDepth int
	now      func() time.Time
	logger   *slog.Logger
}

// NewManager creates a new commit manager over the given collaborators.
//
// Example:
//
//	s, _ := store.Open(store.BackendFile, sp.ObjectsPath().String(), store.DefaultOptions())
//	mgr := commitmanager.NewManager(s, index.NewManager(sp.IndexPath()),
//		refs.NewHeadManager(sp.HeadPath()), commitmanager.Options{})
func NewManager(s store.ObjectStore, idx *index.Manager, head *refs.HeadManager, opts Options) *Manager {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Manager{
		store:    s,
		index:    idx,
		head:     head,
		maxDepth: maxDepth,
		now:      time.Now,
		logger:   logger.Component("commitmanager"),
	}
}

// CreateCommit freezes the index into a new commit.
//
// When nothing is staged it returns ErrNoChanges (code NOTHING_TO_COMMIT):
// no object is written and HEAD does not move.
func (m *Manager) CreateCommit(ctx context.Context, options CommitOptions) (*commit.Commit, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := m.index.Current()
	if err != nil {
		m.logger.Error("failed to read index", "error", err)
		return nil, NewCommitError("read index", err, "")
	}
	if len(entries) == 0 {
		m.logger.Info("nothing to commit")
		return nil, ErrNoChanges
	}
	if err := options.Validate(); err != nil {
		m.logger.Error("invalid commit options", "error", err)
		return nil, err
	}

	parent, err := m.head.Read()
	if err != nil {
		return nil, NewCommitError("read HEAD", err, "")
	}

	ts := options.Timestamp
	if ts.IsZero() {
		ts = m.now()
	}

	commitObj, err := commit.NewBuilder().
		Parent(parent).
		Message(options.Message).
		Timestamp(ts).
		Files(entries).
		Build()
	if err != nil {
		return nil, NewCommitError("build commit", err, "")
	}

	data, err := commitObj.Serialize()
	if err != nil {
		return nil, NewCommitError("serialize commit", err, "")
	}

	digest, err := m.store.Put(data)
	if err != nil {
		return nil, NewCommitError("write commit", err, "")
	}
	commitObj.Digest = digest

	if err := m.head.Update(digest); err != nil {
		m.logger.Error("commit written but HEAD not moved", "digest", digest, "error", err)
		return nil, NewCommitError("update HEAD", err, digest.Short())
	}

	if err := m.index.Clear(); err != nil {
		return nil, NewCommitError("clear index", err, digest.Short())
	}

	m.logger.Info("commit created", "digest", digest, "parent", parent, "files", len(entries))
	return commitObj, nil
}

// GetCommit reads and parses the commit stored under digest. A missing
// object is NOT_FOUND; an object that is not a valid commit record is
// CORRUPT_HISTORY.
func (m *Manager) GetCommit(ctx context.Context, digest objects.Digest) (*commit.Commit, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := digest.Validate(); err != nil {
		return nil, invalidDigest("read commit", err)
	}

	data, err := m.store.Get(digest)
	if err != nil {
		return nil, NewCommitError("read commit", err, digest.Short())
	}

	commitObj, err := commit.Parse(digest, data)
	if err != nil {
		return nil, NewCommitError("read commit", err, digest.Short())
	}

	return commitObj, nil
}

// Head returns the digest HEAD points at, zero when there are no commits.
func (m *Manager) Head() (objects.Digest, error) {
	return m.head.Read()
}

// GetHistory returns up to limit commits starting from startDigest (HEAD
// when zero), newest first. A limit of zero or less means no limit.
func (m *Manager) GetHistory(ctx context.Context, startDigest objects.Digest, limit int) ([]*commit.Commit, error) {
	walker, err := m.Walk(startDigest)
	if err != nil {
		return nil, err
	}

	history := make([]*commit.Commit, 0)
	for limit <= 0 || len(history) < limit {
		c, err := walker.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		history = append(history, c)
	}

	return history, nil
}
