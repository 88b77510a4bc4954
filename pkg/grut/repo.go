// Package grut ties the object store, staging index, commit chain and diff
// engine together into a repository rooted at a directory.
package grut

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/utkarsh5026/grut/pkg/commitmanager"
	"github.com/utkarsh5026/grut/pkg/common/fileops"
	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/config"
	"github.com/utkarsh5026/grut/pkg/diff"
	"github.com/utkarsh5026/grut/pkg/index"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/refs"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
	"github.com/utkarsh5026/grut/pkg/store"
)

// OpenOptions configure Open and Discover.
type OpenOptions struct {
	// Source reads working files. Nil means OSFileSource.
	Source FileSource

	// Overrides are command-line configuration values.
	Overrides map[string]string
}

// Repo is an opened repository. It holds no index or HEAD state in
// memory; every operation reads them from disk. Close releases the object
// store.
type Repo struct {
	root    layout.RepositoryPath
	config  *config.Manager
	typed   *config.TypedConfig
	store   store.ObjectStore
	index   *index.Manager
	commits *commitmanager.Manager
	diff    *diff.Engine
	source  FileSource
	logger  *slog.Logger
}

// StageResult reports one staged file.
type StageResult struct {
	Path     layout.RelativePath
	Digest   objects.Digest
	Replaced bool
}

// CommitResult reports a commit attempt. NothingToCommit is set, and
// Digest left zero, when the index was empty.
type CommitResult struct {
	Digest          objects.Digest
	Parent          objects.Digest
	Files           int
	NothingToCommit bool
}

// HistoryEntry is one line of the log.
type HistoryEntry struct {
	Digest    objects.Digest
	Timestamp time.Time
	Message   string
}

// Open opens the repository whose root is exactly root.
func Open(ctx context.Context, root string, opts OpenOptions) (*Repo, error) {
	rp, err := layout.NewRepositoryPath(root)
	if err != nil {
		return nil, invalidInput("open", root, err)
	}

	ok, err := fileops.IsDirectory(rp.SourcePath().String())
	if err != nil {
		return nil, internal("open", err)
	}
	if !ok {
		return nil, notARepository("open", rp.String())
	}

	return open(ctx, rp, opts)
}

// FindRoot walks up from start to the nearest directory containing .grut
// and returns it without opening anything.
func FindRoot(start string) (layout.RepositoryPath, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", invalidInput("discover", start, err)
	}

	for {
		ok, err := fileops.IsDirectory(filepath.Join(current, layout.SourceDir))
		if err != nil {
			return "", internal("discover", err)
		}
		if ok {
			return layout.RepositoryPath(current), nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", notARepository("discover", start)
		}
		current = parent
	}
}

// Discover opens the repository found by FindRoot.
func Discover(ctx context.Context, start string, opts OpenOptions) (*Repo, error) {
	rp, err := FindRoot(start)
	if err != nil {
		return nil, err
	}
	return open(ctx, rp, opts)
}

func open(ctx context.Context, rp layout.RepositoryPath, opts OpenOptions) (*Repo, error) {
	sp := rp.SourcePath()

	cfg := config.NewManager(sp.ConfigPath().String())
	for key, value := range opts.Overrides {
		cfg.SetCommandLine(key, value)
	}
	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}
	typed := config.NewTypedConfig(cfg)

	backend, err := store.ParseBackend(typed.ObjectStore())
	if err != nil {
		return nil, invalidInput("open", "bad "+config.KeyObjectStore, err)
	}
	storeOpts := store.DefaultOptions()
	storeOpts.CompressionLevel = typed.Compression()
	if !objects.ValidCompressionLevel(storeOpts.CompressionLevel) {
		return nil, invalidInput("open", fmt.Sprintf("bad %s %d", config.KeyCompression, storeOpts.CompressionLevel), nil)
	}

	s, err := store.Open(backend, sp.ObjectsPath().String(), storeOpts)
	if err != nil {
		return nil, err
	}

	idx := index.NewManager(sp.IndexPath())
	commits := commitmanager.NewManager(s, idx, refs.NewHeadManager(sp.HeadPath()),
		commitmanager.Options{MaxDepth: typed.HistoryMaxDepth()})

	source := opts.Source
	if source == nil {
		source = OSFileSource{}
	}

	return &Repo{
		root:    rp,
		config:  cfg,
		typed:   typed,
		store:   s,
		index:   idx,
		commits: commits,
		diff:    diff.NewEngine(commits, s),
		source:  source,
		logger:  logger.Component("grut").With("root", rp),
	}, nil
}

// Root returns the working tree root.
func (r *Repo) Root() layout.RepositoryPath {
	return r.root
}

// Config returns the configuration manager bound to this repository.
func (r *Repo) Config() *config.Manager {
	return r.config
}

// Close releases the object store.
func (r *Repo) Close() error {
	return r.store.Close()
}

// StageFile reads path through the file source, stores its content and
// records it in the index. path may be absolute or relative to the root.
// The blob is written before the index entry.
func (r *Repo) StageFile(ctx context.Context, path string) (*StageResult, error) {
	rel, err := r.root.Relativize(path)
	if err != nil {
		return nil, invalidInput("stage", path, err)
	}

	lock, err := index.AcquireLock(r.root.SourcePath().LockPath())
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	content, err := r.source.ReadFile(ctx, r.root.Abs(rel))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, sourceUnreadable("stage", rel.String(), err)
	}

	digest, err := r.store.Put(content)
	if err != nil {
		return nil, err
	}

	replaced, err := r.index.Stage(rel, digest)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("file staged", "path", rel, "digest", digest)
	return &StageResult{Path: rel, Digest: digest, Replaced: replaced}, nil
}

// Commit freezes the index. Staging and committing hold the index lock,
// so a concurrent writer fails fast instead of interleaving. An empty index is not an error: the result
// has NothingToCommit set and nothing changes.
func (r *Repo) Commit(ctx context.Context, message string) (*CommitResult, error) {
	lock, err := index.AcquireLock(r.root.SourcePath().LockPath())
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	c, err := r.commits.CreateCommit(ctx, commitmanager.CommitOptions{Message: message})
	if err != nil {
		if isNothingToCommit(err) {
			return &CommitResult{NothingToCommit: true}, nil
		}
		return nil, err
	}

	return &CommitResult{Digest: c.Digest, Parent: c.Parent, Files: len(c.Files)}, nil
}

// History lists up to limit commits from HEAD, newest first. A limit of
// zero or less lists everything.
func (r *Repo) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	commits, err := r.commits.GetHistory(ctx, "", limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, len(commits))
	for i, c := range commits {
		entries[i] = HistoryEntry{Digest: c.Digest, Timestamp: c.Timestamp, Message: c.Message}
	}
	return entries, nil
}

// ShowCommit diffs the commit named by digest against its parent.
func (r *Repo) ShowCommit(ctx context.Context, digest string) ([]diff.FileReport, error) {
	d, err := objects.ParseDigest(digest)
	if err != nil {
		return nil, invalidInput("show", digest, err)
	}
	return r.diff.DiffCommit(ctx, d)
}

// Head returns the current HEAD digest, zero before the first commit.
func (r *Repo) Head() (objects.Digest, error) {
	return r.commits.Head()
}

// Status returns the staged entries in staging order.
func (r *Repo) Status(ctx context.Context) ([]index.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.index.Current()
}

// Verify re-hashes every stored object.
func (r *Repo) Verify(ctx context.Context) (*store.VerifyReport, error) {
	report, err := store.Verify(ctx, r.store, r.typed.VerifyWorkers())
	if err != nil {
		return nil, err
	}
	if !report.OK() {
		r.logger.Warn("corrupt objects found", "count", len(report.Corrupt))
	}
	return report, nil
}
