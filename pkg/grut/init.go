package grut

import (
	"context"
	"fmt"
	"strconv"

	"github.com/utkarsh5026/grut/pkg/common/fileops"
	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/config"
	"github.com/utkarsh5026/grut/pkg/refs"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
	"github.com/utkarsh5026/grut/pkg/store"
)

// InitOptions configure a new repository.
type InitOptions struct {
	// ObjectStore picks the backend. Empty means the effective
	// core.objectstore setting, which defaults to the file backend.
	ObjectStore store.Backend

	// Compression overrides the zlib level for the file backend.
	Compression *int
}

// InitResult reports what Initialize did.
type InitResult struct {
	Path               layout.RepositoryPath
	ObjectStore        store.Backend
	AlreadyInitialized bool
}

// Initialize creates <root>/.grut with an empty object store, an empty
// HEAD and an empty index. Every piece is created only when missing, so
// running it on an existing repository changes nothing, and running it on
// a half-created one fills in what is absent. AlreadyInitialized reports
// whether .grut was there before the call.
//
// The backend is written to the repository config, so later changes to
// the user config cannot switch it under existing objects.
func Initialize(ctx context.Context, root string, opts InitOptions) (*InitResult, error) {
	rp, err := layout.NewRepositoryPath(root)
	if err != nil {
		return nil, invalidInput("init", root, err)
	}
	sp := rp.SourcePath()
	log := logger.Component("grut").With("path", rp)

	exists, err := fileops.IsDirectory(sp.String())
	if err != nil {
		return nil, internal("init", err)
	}
	if err := fileops.EnsureDir(sp.String()); err != nil {
		return nil, internal("init", fmt.Errorf("failed to create %s: %w", layout.SourceDir, err))
	}

	cfg := config.NewManager(sp.ConfigPath().String())
	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}

	var created []string
	backend, pinned, err := initBackend(cfg, opts)
	if err != nil {
		return nil, err
	}
	if !pinned {
		if err := cfg.Set(config.KeyObjectStore, string(backend), config.RepositoryLevel); err != nil {
			return nil, err
		}
		if opts.Compression != nil {
			if err := cfg.Set(config.KeyCompression, strconv.Itoa(*opts.Compression), config.RepositoryLevel); err != nil {
				return nil, err
			}
		}
		created = append(created, "config")
	}

	// An existing store may be held open by another process, so it is only
	// opened when its directory is missing.
	hasObjects, err := fileops.IsDirectory(sp.ObjectsPath().String())
	if err != nil {
		return nil, internal("init", err)
	}
	if !hasObjects {
		s, err := store.Open(backend, sp.ObjectsPath().String(), store.DefaultOptions())
		if err != nil {
			return nil, err
		}
		if err := s.Close(); err != nil {
			return nil, err
		}
		created = append(created, "objects")
	}

	headCreated, err := refs.NewHeadManager(sp.HeadPath()).Init()
	if err != nil {
		return nil, err
	}
	if headCreated {
		created = append(created, "HEAD")
	}

	indexCreated, err := fileops.CreateExclusive(sp.IndexPath().String(), []byte("[]\n"), 0644)
	if err != nil {
		return nil, internal("init", fmt.Errorf("failed to create index: %w", err))
	}
	if indexCreated {
		created = append(created, "index")
	}

	switch {
	case !exists:
		log.Info("repository initialized", "objectstore", backend)
	case len(created) > 0:
		log.Warn("repaired incomplete repository", "created", created)
	default:
		log.Info("repository already initialized")
	}
	return &InitResult{Path: rp, ObjectStore: backend, AlreadyInitialized: exists}, nil
}

// initBackend picks the object store backend. A backend already pinned in
// the repository config wins over everything, since objects may exist.
func initBackend(cfg *config.Manager, opts InitOptions) (backend store.Backend, pinned bool, err error) {
	if entry := cfg.GetStore(config.RepositoryLevel).Get(config.KeyObjectStore); entry != nil {
		backend, err = store.ParseBackend(entry.Value)
		if err != nil {
			return "", false, invalidInput("init", "bad "+config.KeyObjectStore, err)
		}
		return backend, true, nil
	}

	if opts.ObjectStore != "" {
		return opts.ObjectStore, false, nil
	}
	backend, err = store.ParseBackend(config.NewTypedConfig(cfg).ObjectStore())
	if err != nil {
		return "", false, invalidInput("init", "bad "+config.KeyObjectStore, err)
	}
	return backend, false, nil
}
