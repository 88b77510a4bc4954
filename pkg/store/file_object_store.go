package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/grut/pkg/common/fileops"
	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// FileObjectStore keeps one zlib-compressed, read-only file per object.
//
// Directory structure:
// ┌─ .grut/objects/
// │ ├─ 2a/ ← first 2 characters of the digest
// │ │ └─ ae6c35c9... ← remaining 38 characters
// │ └─ ...
//
// Digests are computed over the uncompressed content.
type FileObjectStore struct {
	objectsPath layout.SourcePath
	level       int
	logger      *slog.Logger
}

// NewFileObjectStore returns a store rooted at objectsPath. Call Initialize
// before first use.
func NewFileObjectStore(objectsPath string, opts Options) *FileObjectStore {
	return &FileObjectStore{
		objectsPath: layout.SourcePath(objectsPath),
		level:       opts.CompressionLevel,
		logger:      logger.Component("store").With("backend", BackendFile),
	}
}

// Initialize creates the objects directory if it does not exist.
func (fos *FileObjectStore) Initialize() error {
	if err := fileops.EnsureDir(fos.objectsPath.String()); err != nil {
		return internal("initialize", fmt.Errorf("failed to initialize object store: %w", err))
	}
	return nil
}

// Put writes content under its digest unless the slot already exists.
//
// The process:
// 1. Compute the digest of the raw content
// 2. Return early if the slot is present
// 3. Compress, then write via temp file + rename
func (fos *FileObjectStore) Put(content []byte) (objects.Digest, error) {
	digest := objects.Sum(content)
	path := fos.objectsPath.ObjectFilePath(digest.String()).String()

	exists, err := fileops.Exists(path)
	if err != nil {
		return "", internal("put", err)
	}
	if exists {
		fos.logger.Debug("object already stored", "digest", digest)
		return digest, nil
	}

	compressed, err := objects.Compress(content, fos.level)
	if err != nil {
		return "", internal("put", err)
	}

	if err := fileops.EnsureParentDir(path); err != nil {
		return "", internal("put", err)
	}

	if err := fileops.AtomicWrite(path, compressed, 0444); err != nil {
		return "", internal("put", fmt.Errorf("failed to write object file: %w", err))
	}

	fos.logger.Debug("object stored", "digest", digest, "size", len(content))
	return digest, nil
}

// Get reads and decompresses the slot for digest.
func (fos *FileObjectStore) Get(digest objects.Digest) ([]byte, error) {
	path, err := fos.resolve("get", digest)
	if err != nil {
		return nil, err
	}

	compressed, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound("get", digest)
		}
		return nil, internal("get", fmt.Errorf("failed to read object file: %w", err))
	}

	content, err := objects.Decompress(compressed)
	if err != nil {
		return nil, corruptObject("get", digest, err)
	}

	return content, nil
}

// Has reports whether the slot for digest exists.
func (fos *FileObjectStore) Has(digest objects.Digest) (bool, error) {
	path, err := fos.resolve("has", digest)
	if err != nil {
		return false, err
	}

	exists, err := fileops.Exists(path)
	if err != nil {
		return false, internal("has", err)
	}
	return exists, nil
}

// ForEach visits every slot. Leftover temp files and anything that does
// not spell a digest are skipped.
func (fos *FileObjectStore) ForEach(fn func(objects.Digest) error) error {
	root := fos.objectsPath.String()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		digest := objects.Digest(strings.ReplaceAll(filepath.ToSlash(rel), "/", ""))
		if !digest.IsValid() {
			fos.logger.Warn("skipping stray file in object store", "path", rel)
			return nil
		}
		return fn(digest)
	})
	if err != nil {
		return internal("for_each", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (fos *FileObjectStore) Close() error {
	return nil
}

// ObjectsPath returns the root directory of the store.
func (fos *FileObjectStore) ObjectsPath() layout.SourcePath {
	return fos.objectsPath
}

func (fos *FileObjectStore) resolve(op string, digest objects.Digest) (string, error) {
	if err := digest.Validate(); err != nil {
		return "", invalidDigest(op, digest, err)
	}
	return fos.objectsPath.ObjectFilePath(digest.String()).String(), nil
}
