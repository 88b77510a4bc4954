package store

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/grut/pkg/objects"
)

// ObjectStore is write-once, content-addressed storage. Blobs and commits
// live side by side, keyed by the digest of their bytes. There is no update
// and no delete.
type ObjectStore interface {
	// Put stores content and returns its digest. Storing content that is
	// already present is a successful no-op.
	Put(content []byte) (objects.Digest, error)

	// Get returns the content stored under digest, or a NOT_FOUND error.
	Get(digest objects.Digest) ([]byte, error)

	// Has reports whether digest is present.
	Has(digest objects.Digest) (bool, error)

	// ForEach calls fn for every stored digest, in no particular order.
	ForEach(fn func(objects.Digest) error) error

	// Close releases backend resources.
	Close() error
}

// Backend names an ObjectStore implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBadger Backend = "badger"
)

// ParseBackend accepts "file" and "badger" (case-insensitive).
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendFile, BackendBadger:
		return b, nil
	default:
		return "", fmt.Errorf("unknown object store backend %q", s)
	}
}

// Options tune a backend.
type Options struct {
	// CompressionLevel is the zlib level for file slots.
	CompressionLevel int

	// InMemory keeps a badger store entirely in memory (tests only).
	InMemory bool
}

// DefaultOptions returns the options used when configuration is silent.
func DefaultOptions() Options {
	return Options{CompressionLevel: objects.DefaultCompression}
}

// Open creates the backend rooted at dir, creating dir when needed.
func Open(backend Backend, dir string, opts Options) (ObjectStore, error) {
	switch backend {
	case BackendFile, "":
		s := NewFileObjectStore(dir, opts)
		if err := s.Initialize(); err != nil {
			return nil, err
		}
		return s, nil
	case BackendBadger:
		return OpenBadgerObjectStore(dir, opts)
	default:
		return nil, fmt.Errorf("unknown object store backend %q", backend)
	}
}
