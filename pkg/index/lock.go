package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// LockFile is an exclusive, file-based lock guarding the index and HEAD.
// It is created with O_EXCL, so only one process can hold it.
type LockFile struct {
	path string
	file *os.File
}

// AcquireLock creates the lock file at lockPath. It fails with code
// ALREADY_EXISTS when another process holds the lock.
func AcquireLock(lockPath layout.SourcePath) (*LockFile, error) {
	path := lockPath.String()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, locked("lock", path)
		}
		return nil, internal("lock", fmt.Errorf("failed to create lock file: %w", err))
	}

	if _, err := file.WriteString(strconv.Itoa(os.Getpid()) + "\n"); err != nil {
		file.Close()
		os.Remove(path)
		return nil, internal("lock", fmt.Errorf("failed to write lock owner: %w", err))
	}

	return &LockFile{path: path, file: file}, nil
}

// Release closes and deletes the lock file.
func (l *LockFile) Release() error {
	if err := l.file.Close(); err != nil {
		return internal("unlock", fmt.Errorf("close lock file: %w", err))
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return internal("unlock", fmt.Errorf("remove lock file: %w", err))
	}
	return nil
}

// Path returns the lock file path
func (l *LockFile) Path() string {
	return l.path
}
