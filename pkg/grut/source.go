package grut

import (
	"context"
	"os"
)

// FileSource reads working files. The repository treats it as an opaque
// byte source.
type FileSource interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// OSFileSource reads from the local filesystem.
type OSFileSource struct{}

// ReadFile reads the whole file at path.
func (OSFileSource) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
