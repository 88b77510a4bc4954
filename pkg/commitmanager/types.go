package commitmanager

import (
	"strings"
	"time"
)

// DefaultMaxDepth bounds how many commits a walk follows before it gives
// up and reports corrupt history.
const DefaultMaxDepth = 100000

// CommitOptions contains configuration for creating a commit
type CommitOptions struct {
	// Message is the commit message (required)
	Message string

	// Timestamp overrides the commit time. Zero means now.
	Timestamp time.Time
}

// Validate validates CommitOptions
func (opts *CommitOptions) Validate() error {
	if strings.TrimSpace(opts.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Options configure a Manager.
type Options struct {
	// MaxDepth bounds history walks. Zero or less means DefaultMaxDepth.
	MaxDepth int
}
