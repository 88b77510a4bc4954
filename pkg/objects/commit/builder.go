package commit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/utkarsh5026/grut/pkg/index"
	"github.com/utkarsh5026/grut/pkg/objects"
)

// Builder assembles a Commit, collecting validation errors along the way.
type Builder struct {
	commit *Commit
	errs   []error
}

// NewBuilder creates a builder for a root commit with no files.
func NewBuilder() *Builder {
	return &Builder{
		commit: &Commit{Files: make([]index.Entry, 0)},
		errs:   make([]error, 0),
	}
}

// Parent sets the parent digest. A zero digest means root commit.
func (b *Builder) Parent(parent objects.Digest) *Builder {
	if !parent.IsZero() {
		if err := parent.Validate(); err != nil {
			b.errs = append(b.errs, fmt.Errorf("invalid parent: %w", err))
			return b
		}
	}
	b.commit.Parent = parent
	return b
}

// Message sets the message. Blank messages are rejected.
func (b *Builder) Message(message string) *Builder {
	if strings.TrimSpace(message) == "" {
		b.errs = append(b.errs, errors.New("commit message cannot be empty"))
	}
	b.commit.Message = message
	return b
}

// Timestamp sets the commit time, stored in UTC.
func (b *Builder) Timestamp(ts time.Time) *Builder {
	b.commit.Timestamp = ts.UTC()
	return b
}

// Files copies entries into the snapshot.
func (b *Builder) Files(entries []index.Entry) *Builder {
	b.commit.Files = append(make([]index.Entry, 0, len(entries)), entries...)
	return b
}

// Build validates the commit and fills in its digest.
func (b *Builder) Build() (*Commit, error) {
	if len(b.errs) > 0 {
		return nil, invalid("build", "invalid commit", errors.Join(b.errs...))
	}
	if b.commit.Timestamp.IsZero() {
		b.commit.Timestamp = time.Now().UTC()
	}

	digest, err := b.commit.ComputeDigest()
	if err != nil {
		return nil, err
	}
	b.commit.Digest = digest
	return b.commit, nil
}
