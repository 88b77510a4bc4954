package commitmanager

import (
	"context"
	"fmt"
	"io"

	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/objects/commit"
)

// Walker follows parent pointers one commit at a time. Every Next reads
// from the store, so a new Walker always sees current data.
//
//	w, err := mgr.Walk("")
//	for {
//		c, err := w.Next(ctx)
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		...
//	}
type Walker struct {
	m        *Manager
	next     objects.Digest
	visited  map[objects.Digest]struct{}
	maxDepth int
	started  bool
}

// Walk returns a walker starting at start, or at HEAD when start is zero.
// An empty repository yields a walker that is immediately exhausted.
func (m *Manager) Walk(start objects.Digest) (*Walker, error) {
	if start.IsZero() {
		head, err := m.head.Read()
		if err != nil {
			return nil, NewCommitError("walk", err, "")
		}
		start = head
	}

	return &Walker{
		m:        m,
		next:     start,
		visited:  make(map[objects.Digest]struct{}),
		maxDepth: m.maxDepth,
	}, nil
}

// Next returns the next commit, or io.EOF once the root commit has been
// returned. A parent chain that revisits a commit or runs past the depth
// bound fails with CORRUPT_HISTORY, as does a parent that is missing from
// the store.
func (w *Walker) Next(ctx context.Context) (*commit.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.next.IsZero() {
		return nil, io.EOF
	}

	digest := w.next
	if _, seen := w.visited[digest]; seen {
		return nil, corruptHistory("walk", fmt.Sprintf("parent chain cycles at %s", digest.Short()), nil)
	}
	if len(w.visited) >= w.maxDepth {
		return nil, corruptHistory("walk", fmt.Sprintf("history deeper than %d commits", w.maxDepth), nil)
	}

	c, err := w.m.GetCommit(ctx, digest)
	if err != nil {
		if w.started {
			return nil, corruptHistory("walk", fmt.Sprintf("parent %s unreadable", digest.Short()), err)
		}
		return nil, err
	}

	w.started = true
	w.visited[digest] = struct{}{}
	w.next = c.Parent
	return c, nil
}

// Depth returns how many commits have been returned so far.
func (w *Walker) Depth() int {
	return len(w.visited)
}
