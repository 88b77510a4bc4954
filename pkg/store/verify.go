package store

import (
	"context"
	"sort"
	"sync"

	"github.com/utkarsh5026/grut/pkg/objects"
	"golang.org/x/sync/errgroup"
)

// DefaultVerifyWorkers bounds concurrent reads during Verify.
const DefaultVerifyWorkers = 4

// CorruptObject is one object whose bytes no longer match its digest.
type CorruptObject struct {
	Digest objects.Digest
	Reason string
}

// VerifyReport summarizes a Verify run.
type VerifyReport struct {
	Checked int
	Corrupt []CorruptObject
}

// OK reports whether every object checked out.
func (r *VerifyReport) OK() bool {
	return len(r.Corrupt) == 0
}

// Verify re-reads every object in s and recomputes its digest. Reads fan
// out over at most workers goroutines; the store is never written.
// Only cancellation and enumeration failures are returned as errors;
// damaged objects are listed in the report.
func Verify(ctx context.Context, s ObjectStore, workers int) (*VerifyReport, error) {
	if workers <= 0 {
		workers = DefaultVerifyWorkers
	}

	var digests []objects.Digest
	if err := s.ForEach(func(d objects.Digest) error {
		digests = append(digests, d)
		return ctx.Err()
	}); err != nil {
		return nil, err
	}

	report := &VerifyReport{Checked: len(digests)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, d := range digests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			reason := ""
			content, err := s.Get(d)
			switch {
			case err != nil:
				reason = err.Error()
			case objects.Sum(content) != d:
				reason = "content digest " + objects.Sum(content).String() + " does not match"
			}

			if reason != "" {
				mu.Lock()
				report.Corrupt = append(report.Corrupt, CorruptObject{Digest: d, Reason: reason})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Corrupt, func(i, j int) bool {
		return report.Corrupt[i].Digest < report.Corrupt[j].Digest
	})
	return report, nil
}
