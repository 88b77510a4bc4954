package diff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/objects/commit"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// ReportKind says how a file in a commit relates to its parent.
type ReportKind int

const (
	// NewFile: the path is not in the parent commit, or there is no parent.
	NewFile ReportKind = iota
	// Changed: the path is in the parent; Runs compare the two versions.
	Changed
)

func (k ReportKind) String() string {
	if k == NewFile {
		return "new"
	}
	return "changed"
}

// FileReport describes one file of a commit. Content is set for NewFile,
// Runs and Stats for Changed.
type FileReport struct {
	Kind    ReportKind
	Path    layout.RelativePath
	Digest  objects.Digest
	Content string
	Runs    []Run
	Stats   Stats
}

// CommitReader loads commits by digest.
type CommitReader interface {
	GetCommit(ctx context.Context, digest objects.Digest) (*commit.Commit, error)
}

// BlobReader loads blob content by digest.
type BlobReader interface {
	Get(digest objects.Digest) ([]byte, error)
}

// Engine diffs commits against their parents.
type Engine struct {
	commits CommitReader
	blobs   BlobReader
	logger  *slog.Logger
}

// NewEngine creates a diff engine.
func NewEngine(commits CommitReader, blobs BlobReader) *Engine {
	return &Engine{
		commits: commits,
		blobs:   blobs,
		logger:  logger.Component("diff"),
	}
}

// DiffCommit reports every file of the commit at digest, in commit order.
//
// The old version of a path is looked up only in the parent commit's own
// file list. A path missing there is reported as NewFile even when the
// commit has a parent.
func (e *Engine) DiffCommit(ctx context.Context, digest objects.Digest) ([]FileReport, error) {
	target, err := e.commits.GetCommit(ctx, digest)
	if err != nil {
		return nil, wrap(err, "diff commit")
	}

	var parent *commit.Commit
	if !target.IsRoot() {
		parent, err = e.commits.GetCommit(ctx, target.Parent)
		if err != nil {
			return nil, corruptHistory("diff commit",
				fmt.Sprintf("parent %s of %s unreadable", target.Parent.Short(), digest.Short()), err)
		}
	}

	reports := make([]FileReport, 0, len(target.Files))
	for _, f := range target.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := e.blobs.Get(f.Digest)
		if err != nil {
			return nil, wrap(err, "read "+f.Path.String())
		}

		var previous objects.Digest
		if parent != nil {
			if pf, ok := parent.File(f.Path); ok {
				previous = pf.Digest
			}
		}

		if previous.IsZero() {
			reports = append(reports, FileReport{
				Kind:    NewFile,
				Path:    f.Path,
				Digest:  f.Digest,
				Content: string(content),
			})
			continue
		}

		oldContent, err := e.blobs.Get(previous)
		if err != nil {
			return nil, wrap(err, "read parent version of "+f.Path.String())
		}

		runs := Lines(string(oldContent), string(content))
		reports = append(reports, FileReport{
			Kind:   Changed,
			Path:   f.Path,
			Digest: f.Digest,
			Runs:   runs,
			Stats:  CountLines(runs),
		})
	}

	e.logger.Debug("commit diffed", "digest", digest, "files", len(reports))
	return reports, nil
}
