package commitmanager

import (
	"fmt"

	"github.com/utkarsh5026/grut/pkg/common/err"
)

const pkgName = "commitmanager"

var (
	// ErrEmptyMessage indicates an empty commit message was provided.
	ErrEmptyMessage = err.New(pkgName, err.CodeInvalidInput, "validate options", "commit message cannot be empty", nil)

	// ErrNoChanges indicates nothing is staged. It matches err.ErrNothingToCommit.
	ErrNoChanges = err.New(pkgName, err.CodeNothingToCommit, "validate", "no changes staged for commit", nil)
)

// CommitError records which step of a commit operation failed. The
// wrapped error keeps its code, so errors.Is against the err sentinels
// still works.
type CommitError struct {
	Op      string // Operation that failed
	Err     error  // Underlying error
	Details string // Additional details
}

// Error implements the error interface
func (e *CommitError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("commit %s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("commit %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *CommitError) Unwrap() error {
	return e.Err
}

// NewCommitError creates a new CommitError
func NewCommitError(op string, cause error, details string) error {
	return &CommitError{
		Op:      op,
		Err:     cause,
		Details: details,
	}
}

func corruptHistory(op, message string, cause error) error {
	return err.New(pkgName, err.CodeCorruptHistory, op, message, cause)
}

func invalidDigest(op string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, "invalid commit digest", cause)
}
