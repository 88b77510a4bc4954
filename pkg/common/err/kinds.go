package err

// Error codes. Packages may add their own, in UPPER_SNAKE_CASE.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInternal      = "INTERNAL"
	CodeValidation    = "VALIDATION"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeReadOnly      = "READ_ONLY"

	// CodeNotARepository: the operation ran outside an initialized repository.
	CodeNotARepository = "NOT_A_REPOSITORY"

	// CodeCorruptHistory: a commit record is malformed, or the parent chain
	// cycles or exceeds the configured depth.
	CodeCorruptHistory = "CORRUPT_HISTORY"

	// CodeNothingToCommit is a policy signal, not a failure.
	CodeNothingToCommit = "NOTHING_TO_COMMIT"

	// CodeSourceUnreadable: the working file could not be read.
	CodeSourceUnreadable = "SOURCE_UNREADABLE"
)

// Sentinels for errors.Is. They only carry a code.
var (
	ErrInvalidInput     = &Error{Code: CodeInvalidInput}
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrInvalidFormat    = &Error{Code: CodeInvalidFormat}
	ErrNotARepository   = &Error{Code: CodeNotARepository}
	ErrCorruptHistory   = &Error{Code: CodeCorruptHistory}
	ErrNothingToCommit  = &Error{Code: CodeNothingToCommit}
	ErrSourceUnreadable = &Error{Code: CodeSourceUnreadable}
	ErrInternal         = &Error{Code: CodeInternal}
)
