package layout

const (
	// SourceDir is the repository marker directory.
	SourceDir = ".grut"

	// ObjectsDir holds one immutable entry per digest.
	ObjectsDir = "objects"

	// HeadFile holds either nothing or one commit digest.
	HeadFile = "HEAD"

	// IndexFile holds the staging index as JSON.
	IndexFile = "index"

	// IndexLockFile exists while a process is rewriting the index or HEAD.
	IndexLockFile = "index.lock"

	// ConfigFile is the repository-level configuration.
	ConfigFile = "config.json"
)
