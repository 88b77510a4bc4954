package config

// Recognized configuration keys.
const (
	KeyObjectStore   = "core.objectstore"
	KeyCompression   = "core.compression"
	KeyHistoryDepth  = "history.maxdepth"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyVerifyWorkers = "verify.workers"
)

// Builtin default values.
const (
	DefaultObjectStore   = "file"
	DefaultCompression   = -1
	DefaultHistoryDepth  = 100000
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultVerifyWorkers = 4
)
