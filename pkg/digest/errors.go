package digest

import "errors"

// Sentinel errors for configuration validation. Both are fatal and reported
// before any traversal begins; per-entry access failures are never surfaced
// as errors, they downgrade the affected entry instead.
var (
	// ErrNotDirectory indicates the root path is missing or not a directory.
	ErrNotDirectory = errors.New("root path is not a directory")
	// ErrInvalidPattern indicates a malformed glob pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
)
