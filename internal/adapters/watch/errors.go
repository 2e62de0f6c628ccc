package watch

import "errors"

// Sentinel kinds for watcher errors.
var (
	ErrNoHandler = errors.New("watch handler is nil")
	ErrNotFile   = errors.New("watch target is not a regular file")
)
