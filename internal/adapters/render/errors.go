package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrUnknownVariant = errors.New("unknown report variant")
)
