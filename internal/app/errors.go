package service

import "errors"

// ErrNoInput is returned when a Source names neither a table, a reader nor a
// path.
var ErrNoInput = errors.New("no input provided")
