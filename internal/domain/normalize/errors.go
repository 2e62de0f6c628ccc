package normalize

import (
	"errors"
	"strings"
)

// Sentinel kinds for normalization errors.
var (
	ErrMissingColumns = errors.New("missing required columns")
)

// MissingColumnsError names every required column absent from the header,
// in the order the columns are required.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing columns: " + strings.Join(e.Missing, ", ")
}

// Unwrap lets callers match with errors.Is(err, ErrMissingColumns).
func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }
