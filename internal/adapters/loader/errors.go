package loader

import "errors"

// Sentinel kinds for loader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptySheet        = errors.New("worksheet is empty")
	ErrNoWorksheet       = errors.New("no worksheet found")
	ErrDecode            = errors.New("cannot decode spreadsheet")
)
