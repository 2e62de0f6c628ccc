package loader

import "github.com/okian/availreport/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithSheet selects a worksheet by name for workbook formats that carry
// several. The first worksheet is used when empty.
func WithSheet(name string) Option {
	return func(l *Loader) {
		l.sheet = name
	}
}

// WithMaxRows caps how many rows are read from legacy .xls workbooks.
func WithMaxRows(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxRows = n
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}
