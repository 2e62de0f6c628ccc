package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure, such as an unknown
	// report variant or a suffix that does not end in .html.
	ErrInvalidConfig = errors.New("invalid availreport config")
	// ErrLoadConfig wraps failures reading the YAML file or the
	// AVAILREPORT_ environment.
	ErrLoadConfig = errors.New("cannot load availreport config")
)
