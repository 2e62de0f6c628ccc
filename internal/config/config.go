// Package config defines report generator configuration and loading hooks.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and environment variables on top.
// - Errors returned from this package wrap ErrInvalidConfig or ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Supported renderer variants.
const (
	VariantDashboard = "dashboard"
	VariantTree      = "tree"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address used by `serve`, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Variant is the default renderer: dashboard or tree.
	Variant string `koanf:"variant"`

	// Title is shown in the document header and <title>. Empty selects the
	// variant's own default.
	Title string `koanf:"title"`

	// Sheet names the worksheet to read; empty means the first sheet.
	Sheet string `koanf:"sheet"`

	// DashboardSuffix and TreeSuffix are appended to the input file's base
	// name when the CLI writes its sibling output file.
	DashboardSuffix string `koanf:"dashboard_suffix"`
	TreeSuffix      string `koanf:"tree_suffix"`

	// MaxUploadMB caps multipart uploads accepted by the HTTP host.
	MaxUploadMB int `koanf:"max_upload_mb"`

	// WatchDebounceMS is how long the input must be quiet before watch mode
	// regenerates the report.
	WatchDebounceMS int `koanf:"watch_debounce_ms"`

	// TreePruneEmptyRegions drops region nodes without associates from the
	// tree instead of rendering a "no associates" leaf.
	TreePruneEmptyRegions bool `koanf:"tree_prune_empty_regions"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		Variant:         VariantDashboard,
		DashboardSuffix: "_Dashboard.html",
		TreeSuffix:      "_ImprovedTree.html",
		MaxUploadMB:     20,
		WatchDebounceMS: 500,
	}
}

// Suffix returns the output suffix for the given variant.
func (c *Config) Suffix(variant string) string {
	if variant == VariantTree {
		return c.TreeSuffix
	}
	return c.DashboardSuffix
}

// Validate checks invariants the rest of the program relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Variant != VariantDashboard && c.Variant != VariantTree:
		return fmt.Errorf("%w: variant must be %q or %q, got %q", ErrInvalidConfig, VariantDashboard, VariantTree, c.Variant)
	case !validSuffix(c.DashboardSuffix):
		return fmt.Errorf("%w: dashboard_suffix must end in .html", ErrInvalidConfig)
	case !validSuffix(c.TreeSuffix):
		return fmt.Errorf("%w: tree_suffix must end in .html", ErrInvalidConfig)
	case c.MaxUploadMB <= 0:
		return fmt.Errorf("%w: max_upload_mb must be positive", ErrInvalidConfig)
	case c.WatchDebounceMS < 0:
		return fmt.Errorf("%w: watch_debounce_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

func validSuffix(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) > len(".html") && strings.HasSuffix(strings.ToLower(s), ".html")
}
