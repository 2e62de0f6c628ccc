// Package watch regenerates a report whenever its input spreadsheet changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/availreport/pkg/logger"
	"github.com/okian/availreport/pkg/metrics"
)

const (
	defaultDebounce = 500 * time.Millisecond
	pollInterval    = 50 * time.Millisecond
)

// Handler is called with the watched path once changes have settled.
type Handler func(ctx context.Context, path string) error

// Watcher watches a single file. The parent directory is watched instead of
// the file itself because editors and spreadsheet tools usually save by
// writing a new file and renaming it over the old one.
type Watcher struct {
	path       string
	handle     Handler
	debounce   time.Duration
	runOnStart bool
	logger     logger.Logger
}

// Option applies a configuration option to the Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before the handler runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithRunOnStart runs the handler once before the first change.
func WithRunOnStart(run bool) Option {
	return func(w *Watcher) {
		w.runOnStart = run
	}
}

// WithLogger sets a custom logger for the watcher.
func WithLogger(log logger.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.logger = log
		}
	}
}

// New constructs a Watcher for path.
func New(path string, handle Handler, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		handle:   handle,
		debounce: defaultDebounce,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is done. Handler failures are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if w.handle == nil {
		return ErrNoHandler
	}
	info, err := os.Stat(w.path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotFile, w.path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	defer func() { _ = fw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info(ctx, "watching input", logger.String("path", w.path), logger.String("debounce", w.debounce.String()))

	if w.runOnStart {
		w.fire(ctx)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "watch stopped", logger.String("path", w.path))
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.logger.Debug(ctx, "input changed", logger.String("op", event.Op.String()))
				pending = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			metrics.RecordError("watch", "fsnotify")
			w.logger.Error(ctx, "watch error", logger.Error(err))

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.fire(ctx)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) fire(ctx context.Context) {
	if _, err := os.Stat(w.path); err != nil {
		// Mid-save or deleted; the next create event retriggers.
		w.logger.Debug(ctx, "input not readable yet", logger.Error(err))
		return
	}
	if err := w.handle(ctx, w.path); err != nil {
		w.logger.Error(ctx, "regeneration failed", logger.String("path", w.path), logger.Error(err))
		return
	}
	metrics.RecordWatchRegeneration()
}
