// Package service provides the report generator shared by the CLI, the HTTP
// host and watch mode.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/okian/availreport/internal/adapters/loader"
	"github.com/okian/availreport/internal/adapters/render"
	"github.com/okian/availreport/internal/domain/aggregate"
	"github.com/okian/availreport/internal/domain/normalize"
	"github.com/okian/availreport/internal/domain/sheet"
	"github.com/okian/availreport/internal/domain/types"
	"github.com/okian/availreport/pkg/logger"
	"github.com/okian/availreport/pkg/metrics"
)

// Source names the input of one run. Exactly one of Table, Reader or Path
// is used, in that order of preference. Name carries the file name whose
// extension selects the decoder when Reader is set.
type Source struct {
	Name   string
	Reader io.Reader
	Path   string
	Table  *sheet.Table
}

// Document is the outcome of one generation.
type Document struct {
	RunID   string
	Variant string
	HTML    []byte
	Rows    int
	Records int
	Dropped int
	Issues  []normalize.RowIssue
	Summary *aggregate.Summary
}

// Empty reports whether the empty-state document was produced.
func (d Document) Empty() bool { return d.Records == 0 }

// Generator turns spreadsheets into report documents. It holds no mutable
// state and is safe for concurrent use.
type Generator struct {
	loader            *loader.Loader
	variant           string
	title             string
	rootLabel         string
	pruneEmptyRegions bool
	logger            logger.Logger
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithLoader replaces the spreadsheet loader.
func WithLoader(l *loader.Loader) Option {
	return func(g *Generator) {
		if l != nil {
			g.loader = l
		}
	}
}

// WithVariant sets the default report variant.
func WithVariant(variant string) Option {
	return func(g *Generator) {
		if variant != "" {
			g.variant = variant
		}
	}
}

// WithTitle overrides the document title of every variant.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithRootLabel sets the tree root label.
func WithRootLabel(label string) Option {
	return func(g *Generator) {
		g.rootLabel = label
	}
}

// WithPruneEmptyRegions drops tree regions that hold no associates.
func WithPruneEmptyRegions(prune bool) Option {
	return func(g *Generator) {
		g.pruneEmptyRegions = prune
	}
}

// WithLogger sets a custom logger for the generator.
func WithLogger(log logger.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.logger = log
		}
	}
}

// New constructs a Generator with default configuration.
func New(opts ...Option) *Generator {
	g := &Generator{
		variant: render.VariantDashboard,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.loader == nil {
		g.loader = loader.New(loader.WithLogger(g.logger))
	}
	return g
}

// Variant returns the default variant.
func (g *Generator) Variant() string { return g.variant }

// Generate renders src with the default variant.
func (g *Generator) Generate(ctx context.Context, src Source) (Document, error) {
	return g.GenerateVariant(ctx, src, g.variant)
}

// GenerateVariant renders src with the named variant. Missing columns fail
// the run; rows with a blank role or region are skipped and reported in
// Document.Issues.
func (g *Generator) GenerateVariant(ctx context.Context, src Source, variant string) (Document, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := g.logger.With(logger.String("run_id", runID))

	r, err := render.New(variant, g.renderOptions()...)
	if err != nil {
		return Document{}, g.fail(ctx, log, "unknown", start, "render", err)
	}
	variant = r.Variant()

	t, err := g.load(ctx, src)
	if err != nil {
		return Document{}, g.fail(ctx, log, variant, start, "loader", err)
	}

	res, err := normalize.Normalize(t)
	if err != nil {
		return Document{}, g.fail(ctx, log, variant, start, "normalize", err)
	}
	for _, issue := range res.Issues {
		log.Warn(ctx, "row skipped", logger.Int("row", issue.Row), logger.String("reason", issue.Reason))
	}

	sum := aggregate.Build(res.Records)
	var buf bytes.Buffer
	if err := r.Render(&buf, sum); err != nil {
		return Document{}, g.fail(ctx, log, variant, start, "render", err)
	}

	doc := Document{
		RunID:   runID,
		Variant: variant,
		HTML:    buf.Bytes(),
		Rows:    res.Rows,
		Records: len(res.Records),
		Dropped: res.Dropped,
		Issues:  res.Issues,
		Summary: sum,
	}

	outcome := metrics.OutcomeOK
	if doc.Empty() {
		outcome = metrics.OutcomeEmpty
	}
	elapsed := time.Since(start)
	metrics.RecordRows(doc.Rows, doc.Dropped, len(doc.Issues), doc.Records)
	metrics.RecordReport(variant, outcome, float64(elapsed.Microseconds())/1000)

	log.Info(ctx, "report generated",
		logger.String("variant", variant),
		logger.Int("rows", doc.Rows),
		logger.Int("records", doc.Records),
		logger.Int("dropped", doc.Dropped),
		logger.Int("skipped", len(doc.Issues)),
		logger.Int("bytes", len(doc.HTML)),
		logger.String("duration", elapsed.String()),
	)
	return doc, nil
}

// Inspect profiles src without cleaning it.
func (g *Generator) Inspect(ctx context.Context, src Source) (types.Overview, error) {
	t, err := g.load(ctx, src)
	if err != nil {
		metrics.RecordError("loader", errorType(err))
		return types.Overview{}, err
	}
	ov, err := aggregate.Profile(t)
	if err != nil {
		metrics.RecordError("normalize", errorType(err))
		return types.Overview{}, err
	}
	return ov, nil
}

func (g *Generator) load(ctx context.Context, src Source) (*sheet.Table, error) {
	switch {
	case src.Table != nil:
		return src.Table, nil
	case src.Reader != nil:
		return g.loader.Load(ctx, src.Name, src.Reader)
	case src.Path != "":
		return g.loader.LoadFile(ctx, src.Path)
	default:
		return nil, ErrNoInput
	}
}

func (g *Generator) renderOptions() []render.Option {
	return []render.Option{
		render.WithTitle(g.title),
		render.WithRootLabel(g.rootLabel),
		render.WithPruneEmptyRegions(g.pruneEmptyRegions),
	}
}

func (g *Generator) fail(ctx context.Context, log logger.Logger, variant string, start time.Time, component string, err error) error {
	metrics.RecordReport(variant, metrics.OutcomeError, float64(time.Since(start).Microseconds())/1000)
	metrics.RecordError(component, errorType(err))
	log.Error(ctx, "report generation failed",
		logger.String("variant", variant),
		logger.String("component", component),
		logger.Error(err),
	)
	return fmt.Errorf("generate: %w", err)
}

// errorType maps err to a low-cardinality metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrNoInput):
		return "no_input"
	case errors.Is(err, normalize.ErrMissingColumns):
		return "missing_columns"
	case errors.Is(err, loader.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, loader.ErrEmptySheet):
		return "empty_sheet"
	case errors.Is(err, loader.ErrNoWorksheet):
		return "no_worksheet"
	case errors.Is(err, loader.ErrDecode):
		return "decode"
	case errors.Is(err, render.ErrUnknownVariant):
		return "unknown_variant"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
