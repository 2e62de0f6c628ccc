// Package render turns an aggregate summary into a self-contained HTML
// document. Styles, script and data are inlined so the output renders the
// same when opened offline.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/okian/availreport/internal/domain/aggregate"
	"github.com/okian/availreport/internal/domain/model"
)

// Report variants.
const (
	VariantDashboard = "dashboard"
	VariantTree      = "tree"
)

// Variants lists the supported variant names.
var Variants = []string{VariantDashboard, VariantTree}

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"severity": func(availability int) string { return model.BucketFor(availability).Severity() },
}).ParseFS(templateFS, "templates/*.html.tmpl"))

// Renderer writes one report variant. An empty summary always produces the
// shared empty-state document.
type Renderer interface {
	Variant() string
	Render(w io.Writer, sum *aggregate.Summary) error
}

// New returns the renderer for variant.
func New(variant string, opts ...Option) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case VariantDashboard:
		return NewDashboard(opts...), nil
	case VariantTree:
		return NewTree(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// EmptyTitle is the title of the empty-state document, which is the same
// for every variant.
const EmptyTitle = "PMS Resource Visualization"

// EmptyMessage is the text shown when no associate has availability left.
const EmptyMessage = "No resources with availability greater than 0% found in the data."

// Empty writes the empty-state document.
func Empty(w io.Writer) error {
	return execute(w, "empty.html.tmpl", struct{ Title, Message string }{EmptyTitle, EmptyMessage})
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}
