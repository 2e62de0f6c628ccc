package render

import (
	"io"

	"github.com/okian/availreport/internal/domain/aggregate"
)

// DefaultTreeTitle heads the tree when no title is configured.
const DefaultTreeTitle = "PMS Resource Visualization"

// Tree renders the root → role → region → bucket drill-down. Root and role
// levels start expanded; every click toggles only the clicked node.
type Tree struct {
	opts options
}

// NewTree constructs a tree renderer.
func NewTree(opts ...Option) *Tree {
	o := defaultOptions(DefaultTreeTitle)
	for _, opt := range opts {
		opt(&o)
	}
	return &Tree{opts: o}
}

// Variant implements Renderer.
func (t *Tree) Variant() string { return VariantTree }

// Render implements Renderer.
func (t *Tree) Render(w io.Writer, sum *aggregate.Summary) error {
	if sum == nil || sum.Empty() {
		return Empty(w)
	}
	return execute(w, "tree.html.tmpl", treePage{
		Title: t.opts.title,
		Root:  t.opts.rootLabel,
		Tree:  sum.Tree(aggregate.WithPruneEmptyRegions(t.opts.pruneEmptyRegions)),
	})
}

type treePage struct {
	Title string
	Root  string
	Tree  aggregate.Tree
}
