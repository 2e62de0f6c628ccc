package render

// Option applies a configuration option to a renderer.
type Option func(*options)

type options struct {
	title             string
	rootLabel         string
	pruneEmptyRegions bool
}

func defaultOptions(title string) options {
	return options{title: title, rootLabel: "PMS"}
}

// WithTitle sets the document title and header text.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithRootLabel sets the label of the tree root node.
func WithRootLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.rootLabel = label
		}
	}
}

// WithPruneEmptyRegions omits tree regions that hold no associates instead
// of showing a "no associates" leaf.
func WithPruneEmptyRegions(prune bool) Option {
	return func(o *options) {
		o.pruneEmptyRegions = prune
	}
}
