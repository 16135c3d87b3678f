package search

// LayerHook is called after every BFS layer is appended, with the depth of
// the new layer and all layers found so far. It must not modify the layers.
type LayerHook func(depth int, layers []Layer)

// Options defines parameters for a search.
type Options struct {
	// LayerHook is invoked synchronously, in order, on the goroutine running the search.
	LayerHook LayerHook

	// SortPredecessors makes route enumeration visit predecessors in canonical
	// square order instead of discovery order.
	SortPredecessors bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLayerHook installs a callback that observes each completed BFS layer.
func WithLayerHook(hook LayerHook) Option {
	return func(options *Options) { options.LayerHook = hook }
}

// WithSortedPredecessors switches route enumeration to canonical predecessor order.
func WithSortedPredecessors(enabled bool) Option {
	return func(options *Options) { options.SortPredecessors = enabled }
}

func applyOptions(opts []Option) Options {
	var options Options
	for _, option := range opts {
		option(&options)
	}
	return options
}
