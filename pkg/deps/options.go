package deps

const (
	DefaultMaxConcurrent = 100   // Default simultaneous registry fetches
	DefaultMaxDepth      = 50    // Default maximum dependency depth
	DefaultMaxNodes      = 10000 // Default maximum nodes in one tree
)

// Options configures the resource bounds of a single resolution.
type Options struct {
	MaxDepth int                  // Maximum depth below the root (default: 50)
	MaxNodes int                  // Maximum node placements in the tree (default: 10000)
	Logger   func(string, ...any) // Progress/debug callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithMaxConcurrent caps the number of registry fetches the resolver has
// outstanding at once, across every level of every tree it is resolving.
// Values below 1 are ignored.
func WithMaxConcurrent(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.gate = NewGate(n)
		}
	}
}

// WithOptions sets the resolution bounds and logger.
func WithOptions(opts Options) Option {
	return func(r *Resolver) { r.opts = opts.WithDefaults() }
}
