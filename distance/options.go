// SPDX-License-Identifier: MIT

package distance

// Options configures Pairwise.
type Options struct {
	Metric    Metric        // which built-in to use (default SqEuclidean)
	Func      Func          // pairwise function for Custom
	Name      string        // metric name for Custom, resolved by Lookup
	Workers   int           // goroutines over rows; <=1 means sequential
	Normalize Normalization // post-processing (default NormNone)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns squared Euclidean, sequential, no normalization.
func DefaultOptions() Options {
	return Options{Metric: SqEuclidean, Workers: 1, Normalize: NormNone}
}

// WithMetric selects a built-in metric.
func WithMetric(m Metric) Option {
	return func(o *Options) { o.Metric = m }
}

// WithFunc selects Custom and installs fn.
func WithFunc(fn Func) Option {
	return func(o *Options) {
		o.Metric = Custom
		o.Func = fn
		o.Name = ""
	}
}

// WithNamed selects Custom by metric name; an unknown name surfaces as
// ErrUnknownMetric from Pairwise, quoting the name.
func WithNamed(name string) Option {
	return func(o *Options) {
		o.Metric = Custom
		o.Func = nil
		o.Name = name
	}
}

// WithWorkers sets the number of row workers.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithNormalization selects the post-processing step.
func WithNormalization(n Normalization) Option {
	return func(o *Options) { o.Normalize = n }
}
