// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvlot/convergence"
)

// Defaults shared by all methods.
const (
	DefaultMaxIterations       = 1000
	DefaultTolerance           = 1e-9
	DefaultCheckInterval       = 10
	DefaultAbsorptionThreshold = 1e3
	DefaultUnbalancedWeight    = 1.0
	DefaultBalanceTolerance    = 1e-6
)

// Options configures a solve. Build it with DefaultOptions and Option values.
type Options struct {
	// MaxIterations is the iteration budget. For Greedy one iteration is a
	// single row or column update.
	MaxIterations int

	// Tolerance on the stopping criterion.
	Tolerance float64

	// CheckInterval: iterations between stopping-criterion evaluations.
	CheckInterval int

	// Patience and MinImprovement enable stall detection (Patience > 0).
	Patience       int
	MinImprovement float64

	// AbsorptionThreshold (Stabilized): working potentials are folded into
	// the reference kernel once exp(max|f|/reg) exceeds it.
	AbsorptionThreshold float64

	// UnbalancedWeight is the KL marginal penalty used by Solve for MethodUnbalanced.
	UnbalancedWeight float64

	// BalanceTolerance is the relative gap allowed between Σa and Σb for
	// balanced methods.
	BalanceTolerance float64

	// TieBreak (Greedy) for equal row and column violations. Default
	// PreferColumns.
	TieBreak TieBreak

	// Workers for the kernel products; <= 1 runs sequentially.
	Workers int

	// Logger receives check and termination events. Defaults to zerolog.Nop().
	Logger zerolog.Logger

	// Potentials requests dual potentials in Diagnostics.
	Potentials bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations:       DefaultMaxIterations,
		Tolerance:           DefaultTolerance,
		CheckInterval:       DefaultCheckInterval,
		MinImprovement:      1e-3,
		AbsorptionThreshold: DefaultAbsorptionThreshold,
		UnbalancedWeight:    DefaultUnbalancedWeight,
		BalanceTolerance:    DefaultBalanceTolerance,
		TieBreak:            PreferColumns,
		Workers:             1,
		Logger:              zerolog.Nop(),
	}
}

// WithMaxIterations sets the iteration budget.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithTolerance sets the stopping tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Tolerance = tol }
}

// WithCheckInterval sets how often the stopping criterion is evaluated.
func WithCheckInterval(every int) Option {
	return func(o *Options) { o.CheckInterval = every }
}

// WithPatience enables stall detection.
func WithPatience(checks int, minImprovement float64) Option {
	return func(o *Options) {
		o.Patience = checks
		o.MinImprovement = minImprovement
	}
}

// WithAbsorptionThreshold sets the Stabilized absorption threshold (> 1).
func WithAbsorptionThreshold(tau float64) Option {
	return func(o *Options) { o.AbsorptionThreshold = tau }
}

// WithUnbalancedWeight sets the KL marginal penalty used by Solve.
func WithUnbalancedWeight(w float64) Option {
	return func(o *Options) { o.UnbalancedWeight = w }
}

// WithBalanceTolerance sets the relative Σa/Σb gap accepted by balanced methods.
func WithBalanceTolerance(tol float64) Option {
	return func(o *Options) { o.BalanceTolerance = tol }
}

// WithTieBreak sets the Greedy row/column tie policy.
func WithTieBreak(tb TieBreak) Option {
	return func(o *Options) { o.TieBreak = tb }
}

// WithWorkers sets the number of goroutines used by kernel products.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger installs a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithPotentials asks for dual potentials in Diagnostics.
func WithPotentials() Option {
	return func(o *Options) { o.Potentials = true }
}

// buildOptions applies opts on top of DefaultOptions.
func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// monitorConfig projects Options onto a convergence.Config.
func (o Options) monitorConfig() convergence.Config {
	return convergence.Config{
		MaxIterations:  o.MaxIterations,
		CheckInterval:  o.CheckInterval,
		Tolerance:      o.Tolerance,
		Patience:       o.Patience,
		MinImprovement: o.MinImprovement,
	}
}
