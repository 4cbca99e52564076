// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by generators. It is resolved once
// per call and passed by value.
type builderConfig struct {
	// rng overrides the per-call seed when set (shared stream).
	rng *rand.Rand

	// Box for Grid1D and UniformPoints.
	lo, hi float64

	// Dimension of generated points.
	dim int

	// Gaussian point clouds: per-axis center (len 1 broadcasts) and spread.
	center []float64
	spread float64

	// cov is a full dim×dim covariance; when set it replaces spread.
	cov [][]float64

	// noise is the relative Gaussian perturbation applied to histograms.
	noise float64
}

// Deterministic defaults.
const (
	defaultLo     = 0.0
	defaultHi     = 1.0
	defaultDim    = 2
	defaultSpread = 1.0
	defaultNoise  = 0.0

	// covJitter is added to the covariance diagonal before factorization so
	// that singular (positive semi-definite) covariances still sample.
	covJitter = 1e-4
)

// Generator names used as error context.
const (
	MethodUniform       = "Uniform"
	MethodGauss1D       = "Gauss1D"
	MethodNormalize     = "Normalize"
	MethodGrid1D        = "Grid1D"
	MethodGaussPoints   = "GaussPoints"
	MethodUniformPoints = "UniformPoints"
)

// newBuilderConfig applies opts in order on top of the defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		lo:     defaultLo,
		hi:     defaultHi,
		dim:    defaultDim,
		center: []float64{0},
		spread: defaultSpread,
		noise:  defaultNoise,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
