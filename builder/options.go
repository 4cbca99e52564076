// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"
)

// BuilderOption customizes a generator by mutating builderConfig.
// Values are stored as given; generators validate them and return errors.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG shared across calls; it takes precedence
// over the seed argument of stochastic generators. A nil r is ignored.
func WithRand(r *rand.Rand) BuilderOption {
	return func(c *builderConfig) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSeed installs a fresh RNG seeded with seed (0 maps to the default seed).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rngFromSeed(seed)
	}
}

// WithRange sets the box [lo, hi] used by Grid1D and UniformPoints.
func WithRange(lo, hi float64) BuilderOption {
	return func(c *builderConfig) {
		c.lo, c.hi = lo, hi
	}
}

// WithDim sets the dimension of generated points.
func WithDim(d int) BuilderOption {
	return func(c *builderConfig) {
		c.dim = d
	}
}

// WithCenter sets the Gaussian center. A single value is broadcast to every axis.
func WithCenter(mean ...float64) BuilderOption {
	return func(c *builderConfig) {
		c.center = append([]float64(nil), mean...)
	}
}

// WithSpread sets the Gaussian standard deviation per axis (> 0).
func WithSpread(std float64) BuilderOption {
	return func(c *builderConfig) {
		c.spread = std
	}
}

// WithCovariance sets a full covariance matrix for GaussPoints (dim×dim,
// symmetric, positive semi-definite). It replaces WithSpread. Rows are copied.
func WithCovariance(cov [][]float64) BuilderOption {
	return func(c *builderConfig) {
		c.cov = make([][]float64, len(cov))
		for i, row := range cov {
			c.cov[i] = append([]float64(nil), row...)
		}
	}
}

// WithNoise perturbs histogram bins by a relative Gaussian factor
// h_i·|1 + sigma·N(0,1)| before renormalization. sigma >= 0; 0 disables it.
func WithNoise(sigma float64) BuilderOption {
	return func(c *builderConfig) {
		c.noise = sigma
	}
}
