// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Uniform returns the length-n histogram with every bin equal to 1/n.
func Uniform(n int) ([]float64, error) {
	if n < 1 {
		return nil, builderErrorf(MethodUniform, "n=%d: %w", n, ErrTooFewPoints)
	}
	h := make([]float64, n)
	for i := range h {
		h[i] = 1 / float64(n)
	}

	return h, nil
}

// Gauss1D returns a Gaussian bump discretized on the bins 0..n−1.
// MAIN DESCRIPTION:
//   - h_i ∝ exp(−(i − mean)² / (2·std²)), normalized to unit mass.
//
// Implementation:
//   - Stage 1: validate n ≥ 1, finite mean, finite std > 0, noise ≥ 0.
//   - Stage 2: evaluate the bump; optional relative noise (WithNoise, seeded
//     by WithSeed/WithRand) multiplies each bin by |1 + σ·N(0,1)|.
//   - Stage 3: Normalize.
//
// Errors:
//   - ErrTooFewPoints, ErrInvalidParameter (including a bump that underflows
//     to zero mass on every bin).
//
// Complexity:
//   - Time O(n), Space O(n).
func Gauss1D(n int, mean, std float64, opts ...BuilderOption) ([]float64, error) {
	if n < 1 {
		return nil, builderErrorf(MethodGauss1D, "n=%d: %w", n, ErrTooFewPoints)
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) || !(std > 0) || math.IsInf(std, 0) {
		return nil, builderErrorf(MethodGauss1D, "mean=%g std=%g: %w", mean, std, ErrInvalidParameter)
	}
	cfg := newBuilderConfig(opts...)
	if !(cfg.noise >= 0) || math.IsInf(cfg.noise, 0) {
		return nil, builderErrorf(MethodGauss1D, "noise=%g: %w", cfg.noise, ErrInvalidParameter)
	}

	h := make([]float64, n)
	for i := range h {
		d := float64(i) - mean
		h[i] = math.Exp(-d * d / (2 * std * std))
	}
	if cfg.noise > 0 {
		rng := rngFrom(cfg, 0)
		for i := range h {
			h[i] *= math.Abs(1 + cfg.noise*rng.NormFloat64())
		}
	}

	out, err := Normalize(h)
	if err != nil {
		return nil, builderErrorf(MethodGauss1D, "%w", err)
	}

	return out, nil
}

// Normalize returns a copy of h scaled to unit mass. Entries must be finite
// and non-negative with a positive total.
func Normalize(h []float64) ([]float64, error) {
	if len(h) == 0 {
		return nil, builderErrorf(MethodNormalize, "empty histogram: %w", ErrTooFewPoints)
	}
	for i, v := range h {
		if !(v >= 0) || math.IsInf(v, 0) {
			return nil, builderErrorf(MethodNormalize, "h[%d]=%g: %w", i, v, ErrInvalidParameter)
		}
	}
	total := floats.Sum(h)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, builderErrorf(MethodNormalize, "total=%g: %w", total, ErrInvalidParameter)
	}

	out := make([]float64, len(h))
	floats.ScaleTo(out, 1/total, h)

	return out, nil
}
