// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Grid1D returns n evenly spaced one-dimensional points on [lo, hi]
// (WithRange, default [0, 1]). n == 1 yields the single point lo.
func Grid1D(n int, opts ...BuilderOption) ([][]float64, error) {
	if n < 1 {
		return nil, builderErrorf(MethodGrid1D, "n=%d: %w", n, ErrTooFewPoints)
	}
	cfg := newBuilderConfig(opts...)
	if err := validateRange(cfg); err != nil {
		return nil, builderErrorf(MethodGrid1D, "%w", err)
	}

	pts := make([][]float64, n)
	step := 0.0
	if n > 1 {
		step = (cfg.hi - cfg.lo) / float64(n-1)
	}
	for i := range pts {
		pts[i] = []float64{cfg.lo + step*float64(i)}
	}
	if n > 1 {
		pts[n-1][0] = cfg.hi
	}

	return pts, nil
}

// GaussPoints draws n samples of a Gaussian in WithDim dimensions (default 2),
// centered at WithCenter (default origin). The shape is either axis-aligned
// with standard deviation WithSpread (default 1) or a full WithCovariance.
// MAIN DESCRIPTION:
//   - Axis-aligned: x_k = center_k + spread·N(0,1) per axis.
//   - Covariance Σ: x = center + L·z, z ~ N(0, I), L the lower Cholesky
//     factor of Σ + 1e-4·I.
//
// Implementation:
//   - Stage 1: resolve config; validate n, dim, center length, spread or Σ.
//   - Stage 2: RNG from WithRand/WithSeed when given, else from seed.
//   - Stage 3: fill one contiguous buffer row by row (dim normals per row).
//
// Errors:
//   - ErrTooFewPoints (n < 1, dim < 1), ErrInvalidParameter (bad center,
//     spread, covariance shape, asymmetric or indefinite Σ).
//
// Complexity:
//   - Time O(dim³ + n·dim²), Space O(n·dim + dim²).
func GaussPoints(n int, seed int64, opts ...BuilderOption) ([][]float64, error) {
	cfg := newBuilderConfig(opts...)
	if n < 1 || cfg.dim < 1 {
		return nil, builderErrorf(MethodGaussPoints, "n=%d dim=%d: %w", n, cfg.dim, ErrTooFewPoints)
	}
	center, err := resolveCenter(cfg)
	if err != nil {
		return nil, builderErrorf(MethodGaussPoints, "%w", err)
	}

	var chol *mat.TriDense
	if cfg.cov != nil {
		if chol, err = choleskyOf(cfg.cov, cfg.dim); err != nil {
			return nil, builderErrorf(MethodGaussPoints, "%w", err)
		}
	} else if !(cfg.spread > 0) || math.IsInf(cfg.spread, 0) {
		return nil, builderErrorf(MethodGaussPoints, "spread=%g: %w", cfg.spread, ErrInvalidParameter)
	}

	rng := rngFrom(cfg, seed)
	pts := rowsOf(n, cfg.dim)
	if chol == nil {
		for _, p := range pts {
			for k := range p {
				p[k] = center[k] + cfg.spread*rng.NormFloat64()
			}
		}

		return pts, nil
	}

	z := mat.NewVecDense(cfg.dim, nil)
	var x mat.VecDense
	for _, p := range pts {
		for k := range p {
			z.SetVec(k, rng.NormFloat64())
		}
		x.MulVec(chol, z)
		for k := range p {
			p[k] = center[k] + x.AtVec(k)
		}
	}

	return pts, nil
}

// choleskyOf validates cov as a dim×dim symmetric matrix and returns the lower
// Cholesky factor of cov + covJitter·I.
func choleskyOf(cov [][]float64, dim int) (*mat.TriDense, error) {
	if len(cov) != dim {
		return nil, fmt.Errorf("covariance has %d rows for dim %d: %w", len(cov), dim, ErrInvalidParameter)
	}
	for i, row := range cov {
		if len(row) != dim {
			return nil, fmt.Errorf("covariance row %d has %d values for dim %d: %w", i, len(row), dim, ErrInvalidParameter)
		}
	}
	data := make([]float64, 0, dim*dim)
	for i, row := range cov {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v != cov[j][i] {
				return nil, fmt.Errorf("covariance[%d][%d]=%g not finite and symmetric: %w", i, j, v, ErrInvalidParameter)
			}
		}
		data = append(data, row...)
	}
	sym := mat.NewSymDense(dim, data)
	for k := 0; k < dim; k++ {
		sym.SetSym(k, k, sym.At(k, k)+covJitter)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, fmt.Errorf("covariance is not positive semi-definite: %w", ErrInvalidParameter)
	}
	var l mat.TriDense
	chol.LTo(&l)

	return &l, nil
}

// UniformPoints draws n samples uniformly from the box [lo, hi]^dim.
func UniformPoints(n int, seed int64, opts ...BuilderOption) ([][]float64, error) {
	cfg := newBuilderConfig(opts...)
	if n < 1 || cfg.dim < 1 {
		return nil, builderErrorf(MethodUniformPoints, "n=%d dim=%d: %w", n, cfg.dim, ErrTooFewPoints)
	}
	if err := validateRange(cfg); err != nil {
		return nil, builderErrorf(MethodUniformPoints, "%w", err)
	}

	rng := rngFrom(cfg, seed)
	width := cfg.hi - cfg.lo
	pts := rowsOf(n, cfg.dim)
	for _, p := range pts {
		for k := range p {
			p[k] = cfg.lo + width*rng.Float64()
		}
	}

	return pts, nil
}

// rowsOf slices one n·dim buffer into n rows.
func rowsOf(n, dim int) [][]float64 {
	buf := make([]float64, n*dim)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = buf[i*dim : (i+1)*dim : (i+1)*dim]
	}

	return rows
}

func validateRange(cfg builderConfig) error {
	if math.IsNaN(cfg.lo) || math.IsInf(cfg.lo, 0) || math.IsNaN(cfg.hi) || math.IsInf(cfg.hi, 0) || cfg.hi < cfg.lo {
		return fmt.Errorf("range [%g, %g]: %w", cfg.lo, cfg.hi, ErrInvalidParameter)
	}

	return nil
}

// resolveCenter broadcasts a single-value center to cfg.dim axes.
func resolveCenter(cfg builderConfig) ([]float64, error) {
	c := cfg.center
	switch len(c) {
	case cfg.dim:
	case 1:
		v := c[0]
		c = make([]float64, cfg.dim)
		for k := range c {
			c[k] = v
		}
	default:
		return nil, fmt.Errorf("center has %d values for dim %d: %w", len(c), cfg.dim, ErrInvalidParameter)
	}
	for k, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("center[%d]=%g: %w", k, v, ErrInvalidParameter)
		}
	}

	return c, nil
}
