// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlot/internal/parallel"
	"github.com/katalvlaran/lvlot/matrix"
)

// Pairwise computes the n×m cost matrix between src (n points) and dst (m points).
// MAIN DESCRIPTION:
//   - C[i,j] = f(src[i], dst[j]) for the configured metric f.
//
// Implementation:
//   - Stage 1: resolve options and the pairwise function.
//   - Stage 2: validate point sets (non-empty, one shared dimensionality).
//   - Stage 3: fill rows in parallel chunks (one writer per entry).
//   - Stage 4: scan for invalid values in row-major order; normalize if asked.
//
// Errors:
//   - ErrEmptyPoints, ErrDimensionMismatch, ErrNilFunc, ErrUnknownMetric,
//     ErrInvalidDistance (custom functions only).
//
// Complexity:
//   - Time O(n*m*d), Space O(n*m).
func Pairwise(src, dst [][]float64, opts ...Option) (*matrix.Dense, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fn, err := resolve(o)
	if err != nil {
		return nil, err
	}
	if err = validatePoints(src, dst); err != nil {
		return nil, err
	}

	n, m := len(src), len(dst)
	data := make([]float64, n*m)
	parallel.For(n, o.Workers, func(lo, hi int) {
		var i, j int
		for i = lo; i < hi; i++ {
			row := data[i*m : (i+1)*m]
			for j = 0; j < m; j++ {
				row[j] = fn(src[i], dst[j])
			}
		}
	})

	var v float64
	for k := range data {
		v = data[k]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("Pairwise(%d,%d)=%g: %w", k/m, k%m, v, ErrInvalidDistance)
		}
	}

	cost, err := matrix.NewDenseFromData(n, m, data)
	if err != nil {
		return nil, fmt.Errorf("Pairwise: %w", err)
	}
	if o.Normalize == NormMax {
		return matrix.NormalizeMax(cost)
	}

	return cost, nil
}

// resolve picks the pairwise function for o.
func resolve(o Options) (Func, error) {
	switch o.Metric {
	case SqEuclidean:
		return SqEuclideanFunc, nil
	case Euclidean:
		return EuclideanFunc, nil
	case Custom:
		if o.Name != "" {
			return Lookup(o.Name)
		}
		if o.Func == nil {
			return nil, ErrNilFunc
		}
		return o.Func, nil
	default:
		return nil, fmt.Errorf("%s: %w", o.Metric, ErrUnknownMetric)
	}
}

// validatePoints checks that both sets are non-empty and share one dimensionality.
func validatePoints(src, dst [][]float64) error {
	if len(src) == 0 || len(dst) == 0 || len(src[0]) == 0 {
		return ErrEmptyPoints
	}
	d := len(src[0])
	for i, p := range src {
		if len(p) != d {
			return fmt.Errorf("source point %d has %d coordinates, want %d: %w", i, len(p), d, ErrDimensionMismatch)
		}
	}
	for j, p := range dst {
		if len(p) != d {
			return fmt.Errorf("target point %d has %d coordinates, want %d: %w", j, len(p), d, ErrDimensionMismatch)
		}
	}

	return nil
}
