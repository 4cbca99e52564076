// SPDX-License-Identifier: MIT

// Package distance builds ground-cost matrices from two point clouds.
//
// Given source points x_1..x_n and target points y_1..y_m (all of the same
// dimensionality d), Pairwise returns the n×m matrix C with C[i,j] = f(x_i, y_j)
// for the selected metric f. The result is the cost input of every solver in
// sinkhorn and exact.
//
// Built-in metrics:
//   - SqEuclidean: Σ_k (x_k − y_k)²  (default; the usual W2 ground cost)
//   - Euclidean:   sqrt(Σ_k (x_k − y_k)²)
//   - Custom:      any Func supplied with WithFunc, or a metric named with
//     WithNamed (manhattan, chebyshev and aliases; see Lookup)
//
// Determinism:
//   - Entries are computed directly from coordinate differences (no
//     ‖x‖²+‖y‖²−2⟨x,y⟩ expansion), so identical points always give exactly 0.
//   - Rows are split across workers; each entry has one writer, so the matrix
//     does not depend on the worker count.
package distance

import (
	"errors"
	"fmt"
)

// Metric selects the pairwise function used by Pairwise.
type Metric int

const (
	// SqEuclidean is the squared Euclidean distance.
	SqEuclidean Metric = iota
	// Euclidean is the Euclidean (L2) distance.
	Euclidean
	// Custom uses the Func passed with WithFunc.
	Custom
)

// String returns the canonical lowercase name.
func (m Metric) String() string {
	switch m {
	case SqEuclidean:
		return "sqeuclidean"
	case Euclidean:
		return "euclidean"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Func is a distance function between two equal-length vectors.
// It must return a finite, non-negative value.
type Func func(x, y []float64) float64

// Normalization post-processes the finished cost matrix.
type Normalization int

const (
	// NormNone leaves the matrix as computed.
	NormNone Normalization = iota
	// NormMax divides every entry by the largest one.
	NormMax
)

// Sentinel errors.
var (
	// ErrDimensionMismatch: points of different dimensionality (or ragged input).
	ErrDimensionMismatch = errors.New("distance: dimension mismatch")

	// ErrEmptyPoints: a point set is empty or a point has zero coordinates.
	ErrEmptyPoints = errors.New("distance: empty point set")

	// ErrNilFunc: Custom metric selected without a Func.
	ErrNilFunc = errors.New("distance: custom metric requires a function")

	// ErrUnknownMetric: a metric value or name that is not supported.
	ErrUnknownMetric = errors.New("distance: unknown metric")

	// ErrInvalidDistance: a metric produced NaN, ±Inf or a negative value.
	ErrInvalidDistance = errors.New("distance: invalid distance value")
)
