// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"
	"strings"
)

// registry maps metric names to their pairwise functions. Read-only; reach
// it through Lookup.
var registry = map[string]Func{
	"euclidean":   EuclideanFunc,
	"l2":          EuclideanFunc,
	"sqeuclidean": SqEuclideanFunc,
	"manhattan":   ManhattanFunc,
	"l1":          ManhattanFunc,
	"cityblock":   ManhattanFunc,
	"chebyshev":   ChebyshevFunc,
	"linf":        ChebyshevFunc,
}

// SqEuclideanFunc returns Σ (x_k − y_k)².
func SqEuclideanFunc(x, y []float64) float64 {
	var acc, d float64
	for k := range x {
		d = x[k] - y[k]
		acc += d * d
	}

	return acc
}

// EuclideanFunc returns sqrt(Σ (x_k − y_k)²).
func EuclideanFunc(x, y []float64) float64 {
	return math.Sqrt(SqEuclideanFunc(x, y))
}

// ManhattanFunc returns Σ |x_k − y_k|.
func ManhattanFunc(x, y []float64) float64 {
	var acc float64
	for k := range x {
		acc += math.Abs(x[k] - y[k])
	}

	return acc
}

// ChebyshevFunc returns max_k |x_k − y_k|.
func ChebyshevFunc(x, y []float64) float64 {
	var best float64
	for k := range x {
		if d := math.Abs(x[k] - y[k]); d > best {
			best = d
		}
	}

	return best
}

// Lookup resolves a metric name (case-insensitive) to its Func.
func Lookup(name string) (Func, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownMetric)
	}

	return fn, nil
}

// ParseMetric maps a name to a built-in Metric. Names that resolve only
// through Lookup (e.g. "manhattan") map to Custom.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqeuclidean":
		return SqEuclidean, nil
	case "euclidean", "l2":
		return Euclidean, nil
	}
	if _, err := Lookup(name); err != nil {
		return 0, err
	}

	return Custom, nil
}
