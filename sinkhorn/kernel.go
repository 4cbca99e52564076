// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlot/internal/parallel"
)

// gibbs returns the kernel K = exp(-C/reg) in row-major order.
func gibbs(c []float64, reg float64) []float64 {
	k := make([]float64, len(c))
	for idx, v := range c {
		k[idx] = math.Exp(-v / reg)
	}

	return k
}

// mulVec writes out = K x for an n×m kernel. Rows are split across workers.
func mulVec(out, k, x []float64, n, m, workers int) {
	parallel.For(n, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = floats.Dot(k[i*m:(i+1)*m], x)
		}
	})
}

// mulTransVec writes out = Kᵀ x for an n×m kernel. Columns are split across
// workers; each column accumulates over i in ascending order whatever the split.
func mulTransVec(out, k, x []float64, n, m, workers int) {
	parallel.For(m, workers, func(lo, hi int) {
		dst := out[lo:hi]
		for j := range dst {
			dst[j] = 0
		}
		for i := 0; i < n; i++ {
			floats.AddScaled(dst, x[i], k[i*m+lo:i*m+hi])
		}
	})
}

// planMarginals returns the row and column sums of a row-major n×m plan.
func planMarginals(plan []float64, n, m int) (rows, cols []float64) {
	rows = make([]float64, n)
	cols = make([]float64, m)
	for i := 0; i < n; i++ {
		row := plan[i*m : (i+1)*m]
		rows[i] = floats.Sum(row)
		floats.Add(cols, row)
	}

	return rows, cols
}

// marginalError is the L2 norm of the stacked violations (rows − a, cols − b).
func marginalError(rows, cols, a, b []float64) float64 {
	return math.Hypot(floats.Distance(rows, a, 2), floats.Distance(cols, b, 2))
}

// allFinite reports whether every entry of x is finite.
func allFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// ones returns a length-n vector of 1.
func ones(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}

	return x
}

// scaledLog returns reg·log(x) elementwise.
func scaledLog(x []float64, reg float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = reg * math.Log(v)
	}

	return out
}
