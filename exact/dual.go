// SPDX-License-Identifier: MIT

package exact

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// centerDuals shifts α by +c and β by −c, c = (b·β − a·α)/(Σa + Σb), so that
// a·α = b·β. Sums α_i + β_j are unchanged.
func centerDuals(alpha, beta, a, b []float64) {
	shift := (floats.Dot(b, beta) - floats.Dot(a, alpha)) / (floats.Sum(a) + floats.Sum(b))
	floats.AddConst(shift, alpha)
	floats.AddConst(-shift, beta)
}

// nullWeightDuals sets the potential of every zero-mass atom to the largest
// value that keeps α_i + β_j ≤ C_ij. Plans do not constrain those entries.
func nullWeightDuals(alpha, beta, a, b, c []float64) {
	n, m := len(a), len(b)
	for i := 0; i < n; i++ {
		if a[i] != 0 {
			continue
		}
		best := math.Inf(1)
		for j := 0; j < m; j++ {
			best = math.Min(best, c[i*m+j]-beta[j])
		}
		alpha[i] = best
	}
	for j := 0; j < m; j++ {
		if b[j] != 0 {
			continue
		}
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			best = math.Min(best, c[i*m+j]-alpha[i])
		}
		beta[j] = best
	}
}
