// SPDX-License-Identifier: MIT

package exact

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlot/matrix"
)

// EMD computes an exact optimal transport plan (earth mover's distance).
// MAIN DESCRIPTION:
//   - Solves min ⟨P, C⟩ s.t. P1 = a, Pᵀ1 = b, P ≥ 0 as a min-cost flow on the
//     bipartite network s → rows → columns → t.
//
// Implementation:
//   - Stage 1: validate; empty masses become uniform; totals must agree within
//     BalanceTolerance, then b is rescaled to Σa.
//   - Stage 2: successive shortest paths: Dijkstra on reduced costs, push the
//     bottleneck, repeat until all supply is routed.
//   - Stage 3: read the plan and the dual potentials; optionally center them
//     and fill in duals of zero-mass atoms.
//
// Behavior highlights:
//   - The plan has at most n+m−1 non-zero entries for generic costs.
//   - opts == nil uses DefaultOptions().
//
// Errors:
//   - ErrInvalidInput, ErrInfeasible, ErrMaxIterReached (with partial Result).
//
// Complexity:
//   - Time O(A·(n+m)² + A·n·m) for A augmentations (A ≤ n+m−1 in the
//     non-degenerate case), Space O(n·m).
func EMD(a, b []float64, cost matrix.Matrix, opts *Options) (*Result, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.MaxIterations < 1 || !(o.Epsilon >= 0) || !(o.BalanceTolerance >= 0) {
		return nil, fmt.Errorf("options: %w", ErrInvalidInput)
	}

	c, err := matrix.Flatten(cost)
	if err != nil {
		return nil, fmt.Errorf("cost: %w: %w", ErrInvalidInput, err)
	}
	n, m := cost.Rows(), cost.Cols()
	for k, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("cost(%d,%d)=%g: %w", k/m, k%m, v, ErrInvalidInput)
		}
	}
	if a, err = masses("source", a, n); err != nil {
		return nil, err
	}
	if b, err = masses("target", b, m); err != nil {
		return nil, err
	}

	sa, sb := floats.Sum(a), floats.Sum(b)
	if math.Abs(sa-sb) > o.BalanceTolerance*math.Max(sa, sb) {
		return nil, fmt.Errorf("Σsource=%g Σtarget=%g: %w", sa, sb, ErrInfeasible)
	}
	floats.Scale(sa/sb, b)

	// Stage 2: successive shortest paths.
	net := newNetwork(a, b, c, o.Epsilon*sa, o.Logger)
	var (
		routed float64
		steps  int
	)
	for sa-routed > net.eps {
		if steps >= o.MaxIterations {
			res := net.result(o)
			res.Augmentations = steps
			return res, fmt.Errorf("routed %g of %g after %d augmentations: %w", routed, sa, steps, ErrMaxIterReached)
		}
		if !net.shortestPath() {
			break
		}
		routed += net.augment()
		steps++
	}
	o.Logger.Debug().Int("augmentations", steps).Float64("mass", routed).Msg("exact solve finished")

	res := net.result(o)
	res.Augmentations = steps

	return res, nil
}

// EMD2 returns only the optimal transport cost ⟨P, C⟩.
func EMD2(a, b []float64, cost matrix.Matrix, opts *Options) (float64, error) {
	res, err := EMD(a, b, cost, opts)
	if err != nil {
		return 0, err
	}

	return res.Cost, nil
}

// result packages the current flow.
func (g *network) result(o Options) *Result {
	plan, _ := matrix.NewDenseFromData(g.n, g.m, append([]float64(nil), g.flow...))
	alpha, beta := g.duals()
	if o.CenterDuals {
		centerDuals(alpha, beta, g.a, g.b)
	}
	nullWeightDuals(alpha, beta, g.a, g.b, g.c)

	return &Result{
		Plan:  plan,
		Cost:  floats.Dot(g.flow, g.c),
		Alpha: alpha,
		Beta:  beta,
	}
}

// masses validates x against length n; empty means uniform. Returns a copy.
func masses(side string, x []float64, n int) ([]float64, error) {
	out := make([]float64, n)
	if len(x) == 0 {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out, nil
	}
	if len(x) != n {
		return nil, fmt.Errorf("%s mass has %d entries, cost has %d: %w", side, len(x), n, ErrInvalidInput)
	}
	for i, v := range x {
		if !(v >= 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s mass[%d]=%g: %w", side, i, v, ErrInvalidInput)
		}
	}
	copy(out, x)
	if floats.Sum(out) == 0 {
		return nil, fmt.Errorf("%s mass sums to zero: %w", side, ErrInvalidInput)
	}

	return out, nil
}
