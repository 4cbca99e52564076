// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"github.com/katalvlaran/lvlot/matrix"
)

// SinkhornKnopp solves entropic OT by alternating scaling.
// MAIN DESCRIPTION:
//   - Finds u, v > 0 such that P = diag(u)·K·diag(v), K = exp(-C/reg), has
//     row sums a and column sums b.
//
// Implementation:
//   - Stage 1: validate; build K; v = 1.
//   - Stage 2: repeat u = a ⊘ (K v), v = b ⊘ (Kᵀ u).
//   - Stage 3: every CheckInterval iterations measure ‖P1 − a‖ ⊕ ‖Pᵀ1 − b‖.
//
// Behavior highlights:
//   - A zero in Kᵀu at a column with positive mass, or any non-finite
//     scaling, ends the solve with NumericalInstability; the plan is built
//     from the last finite scalings. Zero-mass columns get v_j = 0.
//   - Small reg with large costs underflows K; use Stabilized there.
//
// Inputs:
//   - a, b: non-negative masses with equal totals (nil means uniform).
//   - cost: n×m, finite, non-negative. Not modified.
//   - reg : > 0.
//
// Errors:
//   - ErrInvalidInput family (see types.go).
//
// Complexity:
//   - Time O(iter·n·m), Space O(n·m).
func SinkhornKnopp(a, b []float64, cost matrix.Matrix, reg float64, opts ...Option) (*matrix.Dense, Diagnostics, error) {
	o := buildOptions(opts)
	p, err := newProblem(a, b, cost, reg, true, o)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	return run(MethodSinkhorn, newKnopp(p, o.Workers), p, o)
}

// knopp holds Sinkhorn-Knopp scaling state.
type knopp struct {
	p       *problem
	workers int
	k       []float64 // Gibbs kernel
	u, v    []float64
	uPrev   []float64
	vPrev   []float64
	kv, ktu []float64 // K v and Kᵀ u of the current iterate
}

func newKnopp(p *problem, workers int) *knopp {
	return &knopp{
		p:       p,
		workers: workers,
		k:       gibbs(p.c, p.reg),
		u:       ones(p.n),
		v:       ones(p.m),
		uPrev:   make([]float64, p.n),
		vPrev:   make([]float64, p.m),
		kv:      make([]float64, p.n),
		ktu:     make([]float64, p.m),
	}
}

func (s *knopp) step() bool {
	p := s.p
	copy(s.uPrev, s.u)
	copy(s.vPrev, s.v)

	mulVec(s.kv, s.k, s.v, p.n, p.m, s.workers)
	scaleInto(s.u, p.a, s.kv)

	mulTransVec(s.ktu, s.k, s.u, p.n, p.m, s.workers)
	for j, d := range s.ktu {
		if d == 0 && p.b[j] > 0 {
			s.revert()
			return false
		}
	}
	scaleInto(s.v, p.b, s.ktu)

	if !allFinite(s.u) || !allFinite(s.v) {
		s.revert()
		return false
	}

	return true
}

// revert restores the last finite scalings.
func (s *knopp) revert() {
	copy(s.u, s.uPrev)
	copy(s.v, s.vPrev)
}

// criterion measures both marginals of diag(u) K diag(v).
func (s *knopp) criterion() float64 {
	p := s.p
	mulVec(s.kv, s.k, s.v, p.n, p.m, s.workers)
	mulTransVec(s.ktu, s.k, s.u, p.n, p.m, s.workers)
	rows := make([]float64, p.n)
	cols := make([]float64, p.m)
	for i := range rows {
		rows[i] = s.u[i] * s.kv[i]
	}
	for j := range cols {
		cols[j] = s.v[j] * s.ktu[j]
	}

	return marginalError(rows, cols, p.a, p.b)
}

func (s *knopp) plan() []float64 {
	return scaledKernel(s.k, s.u, s.v, s.p.n, s.p.m)
}

func (s *knopp) potentials() (f, g []float64) {
	return scaledLog(s.u, s.p.reg), scaledLog(s.v, s.p.reg)
}

// scaleInto writes dst[i] = mass[i] / div[i], with zero mass mapping to zero.
func scaleInto(dst, mass, div []float64) {
	for i, w := range mass {
		if w == 0 {
			dst[i] = 0
			continue
		}
		dst[i] = w / div[i]
	}
}

// scaledKernel returns diag(u)·K·diag(v) in row-major order.
func scaledKernel(k, u, v []float64, n, m int) []float64 {
	out := make([]float64, n*m)
	var i, j int
	for i = 0; i < n; i++ {
		ui := u[i]
		row := k[i*m : (i+1)*m]
		dst := out[i*m : (i+1)*m]
		for j = 0; j < m; j++ {
			dst[j] = ui * row[j] * v[j]
		}
	}

	return out
}
