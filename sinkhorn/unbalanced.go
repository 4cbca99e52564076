// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlot/matrix"
)

// Unbalanced solves entropic OT with KL-relaxed marginals.
// MAIN DESCRIPTION:
//   - Minimizes ⟨P, C⟩ − reg·H(P) + weight·KL(P1 | a) + weight·KL(Pᵀ1 | b);
//     totals of a and b may differ and mass may be created or destroyed.
//
// Implementation:
//   - Stage 1: φ = weight / (weight + reg); u = v = 1.
//   - Stage 2: u = (a ⊘ K v)^φ, v = (b ⊘ Kᵀ u)^φ.
//   - Stage 3: stopping criterion: relative change of the scalings,
//     ½·(‖Δu‖∞ / max(‖u‖∞, ‖u_prev‖∞, 1) + ‖Δv‖∞ / max(‖v‖∞, ‖v_prev‖∞, 1)).
//
// Behavior highlights:
//   - weight → ∞ recovers the balanced fixed point; weight → 0 lets the plan
//     shrink towards zero.
//   - Diagnostics.MarginalErr reports how far the plan is from a and b; it is
//     expected to be non-zero.
//
// Errors:
//   - ErrBadUnbalancedWeight, ErrNegativeMass, ErrDimensionMismatch, other
//     ErrInvalidInput members.
//
// Complexity:
//   - Time O(iter·n·m), Space O(n·m).
func Unbalanced(a, b []float64, cost matrix.Matrix, reg, weight float64, opts ...Option) (*matrix.Dense, Diagnostics, error) {
	o := buildOptions(opts)
	if err := validWeight(weight); err != nil {
		return nil, Diagnostics{}, err
	}
	p, err := newProblem(a, b, cost, reg, false, o)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	return run(MethodUnbalanced, newUnbalanced(p, weight, o.Workers), p, o)
}

// unbalanced holds KL-relaxed scaling state.
type unbalanced struct {
	p       *problem
	workers int
	phi     float64
	k       []float64
	u, v    []float64
	uPrev   []float64
	vPrev   []float64
	kv, ktu []float64
	change  float64 // criterion of the last step
}

func newUnbalanced(p *problem, weight float64, workers int) *unbalanced {
	return &unbalanced{
		p:       p,
		workers: workers,
		phi:     weight / (weight + p.reg),
		k:       gibbs(p.c, p.reg),
		u:       ones(p.n),
		v:       ones(p.m),
		uPrev:   make([]float64, p.n),
		vPrev:   make([]float64, p.m),
		kv:      make([]float64, p.n),
		ktu:     make([]float64, p.m),
		change:  math.NaN(),
	}
}

func (s *unbalanced) step() bool {
	p := s.p
	copy(s.uPrev, s.u)
	copy(s.vPrev, s.v)

	mulVec(s.kv, s.k, s.v, p.n, p.m, s.workers)
	s.powScale(s.u, p.a, s.kv)

	mulTransVec(s.ktu, s.k, s.u, p.n, p.m, s.workers)
	for j, d := range s.ktu {
		if d == 0 && p.b[j] > 0 {
			s.revert()
			return false
		}
	}
	s.powScale(s.v, p.b, s.ktu)

	if !allFinite(s.u) || !allFinite(s.v) {
		s.revert()
		return false
	}
	s.change = 0.5 * (relChange(s.u, s.uPrev) + relChange(s.v, s.vPrev))

	return true
}

// powScale writes dst[i] = (mass[i] / div[i])^φ, zero mass mapping to zero.
func (s *unbalanced) powScale(dst, mass, div []float64) {
	for i, w := range mass {
		if w == 0 {
			dst[i] = 0
			continue
		}
		dst[i] = math.Pow(w/div[i], s.phi)
	}
}

func (s *unbalanced) revert() {
	copy(s.u, s.uPrev)
	copy(s.v, s.vPrev)
}

// relChange returns ‖x − prev‖∞ / max(‖x‖∞, ‖prev‖∞, 1).
func relChange(x, prev []float64) float64 {
	scale := math.Max(math.Max(floats.Norm(x, math.Inf(1)), floats.Norm(prev, math.Inf(1))), 1)

	return floats.Distance(x, prev, math.Inf(1)) / scale
}

func (s *unbalanced) criterion() float64 { return s.change }

func (s *unbalanced) plan() []float64 {
	return scaledKernel(s.k, s.u, s.v, s.p.n, s.p.m)
}

func (s *unbalanced) potentials() (f, g []float64) {
	return scaledLog(s.u, s.p.reg), scaledLog(s.v, s.p.reg)
}
