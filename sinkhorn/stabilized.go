// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlot/internal/parallel"
	"github.com/katalvlaran/lvlot/matrix"
)

// Stabilized solves entropic OT with log-domain updates.
// MAIN DESCRIPTION:
//   - Same fixed point as SinkhornKnopp, iterated on additive potentials
//     instead of multiplicative scalings, so tiny reg does not underflow.
//
// Implementation:
//   - Stage 1: reference potentials α, β from row/column minima of C; the
//     reference kernel logK = (α_i + β_j − C_ij)/reg has a zero in every row
//     and column.
//   - Stage 2: f_i = reg·(log a_i − LSE_j(logK_ij + g_j/reg)),
//     g_j = reg·(log b_j − LSE_i(logK_ij + f_i/reg)).
//   - Stage 3: absorption: once exp(max(|f|,|g|)/reg) > AbsorptionThreshold,
//     fold α += f, β += g, rebuild logK and reset f = g = 0.
//   - Stage 4: P_ij = exp(logK_ij + (f_i + g_j)/reg), built only for checks
//     and for the final plan.
//
// Behavior highlights:
//   - Zero-mass atoms are outside the support: their plan rows/columns are 0.
//   - Returned potentials are α + f and β + g.
//   - A lower AbsorptionThreshold absorbs more often (O(n·m) each time).
//
// Errors:
//   - ErrInvalidInput family (see types.go).
//
// Complexity:
//   - Time O(iter·n·m) exp/log, Space O(n·m).
func Stabilized(a, b []float64, cost matrix.Matrix, reg float64, opts ...Option) (*matrix.Dense, Diagnostics, error) {
	o := buildOptions(opts)
	p, err := newProblem(a, b, cost, reg, true, o)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	return run(MethodStabilized, newStabilized(p, o), p, o)
}

// stabilized holds log-domain state.
type stabilized struct {
	p       *problem
	workers int
	lnTau   float64 // absorption bound on |potential|/reg

	logK        []float64 // (α_i + β_j − C_ij)/reg
	alpha, beta []float64 // absorbed reference potentials
	f, g        []float64 // working potentials
	fPrev       []float64
	gPrev       []float64
	logA, logB  []float64
	rows, cols  []int // support: indices of non-zero mass

	absorbed int
}

func newStabilized(p *problem, o Options) *stabilized {
	s := &stabilized{
		p:       p,
		workers: o.Workers,
		lnTau:   math.Log(o.AbsorptionThreshold),
		logK:    make([]float64, p.n*p.m),
		alpha:   make([]float64, p.n),
		beta:    make([]float64, p.m),
		f:       make([]float64, p.n),
		g:       make([]float64, p.m),
		fPrev:   make([]float64, p.n),
		gPrev:   make([]float64, p.m),
		logA:    make([]float64, p.n),
		logB:    make([]float64, p.m),
	}
	for i, w := range p.a {
		s.logA[i] = math.Log(w)
		if w > 0 {
			s.rows = append(s.rows, i)
		}
	}
	for j, w := range p.b {
		s.logB[j] = math.Log(w)
		if w > 0 {
			s.cols = append(s.cols, j)
		}
	}
	s.seedReference()

	return s
}

// seedReference sets α_i = min_j C_ij, β_j = min_i (C_ij − α_i) over the
// support and builds logK.
func (s *stabilized) seedReference() {
	p := s.p
	for _, i := range s.rows {
		best := math.Inf(1)
		for _, j := range s.cols {
			best = math.Min(best, p.c[i*p.m+j])
		}
		s.alpha[i] = best
	}
	for _, j := range s.cols {
		best := math.Inf(1)
		for _, i := range s.rows {
			best = math.Min(best, p.c[i*p.m+j]-s.alpha[i])
		}
		s.beta[j] = best
	}
	s.rebuildKernel()
}

// rebuildKernel recomputes logK from C, α and β.
func (s *stabilized) rebuildKernel() {
	p := s.p
	parallel.For(p.n, s.workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < p.m; j++ {
				s.logK[i*p.m+j] = (s.alpha[i] + s.beta[j] - p.c[i*p.m+j]) / p.reg
			}
		}
	})
}

func (s *stabilized) step() bool {
	p := s.p
	copy(s.fPrev, s.f)
	copy(s.gPrev, s.g)

	// f update: one LSE per supported row over supported columns.
	parallel.For(len(s.rows), s.workers, func(lo, hi int) {
		buf := make([]float64, len(s.cols))
		for _, i := range s.rows[lo:hi] {
			for t, j := range s.cols {
				buf[t] = s.logK[i*p.m+j] + s.g[j]/p.reg
			}
			s.f[i] = p.reg * (s.logA[i] - floats.LogSumExp(buf))
		}
	})

	// g update: one LSE per supported column over supported rows.
	parallel.For(len(s.cols), s.workers, func(lo, hi int) {
		buf := make([]float64, len(s.rows))
		for _, j := range s.cols[lo:hi] {
			for t, i := range s.rows {
				buf[t] = s.logK[i*p.m+j] + s.f[i]/p.reg
			}
			s.g[j] = p.reg * (s.logB[j] - floats.LogSumExp(buf))
		}
	})

	if !allFinite(s.f) || !allFinite(s.g) {
		copy(s.f, s.fPrev)
		copy(s.g, s.gPrev)
		return false
	}

	if s.peak()/p.reg > s.lnTau {
		s.absorb()
	}

	return true
}

// peak returns max(|f|, |g|) over the support.
func (s *stabilized) peak() float64 {
	var best float64
	for _, i := range s.rows {
		best = math.Max(best, math.Abs(s.f[i]))
	}
	for _, j := range s.cols {
		best = math.Max(best, math.Abs(s.g[j]))
	}

	return best
}

// absorb folds the working potentials into the reference kernel.
func (s *stabilized) absorb() {
	floats.Add(s.alpha, s.f)
	floats.Add(s.beta, s.g)
	for i := range s.f {
		s.f[i] = 0
	}
	for j := range s.g {
		s.g[j] = 0
	}
	s.rebuildKernel()
	s.absorbed++
}

func (s *stabilized) absorptions() int { return s.absorbed }

func (s *stabilized) criterion() float64 {
	p := s.p
	rows, cols := planMarginals(s.plan(), p.n, p.m)

	return marginalError(rows, cols, p.a, p.b)
}

func (s *stabilized) plan() []float64 {
	p := s.p
	out := make([]float64, p.n*p.m)
	for _, i := range s.rows {
		for _, j := range s.cols {
			out[i*p.m+j] = math.Exp(s.logK[i*p.m+j] + (s.f[i]+s.g[j])/p.reg)
		}
	}

	return out
}

func (s *stabilized) potentials() (f, g []float64) {
	f = make([]float64, s.p.n)
	g = make([]float64, s.p.m)
	floats.AddTo(f, s.alpha, s.f)
	floats.AddTo(g, s.beta, s.g)

	return f, g
}
