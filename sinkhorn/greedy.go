// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlot/matrix"
)

// Greedy solves entropic OT with Greenkhorn updates.
// MAIN DESCRIPTION:
//   - Instead of rescaling every row and then every column, each iteration
//     rescales only the single row or column whose marginal is furthest off.
//
// Implementation:
//   - Stage 1: u = 1/n, v = 1/m, G = diag(u)·K·diag(v), violations
//     r = G1 − a and c = Gᵀ1 − b.
//   - Stage 2: pick i* = argmax|r_i|, j* = argmax|c_j| (lowest index on ties);
//     update the row when |r_i*| > |c_j*|, the column when smaller, and follow
//     Options.TieBreak when equal (the column by default).
//   - Stage 3: row update u_i = a_i / (K_i·v); G row and c are patched in
//     O(m). Column update is symmetric in O(n).
//   - Stage 4: checks recompute r and c from the whole of G.
//
// Behavior highlights:
//   - One iteration is one row or column update; budget MaxIterations accordingly.
//   - A zero divisor or non-finite scaling ends with NumericalInstability.
//
// Complexity:
//   - Time O(n + m) per iteration plus O(n·m) per check, Space O(n·m).
func Greedy(a, b []float64, cost matrix.Matrix, reg float64, opts ...Option) (*matrix.Dense, Diagnostics, error) {
	o := buildOptions(opts)
	p, err := newProblem(a, b, cost, reg, true, o)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	return run(MethodGreedy, newGreedy(p, o.TieBreak), p, o)
}

// greedy holds Greenkhorn state.
type greedy struct {
	p      *problem
	tie    TieBreak
	k      []float64 // Gibbs kernel
	g      []float64 // current plan diag(u) K diag(v)
	u, v   []float64
	rowErr []float64 // G1 − a
	colErr []float64 // Gᵀ1 − b
}

func newGreedy(p *problem, tie TieBreak) *greedy {
	s := &greedy{
		p:   p,
		tie: tie,
		k:   gibbs(p.c, p.reg),
		u:   make([]float64, p.n),
		v:   make([]float64, p.m),
	}
	for i := range s.u {
		s.u[i] = 1 / float64(p.n)
	}
	for j := range s.v {
		s.v[j] = 1 / float64(p.m)
	}
	s.g = scaledKernel(s.k, s.u, s.v, p.n, p.m)
	s.resync()

	return s
}

// resync recomputes both violation vectors from G.
func (s *greedy) resync() {
	rows, cols := planMarginals(s.g, s.p.n, s.p.m)
	floats.SubTo(rows, rows, s.p.a)
	floats.SubTo(cols, cols, s.p.b)
	s.rowErr, s.colErr = rows, cols
}

// argmaxAbs returns the lowest index of the largest |x_i| and that magnitude.
func argmaxAbs(x []float64) (int, float64) {
	idx, best := 0, math.Abs(x[0])
	for i := 1; i < len(x); i++ {
		if v := math.Abs(x[i]); v > best {
			idx, best = i, v
		}
	}

	return idx, best
}

func (s *greedy) step() bool {
	i, ri := argmaxAbs(s.rowErr)
	j, cj := argmaxAbs(s.colErr)

	if ri > cj || (ri == cj && s.tie == PreferRows) {
		return s.updateRow(i)
	}

	return s.updateCol(j)
}

// updateRow rescales row i so that its sum becomes a_i.
func (s *greedy) updateRow(i int) bool {
	p := s.p
	k := s.k[i*p.m : (i+1)*p.m]
	denom := floats.Dot(k, s.v)
	next := 0.0
	if p.a[i] > 0 {
		if denom == 0 {
			return false
		}
		next = p.a[i] / denom
	}
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return false
	}

	row := s.g[i*p.m : (i+1)*p.m]
	var fresh float64
	for j := range row {
		fresh = next * k[j] * s.v[j]
		s.colErr[j] += fresh - row[j]
		row[j] = fresh
	}
	s.u[i] = next
	s.rowErr[i] = next*denom - p.a[i]

	return true
}

// updateCol rescales column j so that its sum becomes b_j.
func (s *greedy) updateCol(j int) bool {
	p := s.p
	var denom float64
	for i := 0; i < p.n; i++ {
		denom += s.k[i*p.m+j] * s.u[i]
	}
	next := 0.0
	if p.b[j] > 0 {
		if denom == 0 {
			return false
		}
		next = p.b[j] / denom
	}
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return false
	}

	var fresh float64
	for i := 0; i < p.n; i++ {
		idx := i*p.m + j
		fresh = s.u[i] * s.k[idx] * next
		s.rowErr[i] += fresh - s.g[idx]
		s.g[idx] = fresh
	}
	s.v[j] = next
	s.colErr[j] = next*denom - p.b[j]

	return true
}

func (s *greedy) criterion() float64 {
	s.resync()

	return math.Hypot(floats.Norm(s.rowErr, 2), floats.Norm(s.colErr, 2))
}

func (s *greedy) plan() []float64 {
	out := make([]float64, len(s.g))
	copy(out, s.g)

	return out
}

func (s *greedy) potentials() (f, g []float64) {
	return scaledLog(s.u, s.p.reg), scaledLog(s.v, s.p.reg)
}
