// SPDX-License-Identifier: MIT

package exact

import (
	"math"

	"github.com/rs/zerolog"
)

// Node layout of the transport network:
//
//	0            source s
//	1 .. n       supply nodes (rows)
//	n+1 .. n+m   demand nodes (columns)
//	n+m+1        sink t
//
// Arcs: s→i (cap a_i, cost 0), i→j (cap ∞, cost C_ij), j→t (cap b_j, cost 0),
// plus their residual reverses.
type network struct {
	n, m int
	c    []float64 // row-major cost
	a, b []float64

	flow []float64 // row-major shipped mass on i→j
	sent []float64 // flow on s→i
	recv []float64 // flow on j→t

	pi     []float64 // node potentials (reduced costs stay ≥ 0)
	dist   []float64
	parent []int
	done   []bool

	eps float64
	log zerolog.Logger
}

func newNetwork(a, b, c []float64, eps float64, log zerolog.Logger) *network {
	n, m := len(a), len(b)
	v := n + m + 2

	return &network{
		n: n, m: m, c: c, a: a, b: b,
		flow:   make([]float64, n*m),
		sent:   make([]float64, n),
		recv:   make([]float64, m),
		pi:     make([]float64, v),
		dist:   make([]float64, v),
		parent: make([]int, v),
		done:   make([]bool, v),
		eps:    eps,
		log:    log,
	}
}

func (g *network) sink() int        { return g.n + g.m + 1 }
func (g *network) row(node int) int { return node - 1 }
func (g *network) col(node int) int { return node - 1 - g.n }

// shortestPath runs dense Dijkstra from s on reduced costs and updates the
// potentials. It reports whether t is reachable.
// MAIN DESCRIPTION:
//   - Successive-shortest-path step; O(V²) with V = n + m + 2.
//
// Implementation:
//   - Stage 1: init dist = +Inf, dist[s] = 0.
//   - Stage 2: repeatedly settle the closest unsettled node (lowest index on
//     ties) and relax its residual arcs; stop when t settles.
//   - Stage 3: π_v += min(dist_v, dist_t) for every node, which keeps every
//     residual reduced cost non-negative for the next round.
func (g *network) shortestPath() bool {
	t := g.sink()
	for v := range g.dist {
		g.dist[v] = math.Inf(1)
		g.parent[v] = -1
		g.done[v] = false
	}
	g.dist[0] = 0

	for {
		u, best := -1, math.Inf(1)
		for v, d := range g.dist {
			if !g.done[v] && d < best {
				u, best = v, d
			}
		}
		if u < 0 {
			break
		}
		g.done[u] = true
		if u == t {
			break
		}
		g.relax(u)
	}

	dt := g.dist[t]
	if math.IsInf(dt, 1) {
		return false
	}
	for v := range g.pi {
		g.pi[v] += math.Min(g.dist[v], dt)
	}

	return true
}

// relax scans the residual arcs leaving u.
func (g *network) relax(u int) {
	n, m := g.n, g.m
	switch {
	case u == 0:
		for i := 0; i < n; i++ {
			if g.a[i]-g.sent[i] > g.eps {
				g.try(0, 1+i, 0)
			}
		}
	case u <= n:
		i := g.row(u)
		for j := 0; j < m; j++ {
			g.try(u, 1+n+j, g.c[i*m+j])
		}
	default:
		j := g.col(u)
		for i := 0; i < n; i++ {
			if g.flow[i*m+j] > g.eps {
				g.try(u, 1+i, -g.c[i*m+j])
			}
		}
		if g.b[j]-g.recv[j] > g.eps {
			g.try(u, g.sink(), 0)
		}
	}
}

// try relaxes arc u→v of the given cost using reduced costs.
func (g *network) try(u, v int, cost float64) {
	if g.done[v] {
		return
	}
	rc := cost + g.pi[u] - g.pi[v]
	if rc < 0 {
		rc = 0 // rounding noise; true reduced costs are ≥ 0
	}
	if d := g.dist[u] + rc; d < g.dist[v] {
		g.dist[v] = d
		g.parent[v] = u
	}
}

// augment pushes the bottleneck amount along the parent path s ⇝ t and
// returns it.
func (g *network) augment() float64 {
	n, m := g.n, g.m
	push := math.Inf(1)

	// Stage 1: bottleneck.
	for v := g.sink(); v != 0; v = g.parent[v] {
		u := g.parent[v]
		switch {
		case u == 0:
			push = math.Min(push, g.a[g.row(v)]-g.sent[g.row(v)])
		case v == g.sink():
			push = math.Min(push, g.b[g.col(u)]-g.recv[g.col(u)])
		case u > n: // backward arc j→i
			push = math.Min(push, g.flow[g.row(v)*m+g.col(u)])
		}
	}

	// Stage 2: apply.
	for v := g.sink(); v != 0; v = g.parent[v] {
		u := g.parent[v]
		switch {
		case u == 0:
			g.sent[g.row(v)] += push
		case v == g.sink():
			g.recv[g.col(u)] += push
		case u > n:
			g.flow[g.row(v)*m+g.col(u)] -= push
		default:
			g.flow[g.row(u)*m+g.col(v)] += push
		}
	}
	g.log.Trace().Float64("mass", push).Float64("path_cost", g.pi[g.sink()]-g.pi[0]).Msg("augment")

	return push
}

// duals returns (α, β) with α_i = −π_i, β_j = π_j, normalized so that the
// source potential is zero. Reduced-cost optimality gives α_i + β_j ≤ C_ij.
func (g *network) duals() (alpha, beta []float64) {
	alpha = make([]float64, g.n)
	beta = make([]float64, g.m)
	base := g.pi[0]
	for i := range alpha {
		alpha[i] = -(g.pi[1+i] - base)
	}
	for j := range beta {
		beta[j] = g.pi[1+g.n+j] - base
	}

	return alpha, beta
}
