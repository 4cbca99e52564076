// SPDX-License-Identifier: MIT

package sinkhorn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlot/matrix"
	"github.com/katalvlaran/lvlot/sinkhorn"
)

// solverFn is the common shape of the balanced solvers.
type solverFn func(a, b []float64, cost matrix.Matrix, reg float64, opts ...sinkhorn.Option) (*matrix.Dense, sinkhorn.Diagnostics, error)

// balanced lists every balanced solver under a test name.
var balanced = []struct {
	name  string
	solve solverFn
}{
	{"sinkhorn", sinkhorn.SinkhornKnopp},
	{"stabilized", sinkhorn.Stabilized},
	{"greedy", sinkhorn.Greedy},
}

func mustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// swapCost is the 2×2 cost with free diagonal moves.
func swapCost(t testing.TB) *matrix.Dense {
	return mustDense(t, [][]float64{{0, 1}, {1, 0}})
}

// lineProblem: five source and four target atoms on [0, 1], squared distance.
func lineProblem(t testing.TB) (a, b []float64, cost *matrix.Dense) {
	src := []float64{0, 0.1, 0.35, 0.6, 0.9}
	dst := []float64{0.05, 0.4, 0.7, 1.0}
	rows := make([][]float64, len(src))
	for i, x := range src {
		rows[i] = make([]float64, len(dst))
		for j, y := range dst {
			rows[i][j] = (x - y) * (x - y)
		}
	}

	return []float64{0.2, 0.2, 0.2, 0.2, 0.2}, []float64{0.25, 0.25, 0.25, 0.25}, mustDense(t, rows)
}

// randomProblem builds an n×m problem with random masses and costs in [0, 1).
func randomProblem(t testing.TB, seed int64, n, m int) (a, b []float64, cost *matrix.Dense) {
	rng := rand.New(rand.NewSource(seed))
	a = make([]float64, n)
	b = make([]float64, m)
	var sa, sb float64
	for i := range a {
		a[i] = rng.Float64() + 0.1
		sa += a[i]
	}
	for j := range b {
		b[j] = rng.Float64() + 0.1
		sb += b[j]
	}
	for i := range a {
		a[i] /= sa
	}
	for j := range b {
		b[j] /= sb
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, m)
		for j := range rows[i] {
			rows[i][j] = rng.Float64()
		}
	}

	return a, b, mustDense(t, rows)
}
