// SPDX-License-Identifier: MIT

package sinkhorn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlot/convergence"
	"github.com/katalvlaran/lvlot/exact"
	"github.com/katalvlaran/lvlot/matrix"
	"github.com/katalvlaran/lvlot/sinkhorn"
)

func TestBalanced_SwapReg1(t *testing.T) {
	want := mustDense(t, [][]float64{
		{0.36552928931500245, 0.13447071068499758},
		{0.13447071068499758, 0.36552928931500245},
	})
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			plan, diag, err := tc.solve([]float64{0.5, 0.5}, []float64{0.5, 0.5}, swapCost(t), 1)
			require.NoError(t, err)
			assert.Equal(t, convergence.Converged, diag.Status)
			ok, err := matrix.AllClose(plan, want, 0, 1e-7)
			require.NoError(t, err)
			assert.Truef(t, ok, "plan:\n%v", plan)
		})
	}
}

func TestBalanced_SwapRegSmall(t *testing.T) {
	want := mustDense(t, [][]float64{{0.5, 0}, {0, 0.5}})
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			plan, diag, err := tc.solve([]float64{0.5, 0.5}, []float64{0.5, 0.5}, swapCost(t), 0.1)
			require.NoError(t, err)
			assert.True(t, diag.Converged())
			ok, _ := matrix.AllClose(plan, want, 0, 1e-3)
			assert.Truef(t, ok, "plan:\n%v", plan)
		})
	}
}

func TestBalanced_MarginalsWhenConverged(t *testing.T) {
	a, b, cost := lineProblem(t)
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			tol := 1e-9
			plan, diag, err := tc.solve(a, b, cost, 0.05,
				sinkhorn.WithTolerance(tol), sinkhorn.WithMaxIterations(20000))
			require.NoError(t, err)
			require.Equal(t, convergence.Converged, diag.Status)
			assert.LessOrEqual(t, diag.Err, tol)

			rs, _ := matrix.RowSums(plan)
			cs, _ := matrix.ColSums(plan)
			assert.InDeltaSlice(t, a, rs, tol)
			assert.InDeltaSlice(t, b, cs, tol)
			assert.LessOrEqual(t, diag.MarginalErr, 10*tol)

			for _, row := range plan.ToRows() {
				for _, v := range row {
					assert.GreaterOrEqual(t, v, 0.0)
				}
			}
		})
	}
}

func TestBalanced_SingleAtom(t *testing.T) {
	cost := mustDense(t, [][]float64{{3}})
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			plan, diag, err := tc.solve([]float64{0.7}, []float64{0.7}, cost, 0.1)
			require.NoError(t, err)
			assert.True(t, diag.Converged())
			v, _ := plan.At(0, 0)
			assert.InDelta(t, 0.7, v, 1e-12)
		})
	}
}

func TestBalanced_EmptyMassIsUniform(t *testing.T) {
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			p1, _, err := tc.solve(nil, nil, swapCost(t), 1)
			require.NoError(t, err)
			p2, _, err := tc.solve([]float64{0.5, 0.5}, []float64{0.5, 0.5}, swapCost(t), 1)
			require.NoError(t, err)
			assert.Equal(t, p2.ToRows(), p1.ToRows())
		})
	}
}

// TestStabilized_SurvivesTinyReg: costs in [0, 100] with reg = 1e-6 underflow
// the Gibbs kernel entirely; only the log-domain solver gets through. The
// optimal assignment is the permutation 0→1, 1→2, 2→0.
func TestStabilized_SurvivesTinyReg(t *testing.T) {
	cost := mustDense(t, [][]float64{{50, 0, 100}, {60, 40, 2}, {3, 30, 100}})
	third := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

	plan, diag, err := sinkhorn.SinkhornKnopp(third, third, cost, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, convergence.NumericalInstability, diag.Status)
	assert.Equal(t, 1, diag.Iterations)
	for _, row := range plan.ToRows() {
		for _, v := range row {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}

	plan, diag, err = sinkhorn.Stabilized(third, third, cost, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, convergence.Converged, diag.Status)
	want := mustDense(t, [][]float64{{0, 1.0 / 3, 0}, {0, 0, 1.0 / 3}, {1.0 / 3, 0, 0}})
	ok, _ := matrix.AllClose(plan, want, 0, 1e-9)
	assert.Truef(t, ok, "plan:\n%v", plan)

	_, diag, err = sinkhorn.Greedy(third, third, cost, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, convergence.NumericalInstability, diag.Status)
}

func TestStabilized_Absorption(t *testing.T) {
	a, b, cost := lineProblem(t)

	ref, diag, err := sinkhorn.Stabilized(a, b, cost, 0.01)
	require.NoError(t, err)
	require.True(t, diag.Converged())
	base := diag.Absorptions

	got, diag, err := sinkhorn.Stabilized(a, b, cost, 0.01, sinkhorn.WithAbsorptionThreshold(1.5))
	require.NoError(t, err)
	require.True(t, diag.Converged())
	assert.Greater(t, diag.Absorptions, base)

	ok, _ := matrix.AllClose(got, ref, 0, 1e-9)
	assert.True(t, ok)

	knopp, diag, err := sinkhorn.SinkhornKnopp(a, b, cost, 0.01)
	require.NoError(t, err)
	require.True(t, diag.Converged())
	ok, _ = matrix.AllClose(knopp, ref, 0, 1e-8)
	assert.True(t, ok)
}

func TestStabilized_ZeroMassAtoms(t *testing.T) {
	cost := mustDense(t, [][]float64{{0, 1, 2}, {1, 0, 1}, {2, 1, 0}})
	a := []float64{0.5, 0, 0.5}
	b := []float64{0.5, 0.5, 0}

	plan, diag, err := sinkhorn.Stabilized(a, b, cost, 0.1, sinkhorn.WithPotentials())
	require.NoError(t, err)
	require.True(t, diag.Converged())
	rows := plan.ToRows()
	assert.Equal(t, []float64{0, 0, 0}, rows[1])
	for i := range rows {
		assert.Zero(t, rows[i][2])
	}
	require.NotNil(t, diag.Potentials)
	for _, f := range diag.Potentials.F {
		assert.False(t, math.IsInf(f, 0))
	}
}

// TestZeroMassColumnWithUnderflowedKernel: a zero-mass target whose kernel
// column underflows to 0 is not an instability; its scaling is just 0.
func TestZeroMassColumnWithUnderflowedKernel(t *testing.T) {
	cost := mustDense(t, [][]float64{{0, 1000}, {1000, 0}})
	a := []float64{1, 0}
	b := []float64{1, 0}
	want := mustDense(t, [][]float64{{1, 0}, {0, 0}})

	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			plan, diag, err := tc.solve(a, b, cost, 1)
			require.NoError(t, err)
			assert.Equal(t, convergence.Converged, diag.Status)
			ok, _ := matrix.AllClose(plan, want, 0, 1e-12)
			assert.Truef(t, ok, "plan:\n%v", plan)
		})
	}

	t.Run("unbalanced", func(t *testing.T) {
		plan, diag, err := sinkhorn.Unbalanced(a, b, cost, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, convergence.Converged, diag.Status)
		ok, _ := matrix.AllClose(plan, want, 0, 1e-12)
		assert.Truef(t, ok, "plan:\n%v", plan)
	})
}

// TestRegularizedCostApproachesExact: the entropic transport cost decreases
// with reg and stays above the exact optimum.
func TestRegularizedCostApproachesExact(t *testing.T) {
	a, b, cost := lineProblem(t)
	opt, err := exact.EMD2(a, b, cost, nil)
	require.NoError(t, err)

	prev := math.Inf(1)
	for _, reg := range []float64{1, 0.5, 0.1, 0.05, 0.01, 0.005} {
		plan, diag, err := sinkhorn.Stabilized(a, b, cost, reg, sinkhorn.WithMaxIterations(5000))
		require.NoError(t, err)
		require.Truef(t, diag.Converged(), "reg=%g", reg)

		got, err := sinkhorn.TransportCost(plan, cost)
		require.NoError(t, err)
		assert.GreaterOrEqualf(t, got, opt-1e-12, "reg=%g", reg)
		assert.Lessf(t, got, prev, "reg=%g", reg)
		prev = got
	}
	assert.InDelta(t, opt, prev, 1e-6)
}

func TestPotentialsReproducePlan(t *testing.T) {
	a, b, cost := lineProblem(t)
	reg := 0.05
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			plan, diag, err := tc.solve(a, b, cost, reg,
				sinkhorn.WithPotentials(), sinkhorn.WithMaxIterations(20000))
			require.NoError(t, err)
			require.NotNil(t, diag.Potentials)
			f, g := diag.Potentials.F, diag.Potentials.G
			for i := range f {
				for j := range g {
					c, _ := cost.At(i, j)
					p, _ := plan.At(i, j)
					assert.InDelta(t, p, math.Exp((f[i]+g[j]-c)/reg), 1e-12)
				}
			}
		})
	}
}

func TestDeterministicAcrossRunsAndWorkers(t *testing.T) {
	a, b, cost := randomProblem(t, 11, 48, 40)
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			p1, d1, err := tc.solve(a, b, cost, 0.1)
			require.NoError(t, err)
			p2, d2, err := tc.solve(a, b, cost, 0.1)
			require.NoError(t, err)
			p3, d3, err := tc.solve(a, b, cost, 0.1, sinkhorn.WithWorkers(4))
			require.NoError(t, err)

			assert.Equal(t, p1.ToRows(), p2.ToRows())
			assert.Equal(t, p1.ToRows(), p3.ToRows())
			assert.Equal(t, d1.Iterations, d2.Iterations)
			assert.Equal(t, d1.Iterations, d3.Iterations)
		})
	}
}

func TestInputsNotModified(t *testing.T) {
	a, b, cost := lineProblem(t)
	aCopy := append([]float64(nil), a...)
	bCopy := append([]float64(nil), b...)
	costCopy := cost.ToRows()

	for _, tc := range balanced {
		_, _, err := tc.solve(a, b, cost, 0.1)
		require.NoError(t, err)
	}
	_, _, err := sinkhorn.Unbalanced(a, b, cost, 0.1, 1)
	require.NoError(t, err)

	assert.Equal(t, aCopy, a)
	assert.Equal(t, bCopy, b)
	assert.Equal(t, costCopy, cost.ToRows())
}

func TestMaxIterationsReached(t *testing.T) {
	a, b, cost := lineProblem(t)
	_, diag, err := sinkhorn.Greedy(a, b, cost, 0.01, sinkhorn.WithMaxIterations(3))
	require.NoError(t, err)
	assert.Equal(t, convergence.MaxIterationsReached, diag.Status)
	assert.Equal(t, 3, diag.Iterations)
	assert.False(t, diag.Converged())
}

func TestDiagnosticsHistory(t *testing.T) {
	a, b, cost := lineProblem(t)
	for _, tc := range balanced {
		t.Run(tc.name, func(t *testing.T) {
			_, diag, err := tc.solve(a, b, cost, 0.5)
			require.NoError(t, err)
			require.True(t, diag.Converged())
			require.Len(t, diag.History, diag.Iterations/sinkhorn.DefaultCheckInterval)
			assert.Equal(t, diag.Err, diag.History[len(diag.History)-1])
			assert.Greater(t, diag.History[0], diag.Err)
		})
	}

	_, diag, err := sinkhorn.Greedy(a, b, cost, 0.01, sinkhorn.WithMaxIterations(3))
	require.NoError(t, err)
	assert.Len(t, diag.History, 1)
}

func TestPatienceStalls(t *testing.T) {
	a, b, cost := lineProblem(t)
	// MinImprovement 1 only counts a check that reaches zero error as progress.
	_, diag, err := sinkhorn.SinkhornKnopp(a, b, cost, 0.01, sinkhorn.WithPatience(2, 1))
	require.NoError(t, err)
	assert.Equal(t, convergence.Stalled, diag.Status)
	assert.Equal(t, 30, diag.Iterations)
	assert.Len(t, diag.History, 3)
	assert.False(t, diag.Converged())
}

func TestGreedy_TieBreak(t *testing.T) {
	half := []float64{0.5, 0.5}
	one := sinkhorn.WithMaxIterations(1)

	// Every row and column starts with the same violation: the default sends
	// the tie to column 0.
	_, diag, err := sinkhorn.Greedy(half, half, swapCost(t), 1, one, sinkhorn.WithPotentials())
	require.NoError(t, err)
	assert.Equal(t, diag.Potentials.F[0], diag.Potentials.F[1])
	assert.NotEqual(t, diag.Potentials.G[0], diag.Potentials.G[1])
	assert.InDelta(t, math.Log(0.5), diag.Potentials.G[1], 1e-15)

	_, diag, err = sinkhorn.Greedy(half, half, swapCost(t), 1, one,
		sinkhorn.WithPotentials(), sinkhorn.WithTieBreak(sinkhorn.PreferRows))
	require.NoError(t, err)
	assert.NotEqual(t, diag.Potentials.F[0], diag.Potentials.F[1])
	assert.Equal(t, diag.Potentials.G[0], diag.Potentials.G[1])
}

func TestParseTieBreak(t *testing.T) {
	for name, want := range map[string]sinkhorn.TieBreak{
		"":        sinkhorn.PreferColumns,
		"columns": sinkhorn.PreferColumns,
		"Rows":    sinkhorn.PreferRows,
	} {
		got, err := sinkhorn.ParseTieBreak(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := sinkhorn.ParseTieBreak("diagonal")
	assert.ErrorIs(t, err, sinkhorn.ErrBadOption)
	assert.Equal(t, sinkhorn.PreferColumns, sinkhorn.DefaultOptions().TieBreak)
}

func TestUnbalanced_Reference(t *testing.T) {
	third := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	quarter := []float64{0.25, 0.25, 0.25, 0.25}
	cost := mustDense(t, [][]float64{
		{0.5, 0, 0, 0},
		{0, 0.5, 0, 0},
		{0, 0, 0.5, 0},
	})
	want := mustDense(t, [][]float64{
		{0.1275635298570264, 0.16379481457882747, 0.16379481457882747, 0.1564378517470217},
		{0.16379481457882747, 0.1275635298570264, 0.16379481457882747, 0.1564378517470217},
		{0.16379481457882747, 0.16379481457882747, 0.1275635298570264, 0.1564378517470217},
	})

	plan, diag, err := sinkhorn.Unbalanced(third, quarter, cost, 2, 3)
	require.NoError(t, err)
	assert.True(t, diag.Converged())
	ok, _ := matrix.AllClose(plan, want, 0, 1e-8)
	assert.Truef(t, ok, "plan:\n%v", plan)
	assert.Positive(t, diag.MarginalErr)
}

func TestUnbalanced_MassBetweenTotals(t *testing.T) {
	plan, diag, err := sinkhorn.Unbalanced([]float64{0.5, 0.5}, []float64{1, 1}, swapCost(t), 0.1, 1)
	require.NoError(t, err)
	require.True(t, diag.Converged())
	total, _ := matrix.Sum(plan)
	assert.InDelta(t, 1.4377498056444449, total, 1e-6)

	plan, _, err = sinkhorn.Unbalanced([]float64{2}, []float64{1}, mustDense(t, [][]float64{{0}}), 0.1, 1)
	require.NoError(t, err)
	v, _ := plan.At(0, 0)
	assert.InDelta(t, 1.3910656192458297, v, 1e-6)
}

func TestUnbalanced_LargeWeightIsBalanced(t *testing.T) {
	a, b, cost := lineProblem(t)
	want, _, err := sinkhorn.SinkhornKnopp(a, b, cost, 0.1)
	require.NoError(t, err)
	got, diag, err := sinkhorn.Unbalanced(a, b, cost, 0.1, 1e6)
	require.NoError(t, err)
	require.True(t, diag.Converged())
	ok, _ := matrix.AllClose(got, want, 0, 1e-5)
	assert.True(t, ok)
}

func TestSolveDispatch(t *testing.T) {
	a, b, cost := lineProblem(t)
	for _, m := range []sinkhorn.Method{
		sinkhorn.MethodSinkhorn, sinkhorn.MethodStabilized, sinkhorn.MethodGreedy, sinkhorn.MethodUnbalanced,
	} {
		_, diag, err := sinkhorn.Solve(m, a, b, cost, 0.5, sinkhorn.WithUnbalancedWeight(2))
		require.NoError(t, err)
		assert.Equal(t, m, diag.Method)
		assert.True(t, diag.Converged(), m.String())
	}

	_, _, err := sinkhorn.Solve(sinkhorn.Method(42), a, b, cost, 0.5)
	assert.ErrorIs(t, err, sinkhorn.ErrUnknownMethod)
	assert.ErrorIs(t, err, sinkhorn.ErrInvalidInput)

	_, _, err = sinkhorn.Solve(sinkhorn.MethodUnbalanced, a, b, cost, 0.5, sinkhorn.WithUnbalancedWeight(0))
	assert.ErrorIs(t, err, sinkhorn.ErrBadUnbalancedWeight)
}

func TestTransportCost(t *testing.T) {
	plan := mustDense(t, [][]float64{{0.5, 0}, {0, 0.5}})
	got, err := sinkhorn.TransportCost(plan, mustDense(t, [][]float64{{1, 9}, {9, 3}}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	_, err = sinkhorn.TransportCost(plan, mustDense(t, [][]float64{{1}}))
	assert.ErrorIs(t, err, sinkhorn.ErrDimensionMismatch)
}

func TestParseMethod(t *testing.T) {
	for name, want := range map[string]sinkhorn.Method{
		"":            sinkhorn.MethodSinkhorn,
		"Greenkhorn":  sinkhorn.MethodGreedy,
		"log":         sinkhorn.MethodStabilized,
		" unbalanced": sinkhorn.MethodUnbalanced,
	} {
		got, err := sinkhorn.ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := sinkhorn.ParseMethod("simplex")
	assert.ErrorIs(t, err, sinkhorn.ErrUnknownMethod)
}
