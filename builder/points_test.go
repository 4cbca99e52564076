// SPDX-License-Identifier: MIT

package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlot/builder"
)

func TestGrid1D(t *testing.T) {
	pts, err := builder.Grid1D(5)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0}, {0.25}, {0.5}, {0.75}, {1}}, pts)

	pts, err = builder.Grid1D(3, builder.WithRange(-1, 3))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-1}, {1}, {3}}, pts)

	pts, err = builder.Grid1D(1, builder.WithRange(2, 5))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2}}, pts)

	_, err = builder.Grid1D(0)
	assert.ErrorIs(t, err, builder.ErrTooFewPoints)
	_, err = builder.Grid1D(3, builder.WithRange(1, 0))
	assert.ErrorIs(t, err, builder.ErrInvalidParameter)
}

func TestGaussPoints_Deterministic(t *testing.T) {
	p1, err := builder.GaussPoints(50, 42, builder.WithDim(3))
	require.NoError(t, err)
	p2, err := builder.GaussPoints(50, 42, builder.WithDim(3))
	require.NoError(t, err)
	p3, err := builder.GaussPoints(50, 43, builder.WithDim(3))
	require.NoError(t, err)

	require.Len(t, p1, 50)
	assert.Len(t, p1[0], 3)
	assert.Equal(t, p1, p2)
	assert.NotEqual(t, p1, p3)

	// Seed 0 is the default seed, not a time-based one.
	z1, _ := builder.GaussPoints(4, 0)
	z2, _ := builder.GaussPoints(4, 0)
	assert.Equal(t, z1, z2)
}

func TestGaussPoints_Moments(t *testing.T) {
	const n = 20000
	pts, err := builder.GaussPoints(n, 3,
		builder.WithDim(2), builder.WithCenter(4, -2), builder.WithSpread(0.5))
	require.NoError(t, err)

	var mean [2]float64
	for _, p := range pts {
		mean[0] += p[0] / n
		mean[1] += p[1] / n
	}
	var variance float64
	for _, p := range pts {
		variance += (p[0] - mean[0]) * (p[0] - mean[0]) / n
	}
	assert.InDelta(t, 4, mean[0], 0.02)
	assert.InDelta(t, -2, mean[1], 0.02)
	assert.InDelta(t, 0.5, math.Sqrt(variance), 0.02)
}

func TestGaussPoints_Covariance(t *testing.T) {
	const n = 20000
	pts, err := builder.GaussPoints(n, 7, builder.WithDim(2), builder.WithCenter(1, 2),
		builder.WithCovariance([][]float64{{1, -0.8}, {-0.8, 1}}))
	require.NoError(t, err)

	var m0, m1 float64
	for _, p := range pts {
		m0 += p[0] / n
		m1 += p[1] / n
	}
	var v0, v1, c01 float64
	for _, p := range pts {
		d0, d1 := p[0]-m0, p[1]-m1
		v0 += d0 * d0 / n
		v1 += d1 * d1 / n
		c01 += d0 * d1 / n
	}
	assert.InDelta(t, 1, m0, 0.03)
	assert.InDelta(t, 2, m1, 0.03)
	assert.InDelta(t, 1, v0, 0.05)
	assert.InDelta(t, 1, v1, 0.05)
	assert.InDelta(t, -0.8, c01, 0.05)

	again, err := builder.GaussPoints(n, 7, builder.WithDim(2), builder.WithCenter(1, 2),
		builder.WithCovariance([][]float64{{1, -0.8}, {-0.8, 1}}))
	require.NoError(t, err)
	assert.Equal(t, pts, again)

	// Singular but semi-definite: the jitter keeps it factorizable.
	_, err = builder.GaussPoints(5, 7, builder.WithDim(2), builder.WithCovariance([][]float64{{1, 1}, {1, 1}}))
	assert.NoError(t, err)
}

func TestGaussPoints_CovarianceErrors(t *testing.T) {
	for name, cov := range map[string][][]float64{
		"indefinite": {{1, 2}, {2, 1}},
		"asymmetric": {{1, 0.5}, {0.2, 1}},
		"rows":       {{1, 0}},
		"ragged":     {{1, 0}, {0}},
		"nan":        {{math.NaN(), 0}, {0, 1}},
	} {
		_, err := builder.GaussPoints(3, 1, builder.WithDim(2), builder.WithCovariance(cov))
		assert.ErrorIs(t, err, builder.ErrInvalidParameter, name)
	}
}

func TestGaussPoints_SharedRand(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	a, err := builder.GaussPoints(3, 1, builder.WithRand(rng), builder.WithDim(1))
	require.NoError(t, err)
	b, err := builder.GaussPoints(3, 1, builder.WithRand(rng), builder.WithDim(1))
	require.NoError(t, err)
	// One shared stream: the second call continues where the first stopped.
	assert.NotEqual(t, a, b)
}

func TestGaussPoints_Errors(t *testing.T) {
	_, err := builder.GaussPoints(0, 1)
	assert.ErrorIs(t, err, builder.ErrTooFewPoints)
	_, err = builder.GaussPoints(3, 1, builder.WithDim(0))
	assert.ErrorIs(t, err, builder.ErrTooFewPoints)
	_, err = builder.GaussPoints(3, 1, builder.WithDim(3), builder.WithCenter(1, 2))
	assert.ErrorIs(t, err, builder.ErrInvalidParameter)
	_, err = builder.GaussPoints(3, 1, builder.WithSpread(0))
	assert.ErrorIs(t, err, builder.ErrInvalidParameter)
	_, err = builder.GaussPoints(3, 1, builder.WithCenter(math.NaN()))
	assert.ErrorIs(t, err, builder.ErrInvalidParameter)
}

func TestUniformPoints(t *testing.T) {
	pts, err := builder.UniformPoints(200, 5, builder.WithDim(2), builder.WithRange(-1, 1))
	require.NoError(t, err)
	for _, p := range pts {
		require.Len(t, p, 2)
		for _, v := range p {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.Less(t, v, 1.0)
		}
	}

	again, _ := builder.UniformPoints(200, 5, builder.WithDim(2), builder.WithRange(-1, 1))
	assert.Equal(t, pts, again)

	_, err = builder.UniformPoints(2, 5, builder.WithRange(math.Inf(-1), 0))
	assert.ErrorIs(t, err, builder.ErrInvalidParameter)
}

func TestDeriveSeed(t *testing.T) {
	s0 := builder.DeriveSeed(42, 0)
	s1 := builder.DeriveSeed(42, 1)
	assert.NotEqual(t, s0, s1)
	assert.Equal(t, s0, builder.DeriveSeed(42, 0))
	assert.Equal(t, builder.DeriveSeed(0, 3), builder.DeriveSeed(1, 3))
}
