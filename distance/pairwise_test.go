// SPDX-License-Identifier: MIT

package distance_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlot/distance"
)

func filled(r, c int, v float64) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = v
		}
	}

	return out
}

func TestPairwise_Euclidean(t *testing.T) {
	c, err := distance.Pairwise(filled(3, 5, 0), filled(3, 5, 5), distance.WithMetric(distance.Euclidean))
	require.NoError(t, err)
	for _, row := range c.ToRows() {
		for _, v := range row {
			assert.InDelta(t, 11.180339887498949, v, 1e-12)
		}
	}
}

func TestPairwise_SqEuclideanDefault(t *testing.T) {
	src := [][]float64{{0}, {1}, {3}}
	dst := [][]float64{{0}, {2}}
	c, err := distance.Pairwise(src, dst)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 4}, {1, 1}, {9, 1}}, c.ToRows())
}

func TestPairwise_IdenticalPointsZero(t *testing.T) {
	pts := [][]float64{{0.1, 0.7}, {1e8, -3.3}}
	c, err := distance.Pairwise(pts, pts, distance.WithMetric(distance.Euclidean))
	require.NoError(t, err)
	v, _ := c.At(1, 1)
	assert.Equal(t, 0.0, v)
}

func TestPairwise_WorkersDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := make([][]float64, 200)
	dst := make([][]float64, 60)
	for i := range src {
		src[i] = []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}
	for j := range dst {
		dst[j] = []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}

	seq, err := distance.Pairwise(src, dst)
	require.NoError(t, err)
	par, err := distance.Pairwise(src, dst, distance.WithWorkers(8))
	require.NoError(t, err)
	assert.Equal(t, seq.ToRows(), par.ToRows())
}

func TestPairwise_Errors(t *testing.T) {
	_, err := distance.Pairwise([][]float64{{0, 1}}, [][]float64{{0}})
	assert.ErrorIs(t, err, distance.ErrDimensionMismatch)

	_, err = distance.Pairwise([][]float64{{0, 1}, {2}}, [][]float64{{0, 1}})
	assert.ErrorIs(t, err, distance.ErrDimensionMismatch)

	_, err = distance.Pairwise(nil, [][]float64{{0}})
	assert.ErrorIs(t, err, distance.ErrEmptyPoints)

	_, err = distance.Pairwise([][]float64{{0}}, [][]float64{{0}}, distance.WithFunc(nil))
	assert.ErrorIs(t, err, distance.ErrNilFunc)

	_, err = distance.Pairwise([][]float64{{0}}, [][]float64{{0}}, distance.WithMetric(distance.Metric(99)))
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)

	_, err = distance.Pairwise([][]float64{{0}}, [][]float64{{0}}, distance.WithNamed("nope"))
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)
	assert.Contains(t, err.Error(), `"nope"`)

	bad := func(x, y []float64) float64 { return math.NaN() }
	_, err = distance.Pairwise([][]float64{{0}}, [][]float64{{0}}, distance.WithFunc(bad))
	assert.ErrorIs(t, err, distance.ErrInvalidDistance)
}

func TestPairwise_CustomAndNamed(t *testing.T) {
	src := [][]float64{{0, 0}}
	dst := [][]float64{{3, 4}}

	c, err := distance.Pairwise(src, dst, distance.WithNamed("manhattan"))
	require.NoError(t, err)
	v, _ := c.At(0, 0)
	assert.Equal(t, 7.0, v)

	c, err = distance.Pairwise(src, dst, distance.WithNamed("LINF"))
	require.NoError(t, err)
	v, _ = c.At(0, 0)
	assert.Equal(t, 4.0, v)

	// The last metric option wins.
	c, err = distance.Pairwise(src, dst, distance.WithNamed("nope"), distance.WithFunc(distance.ManhattanFunc))
	require.NoError(t, err)
	v, _ = c.At(0, 0)
	assert.Equal(t, 7.0, v)
}

func TestPairwise_NormalizeMax(t *testing.T) {
	c, err := distance.Pairwise([][]float64{{0}, {2}}, [][]float64{{0}, {4}},
		distance.WithNormalization(distance.NormMax))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {0.25, 0.25}}, c.ToRows())
}

func TestParseMetric(t *testing.T) {
	m, err := distance.ParseMetric("L2")
	require.NoError(t, err)
	assert.Equal(t, distance.Euclidean, m)

	m, err = distance.ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, distance.SqEuclidean, m)

	m, err = distance.ParseMetric("chebyshev")
	require.NoError(t, err)
	assert.Equal(t, distance.Custom, m)

	_, err = distance.ParseMetric("cosine")
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)

	assert.Equal(t, "sqeuclidean", distance.SqEuclidean.String())
}
