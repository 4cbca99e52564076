// SPDX-License-Identifier: MIT

package problem_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlot/distance"
	"github.com/katalvlaran/lvlot/internal/problem"
)

const tomlProblem = `
source = [0.5, 0.5]
target = [0.25, 0.75]
cost = [[0.0, 2.0], [1.0, 4.0]]
normalize = "max"

[solver]
method = "stabilized"
reg = 0.05
max_iterations = 500
`

const yamlProblem = `
source: [0.5, 0.5]
source_points: [[0, 0], [1, 0]]
target_points: [[0, 1], [2, 0], [1, 1]]
metric: euclidean
solver:
  method: unbalanced
  reg: 0.1
  weight: 2
`

const jsoncProblem = `{
  // masses default to uniform
  "cost": [
    [0, 1],
    [1, 0], /* trailing comma below */
  ],
  "solver": {"method": "greedy", "workers": 2,},
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad_TOML(t *testing.T) {
	p, err := problem.Load(writeFile(t, "p.toml", tomlProblem))
	require.NoError(t, err)
	assert.Equal(t, "stabilized", p.Solver.Method)
	assert.Equal(t, 0.05, p.Solver.Reg)
	assert.Equal(t, 500, p.Solver.MaxIterations)

	a, b, cost, err := p.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, a)
	assert.Equal(t, []float64{0.25, 0.75}, b)
	assert.Equal(t, [][]float64{{0, 0.5}, {0.25, 1}}, cost.ToRows())
}

func TestLoad_YAMLPoints(t *testing.T) {
	p, err := problem.Load(writeFile(t, "p.yml", yamlProblem))
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Solver.Weight)

	a, b, cost, err := p.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, a)
	assert.Empty(t, b)
	rows := cost.ToRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []float64{1, 2, 1.4142135623730951}, rows[0])
	assert.Equal(t, []float64{1.4142135623730951, 1, 1}, rows[1])
}

func TestLoad_JSONC(t *testing.T) {
	p, err := problem.Load(writeFile(t, "p.jsonc", jsoncProblem))
	require.NoError(t, err)
	assert.Equal(t, "greedy", p.Solver.Method)
	assert.Equal(t, 2, p.Solver.Workers)
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, p.Cost)
}

func TestLoad_Errors(t *testing.T) {
	_, err := problem.Load(writeFile(t, "p.ini", "x=1"))
	assert.ErrorIs(t, err, problem.ErrUnknownFormat)

	_, err = problem.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = problem.Load(writeFile(t, "bad.json", `{"cost": [[0]], "colour": 1}`))
	assert.Error(t, err)

	_, err = problem.Load(writeFile(t, "bad.toml", "cost = [[0.0,"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		p    problem.Problem
		want error
	}{
		{"nothing", problem.Problem{}, problem.ErrNoCost},
		{"one cloud", problem.Problem{SourcePoints: [][]float64{{0}}}, problem.ErrNoCost},
		{"both", problem.Problem{
			Cost:         [][]float64{{0}},
			SourcePoints: [][]float64{{0}},
			TargetPoints: [][]float64{{0}},
		}, problem.ErrAmbiguousCost},
		{"normalize", problem.Problem{Cost: [][]float64{{0}}, Normalize: "sum"}, problem.ErrBadNormalize},
		{"metric", problem.Problem{
			SourcePoints: [][]float64{{0}},
			TargetPoints: [][]float64{{0}},
			Metric:       "cosine",
		}, distance.ErrUnknownMetric},
		{"negative reg", problem.Problem{
			Cost:   [][]float64{{0}},
			Solver: problem.Solver{Reg: -0.1},
		}, problem.ErrBadSolver},
		{"negative weight", problem.Problem{
			Cost:   [][]float64{{0}},
			Solver: problem.Solver{Weight: -1},
		}, problem.ErrBadSolver},
		{"nan tolerance", problem.Problem{
			Cost:   [][]float64{{0}},
			Solver: problem.Solver{Tolerance: math.NaN()},
		}, problem.ErrBadSolver},
		{"negative iterations", problem.Problem{
			Cost:   [][]float64{{0}},
			Solver: problem.Solver{MaxIterations: -5},
		}, problem.ErrBadSolver},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.p.Validate(), tc.want)
		})
	}

	ok := problem.Problem{Cost: [][]float64{{0, 1}}, Normalize: "None"}
	assert.NoError(t, ok.Validate())
}

func TestResolve_RaggedCost(t *testing.T) {
	p := problem.Problem{Cost: [][]float64{{0, 1}, {1}}}
	_, _, _, err := p.Resolve(1)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	src := &problem.Problem{
		Source:       []float64{0.25, 0.75},
		SourcePoints: [][]float64{{0.5}, {1.5}},
		TargetPoints: [][]float64{{1}},
		Metric:       "manhattan",
		Solver:       problem.Solver{Method: "sinkhorn", Reg: 0.1, Tolerance: 1e-7},
	}
	for _, ext := range []string{"toml", "yaml", "json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "p."+ext)
			require.NoError(t, problem.Save(path, src))
			got, err := problem.Load(path)
			require.NoError(t, err)
			assert.Equal(t, src, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]problem.Format{
		".toml": problem.FormatTOML,
		"YML":   problem.FormatYAML,
		"yaml":  problem.FormatYAML,
		"jsonc": problem.FormatJSON,
	} {
		got, err := problem.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := problem.ParseFormat("xml")
	assert.ErrorIs(t, err, problem.ErrUnknownFormat)
}
