// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlot/builder"
	"github.com/katalvlaran/lvlot/internal/problem"
)

// Generator kinds understood by `lvlot gen`.
const (
	kindGauss1D  = "gauss1d"
	kindGaussian = "gaussian"
	kindUniform  = "uniform"
)

// ErrUnknownKind: --kind names no generator.
var ErrUnknownKind = errors.New("cli: unknown generator kind")

// genSettings drives problem generation.
type genSettings struct {
	Kind   string
	N, M   int
	Dim    int
	Seed   int64
	Spread float64
	Shift  float64
	Corr   float64
	Noise  float64

	Metric    string
	Normalize string
	Method    string
	Reg       float64
}

func newGenCommand(a *app) *cobra.Command {
	g := genSettings{Kind: kindGauss1D, N: 50, M: 50, Dim: 2, Spread: 1, Shift: 4, Normalize: "max"}
	cmd := &cobra.Command{
		Use:   "gen FILE",
		Short: "Write a generated problem file (format from the extension)",
		Example: `  lvlot gen hist.toml --kind gauss1d --n 100 --m 100
  lvlot gen clouds.yaml --kind gaussian --n 200 --m 150 --seed 7 --method stabilized --reg 0.01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := generate(g)
			if err != nil {
				return err
			}
			if err := problem.Save(args[0], p); err != nil {
				return err
			}
			a.log.Info().Str("file", args[0]).Str("kind", g.Kind).Int("n", g.N).Int("m", g.M).Msg("problem written")

			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&g.Kind, "kind", g.Kind, "generator: gauss1d, gaussian, uniform")
	fs.IntVar(&g.N, "n", g.N, "source atoms")
	fs.IntVar(&g.M, "m", g.M, "target atoms")
	fs.IntVar(&g.Dim, "dim", g.Dim, "point dimension (gaussian, uniform)")
	fs.Int64Var(&g.Seed, "seed", g.Seed, "random seed (0 uses the default seed)")
	fs.Float64Var(&g.Spread, "spread", g.Spread, "Gaussian standard deviation of each cloud (gaussian)")
	fs.Float64Var(&g.Shift, "shift", g.Shift, "offset of the target cloud center on every axis (gaussian)")
	fs.Float64Var(&g.Corr, "corr", g.Corr, "correlation between the axes of the target cloud (gaussian; 0 keeps it axis-aligned)")
	fs.Float64Var(&g.Noise, "noise", g.Noise, "relative histogram noise (gauss1d)")
	fs.StringVar(&g.Metric, "metric", g.Metric, "ground metric stored in the file")
	fs.StringVar(&g.Normalize, "normalize", g.Normalize, "cost normalization stored in the file: none, max")
	fs.StringVar(&g.Method, "method", g.Method, "solver method stored in [solver]")
	fs.Float64Var(&g.Reg, "reg", g.Reg, "regularization stored in [solver]")

	return cmd
}

// generate builds a problem from g.
//
//   - gauss1d:  two Gaussian histograms on a 1-D grid over [0, 1], the
//     classic shifted-bump fixture.
//   - gaussian: two seeded Gaussian clouds, the target shifted by Shift and,
//     with Corr != 0, drawn from the covariance spread²·(I + Corr off the
//     diagonal).
//   - uniform:  two seeded clouds uniform in the unit box.
func generate(g genSettings) (*problem.Problem, error) {
	p := &problem.Problem{
		Metric:    g.Metric,
		Normalize: g.Normalize,
		Solver:    problem.Solver{Method: g.Method, Reg: g.Reg},
	}
	var err error
	switch g.Kind {
	case kindGauss1D:
		noise := []builder.BuilderOption{builder.WithNoise(g.Noise)}
		if p.Source, err = builder.Gauss1D(g.N, 0.2*float64(g.N), 0.1*float64(g.N),
			append(noise, builder.WithSeed(builder.DeriveSeed(g.Seed, 0)))...); err != nil {
			return nil, err
		}
		if p.Target, err = builder.Gauss1D(g.M, 0.6*float64(g.M), 0.05*float64(g.M),
			append(noise, builder.WithSeed(builder.DeriveSeed(g.Seed, 1)))...); err != nil {
			return nil, err
		}
		if p.SourcePoints, err = builder.Grid1D(g.N); err != nil {
			return nil, err
		}
		if p.TargetPoints, err = builder.Grid1D(g.M); err != nil {
			return nil, err
		}
	case kindGaussian:
		dim := builder.WithDim(g.Dim)
		spread := builder.WithSpread(g.Spread)
		if p.SourcePoints, err = builder.GaussPoints(g.N, builder.DeriveSeed(g.Seed, 0), dim, spread); err != nil {
			return nil, err
		}
		target := []builder.BuilderOption{dim, spread, builder.WithCenter(g.Shift)}
		if g.Corr != 0 {
			target = append(target, builder.WithCovariance(correlated(g.Dim, g.Spread, g.Corr)))
		}
		if p.TargetPoints, err = builder.GaussPoints(g.M, builder.DeriveSeed(g.Seed, 1), target...); err != nil {
			return nil, err
		}
	case kindUniform:
		dim := builder.WithDim(g.Dim)
		if p.SourcePoints, err = builder.UniformPoints(g.N, builder.DeriveSeed(g.Seed, 0), dim); err != nil {
			return nil, err
		}
		if p.TargetPoints, err = builder.UniformPoints(g.M, builder.DeriveSeed(g.Seed, 1), dim); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q: %w", g.Kind, ErrUnknownKind)
	}

	return p, p.Validate()
}

// correlated returns the dim×dim covariance with spread² on the diagonal and
// corr·spread² elsewhere.
func correlated(dim int, spread, corr float64) [][]float64 {
	if dim < 1 {
		return nil
	}
	v := spread * spread
	cov := make([][]float64, dim)
	for i := range cov {
		cov[i] = make([]float64, dim)
		for j := range cov[i] {
			cov[i][j] = corr * v
		}
		cov[i][i] = v
	}

	return cov
}
