// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvlot/internal/problem"
	"github.com/katalvlaran/lvlot/sinkhorn"
)

// defaultReg is the regularization used when neither flag nor file sets one.
const defaultReg = 0.1

// solveSettings holds everything `solve` and `watch` need besides the file.
type solveSettings struct {
	Method              string
	Reg                 float64
	Weight              float64
	MaxIterations       int
	Tolerance           float64
	CheckInterval       int
	AbsorptionThreshold float64
	Workers             int
	Patience            int
	TieBreak            string

	Output     string
	Plan       bool
	Potentials bool
}

func defaultSolveSettings() solveSettings {
	return solveSettings{
		Method:              sinkhorn.MethodSinkhorn.String(),
		Reg:                 defaultReg,
		Weight:              sinkhorn.DefaultUnbalancedWeight,
		MaxIterations:       sinkhorn.DefaultMaxIterations,
		Tolerance:           sinkhorn.DefaultTolerance,
		CheckInterval:       sinkhorn.DefaultCheckInterval,
		AbsorptionThreshold: sinkhorn.DefaultAbsorptionThreshold,
		Workers:             1,
		TieBreak:            sinkhorn.PreferColumns.String(),
		Output:              outputText,
	}
}

// bindFlags registers the solver flags on fs with s's current values as defaults.
func (s *solveSettings) bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&s.Method, "method", "m", s.Method, "solver: sinkhorn, stabilized, greedy, unbalanced")
	fs.Float64VarP(&s.Reg, "reg", "r", s.Reg, "entropic regularization (> 0)")
	fs.Float64Var(&s.Weight, "weight", s.Weight, "KL marginal penalty for the unbalanced solver (> 0)")
	fs.IntVar(&s.MaxIterations, "max-iter", s.MaxIterations, "iteration budget")
	fs.Float64Var(&s.Tolerance, "tol", s.Tolerance, "stopping tolerance")
	fs.IntVar(&s.CheckInterval, "check-interval", s.CheckInterval, "iterations between convergence checks")
	fs.Float64Var(&s.AbsorptionThreshold, "absorption", s.AbsorptionThreshold, "stabilized absorption threshold (> 1)")
	fs.IntVar(&s.Workers, "workers", s.Workers, "goroutines for kernel products and cost construction")
	fs.IntVar(&s.Patience, "patience", s.Patience, "stop after this many checks without improvement (0 disables)")
	fs.StringVar(&s.TieBreak, "tie-break", s.TieBreak, "greedy policy on equal row and column violations: columns, rows")
	bindOutputFlags(fs, &s.Output, &s.Plan)
	fs.BoolVar(&s.Potentials, "potentials", s.Potentials, "include dual potentials in the report")
}

// bindOutputFlags registers --output and --plan.
func bindOutputFlags(fs *pflag.FlagSet, output *string, plan *bool) {
	fs.StringVarP(output, "output", "o", *output, "report format: text, json, yaml, toml")
	fs.BoolVar(plan, "plan", *plan, "include the transport plan in the report")
}

// applyFile copies the file's [solver] values into s, skipping any setting
// whose flag was given explicitly. Zero values count as unset; negative ones
// never reach here because problem.Load rejects them.
func (s *solveSettings) applyFile(sv problem.Solver, changed map[string]bool) {
	set := newConfigSetter(changed)
	set.setString("method", sv.Method, &s.Method)
	set.setFloat("reg", sv.Reg, &s.Reg)
	set.setFloat("weight", sv.Weight, &s.Weight)
	set.setInt("max-iter", sv.MaxIterations, &s.MaxIterations)
	set.setFloat("tol", sv.Tolerance, &s.Tolerance)
	set.setInt("check-interval", sv.CheckInterval, &s.CheckInterval)
	set.setFloat("absorption", sv.AbsorptionThreshold, &s.AbsorptionThreshold)
	set.setInt("workers", sv.Workers, &s.Workers)
	set.setString("tie-break", sv.TieBreak, &s.TieBreak)
}

// options turns s into solver options.
func (s solveSettings) options(log zerolog.Logger) ([]sinkhorn.Option, error) {
	tie, err := sinkhorn.ParseTieBreak(s.TieBreak)
	if err != nil {
		return nil, err
	}
	opts := []sinkhorn.Option{
		sinkhorn.WithTieBreak(tie),
		sinkhorn.WithMaxIterations(s.MaxIterations),
		sinkhorn.WithTolerance(s.Tolerance),
		sinkhorn.WithCheckInterval(s.CheckInterval),
		sinkhorn.WithAbsorptionThreshold(s.AbsorptionThreshold),
		sinkhorn.WithUnbalancedWeight(s.Weight),
		sinkhorn.WithWorkers(s.Workers),
		sinkhorn.WithLogger(log),
	}
	if s.Patience > 0 {
		opts = append(opts, sinkhorn.WithPatience(s.Patience, sinkhorn.DefaultOptions().MinImprovement))
	}
	if s.Potentials {
		opts = append(opts, sinkhorn.WithPotentials())
	}

	return opts, nil
}

// changedFlags collects the names of flags set on the command line.
func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	return changed
}

// configSetter applies file values only where the flag was not set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}
