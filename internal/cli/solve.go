// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlot/internal/problem"
	"github.com/katalvlaran/lvlot/sinkhorn"
)

func newSolveCommand(a *app) *cobra.Command {
	s := defaultSolveSettings()
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve a regularized transport problem",
		Example: `  lvlot solve problem.toml
  lvlot solve problem.yaml --method stabilized --reg 0.001 --plan -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(a, cmd.OutOrStdout(), args[0], s, changedFlags(cmd))
		},
	}
	s.bindFlags(cmd.Flags())

	return cmd
}

// runSolve loads path, merges its [solver] table under the explicit flags,
// solves and writes the report to out. s is taken by value so repeated calls
// (watch) always start from the command-line settings.
func runSolve(a *app, out io.Writer, path string, s solveSettings, changed map[string]bool) error {
	if err := checkOutput(s.Output); err != nil {
		return err
	}
	p, err := problem.Load(path)
	if err != nil {
		return err
	}
	s.applyFile(p.Solver, changed)

	method, err := sinkhorn.ParseMethod(s.Method)
	if err != nil {
		return err
	}
	opts, err := s.options(a.log)
	if err != nil {
		return err
	}
	src, dst, cost, err := p.Resolve(s.Workers)
	if err != nil {
		return err
	}

	a.log.Debug().
		Str("file", path).
		Str("method", method.String()).
		Float64("reg", s.Reg).
		Int("rows", cost.Rows()).
		Int("cols", cost.Cols()).
		Msg("solving")

	plan, diag, err := sinkhorn.Solve(method, src, dst, cost, s.Reg, opts...)
	if err != nil {
		return fmt.Errorf("solve %s: %w", path, err)
	}
	total, err := sinkhorn.TransportCost(plan, cost)
	if err != nil {
		return err
	}

	ev := a.log.Info()
	if !diag.Converged() {
		ev = a.log.Warn()
	}
	ev.Str("status", diag.Status.String()).Int("iterations", diag.Iterations).Msg("solve finished")

	return writeReport(out, s.Output, newSolveReport(diag, total, plan, s.Plan))
}
