// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlot/convergence"
	"github.com/katalvlaran/lvlot/exact"
	"github.com/katalvlaran/lvlot/internal/problem"
)

func newExactCommand(a *app) *cobra.Command {
	var (
		output   = outputText
		withPlan bool
		duals    bool
		maxIter  = exact.DefaultOptions().MaxIterations
		workers  = 1
	)
	cmd := &cobra.Command{
		Use:   "exact FILE",
		Short: "Solve the unregularized problem exactly (earth mover's distance)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			src, dst, cost, err := p.Resolve(workers)
			if err != nil {
				return err
			}

			opts := exact.DefaultOptions()
			opts.MaxIterations = maxIter
			opts.Logger = a.log
			res, err := exact.EMD(src, dst, cost, &opts)
			status := statusOptimal
			switch {
			case errors.Is(err, exact.ErrMaxIterReached):
				status = convergence.MaxIterationsReached.String()
				a.log.Warn().Err(err).Msg("exact solve incomplete")
			case err != nil:
				return fmt.Errorf("exact %s: %w", args[0], err)
			}
			a.log.Info().Str("status", status).Int("augmentations", res.Augmentations).Msg("exact solve finished")

			return writeReport(cmd.OutOrStdout(), output, newExactReport(res, status, src, dst, withPlan, duals))
		},
	}
	bindOutputFlags(cmd.Flags(), &output, &withPlan)
	cmd.Flags().BoolVar(&duals, "potentials", false, "include dual potentials (alpha, beta) in the report")
	cmd.Flags().IntVar(&maxIter, "max-iter", maxIter, "augmentation budget")
	cmd.Flags().IntVar(&workers, "workers", workers, "goroutines for cost construction")

	return cmd
}
