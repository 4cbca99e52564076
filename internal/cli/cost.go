// SPDX-License-Identifier: MIT

package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlot/internal/problem"
	"github.com/katalvlaran/lvlot/matrix"
)

// costReport is the rendered cost matrix.
type costReport struct {
	Rows int         `json:"rows" yaml:"rows" toml:"rows"`
	Cols int         `json:"cols" yaml:"cols" toml:"cols"`
	Max  float64     `json:"max" yaml:"max" toml:"max"`
	Cost [][]float64 `json:"cost" yaml:"cost" toml:"cost"`
}

func newCostCommand(_ *app) *cobra.Command {
	var (
		output  = outputText
		workers = 1
	)
	cmd := &cobra.Command{
		Use:   "cost FILE",
		Short: "Print the cost matrix a problem file resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			_, _, cost, err := p.Resolve(workers)
			if err != nil {
				return err
			}
			mx, _ := matrix.Max(cost)
			r := costReport{Rows: cost.Rows(), Cols: cost.Cols(), Max: mx, Cost: cost.ToRows()}

			return render(cmd.OutOrStdout(), output, r, func(w io.Writer) error {
				_, err := io.WriteString(w, cost.String())
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "format: text, json, yaml, toml")
	cmd.Flags().IntVar(&workers, "workers", workers, "goroutines for cost construction")

	return cmd
}
