// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlot/exact"
	"github.com/katalvlaran/lvlot/matrix"
	"github.com/katalvlaran/lvlot/sinkhorn"
)

// Report formats.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
	outputTOML = "toml"
)

// statusOptimal marks a completed exact solve.
const statusOptimal = "optimal"

// ErrUnknownOutput: --output is not one of the report formats.
var ErrUnknownOutput = errors.New("cli: unknown output format")

// report is the rendered outcome of one solve.
type report struct {
	Method     string `json:"method" yaml:"method" toml:"method"`
	Status     string `json:"status" yaml:"status" toml:"status"`
	Iterations int    `json:"iterations" yaml:"iterations" toml:"iterations"`

	// Error is nil when no convergence check ran.
	Error *float64 `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`

	MarginalError float64 `json:"marginal_error" yaml:"marginal_error" toml:"marginal_error"`
	Absorptions   int     `json:"absorptions,omitempty" yaml:"absorptions,omitempty" toml:"absorptions,omitempty"`
	TransportCost float64 `json:"transport_cost" yaml:"transport_cost" toml:"transport_cost"`

	Plan       [][]float64          `json:"plan,omitempty" yaml:"plan,omitempty" toml:"plan,omitempty"`
	Potentials *sinkhorn.Potentials `json:"potentials,omitempty" yaml:"potentials,omitempty" toml:"potentials,omitempty"`
}

// newSolveReport packages a regularized solve.
func newSolveReport(diag sinkhorn.Diagnostics, cost float64, plan *matrix.Dense, withPlan bool) report {
	r := report{
		Method:        diag.Method.String(),
		Status:        diag.Status.String(),
		Iterations:    diag.Iterations,
		MarginalError: diag.MarginalErr,
		Absorptions:   diag.Absorptions,
		TransportCost: cost,
		Potentials:    diag.Potentials,
	}
	if !math.IsNaN(diag.Err) {
		e := diag.Err
		r.Error = &e
	}
	if withPlan {
		r.Plan = plan.ToRows()
	}

	return r
}

// newExactReport packages an exact solve. status is statusOptimal or the
// reason the solve stopped early.
func newExactReport(res *exact.Result, status string, a, b []float64, withPlan, withDuals bool) report {
	rows, _ := matrix.RowSums(res.Plan)
	cols, _ := matrix.ColSums(res.Plan)
	r := report{
		Method:        "exact",
		Status:        status,
		Iterations:    res.Augmentations,
		MarginalError: violation(rows, cols, a, b),
		TransportCost: res.Cost,
	}
	if withPlan {
		r.Plan = res.Plan.ToRows()
	}
	if withDuals {
		r.Potentials = &sinkhorn.Potentials{F: res.Alpha, G: res.Beta}
	}

	return r
}

// violation is the L2 norm of the stacked marginal errors; an empty mass
// vector stands for the uniform one.
func violation(rows, cols, a, b []float64) float64 {
	var sum float64
	add := func(got, want []float64) {
		for i, g := range got {
			w := 1 / float64(len(got))
			if len(want) > 0 {
				w = want[i]
			}
			sum += (g - w) * (g - w)
		}
	}
	add(rows, a)
	add(cols, b)

	return math.Sqrt(sum)
}

// checkOutput validates an --output value.
func checkOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML, outputTOML:
		return nil
	}

	return fmt.Errorf("%q: %w", format, ErrUnknownOutput)
}

// render writes v in the requested format. text is handled by textFn.
func render(w io.Writer, format string, v interface{}, textFn func(io.Writer) error) error {
	switch format {
	case outputText:
		return textFn(w)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputTOML:
		return toml.NewEncoder(w).Encode(v)
	}

	return fmt.Errorf("%q: %w", format, ErrUnknownOutput)
}

// writeReport renders r.
func writeReport(w io.Writer, format string, r report) error {
	return render(w, format, r, r.writeText)
}

func (r report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "method\t%s\n", r.Method)
	fmt.Fprintf(tw, "status\t%s\n", r.Status)
	fmt.Fprintf(tw, "iterations\t%d\n", r.Iterations)
	if r.Error != nil {
		fmt.Fprintf(tw, "error\t%.6g\n", *r.Error)
	}
	fmt.Fprintf(tw, "marginal error\t%.6g\n", r.MarginalError)
	if r.Absorptions > 0 {
		fmt.Fprintf(tw, "absorptions\t%d\n", r.Absorptions)
	}
	fmt.Fprintf(tw, "transport cost\t%.10g\n", r.TransportCost)
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.Plan != nil {
		fmt.Fprintln(w, "plan:")
		writeRows(w, r.Plan)
	}
	if r.Potentials != nil {
		fmt.Fprintf(w, "f: %s\n", joinFloats(r.Potentials.F))
		fmt.Fprintf(w, "g: %s\n", joinFloats(r.Potentials.G))
	}

	return nil
}

// writeRows prints one row per line with space-separated %g values.
func writeRows(w io.Writer, rows [][]float64) {
	for _, row := range rows {
		fmt.Fprintf(w, "  %s\n", joinFloats(row))
	}
}

func joinFloats(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = strconv.FormatFloat(v, 'g', 8, 64)
	}

	return strings.Join(parts, " ")
}
