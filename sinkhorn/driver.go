// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlot/convergence"
	"github.com/katalvlaran/lvlot/matrix"
)

// stepper is one solver's iteration state.
type stepper interface {
	// step runs one iteration. It returns false when the iteration produced a
	// non-finite value or a zero divisor; the stepper then keeps its last
	// finite state.
	step() bool

	// criterion returns the stopping error of the current iterate.
	criterion() float64

	// plan materializes the current iterate (row-major, n×m).
	plan() []float64

	// potentials returns the dual potentials of the current iterate.
	potentials() (f, g []float64)
}

// absorber is implemented by steppers that count absorptions.
type absorber interface {
	absorptions() int
}

// run drives s under a convergence.Monitor and packages the outcome.
// MAIN DESCRIPTION:
//   - The single iteration loop shared by all methods.
//
// Implementation:
//   - Stage 1: Monitor from options.
//   - Stage 2: loop Next → step → (Due ? Observe); stop on any terminal status.
//   - Stage 3: materialize the plan, measure marginals, fill Diagnostics.
//
// Behavior highlights:
//   - NumericalInstability is a status, never an error and never upgraded.
//   - A plan that still holds non-finite entries (overflow in u·K·v) is zeroed
//     there and the status is forced to NumericalInstability.
func run(method Method, s stepper, p *problem, o Options) (*matrix.Dense, Diagnostics, error) {
	mon, err := convergence.New(o.monitorConfig(), o.Logger)
	if err != nil {
		return nil, Diagnostics{}, fmt.Errorf("%s: %w", method, err)
	}
	o.Logger.Debug().
		Str("method", method.String()).
		Int("rows", p.n).
		Int("cols", p.m).
		Float64("reg", p.reg).
		Msg("solve started")

	for mon.Next() {
		if !s.step() {
			mon.Unstable()
			break
		}
		if mon.Due() && mon.Observe(s.criterion()).Terminal() {
			break
		}
	}

	data := s.plan()
	status := mon.Status()
	for k, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data[k] = 0
			status = convergence.NumericalInstability
		}
	}

	plan, err := matrix.NewDenseFromData(p.n, p.m, data)
	if err != nil {
		return nil, Diagnostics{}, fmt.Errorf("%s: %w", method, err)
	}
	rows, cols := planMarginals(data, p.n, p.m)

	diag := Diagnostics{
		Method:      method,
		Status:      status,
		Iterations:  mon.Iterations(),
		Err:         mon.LastError(),
		History:     mon.History(),
		MarginalErr: marginalError(rows, cols, p.a, p.b),
	}
	if ab, ok := s.(absorber); ok {
		diag.Absorptions = ab.absorptions()
	}
	if o.Potentials {
		f, g := s.potentials()
		diag.Potentials = &Potentials{F: f, G: g}
	}

	return plan, diag, nil
}
