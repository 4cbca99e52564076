// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlot/matrix"
)

// problem is the validated, privately owned input of one solve.
type problem struct {
	a, b []float64 // mass copies (uniform when the caller passed none)
	c    []float64 // row-major cost copy
	n, m int
	reg  float64
}

// newProblem validates every input before the first iteration.
// MAIN DESCRIPTION:
//   - Turn caller data into private buffers; the caller's slices and matrix
//     are never written.
//
// Implementation:
//   - Stage 1: options (ErrBadOption).
//   - Stage 2: regularization (ErrBadRegularization).
//   - Stage 3: cost: present, finite, non-negative.
//   - Stage 4: masses: length, sign, non-zero total; empty means uniform.
//   - Stage 5: balanced methods only: Σa ≈ Σb within BalanceTolerance.
//
// Complexity:
//   - Time O(n*m), Space O(n*m).
func newProblem(a, b []float64, cost matrix.Matrix, reg float64, balanced bool, o Options) (*problem, error) {
	if err := validateOptions(o); err != nil {
		return nil, err
	}
	if !(reg > 0) || math.IsInf(reg, 0) {
		return nil, fmt.Errorf("reg=%g: %w", reg, ErrBadRegularization)
	}

	c, err := matrix.Flatten(cost)
	if err != nil {
		return nil, fmt.Errorf("cost: %w", errors.Join(ErrNonFiniteCost, err))
	}
	n, m := cost.Rows(), cost.Cols()
	for k, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("cost(%d,%d)=%g: %w", k/m, k%m, v, ErrNonFiniteCost)
		}
		if v < 0 {
			return nil, fmt.Errorf("cost(%d,%d)=%g: %w", k/m, k%m, v, ErrNegativeCost)
		}
	}

	p := &problem{c: c, n: n, m: m, reg: reg}
	if p.a, err = massCopy("source", a, n); err != nil {
		return nil, err
	}
	if p.b, err = massCopy("target", b, m); err != nil {
		return nil, err
	}

	if balanced {
		sa, sb := floats.Sum(p.a), floats.Sum(p.b)
		if math.Abs(sa-sb) > o.BalanceTolerance*math.Max(sa, sb) {
			return nil, fmt.Errorf("Σsource=%g Σtarget=%g: %w", sa, sb, ErrUnbalancedMass)
		}
	}

	return p, nil
}

// massCopy validates x against length n and returns a private copy.
// An empty x yields the uniform vector 1/n.
func massCopy(side string, x []float64, n int) ([]float64, error) {
	out := make([]float64, n)
	if len(x) == 0 {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out, nil
	}
	if len(x) != n {
		return nil, fmt.Errorf("%s mass has %d entries, cost has %d: %w", side, len(x), n, ErrDimensionMismatch)
	}

	var total float64
	for i, v := range x {
		if !(v >= 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s mass[%d]=%g: %w", side, i, v, ErrNegativeMass)
		}
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("%s: %w", side, ErrZeroMass)
	}
	copy(out, x)

	return out, nil
}

// validateOptions rejects out-of-range option values.
func validateOptions(o Options) error {
	if err := o.monitorConfig().Validate(); err != nil {
		return errors.Join(ErrBadOption, err)
	}
	switch {
	case !(o.AbsorptionThreshold > 1) || math.IsInf(o.AbsorptionThreshold, 0):
		return fmt.Errorf("AbsorptionThreshold=%g: %w", o.AbsorptionThreshold, ErrBadOption)
	case !(o.BalanceTolerance >= 0) || math.IsInf(o.BalanceTolerance, 0):
		return fmt.Errorf("BalanceTolerance=%g: %w", o.BalanceTolerance, ErrBadOption)
	case o.TieBreak != PreferRows && o.TieBreak != PreferColumns:
		return fmt.Errorf("TieBreak=%d: %w", o.TieBreak, ErrBadOption)
	}

	return nil
}

// validWeight checks the unbalanced KL penalty.
func validWeight(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return fmt.Errorf("weight=%g: %w", w, ErrBadUnbalancedWeight)
	}

	return nil
}
