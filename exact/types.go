// SPDX-License-Identifier: MIT

package exact

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvlot/matrix"
)

// ErrInfeasible is returned when Σa and Σb differ beyond Options.BalanceTolerance.
var ErrInfeasible = fmt.Errorf("exact: %w", errInfeasible)
var errInfeasible = errors.New("source and target totals differ")

// ErrMaxIterReached is returned when the augmentation budget runs out before
// all mass is routed. The partial Result is returned alongside it.
var ErrMaxIterReached = fmt.Errorf("exact: %w", errMaxIter)
var errMaxIter = errors.New("augmentation budget exhausted")

// ErrInvalidInput covers shape, sign and finiteness problems of a, b or cost.
var ErrInvalidInput = fmt.Errorf("exact: %w", errInvalidInput)
var errInvalidInput = errors.New("invalid input")

// Options configures EMD.
//   - Epsilon: residual capacities ≤ Epsilon·Σa count as zero (default 1e-12).
//   - BalanceTolerance: accepted relative gap between Σa and Σb (default 1e-6);
//     inside it, b is rescaled to Σa.
//   - MaxIterations: augmentation budget (default 100000).
//   - CenterDuals: shift α up and β down by one constant so that a·α = b·β (default true).
//   - Logger: each augmentation is logged at Trace level.
type Options struct {
	Epsilon          float64
	BalanceTolerance float64
	MaxIterations    int
	CenterDuals      bool
	Logger           zerolog.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Epsilon:          1e-12,
		BalanceTolerance: 1e-6,
		MaxIterations:    100000,
		CenterDuals:      true,
		Logger:           zerolog.Nop(),
	}
}

// Result is an optimal transport plan with its cost and dual potentials.
// The duals satisfy α_i + β_j ≤ C_ij, with equality where Plan > 0.
type Result struct {
	Plan          *matrix.Dense
	Cost          float64
	Alpha, Beta   []float64
	Augmentations int
}
