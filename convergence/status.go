// SPDX-License-Identifier: MIT

// Package convergence decides when an iterative solver stops.
//
// A Monitor owns the iteration budget and the error schedule of one solve:
//
//	Initialized ──Next()──▶ Iterating ──▶ Converged
//	                                  ├──▶ MaxIterationsReached
//	                                  ├──▶ NumericalInstability
//	                                  └──▶ Stalled (only with Patience > 0)
//
// The solver calls Next() once per iteration, computes its marginal error only
// when Due() reports a scheduled check, and feeds it to Observe(). Terminal
// states are final: Next() returns false and Observe() does nothing.
package convergence

import "fmt"

// Status is the lifecycle state of a Monitor and the outcome of a solve.
type Status int

const (
	// Initialized: no iteration has run yet.
	Initialized Status = iota
	// Iterating: inside the budget, not yet converged.
	Iterating
	// Converged: the observed error reached the tolerance.
	Converged
	// MaxIterationsReached: the budget ran out before convergence.
	MaxIterationsReached
	// NumericalInstability: a non-finite value or a zero divisor appeared.
	NumericalInstability
	// Stalled: Patience checks in a row without sufficient improvement.
	Stalled
)

// String returns the status tag used in logs and CLI output.
func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations_reached"
	case NumericalInstability:
		return "numerical_instability"
	case Stalled:
		return "stalled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether s ends a solve.
func (s Status) Terminal() bool {
	return s >= Converged
}

// MarshalText lets encoders (JSON, YAML, TOML) print the tag.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
