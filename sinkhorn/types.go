// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlot/convergence"
)

// Method selects one of the regularized solvers.
type Method int

const (
	// MethodSinkhorn is multiplicative Sinkhorn-Knopp scaling.
	MethodSinkhorn Method = iota
	// MethodStabilized is log-domain Sinkhorn with potential absorption.
	MethodStabilized
	// MethodGreedy is Greenkhorn: one row or column update per iteration.
	MethodGreedy
	// MethodUnbalanced is Sinkhorn with KL-relaxed marginals.
	MethodUnbalanced
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case MethodSinkhorn:
		return "sinkhorn"
	case MethodStabilized:
		return "stabilized"
	case MethodGreedy:
		return "greedy"
	case MethodUnbalanced:
		return "unbalanced"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// MarshalText lets encoders print the method name.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMethod resolves a method name (case-insensitive; common aliases accepted).
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sinkhorn", "knopp", "sinkhorn_knopp":
		return MethodSinkhorn, nil
	case "stabilized", "log", "sinkhorn_stabilized":
		return MethodStabilized, nil
	case "greedy", "greenkhorn":
		return MethodGreedy, nil
	case "unbalanced", "uot", "sinkhorn_unbalanced":
		return MethodUnbalanced, nil
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMethod)
}

// TieBreak decides between the best row and the best column in Greedy when
// their violations are equal. The row is updated only when its violation is
// strictly larger, so the zero value sends ties to the column.
type TieBreak int

const (
	// PreferColumns updates the column on a row/column tie (default).
	PreferColumns TieBreak = iota
	// PreferRows updates the row on a row/column tie.
	PreferRows
)

// String returns "columns" or "rows".
func (tb TieBreak) String() string {
	switch tb {
	case PreferColumns:
		return "columns"
	case PreferRows:
		return "rows"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(tb))
	}
}

// ParseTieBreak resolves "columns"/"cols" or "rows"; empty means PreferColumns.
func ParseTieBreak(name string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "columns", "cols", "column":
		return PreferColumns, nil
	case "rows", "row":
		return PreferRows, nil
	}

	return 0, fmt.Errorf("tie-break %q: %w", name, ErrBadOption)
}

// Potentials are the dual potentials (f, g) of a regularized solve.
// Entries of zero-mass atoms carry no information.
type Potentials struct {
	F []float64 `json:"f" yaml:"f" toml:"f"`
	G []float64 `json:"g" yaml:"g" toml:"g"`
}

// Diagnostics describes how a solve ended. It is a plain value; nothing
// inside refers back to solver state.
type Diagnostics struct {
	Method     Method             `json:"method" yaml:"method" toml:"method"`
	Status     convergence.Status `json:"status" yaml:"status" toml:"status"`
	Iterations int                `json:"iterations" yaml:"iterations" toml:"iterations"`

	// Err is the last stopping-criterion value (NaN if no check ran).
	Err float64 `json:"error" yaml:"error" toml:"error"`

	// History holds every observed stopping-criterion value, oldest first.
	History []float64 `json:"history,omitempty" yaml:"history,omitempty" toml:"history,omitempty"`

	// MarginalErr is the marginal violation measured on the returned plan.
	MarginalErr float64 `json:"marginal_error" yaml:"marginal_error" toml:"marginal_error"`

	// Absorptions counts potential absorptions (Stabilized only).
	Absorptions int `json:"absorptions,omitempty" yaml:"absorptions,omitempty" toml:"absorptions,omitempty"`

	Potentials *Potentials `json:"potentials,omitempty" yaml:"potentials,omitempty" toml:"potentials,omitempty"`
}

// Converged reports Status == convergence.Converged.
func (d Diagnostics) Converged() bool {
	return d.Status == convergence.Converged
}

// ErrInvalidInput is the root of every input validation error below; match
// it with errors.Is to catch them all.
var ErrInvalidInput = errors.New("sinkhorn: invalid input")

var (
	// ErrDimensionMismatch: mass vector lengths do not match the cost shape.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidInput)

	// ErrNegativeMass: a mass entry is negative, NaN or ±Inf.
	ErrNegativeMass = fmt.Errorf("%w: negative or non-finite mass", ErrInvalidInput)

	// ErrZeroMass: a mass vector sums to zero.
	ErrZeroMass = fmt.Errorf("%w: zero total mass", ErrInvalidInput)

	// ErrUnbalancedMass: balanced solver called with different totals.
	ErrUnbalancedMass = fmt.Errorf("%w: source and target totals differ", ErrInvalidInput)

	// ErrNegativeCost: a cost entry is negative.
	ErrNegativeCost = fmt.Errorf("%w: negative cost", ErrInvalidInput)

	// ErrNonFiniteCost: a cost entry is NaN or ±Inf, or the cost matrix is nil.
	ErrNonFiniteCost = fmt.Errorf("%w: non-finite or missing cost", ErrInvalidInput)

	// ErrBadRegularization: reg is not a finite positive number.
	ErrBadRegularization = fmt.Errorf("%w: regularization must be finite and > 0", ErrInvalidInput)

	// ErrBadUnbalancedWeight: unbalanced weight is not a finite positive number.
	ErrBadUnbalancedWeight = fmt.Errorf("%w: unbalanced weight must be finite and > 0", ErrInvalidInput)

	// ErrBadOption: an Option value is out of range.
	ErrBadOption = fmt.Errorf("%w: bad option", ErrInvalidInput)

	// ErrUnknownMethod: Solve or ParseMethod got an unsupported method.
	ErrUnknownMethod = fmt.Errorf("%w: unknown method", ErrInvalidInput)
)
