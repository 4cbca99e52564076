// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlot/matrix"
)

// Solve dispatches to the solver selected by method. MethodUnbalanced takes
// its weight from WithUnbalancedWeight (default DefaultUnbalancedWeight).
func Solve(method Method, a, b []float64, cost matrix.Matrix, reg float64, opts ...Option) (*matrix.Dense, Diagnostics, error) {
	switch method {
	case MethodSinkhorn:
		return SinkhornKnopp(a, b, cost, reg, opts...)
	case MethodStabilized:
		return Stabilized(a, b, cost, reg, opts...)
	case MethodGreedy:
		return Greedy(a, b, cost, reg, opts...)
	case MethodUnbalanced:
		o := buildOptions(opts)
		return Unbalanced(a, b, cost, reg, o.UnbalancedWeight, opts...)
	default:
		return nil, Diagnostics{}, fmt.Errorf("%s: %w", method, ErrUnknownMethod)
	}
}

// TransportCost returns ⟨plan, cost⟩ = Σ_ij P_ij·C_ij.
func TransportCost(plan, cost matrix.Matrix) (float64, error) {
	v, err := matrix.Dot(plan, cost)
	if errors.Is(err, matrix.ErrDimensionMismatch) {
		return 0, fmt.Errorf("TransportCost: %w", ErrDimensionMismatch)
	}
	if err != nil {
		return 0, fmt.Errorf("TransportCost: %w", errors.Join(ErrInvalidInput, err))
	}

	return v, nil
}
