// SPDX-License-Identifier: MIT

// Package matrix - central validators.
//
// Each validator returns nil or a sentinel wrapped with the validator tag, so
// callers can both read the context and match with errors.Is.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps a sentinel with the validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil returns ErrNilMatrix when m is nil, including a typed nil *Dense.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have identical dimensions.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen: got %d want %d", len(x), n), ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite scans m in row-major order and reports the first NaN/±Inf.
func ValidateFinite(m Matrix) error {
	return scanEntries(m, "ValidateFinite", func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}
		return nil
	})
}

// ValidateNonNegative scans m in row-major order and reports the first
// NaN/±Inf (ErrNaNInf) or negative entry (ErrNegative).
func ValidateNonNegative(m Matrix) error {
	return scanEntries(m, "ValidateNonNegative", func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}
		if v < 0 {
			return ErrNegative
		}
		return nil
	})
}

// scanEntries applies check to every entry, stopping at the first failure.
// The failing coordinates are attached to the returned error.
func scanEntries(m Matrix, tag string, check func(float64) error) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf(tag, err)
	}
	r, c := m.Rows(), m.Cols()

	// Dense fast-path over the flat buffer.
	if d, ok := m.(*Dense); ok {
		for k, v := range d.data {
			if err := check(v); err != nil {
				return validatorErrorf(fmt.Sprintf("%s(%d,%d)", tag, k/c, k%c), err)
			}
		}
		return nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf(tag, err)
			}
			if err = check(v); err != nil {
				return validatorErrorf(fmt.Sprintf("%s(%d,%d)", tag, i, j), err)
			}
		}
	}

	return nil
}
