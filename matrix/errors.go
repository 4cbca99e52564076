// SPDX-License-Identifier: MIT

// Package matrix: sentinel error set.
// All functions return these sentinels (optionally wrapped with call-site
// context via %w); callers match them with errors.Is. No function panics on
// user-triggered conditions.
package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned for ragged row input (rows of unequal length).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes or vector lengths.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegative signals a negative entry where non-negative values are required.
	ErrNegative = errors.New("matrix: negative entry")

	// ErrNilMatrix indicates that a nil Matrix was passed.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInvalidDimensions indicates non-positive requested dimensions.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
)

// ErrIndexOutOfBounds is kept as an alias of ErrOutOfRange.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.

// matrixErrorf attaches an operation tag to a sentinel.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
