// SPDX-License-Identifier: MIT

package matrix

// Matrix is the minimal contract every matrix implementation satisfies.
// Indices are zero-based; out-of-range access returns ErrOutOfRange.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At returns the element at (i, j).
	At(i, j int) (float64, error)

	// Set stores v at (i, j).
	Set(i, j int, v float64) error

	// Clone returns a deep copy.
	Clone() Matrix
}
