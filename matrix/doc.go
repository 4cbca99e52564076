// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major float64 storage shared by the
// cost engine, the regularized solvers and the exact solver.
//
// What lives here:
//   - Matrix: the minimal read/write surface (Rows, Cols, At, Set, Clone).
//   - Dense: a contiguous row-major implementation (offset = i*cols + j).
//   - Validators: nil/shape/vector-length/finite/non-negative checks that
//     return package sentinels instead of panicking.
//   - Reductions: RowSums, ColSums, Sum, Dot (Frobenius), MaxAbs, AllClose,
//     NormalizeMax.
//
// Determinism:
//   - Every loop walks indices in ascending order; reductions accumulate in
//     the same order on every call, so identical inputs give bit-identical
//     outputs.
//
// Numeric policy:
//   - Dense rejects NaN/±Inf in Set (ErrNaNInf). Transport plans and cost
//     matrices are finite by construction.
//
// Example:
//
//	c, _ := matrix.NewDenseFrom([][]float64{{0, 1}, {1, 0}})
//	rs, _ := matrix.RowSums(c) // [1 1]
package matrix
