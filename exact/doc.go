// SPDX-License-Identifier: MIT

// Package exact solves the unregularized (linear-programming) optimal
// transport problem.
//
// EMD returns a plan P with P1 = a, Pᵀ1 = b minimizing ⟨P, C⟩, together with
// dual potentials (α, β). It serves as ground truth for the regularized
// solvers in package sinkhorn: as reg → 0 their transport cost approaches
// EMD's from above.
//
// Algorithm: successive shortest paths on the transport network
//
//	s ──a_i──▶ row i ──C_ij──▶ column j ──b_j──▶ t
//
// with Dijkstra on potential-reduced costs. Each augmentation saturates a
// supply, a demand or a reversed shipment, so the loop ends after finitely many
// rounds; Options.MaxIterations bounds it explicitly.
//
// Error model:
//   - ErrInvalidInput: shape, sign, finiteness.
//   - ErrInfeasible:   totals of a and b differ.
//   - ErrMaxIterReached: budget exhausted (partial Result is returned).
package exact
