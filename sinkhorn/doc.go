// SPDX-License-Identifier: MIT

// Package sinkhorn computes entropic-regularized optimal transport plans.
//
// Given masses a (n atoms) and b (m atoms) and a ground cost C (n×m), the
// solvers return a plan P ≥ 0 minimizing ⟨P, C⟩ − reg·H(P) subject to
// P1 = a and Pᵀ1 = b (or, for Unbalanced, a KL penalty on both marginals).
//
// Solvers:
//   - SinkhornKnopp: alternating multiplicative scaling. Fast, but the kernel
//     exp(-C/reg) underflows once C/reg grows past ~745.
//   - Stabilized:    log-domain potentials with absorption; same answer,
//     robust to tiny reg.
//   - Greedy:        Greenkhorn, one row or column per iteration.
//   - Unbalanced:    KL-relaxed marginals; totals may differ.
//
// Solve picks one by Method; TransportCost evaluates ⟨P, C⟩.
//
// Inputs are borrowed read-only. Every call validates before iterating and
// reports problems as members of the ErrInvalidInput family. How a run ended
// (Converged, MaxIterationsReached, NumericalInstability, Stalled) is a
// convergence.Status inside Diagnostics, not an error:
//
//	plan, diag, err := sinkhorn.SinkhornKnopp(a, b, cost, 0.1)
//	if err != nil { ... }           // bad input
//	if !diag.Converged() { ... }    // inspect diag.Status
//
// Determinism: with identical inputs and options the plan is bit-identical,
// including across WithWorkers settings.
package sinkhorn
