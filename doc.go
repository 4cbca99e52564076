// SPDX-License-Identifier: MIT

// Package lvlot computes optimal transport between discrete measures with
// entropic (Sinkhorn-type) solvers, plus an exact network-flow solver that
// serves as ground truth.
//
// Given source masses a (length n), target masses b (length m) and a
// non-negative cost matrix C (n×m), a solver returns a transport plan P ≥ 0
// whose row sums match a and column sums match b, minimizing
// ⟨P, C⟩ − reg·H(P).
//
// Packages:
//
//	matrix/        dense row-major matrix, validators, reductions
//	distance/      pairwise cost matrices from point clouds
//	convergence/   iteration budget, stopping rule, terminal status
//	sinkhorn/      SinkhornKnopp, Stabilized, Greedy, Unbalanced, Solve
//	exact/         EMD by successive shortest paths, with dual potentials
//	builder/       deterministic histograms and point clouds
//	cmd/lvlot      command-line front end (solve, exact, cost, gen, watch)
//
// Quick start:
//
//	cost, _ := distance.Pairwise(src, dst)
//	plan, diag, err := sinkhorn.Stabilized(a, b, cost, 0.01)
//	if err != nil {
//		// invalid input: errors.Is(err, sinkhorn.ErrInvalidInput)
//	}
//	if !diag.Converged() {
//		// diag.Status: max_iterations_reached, numerical_instability, stalled
//	}
//	total, _ := sinkhorn.TransportCost(plan, cost)
//
// Every solver is synchronous and deterministic: equal inputs and options
// give bit-identical plans for any worker count.
package lvlot
