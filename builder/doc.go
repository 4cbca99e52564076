// SPDX-License-Identifier: MIT

// Package builder produces deterministic transport fixtures: mass histograms
// and point clouds that feed distance.Pairwise and the solvers.
//
// The package offers the following components:
//
//   - Histograms (probability vectors summing to 1):
//     – Uniform:        1/n everywhere.
//     – Gauss1D:        discretized Gaussian bump on the bins 0..n−1.
//     – Normalize:      rescale any non-negative vector to unit mass.
//   - Point clouds ([][]float64, one row per atom):
//     – Grid1D:         n evenly spaced points on [lo, hi].
//     – GaussPoints:    seeded samples of an axis-aligned Gaussian.
//     – UniformPoints:  seeded samples of the box [lo, hi]^dim.
//   - Configuration: BuilderOption values resolved into builderConfig.
//
// Guarantees:
//
//   - Determinism: the same arguments, options and seed give identical output.
//   - No panics: invalid parameters return ErrTooFewPoints or
//     ErrInvalidParameter wrapped with the generator name.
package builder
