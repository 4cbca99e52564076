// SPDX-License-Identifier: MIT

// Package problem is the on-disk model of a transport problem used by the
// lvlot command line: mass vectors, either an explicit cost matrix or two
// point clouds with a metric, and an optional [solver] table.
//
// Files are TOML, YAML or JSON (comments and trailing commas allowed); the
// format follows the file extension.
package problem
