// SPDX-License-Identifier: MIT

// Package cli builds the lvlot command tree.
//
//	lvlot solve FILE   regularized solve (sinkhorn | stabilized | greedy | unbalanced)
//	lvlot exact FILE   exact (EMD) solve
//	lvlot cost  FILE   print the resolved cost matrix
//	lvlot gen   FILE   write a generated problem file
//	lvlot watch FILE   re-run solve whenever FILE changes
//
// Settings come from the problem file's [solver] table; flags given on the
// command line take precedence.
package cli
