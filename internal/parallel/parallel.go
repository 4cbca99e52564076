// SPDX-License-Identifier: MIT

// Package parallel runs index-range loops across a fixed number of workers.
//
// The range [0, n) is cut into contiguous chunks, one per worker. Callers must
// make each index write only its own output slot; under that rule the result
// is identical for any worker count.
package parallel

import "sync"

// minChunk is the smallest range worth handing to a separate goroutine.
const minChunk = 16

// For calls body(lo, hi) over disjoint chunks covering [0, n).
// workers <= 1 (or a small n) runs body(0, n) on the calling goroutine.
func For(n, workers int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers > n/minChunk {
		workers = n / minChunk
	}
	if workers <= 1 {
		body(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
