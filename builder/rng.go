// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// defaultRNGSeed replaces seed == 0 so that "no seed" is still reproducible.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed 0 uses defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// rngFrom returns cfg.rng when set (shared stream), else a stream seeded by seed.
func rngFrom(cfg builderConfig, seed int64) *rand.Rand {
	if cfg.rng != nil {
		return cfg.rng
	}

	return rngFromSeed(seed)
}

// deriveSeed mixes a parent seed and a stream id (SplitMix64 finalizer).
// Source and target clouds of one problem use streams 0 and 1 of the same
// seed so they are independent yet reproducible.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveSeed exposes deriveSeed for callers that need several independent
// clouds from one user seed (e.g. `lvlot gen`).
func DeriveSeed(seed int64, stream uint64) int64 {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return deriveSeed(seed, stream)
}
