// Package knapsack - RNG utilities for the genetic solver.
//
// Every random draw of Genetic (initial bits, tournament picks, crossover
// points, mutation flips) comes from one *rand.Rand created here or supplied
// by the caller through GAOptions.Rand. No time-based source is hidden in
// the package; callers that want fresh randomness pick the seed themselves.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
package knapsack

import "math/rand"

// defaultRNGSeed is the seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// NewRand returns the generator Genetic uses for seed when GAOptions.Rand is nil.
func NewRand(seed int64) *rand.Rand { return rngFromSeed(seed) }

// randFor resolves the random source for a genetic run.
func randFor(opts GAOptions) *rand.Rand {
	if opts.Rand != nil {
		return opts.Rand
	}

	return rngFromSeed(opts.Seed)
}
