package knapsack

import (
	"fmt"
	"time"
)

// validateItems rejects negative weights and values. The first offending
// item is reported with its index.
//
// Complexity: O(n).
func validateItems(items []Item) error {
	for i, it := range items {
		if it.Weight < 0 {
			return fmt.Errorf("%w: item %d weight=%d", ErrNegativeWeight, i, it.Weight)
		}
		if it.Value < 0 {
			return fmt.Errorf("%w: item %d value=%d", ErrNegativeValue, i, it.Value)
		}
	}

	return nil
}

// validateBBOptions checks BBOptions without looking at the instance.
func validateBBOptions(opts BBOptions) error {
	if opts.TimeLimit < 0 {
		return ErrBadTimeLimit
	}
	// NaN fails both comparisons and is rejected here as well.
	if !(opts.Tightening > 0 && opts.Tightening <= 1) {
		return ErrBadTightening
	}

	return nil
}

// validateGAOptions checks GAOptions without looking at the instance.
func validateGAOptions(opts GAOptions) error {
	if opts.PopulationSize < 1 {
		return ErrBadPopulation
	}
	if opts.Generations < 0 {
		return ErrBadGenerations
	}
	if !(opts.MutationRate >= 0 && opts.MutationRate <= 1) {
		return ErrBadMutationRate
	}
	if opts.TournamentSize < 1 {
		return ErrBadTournament
	}

	return nil
}

// hasDeadline reports whether limit should produce a deadline.
func hasDeadline(limit time.Duration) bool { return limit > 0 }
