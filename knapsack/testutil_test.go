// Package knapsack_test - shared helpers for the solver tests.
//
// Policy:
//   - Deterministic instances: every random instance is drawn from a fixed seed.
//   - Helpers fail the test via t.Helper()+require so call sites stay short.
package knapsack_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapsack/knapsack"
)

// seedDet is the fixed seed used by determinism tests.
const seedDet int64 = 42

// scenarioItems is the four-item reference instance; with capacity 5 the
// optimum is 7 (items 0 and 1, weight 5).
func scenarioItems() []knapsack.Item {
	return []knapsack.Item{
		{Weight: 2, Value: 3},
		{Weight: 3, Value: 4},
		{Weight: 4, Value: 5},
		{Weight: 5, Value: 6},
	}
}

// mustSet builds an ItemSet or fails the test.
func mustSet(t testing.TB, items []knapsack.Item, capacity int) *knapsack.ItemSet {
	t.Helper()
	set, err := knapsack.NewItemSet(items, capacity)
	require.NoError(t, err)

	return set
}

// randomItems draws n items with weights in [1, maxW] and values in [0, maxV].
// Capacity is roughly half of the total weight.
func randomItems(rng *rand.Rand, n, maxW, maxV int) ([]knapsack.Item, int) {
	items := make([]knapsack.Item, n)
	var total int
	for i := range items {
		items[i] = knapsack.Item{
			Weight: 1 + rng.Intn(maxW),
			Value:  rng.Intn(maxV + 1),
		}
		total += items[i].Weight
	}

	return items, total / 2
}

// countTrue returns the number of selected entries.
func countTrue(sel []bool) int {
	var c int
	for _, b := range sel {
		if b {
			c++
		}
	}

	return c
}

// exactBB returns options that make BranchAndBound exact: LP bound,
// no depth ceiling, no deadline.
func exactBB() knapsack.BBOptions {
	opt := knapsack.DefaultBBOptions()
	opt.Tightening = 1
	opt.MaxDepth = -1
	opt.TimeLimit = 0

	return opt
}
