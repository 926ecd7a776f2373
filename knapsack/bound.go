package knapsack

// upperBound estimates the best value reachable from a partial state over
// items sorted by descending density.
//
// The first level items are already decided (weight/value hold their totals).
// Remaining items are added whole while they fit; the first one that does not
// fit contributes the fraction of its value that fills the residual capacity,
// scaled by tightening. A state at or over capacity returns 0.
//
// With tightening == 1 this is the LP relaxation bound (admissible). Values
// below 1 prune more aggressively and may cut the optimum on some instances.
//
// Complexity: O(n - level).
func upperBound(sorted []Item, capacity int, level, weight, value int, tightening float64) float64 {
	if weight >= capacity {
		return 0
	}

	var (
		n      = len(sorted)
		bound  = float64(value)
		cur    = weight
		idx    = level
		it     Item
		filled bool
	)
	for idx < n {
		it = sorted[idx]
		if cur+it.Weight > capacity {
			filled = true
			break
		}
		cur += it.Weight
		bound += float64(it.Value)
		idx++
	}
	if filled {
		// it.Weight > capacity-cur ≥ 0 here, so the ratio is finite.
		bound += float64(capacity-cur) * float64(it.Value) / float64(it.Weight) * tightening
	}

	return bound
}
