package knapsack

import "errors"

// ErrOracleTooLarge is returned by DynamicProgramming when the n×(capacity+1)
// decision table would exceed maxOracleCells.
var ErrOracleTooLarge = errors.New("knapsack: instance too large for the exact oracle")

// maxOracleCells caps the decision table at 64 MiB of bools.
const maxOracleCells = 1 << 26

// DynamicProgramming computes the exact optimum with the classic O(n·C)
// table. It is meant as a reference for small instances: tests and the CLI
// verification pass compare both solvers against it.
//
// Returns the optimal value and one optimal selection in original order.
//
// Complexity: O(n·C) time, O(n·C) bits of decision table + O(C) values.
func DynamicProgramming(set *ItemSet) (int, []bool, error) {
	if set == nil {
		return 0, nil, ErrNilItemSet
	}
	n, capacity := set.Len(), set.capacity
	if n == 0 {
		return 0, make([]bool, 0), nil
	}
	// capacity+1 may overflow; compare without it.
	if capacity >= maxOracleCells/n {
		return 0, nil, ErrOracleTooLarge
	}

	best := make([]int, capacity+1)
	take := make([][]bool, n)
	var (
		i, w int
		it   Item
	)
	for i = 0; i < n; i++ {
		it = set.items[i]
		take[i] = make([]bool, capacity+1)
		for w = capacity; w >= it.Weight; w-- {
			if cand := best[w-it.Weight] + it.Value; cand > best[w] {
				best[w] = cand
				take[i][w] = true
			}
		}
	}

	sel := make([]bool, n)
	w = capacity
	for i = n - 1; i >= 0; i-- {
		if take[i][w] {
			sel[i] = true
			w -= set.items[i].Weight
		}
	}

	return best[capacity], sel, nil
}
