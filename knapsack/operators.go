package knapsack

import (
	"math/rand"
	"sort"
)

// candidate is one member of the genetic population. genes is in original
// item order; fitness is the value of the selection (0 if over capacity).
type candidate struct {
	genes   []bool
	fitness int
}

// clone returns a deep copy so that operators never write into a stored population.
func (c candidate) clone() candidate {
	g := make([]bool, len(c.genes))
	copy(g, c.genes)

	return candidate{genes: g, fitness: c.fitness}
}

// randomGenes draws one uniform bit per item.
func randomGenes(n int, rng *rand.Rand) []bool {
	g := make([]bool, n)
	for i := range g {
		g[i] = rng.Intn(2) == 1
	}

	return g
}

// repair removes included items in ascending density order until the
// selection fits. Ties keep index order, so the result depends only on the
// input selection.
//
// Complexity: O(n log n).
func repair(genes []bool, items []Item, capacity int) {
	var total int
	for i, in := range genes {
		if in {
			total += items[i].Weight
		}
	}
	if total <= capacity {
		return
	}

	idx := make([]int, 0, len(genes))
	for i, in := range genes {
		if in {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].Density() < items[idx[b]].Density()
	})

	for _, i := range idx {
		if total <= capacity {
			break
		}
		genes[i] = false
		total -= items[i].Weight
	}
}

// fitness returns the value of genes, or 0 when the selection is over capacity.
func fitness(genes []bool, items []Item, capacity int) int {
	var w, v int
	for i, in := range genes {
		if in {
			w += items[i].Weight
			v += items[i].Value
		}
	}
	if w > capacity {
		return 0
	}

	return v
}

// tournament draws size members uniformly with replacement and returns a copy
// of the fittest. Only a strictly better draw replaces the current winner,
// so ties go to the earliest draw.
func tournament(pop []candidate, size int, rng *rand.Rand) candidate {
	best := pop[rng.Intn(len(pop))]
	var c candidate
	for i := 1; i < size; i++ {
		c = pop[rng.Intn(len(pop))]
		if c.fitness > best.fitness {
			best = c
		}
	}

	return best.clone()
}

// crossover picks a cut point uniformly in [0, n) and swaps every gene from
// the cut to the end between a and b, in place.
func crossover(a, b []bool, rng *rand.Rand) {
	n := len(a)
	if n == 0 {
		return
	}
	point := rng.Intn(n)
	for i := point; i < n; i++ {
		a[i], b[i] = b[i], a[i]
	}
}

// mutate flips each gene independently with probability rate.
func mutate(genes []bool, rate float64, rng *rand.Rand) {
	for i := range genes {
		if rng.Float64() < rate {
			genes[i] = !genes[i]
		}
	}
}

// fittest returns the index of the first member with maximal fitness.
func fittest(pop []candidate) int {
	best := 0
	for i := 1; i < len(pop); i++ {
		if pop[i].fitness > pop[best].fitness {
			best = i
		}
	}

	return best
}
