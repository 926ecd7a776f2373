// Package knapsack - genetic solver.
//
// Genetic evolves PopulationSize candidate selections for Generations rounds.
// Each round:
//  1. The fittest member is copied forward unchanged (elitism).
//  2. Pairs of parents are drawn by tournament, crossed over at one point,
//     mutated gene by gene, repaired to fit and re-scored.
//  3. Offspring fill the next generation; the last child is dropped when
//     only one slot remains.
//
// The best candidate seen in any generation, including the final one, is
// returned; the result never falls below the best of generation 0.
//
// Complexity: O(G·P·n log n) time for G generations of P candidates over n
// items (repair dominates), O(P·n) memory.
package knapsack

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// gaEngine bundles the read-only inputs of one genetic run with its random source.
type gaEngine struct {
	items    []Item
	capacity int
	opts     GAOptions
	rng      *rand.Rand

	// Incumbent across all generations.
	bestFit   int
	bestGenes []bool
}

// score repairs c in place and recomputes its fitness.
func (g *gaEngine) score(c *candidate) {
	repair(c.genes, g.items, g.capacity)
	c.fitness = fitness(c.genes, g.items, g.capacity)
}

// initPopulation creates PopulationSize random, repaired candidates.
func (g *gaEngine) initPopulation() []candidate {
	pop := make([]candidate, g.opts.PopulationSize)
	for i := range pop {
		pop[i].genes = randomGenes(len(g.items), g.rng)
		g.score(&pop[i])
	}

	return pop
}

// consider promotes c to incumbent if it is strictly better.
func (g *gaEngine) consider(c candidate) {
	if c.fitness > g.bestFit {
		g.bestFit = c.fitness
		g.bestGenes = append(g.bestGenes[:0], c.genes...)
	}
}

// breed produces the next generation from pop, starting with a copy of the elite.
func (g *gaEngine) breed(pop []candidate, elite candidate) []candidate {
	size := g.opts.PopulationSize
	next := make([]candidate, 0, size)
	next = append(next, elite.clone())

	var p1, p2 candidate
	for len(next) < size {
		p1 = tournament(pop, g.opts.TournamentSize, g.rng)
		p2 = tournament(pop, g.opts.TournamentSize, g.rng)

		crossover(p1.genes, p2.genes, g.rng)
		mutate(p1.genes, g.opts.MutationRate, g.rng)
		mutate(p2.genes, g.opts.MutationRate, g.rng)
		g.score(&p1)
		g.score(&p2)

		next = append(next, p1)
		if len(next) < size {
			next = append(next, p2)
		}
	}

	return next
}

// report sends per-generation statistics to the hook, if any.
func (g *gaEngine) report(gen int, pop []candidate, best int) {
	if g.opts.OnGeneration == nil {
		return
	}
	xs := make([]float64, len(pop))
	for i := range pop {
		xs[i] = float64(pop[i].fitness)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 || math.IsNaN(std) {
		std = 0
	}
	g.opts.OnGeneration(GenerationStats{
		Generation: gen,
		Best:       best,
		Mean:       mean,
		StdDev:     std,
		Incumbent:  g.bestFit,
	})
}

// Genetic runs the evolutionary search on set.
//
// All randomness comes from opts.Rand, or from a generator seeded with
// opts.Seed when Rand is nil. An empty item set returns value 0 without
// drawing any random numbers. Zero-weight items fit any capacity, including
// 0, whereas BranchAndBound treats a full knapsack as closed.
//
// Errors: ErrNilItemSet and option sentinels (ErrBadPopulation,
// ErrBadGenerations, ErrBadMutationRate, ErrBadTournament).
func Genetic(set *ItemSet, opts GAOptions) (GAResult, error) {
	if set == nil {
		return GAResult{}, ErrNilItemSet
	}
	if err := validateGAOptions(opts); err != nil {
		return GAResult{}, err
	}

	n := set.Len()
	res := GAResult{Selection: make([]bool, n)}
	if n == 0 {
		return res, nil
	}

	g := gaEngine{
		items:     set.items,
		capacity:  set.capacity,
		opts:      opts,
		rng:       randFor(opts),
		bestGenes: make([]bool, n),
	}

	pop := g.initPopulation()
	var elite candidate
	for gen := 0; gen < opts.Generations; gen++ {
		elite = pop[fittest(pop)]
		g.consider(elite)
		g.report(gen, pop, elite.fitness)
		pop = g.breed(pop, elite)
	}
	for i := range pop {
		g.consider(pop[i])
	}

	copy(res.Selection, g.bestGenes)
	res.Value = g.bestFit
	res.Weight = set.Weight(res.Selection)
	res.Generations = opts.Generations

	return res, nil
}
