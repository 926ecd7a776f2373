// Package knapsack solves the 0/1 knapsack problem with two independent
// strategies and compares them on a single instance.
//
// Solvers:
//
//   - BranchAndBound - best-first search over include/exclude decisions on
//     items ordered by value density (value/weight), pruned by a
//     fractional-relaxation upper bound scaled by a tightening factor.
//     The search stops when the frontier is empty or when a wall-clock
//     deadline passes; nodes deeper than MaxDepth are abandoned.
//
//   - Genetic - a fixed-size population evolved for a fixed number of
//     generations with tournament selection, single-point crossover,
//     per-gene mutation and a deterministic greedy repair that keeps every
//     candidate within capacity. The best chromosome ever seen is returned.
//
//   - Compare - runs both solvers sequentially on the same ItemSet and
//     packages value, weight, elapsed time and inclusion vectors.
//
// Orderings:
//
//	BranchAndBound works on the density-descending order internally. Its
//	result carries the permutation (Order[k] = original index of sorted
//	position k) so that BBResult.Selection() returns the original order.
//	Genetic always works in the original input order.
//
// Determinism:
//
//   - BranchAndBound has no randomness; identical input ⇒ identical output
//     (as long as the deadline is not reached).
//   - Genetic draws all randomness from one *rand.Rand passed in through
//     GAOptions. The same seed ⇒ identical output.
//
// Errors (sentinel):
//
//   - ErrNilItemSet, ErrNegativeWeight, ErrNegativeValue, ErrNegativeCapacity
//   - ErrBadTimeLimit, ErrBadTightening
//   - ErrBadPopulation, ErrBadGenerations, ErrBadMutationRate, ErrBadTournament
//
// The package never logs. Progress is observable through the OnIncumbent
// and OnGeneration hooks.
package knapsack
