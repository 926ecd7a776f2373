package knapsack

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"k8s.io/utils/clock"
)

// Sentinel errors returned by the knapsack package.
var (
	// ErrNilItemSet indicates that a nil *ItemSet was passed to a solver.
	ErrNilItemSet = errors.New("knapsack: item set is nil")

	// ErrNegativeWeight indicates an item with weight < 0.
	ErrNegativeWeight = errors.New("knapsack: negative item weight")

	// ErrNegativeValue indicates an item with value < 0.
	ErrNegativeValue = errors.New("knapsack: negative item value")

	// ErrNegativeCapacity indicates a capacity < 0.
	ErrNegativeCapacity = errors.New("knapsack: negative capacity")

	// ErrBadTimeLimit indicates a negative TimeLimit.
	ErrBadTimeLimit = errors.New("knapsack: TimeLimit must be non-negative")

	// ErrBadTightening indicates a tightening factor outside (0, 1].
	ErrBadTightening = errors.New("knapsack: Tightening must be in (0, 1]")

	// ErrBadPopulation indicates PopulationSize < 1.
	ErrBadPopulation = errors.New("knapsack: PopulationSize must be positive")

	// ErrBadGenerations indicates Generations < 0.
	ErrBadGenerations = errors.New("knapsack: Generations must be non-negative")

	// ErrBadMutationRate indicates a MutationRate outside [0, 1].
	ErrBadMutationRate = errors.New("knapsack: MutationRate must be in [0, 1]")

	// ErrBadTournament indicates TournamentSize < 1.
	ErrBadTournament = errors.New("knapsack: TournamentSize must be positive")
)

// Item is a single (weight, value) pair.
type Item struct {
	Weight int
	Value  int
}

// Density returns value/weight. Zero-weight items have density +Inf when
// they carry value and 0 otherwise, so densities are never NaN.
func (it Item) Density() float64 {
	if it.Weight == 0 {
		if it.Value > 0 {
			return math.Inf(1)
		}
		return 0
	}

	return float64(it.Value) / float64(it.Weight)
}

// ItemSet is an immutable problem instance: items in input order plus a capacity.
// It is safe for concurrent reads.
type ItemSet struct {
	items    []Item
	capacity int
}

// NewItemSet validates and copies items into a new ItemSet.
//
// Errors: ErrNegativeWeight, ErrNegativeValue (wrapped with the item index),
// ErrNegativeCapacity.
func NewItemSet(items []Item, capacity int) (*ItemSet, error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	cp := make([]Item, len(items))
	copy(cp, items)

	return &ItemSet{items: cp, capacity: capacity}, nil
}

// Len returns the number of items.
func (s *ItemSet) Len() int { return len(s.items) }

// Capacity returns the knapsack capacity.
func (s *ItemSet) Capacity() int { return s.capacity }

// Item returns the i-th item in input order.
func (s *ItemSet) Item(i int) Item { return s.items[i] }

// Items returns a copy of the items in input order.
func (s *ItemSet) Items() []Item {
	cp := make([]Item, len(s.items))
	copy(cp, s.items)

	return cp
}

// Weight returns the total weight of the selected items (input order).
// Entries beyond len(sel) count as excluded.
func (s *ItemSet) Weight(sel []bool) int {
	var w int
	for i, in := range sel {
		if in && i < len(s.items) {
			w += s.items[i].Weight
		}
	}

	return w
}

// Value returns the total value of the selected items (input order).
func (s *ItemSet) Value(sel []bool) int {
	var v int
	for i, in := range sel {
		if in && i < len(s.items) {
			v += s.items[i].Value
		}
	}

	return v
}

// Termination reports why a branch-and-bound search stopped.
type Termination int

const (
	// Exhausted means the frontier became empty.
	Exhausted Termination = iota

	// Deadline means the wall-clock budget ran out before the frontier emptied.
	Deadline
)

// String returns a lowercase name for t.
func (t Termination) String() string {
	switch t {
	case Exhausted:
		return "exhausted"
	case Deadline:
		return "deadline"
	default:
		return "unknown"
	}
}

// Incumbent describes an improvement of the best known feasible solution.
// Level is the sorted-order depth at which it was found (0 for the genetic solver).
type Incumbent struct {
	Value  int
	Weight int
	Level  int
}

// BBOptions configures BranchAndBound.
//
//	TimeLimit   – wall-clock budget measured from the start of the search.
//	              Default 100s. Zero disables the deadline.
//	MaxDepth    – nodes at this level are dropped without expansion.
//	              Default 75. Negative disables the ceiling.
//	Tightening  – factor applied to the fractional part of the bound; (0, 1].
//	              Default 0.95.
//	Clock       – time source for the deadline; nil uses the real clock.
//	OnIncumbent – optional hook called after every incumbent improvement.
type BBOptions struct {
	TimeLimit   time.Duration
	MaxDepth    int
	Tightening  float64
	Clock       clock.PassiveClock
	OnIncumbent func(Incumbent)
}

// DefaultBBOptions returns the stock branch-and-bound settings.
func DefaultBBOptions() BBOptions {
	return BBOptions{
		TimeLimit:  100 * time.Second,
		MaxDepth:   75,
		Tightening: 0.95,
	}
}

// BBStats counts search events for diagnostics and metrics.
type BBStats struct {
	Expanded     int // nodes whose children were generated
	Pruned       int // popped nodes whose bound could not beat the incumbent
	DepthCutoffs int // popped nodes dropped at the depth ceiling
	Pushed       int // nodes pushed on the frontier (root included)
	Termination  Termination
}

// BBResult is the outcome of BranchAndBound.
//
// Sorted holds the selection in density-descending order; Order maps each
// sorted position back to its original item index.
type BBResult struct {
	Value  int
	Weight int
	Sorted []bool
	Order  []int
	Stats  BBStats
}

// Selection translates Sorted into the original item order.
func (r BBResult) Selection() []bool {
	out := make([]bool, len(r.Order))
	for k, orig := range r.Order {
		if k < len(r.Sorted) && r.Sorted[k] {
			out[orig] = true
		}
	}

	return out
}

// GenerationStats summarizes one generation of the genetic solver.
// Incumbent is the best fitness seen so far across all generations.
type GenerationStats struct {
	Generation int
	Best       int
	Mean       float64
	StdDev     float64
	Incumbent  int
}

// GAOptions configures Genetic.
//
//	PopulationSize – candidates per generation. Default 50.
//	Generations    – number of generations. Default 200.
//	MutationRate   – per-gene flip probability. Default 0.05.
//	TournamentSize – draws per tournament. Default 2.
//	Seed           – seed used when Rand is nil; 0 selects defaultRNGSeed.
//	Rand           – explicit random source; not safe to share across goroutines.
//	OnGeneration   – optional hook called once per generation.
type GAOptions struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	Seed           int64
	Rand           *rand.Rand
	OnGeneration   func(GenerationStats)
}

// DefaultGAOptions returns the stock genetic settings.
func DefaultGAOptions() GAOptions {
	return GAOptions{
		PopulationSize: 50,
		Generations:    200,
		MutationRate:   0.05,
		TournamentSize: 2,
	}
}

// GAResult is the outcome of Genetic. Selection is in original item order.
type GAResult struct {
	Value       int
	Weight      int
	Selection   []bool
	Generations int
}
