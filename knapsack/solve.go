// Package knapsack - sequential runner for both solvers.
//
// Compare executes BranchAndBound to completion (or cutoff) and only then
// Genetic, on the same read-only ItemSet. Each leg is timed with the
// configured clock. Selections are reported in original item order; the
// branch-and-bound leg also keeps its density-sorted selection.
package knapsack

import (
	"time"

	"k8s.io/utils/clock"
)

// Solver names used in SolverResult and by reporters.
const (
	SolverBranchAndBound = "BnB"
	SolverGenetic        = "GA"
)

// RunOptions configures Compare.
//
//	BB, GA      – per-solver options.
//	Clock       – time source for elapsed measurement (and the BnB deadline
//	              when BB.Clock is nil); nil uses the real clock.
//	SkipBB/GA   – disable one leg; its SolverResult stays zero with Skipped=true.
type RunOptions struct {
	BB     BBOptions
	GA     GAOptions
	Clock  clock.PassiveClock
	SkipBB bool
	SkipGA bool
}

// DefaultRunOptions returns stock options for both solvers.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		BB: DefaultBBOptions(),
		GA: DefaultGAOptions(),
	}
}

// SolverResult is the reported outcome of one solver leg.
type SolverResult struct {
	Solver    string
	Value     int
	Weight    int
	Elapsed   time.Duration
	Selection []bool // original order
	Sorted    []bool // density order; BnB only
	Skipped   bool
}

// ElapsedMillis returns Elapsed in whole milliseconds.
func (r SolverResult) ElapsedMillis() int64 { return r.Elapsed.Milliseconds() }

// Comparison holds both legs of a Compare run plus solver-specific details.
type Comparison struct {
	BranchAndBound SolverResult
	Genetic        SolverResult
	BBStats        BBStats
}

// Compare runs BranchAndBound then Genetic on set.
//
// Errors: ErrNilItemSet and any option sentinel from either solver. Options
// are validated before any solver runs.
func Compare(set *ItemSet, opts RunOptions) (Comparison, error) {
	if set == nil {
		return Comparison{}, ErrNilItemSet
	}
	if !opts.SkipBB {
		if err := validateBBOptions(opts.BB); err != nil {
			return Comparison{}, err
		}
	}
	if !opts.SkipGA {
		if err := validateGAOptions(opts.GA); err != nil {
			return Comparison{}, err
		}
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	var out Comparison
	out.BranchAndBound = SolverResult{Solver: SolverBranchAndBound, Skipped: opts.SkipBB}
	out.Genetic = SolverResult{Solver: SolverGenetic, Skipped: opts.SkipGA}

	if !opts.SkipBB {
		bbOpts := opts.BB
		if bbOpts.Clock == nil {
			bbOpts.Clock = clk
		}
		start := clk.Now()
		bb, err := BranchAndBound(set, bbOpts)
		if err != nil {
			return Comparison{}, err
		}
		out.BranchAndBound.Elapsed = clk.Since(start)
		out.BranchAndBound.Value = bb.Value
		out.BranchAndBound.Weight = bb.Weight
		out.BranchAndBound.Selection = bb.Selection()
		out.BranchAndBound.Sorted = bb.Sorted
		out.BBStats = bb.Stats
	}

	if !opts.SkipGA {
		start := clk.Now()
		ga, err := Genetic(set, opts.GA)
		if err != nil {
			return Comparison{}, err
		}
		out.Genetic.Elapsed = clk.Since(start)
		out.Genetic.Value = ga.Value
		out.Genetic.Weight = ga.Weight
		out.Genetic.Selection = ga.Selection
	}

	return out, nil
}
