// Package app runs one instance end to end: load, solve with both solvers,
// optionally verify against the exact optimum, then report, export metrics
// and persist the run history.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/katalvlaran/knapsack/internal/config"
	"github.com/katalvlaran/knapsack/internal/instance"
	"github.com/katalvlaran/knapsack/internal/logging"
	"github.com/katalvlaran/knapsack/internal/metrics"
	"github.com/katalvlaran/knapsack/internal/report"
	"github.com/katalvlaran/knapsack/internal/store"
	"github.com/katalvlaran/knapsack/knapsack"
)

// App holds the collaborators of a run. Zero fields get defaults in Run.
type App struct {
	Config config.Config
	Out    io.Writer
	Log    logr.Logger
	Clock  clock.PassiveClock
	// Store, when set, receives the runs instead of the configured backend.
	// It must already be initialized and is not closed by Run.
	Store store.Store
}

// Result is what Run produced for one instance.
type Result struct {
	Instance   instance.Instance
	Seed       int64
	Comparison knapsack.Comparison
	// Optimum is set when verification ran and the instance was small enough.
	Optimum *int
	RunIDs  []string
}

// ResolveSeed returns seed, or a seed derived from the wall clock when seed is 0.
func ResolveSeed(seed int64, clk clock.PassiveClock) int64 {
	if seed != 0 {
		return seed
	}
	return clk.Now().UnixNano()
}

// RunOptions translates the configuration into solver options.
func RunOptions(cfg config.Config, seed int64) knapsack.RunOptions {
	opts := knapsack.DefaultRunOptions()
	opts.BB.TimeLimit = cfg.BB.TimeLimit
	opts.BB.MaxDepth = cfg.BB.MaxDepth
	opts.BB.Tightening = cfg.BB.Tightening
	opts.GA.PopulationSize = cfg.GA.Population
	opts.GA.Generations = cfg.GA.Generations
	opts.GA.MutationRate = cfg.GA.MutationRate
	opts.GA.TournamentSize = cfg.GA.Tournament
	opts.GA.Seed = seed
	opts.SkipBB = cfg.Skip == config.SkipBB
	opts.SkipGA = cfg.Skip == config.SkipGA
	return opts
}

// Run processes the instance at path.
func (a *App) Run(ctx context.Context, path string) (Result, error) {
	if a.Out == nil {
		a.Out = io.Discard
	}
	if a.Log.GetSink() == nil {
		a.Log = logging.Log()
	}
	if a.Clock == nil {
		a.Clock = clock.RealClock{}
	}
	cfg := a.Config
	log := a.Log.WithValues("instance", path)

	inst, err := instance.Load(path)
	if err != nil {
		return Result{}, fmt.Errorf("load instance: %w", err)
	}
	log.Info("Loaded instance", "items", inst.Set.Len(), "capacity", inst.Set.Capacity())

	res := Result{Instance: inst, Seed: ResolveSeed(cfg.GA.Seed, a.Clock)}
	if cfg.Skip != config.SkipGA {
		log.Info("Using genetic seed", "seed", res.Seed)
	}

	rec := metrics.NewRecorder()
	opts := RunOptions(cfg, res.Seed)
	opts.Clock = a.Clock
	opts.BB.OnIncumbent = func(inc knapsack.Incumbent) {
		rec.Incumbent(inc)
		log.V(logging.DEBUG).Info("Incumbent improved", "solver", knapsack.SolverBranchAndBound,
			"value", inc.Value, "weight", inc.Weight, "level", inc.Level)
	}
	opts.GA.OnGeneration = func(st knapsack.GenerationStats) {
		rec.Generation(st)
		log.V(logging.TRACE).Info("Generation", "generation", st.Generation, "best", st.Best,
			"mean", st.Mean, "stddev", st.StdDev, "incumbent", st.Incumbent)
	}

	res.Comparison, err = knapsack.Compare(inst.Set, opts)
	if err != nil {
		return Result{}, fmt.Errorf("solve: %w", err)
	}
	for _, r := range []knapsack.SolverResult{res.Comparison.BranchAndBound, res.Comparison.Genetic} {
		if r.Skipped {
			continue
		}
		log.Info("Solved", "solver", r.Solver, "value", r.Value, "weight", r.Weight, "elapsed", r.Elapsed)
		rec.ObserveResult(inst.Name, r)
	}
	if !res.Comparison.BranchAndBound.Skipped {
		st := res.Comparison.BBStats
		rec.ObserveBBStats(st)
		log.V(logging.DEBUG).Info("Search stats", "expanded", st.Expanded, "pruned", st.Pruned,
			"depthCutoffs", st.DepthCutoffs, "pushed", st.Pushed, "termination", st.Termination.String())
	}

	if cfg.Verify {
		a.verify(log, rec, &res)
	}

	if err := a.writeReports(cfg, &res); err != nil {
		return Result{}, fmt.Errorf("write report: %w", err)
	}

	if cfg.Metrics.File != "" {
		if err := rec.WriteTextfile(cfg.Metrics.File); err != nil {
			return Result{}, fmt.Errorf("write metrics: %w", err)
		}
	}

	if res.RunIDs, err = a.persist(ctx, cfg, res); err != nil {
		return Result{}, fmt.Errorf("store runs: %w", err)
	}

	return res, nil
}

// verify computes the exact optimum when the instance is small enough.
func (a *App) verify(log logr.Logger, rec *metrics.Recorder, res *Result) {
	opt, _, err := knapsack.DynamicProgramming(res.Instance.Set)
	if errors.Is(err, knapsack.ErrOracleTooLarge) {
		log.Info("Skipping verification, instance too large for the exact solver")
		return
	}
	if err != nil {
		log.Error(err, "Verification failed")
		return
	}
	res.Optimum = &opt
	for _, r := range []knapsack.SolverResult{res.Comparison.BranchAndBound, res.Comparison.Genetic} {
		if r.Skipped {
			continue
		}
		rec.ObserveGap(res.Instance.Name, r.Solver, opt, r.Value)
		log.Info("Verified", "solver", r.Solver, "optimum", opt, "gap", opt-r.Value)
	}
}

func (a *App) writeReports(cfg config.Config, res *Result) error {
	var err error
	switch cfg.Output.Format {
	case "yaml":
		err = report.WriteYAML(a.Out, report.NewSummary(res.Instance.Path, res.Instance.Set, res.Seed, res.Comparison, res.Optimum))
	default:
		err = report.WriteText(a.Out, res.Instance.Path, res.Comparison)
	}
	if err != nil {
		return err
	}

	if cfg.Output.Summary != "" {
		if err := report.AppendSummary(cfg.Output.Summary, res.Instance.Path, res.Comparison); err != nil {
			return err
		}
	}
	if cfg.Output.Dir != "" {
		if err := report.AppendSelections(cfg.Output.Dir, res.Instance.Name, res.Instance.Set, res.Comparison); err != nil {
			return err
		}
	}
	return nil
}

// persist saves one Run per solved leg when a store is configured.
func (a *App) persist(ctx context.Context, cfg config.Config, res Result) ([]string, error) {
	st := a.Store
	if st == nil {
		var err error
		if st, err = store.NewStore(cfg.Store.Kind, cfg.Store.Path); err != nil || st == nil {
			return nil, err
		}
		defer func() { _ = store.CloseIfSupported(st) }()

		if err := st.Init(ctx); err != nil {
			return nil, err
		}
	}

	var ids []string
	now := a.Clock.Now()
	for _, r := range []knapsack.SolverResult{res.Comparison.BranchAndBound, res.Comparison.Genetic} {
		if r.Skipped {
			continue
		}
		run := store.NewRun(store.Run{
			Instance:  res.Instance.Name,
			Solver:    r.Solver,
			Value:     r.Value,
			Weight:    r.Weight,
			ElapsedMS: r.ElapsedMillis(),
			Selection: r.Selection,
		}, now)
		if r.Solver == knapsack.SolverGenetic {
			run.Seed = res.Seed
		}
		if err := st.SaveRun(ctx, run); err != nil {
			return ids, err
		}
		ids = append(ids, run.ID)
	}
	return ids, nil
}
