package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/katalvlaran/knapsack/internal/config"
	"github.com/katalvlaran/knapsack/internal/logging"
	"github.com/katalvlaran/knapsack/internal/store"
	"github.com/katalvlaran/knapsack/knapsack"
)

const scenarioInput = "4 5\n2 3\n3 4\n4 5\n5 6\n"

type fixture struct {
	dir   string
	input string
	cfg   config.Config
	out   bytes.Buffer
	clk   *testingclock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir(), clk: testingclock.NewFakeClock(time.Unix(1700000000, 0))}
	f.input = filepath.Join(f.dir, "ks_4_0.txt")
	require.NoError(t, os.WriteFile(f.input, []byte(scenarioInput), 0o644))

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	cfg.GA.Seed = 42
	cfg.Output.Summary = filepath.Join(f.dir, "results_BnB_GA.csv")
	cfg.Output.Dir = filepath.Join(f.dir, "result_BnB_GA")
	f.cfg = cfg

	return f
}

func (f *fixture) app() *App {
	return &App{Config: f.cfg, Out: &f.out, Log: logging.NewTestLogger(), Clock: f.clk}
}

func TestRunScenario(t *testing.T) {
	f := newFixture(t)
	f.cfg.Verify = true
	f.cfg.Metrics.File = filepath.Join(f.dir, "knapsack.prom")

	res, err := f.app().Run(context.Background(), f.input)
	require.NoError(t, err)

	assert.Equal(t, "ks_4_0", res.Instance.Name)
	assert.EqualValues(t, 42, res.Seed)
	assert.Equal(t, 7, res.Comparison.BranchAndBound.Value)
	assert.Equal(t, 7, res.Comparison.Genetic.Value)
	require.NotNil(t, res.Optimum)
	assert.Equal(t, 7, *res.Optimum)
	assert.Empty(t, res.RunIDs)

	// The fake clock never moves, so both legs report 0 ms.
	assert.Equal(t, "File: "+f.input+"\n"+
		"  [BnB]   Value=7, Weight=5, Time=0 ms\n"+
		"  [GenGA] Value=7, Weight=5, Time=0 ms\n", f.out.String())

	summary, err := os.ReadFile(f.cfg.Output.Summary)
	require.NoError(t, err)
	assert.Equal(t, "File,weight_BnB,time_BnB_ms,weight_GA,time_GA_ms,value_BnB,value_GA\n"+
		f.input+",5,0,5,0,7,7\n", string(summary))

	sel, err := os.ReadFile(filepath.Join(f.cfg.Output.Dir, "ks_4_0.csv"))
	require.NoError(t, err)
	assert.Equal(t, "BnB,2,3,0,0\nGA,2,3,0,0\n", string(sel))

	prom, err := os.ReadFile(f.cfg.Metrics.File)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `knapsack_best_value{instance="ks_4_0",solver="BnB"} 7`)
	assert.Contains(t, string(prom), `knapsack_optimality_gap{instance="ks_4_0",solver="GA"} 0`)
	assert.Contains(t, string(prom), "knapsack_ga_generations_total 200")
}

func TestRunYAMLAndSkip(t *testing.T) {
	f := newFixture(t)
	f.cfg.Output.Format = "yaml"
	f.cfg.Output.Summary = ""
	f.cfg.Output.Dir = ""
	f.cfg.Skip = config.SkipBB

	res, err := f.app().Run(context.Background(), f.input)
	require.NoError(t, err)
	assert.True(t, res.Comparison.BranchAndBound.Skipped)
	assert.Contains(t, f.out.String(), "solver: GA")
	assert.NotContains(t, f.out.String(), "solver: BnB")
	assert.NoFileExists(t, filepath.Join(f.dir, "results_BnB_GA.csv"))
}

func TestRunTimeSeed(t *testing.T) {
	f := newFixture(t)
	f.cfg.GA.Seed = 0

	res, err := f.app().Run(context.Background(), f.input)
	require.NoError(t, err)
	assert.Equal(t, f.clk.Now().UnixNano(), res.Seed)
}

func TestRunVerifyEmptyHugeCapacity(t *testing.T) {
	f := newFixture(t)
	f.cfg.Verify = true
	empty := filepath.Join(f.dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("0 1099511627776\n"), 0o644))

	res, err := f.app().Run(context.Background(), empty)
	require.NoError(t, err)
	require.NotNil(t, res.Optimum)
	assert.Zero(t, *res.Optimum)
	assert.Zero(t, res.Comparison.BranchAndBound.Value)
	assert.Zero(t, res.Comparison.Genetic.Value)
}

func TestRunPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mem := store.NewMemoryStore()
	require.NoError(t, mem.Init(ctx))
	a := f.app()
	a.Store = mem

	res, err := a.Run(ctx, f.input)
	require.NoError(t, err)
	require.Len(t, res.RunIDs, 2)

	runs, err := mem.ListRuns(ctx, "ks_4_0")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, knapsack.SolverBranchAndBound, runs[0].Solver)
	assert.Zero(t, runs[0].Seed)
	assert.Equal(t, knapsack.SolverGenetic, runs[1].Solver)
	assert.EqualValues(t, 42, runs[1].Seed)
	assert.Equal(t, []bool{true, true, false, false}, runs[1].Selection)
}

func TestRunSQLite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.cfg.Store.Kind = "sqlite"
	f.cfg.Store.Path = filepath.Join(f.dir, "runs.db")

	_, err := f.app().Run(ctx, f.input)
	require.NoError(t, err)
	_, err = f.app().Run(ctx, f.input)
	require.NoError(t, err)

	db := store.NewSQLiteStore(f.cfg.Store.Path)
	require.NoError(t, db.Init(ctx))
	defer db.Close()
	runs, err := db.ListRuns(ctx, "ks_4_0")
	require.NoError(t, err)
	assert.Len(t, runs, 4)
}

func TestRunErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.app().Run(context.Background(), filepath.Join(f.dir, "absent.txt"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "load instance:"))

	bad := filepath.Join(f.dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("3 10 1 2"), 0o644))
	_, err = f.app().Run(context.Background(), bad)
	require.Error(t, err)

	f.cfg.Output.Dir = f.input // a file, not a directory
	_, err = f.app().Run(context.Background(), f.input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write report")
}

func TestRunOptions(t *testing.T) {
	f := newFixture(t)
	f.cfg.BB.MaxDepth = 10
	f.cfg.Skip = config.SkipGA

	opts := RunOptions(f.cfg, 5)
	assert.Equal(t, 10, opts.BB.MaxDepth)
	assert.Equal(t, 100*time.Second, opts.BB.TimeLimit)
	assert.EqualValues(t, 5, opts.GA.Seed)
	assert.Equal(t, 50, opts.GA.PopulationSize)
	assert.True(t, opts.SkipGA)
	assert.False(t, opts.SkipBB)
}
