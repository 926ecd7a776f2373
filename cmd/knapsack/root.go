package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/knapsack/internal/app"
	"github.com/katalvlaran/knapsack/internal/config"
	"github.com/katalvlaran/knapsack/internal/logging"
)

// flagKeys maps each command-line flag to its configuration key.
var flagKeys = map[string]string{
	"time-limit":    config.KeyBBTimeLimit,
	"max-depth":     config.KeyBBMaxDepth,
	"tightening":    config.KeyBBTightening,
	"population":    config.KeyGAPopulation,
	"generations":   config.KeyGAGenerations,
	"mutation-rate": config.KeyGAMutationRate,
	"tournament":    config.KeyGATournament,
	"seed":          config.KeyGASeed,
	"summary":       config.KeyOutputSummary,
	"out-dir":       config.KeyOutputDir,
	"format":        config.KeyOutputFormat,
	"store":         config.KeyStoreKind,
	"store-path":    config.KeyStorePath,
	"metrics-file":  config.KeyMetricsFile,
	"log-level":     config.KeyLogLevel,
	"log-format":    config.KeyLogFormat,
	"verify":        config.KeyVerify,
	"skip":          config.KeySkip,
}

func addFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, json or toml)")

	fs.Duration("time-limit", 0, "branch-and-bound wall-clock budget, 0 disables it (default 1m40s)")
	fs.Int("max-depth", 0, "branch-and-bound depth ceiling, negative disables it (default 75)")
	fs.Float64("tightening", 0, "factor on the fractional part of the bound, in (0, 1] (default 0.95)")
	fs.Int("population", 0, "genetic population size (default 50)")
	fs.Int("generations", 0, "genetic generations (default 200)")
	fs.Float64("mutation-rate", 0, "per-gene mutation probability (default 0.05)")
	fs.Int("tournament", 0, "tournament size (default 2)")
	fs.Int64("seed", 0, "genetic seed, 0 derives one from the clock")
	fs.String("summary", "", "summary CSV, empty disables it (default results_BnB_GA.csv)")
	fs.String("out-dir", "", "directory for per-instance selection CSVs (default result_BnB_GA)")
	fs.String("format", "", "console output: text or yaml (default text)")
	fs.String("store", "", "run history backend: none, memory or sqlite (default none)")
	fs.String("store-path", "", "sqlite database path (default knapsack.db)")
	fs.String("metrics-file", "", "write Prometheus metrics to this file")
	fs.String("log-level", "", "debug, info, warn or error (default info)")
	fs.String("log-format", "", "console or json (default console)")
	fs.Bool("verify", false, "compare both results with the exact optimum when feasible")
	fs.String("skip", "", "skip one solver: bnb or ga")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func newRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "knapsack [flags] <input_file>",
		Short:        "Solve a 0/1 knapsack instance with branch-and-bound and a genetic algorithm",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(v, file)
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			logging.SetLogger(log)

			a := &app.App{Config: cfg, Out: out, Log: log}
			_, err = a.Run(cmd.Context(), args[0])
			return err
		},
	}
	cmd.SetOut(out)
	addFlags(cmd.Flags())

	return cmd
}
