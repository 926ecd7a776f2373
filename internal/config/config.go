// Package config loads the command configuration. Values are layered by
// viper: flags over KNAPSACK_* environment variables over an optional
// config file over defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. KNAPSACK_GA_SEED.
const EnvPrefix = "KNAPSACK"

// Config keys.
const (
	KeyBBTimeLimit    = "bb.time-limit"
	KeyBBMaxDepth     = "bb.max-depth"
	KeyBBTightening   = "bb.tightening"
	KeyGAPopulation   = "ga.population"
	KeyGAGenerations  = "ga.generations"
	KeyGAMutationRate = "ga.mutation-rate"
	KeyGATournament   = "ga.tournament"
	KeyGASeed         = "ga.seed"
	KeyOutputSummary  = "output.summary"
	KeyOutputDir      = "output.dir"
	KeyOutputFormat   = "output.format"
	KeyStoreKind      = "store.kind"
	KeyStorePath      = "store.path"
	KeyMetricsFile    = "metrics.file"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyVerify         = "verify"
	KeySkip           = "skip"
)

// Skip values.
const (
	SkipNone = ""
	SkipBB   = "bnb"
	SkipGA   = "ga"
)

type BBConfig struct {
	TimeLimit  time.Duration `mapstructure:"time-limit"`
	MaxDepth   int           `mapstructure:"max-depth"`
	Tightening float64       `mapstructure:"tightening"`
}

type GAConfig struct {
	Population   int     `mapstructure:"population"`
	Generations  int     `mapstructure:"generations"`
	MutationRate float64 `mapstructure:"mutation-rate"`
	Tournament   int     `mapstructure:"tournament"`
	// Seed 0 asks the command to derive a seed from the wall clock.
	Seed int64 `mapstructure:"seed"`
}

type OutputConfig struct {
	// Summary is the CSV file that collects one row per instance. Empty disables it.
	Summary string `mapstructure:"summary"`
	// Dir receives one selection CSV per instance. Empty disables it.
	Dir string `mapstructure:"dir"`
	// Format of the console report: text or yaml.
	Format string `mapstructure:"format"`
}

type StoreConfig struct {
	Kind string `mapstructure:"kind"`
	Path string `mapstructure:"path"`
}

type MetricsConfig struct {
	// File receives the Prometheus text exposition after the run. Empty disables it.
	File string `mapstructure:"file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the complete command configuration.
type Config struct {
	BB      BBConfig      `mapstructure:"bb"`
	GA      GAConfig      `mapstructure:"ga"`
	Output  OutputConfig  `mapstructure:"output"`
	Store   StoreConfig   `mapstructure:"store"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
	Verify  bool          `mapstructure:"verify"`
	Skip    string        `mapstructure:"skip"`
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBBTimeLimit, 100*time.Second)
	v.SetDefault(KeyBBMaxDepth, 75)
	v.SetDefault(KeyBBTightening, 0.95)
	v.SetDefault(KeyGAPopulation, 50)
	v.SetDefault(KeyGAGenerations, 200)
	v.SetDefault(KeyGAMutationRate, 0.05)
	v.SetDefault(KeyGATournament, 2)
	v.SetDefault(KeyGASeed, 0)
	v.SetDefault(KeyOutputSummary, "results_BnB_GA.csv")
	v.SetDefault(KeyOutputDir, "result_BnB_GA")
	v.SetDefault(KeyOutputFormat, "text")
	v.SetDefault(KeyStoreKind, "none")
	v.SetDefault(KeyStorePath, "knapsack.db")
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyVerify, false)
	v.SetDefault(KeySkip, SkipNone)
}

// Load reads the optional config file into v, enables environment
// overrides, and decodes the result. Flags must already be bound to v.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Skip = strings.ToLower(cfg.Skip)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	if c.BB.TimeLimit < 0 {
		return fmt.Errorf("bb.time-limit must be >= 0, got %s", c.BB.TimeLimit)
	}
	if !(c.BB.Tightening > 0 && c.BB.Tightening <= 1) {
		return fmt.Errorf("bb.tightening must be in (0, 1], got %.3f", c.BB.Tightening)
	}
	if c.GA.Population < 1 {
		return fmt.Errorf("ga.population must be >= 1, got %d", c.GA.Population)
	}
	if c.GA.Generations < 0 {
		return fmt.Errorf("ga.generations must be >= 0, got %d", c.GA.Generations)
	}
	if c.GA.MutationRate < 0 || c.GA.MutationRate > 1 {
		return fmt.Errorf("ga.mutation-rate must be between 0 and 1, got %.3f", c.GA.MutationRate)
	}
	if c.GA.Tournament < 1 {
		return fmt.Errorf("ga.tournament must be >= 1, got %d", c.GA.Tournament)
	}
	switch c.Output.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("output.format must be text or yaml, got %q", c.Output.Format)
	}
	switch c.Store.Kind {
	case "none", "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite store")
		}
	default:
		return fmt.Errorf("store.kind must be none, memory or sqlite, got %q", c.Store.Kind)
	}
	switch c.Skip {
	case SkipNone, SkipBB, SkipGA:
	default:
		return fmt.Errorf("skip must be empty, %q or %q, got %q", SkipBB, SkipGA, c.Skip)
	}
	return nil
}
