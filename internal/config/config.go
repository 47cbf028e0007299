// Package config loads tool configuration from an optional YAML file and
// provides the defaults the CLI flags override.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridcv/gridcv/internal/canny"
	"github.com/gridcv/gridcv/internal/parallel"
)

// Strategy names accepted in config files and flags.
const (
	StrategyFixedChunk    = "fixed-chunk"
	StrategyDivideConquer = "divide-conquer"
)

// Config holds the user-tunable knobs for all pipelines.
type Config struct {
	Workers   int     `yaml:"workers"`    // <= 0 selects runtime CPU count
	Strategy  string  `yaml:"strategy"`   // fixed-chunk or divide-conquer
	Grain     int     `yaml:"grain"`      // divide-conquer grain size
	HighRatio float64 `yaml:"high_ratio"` // strong threshold fraction of global max
	LowRatio  float64 `yaml:"low_ratio"`  // weak threshold fraction of global max
	LogLevel  string  `yaml:"log_level"`  // zerolog level name
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers:   0,
		Strategy:  StrategyFixedChunk,
		Grain:     parallel.DefaultGrain,
		HighRatio: canny.DefaultHighRatio,
		LowRatio:  canny.DefaultLowRatio,
		LogLevel:  "info",
	}
}

// Load reads a YAML config file and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	//nolint:gosec // G304: config path comes from a CLI flag
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.Strategy != StrategyFixedChunk && c.Strategy != StrategyDivideConquer {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.LowRatio < 0 || c.HighRatio < c.LowRatio {
		return errors.New("threshold ratios must satisfy 0 <= low <= high")
	}
	return nil
}

// Parallel converts the config into an engine configuration.
func (c Config) Parallel() parallel.Config {
	p := parallel.Config{
		Workers: c.Workers,
		Grain:   c.Grain,
	}
	if c.Strategy == StrategyDivideConquer {
		p.Strategy = parallel.DivideConquer
	}
	return p
}

// CannyOptions converts the config into pipeline options.
func (c Config) CannyOptions() canny.Options {
	return canny.Options{
		Parallel:  c.Parallel(),
		HighRatio: c.HighRatio,
		LowRatio:  c.LowRatio,
	}
}
