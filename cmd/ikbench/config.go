// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/katalvlaran/poekin/harness"
	"gopkg.in/yaml.v3"
)

// allRobots selects every registered robot that has a solver.
const allRobots = "all"

// Config is the benchmark configuration.
// Precedence: defaults < YAML file < IKBENCH_* environment < flags.
type Config struct {
	Robot       string  `yaml:"robot"        env:"IKBENCH_ROBOT"`
	Trials      int     `yaml:"trials"       env:"IKBENCH_TRIALS"`
	Workers     int     `yaml:"workers"      env:"IKBENCH_WORKERS"`
	Seed        int64   `yaml:"seed"         env:"IKBENCH_SEED"`
	Threshold   float64 `yaml:"threshold"    env:"IKBENCH_THRESHOLD"`
	MetricsFile string  `yaml:"metrics_file" env:"IKBENCH_METRICS_FILE"`
	Verbose     bool    `yaml:"verbose"      env:"IKBENCH_VERBOSE"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Robot:     allRobots,
		Trials:    1000,
		Workers:   0, // GOMAXPROCS
		Seed:      harness.DefaultSeed,
		Threshold: harness.DefaultErrorThreshold,
	}
}

// LoadConfig layers the YAML file at path (optional) and the environment
// over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Trials < 0 {
		return Config{}, fmt.Errorf("trials must be >= 0, got %d", cfg.Trials)
	}

	return cfg, nil
}
