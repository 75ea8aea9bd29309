// SPDX-License-Identifier: MIT

// Command ikbench runs round-trip validation of the registered robots'
// inverse kinematics solvers and inspects their geometry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	configPath string
	cfg        Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig()}

	root := &cobra.Command{
		Use:           "ikbench",
		Short:         "Inverse kinematics round-trip benchmark",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = overlayFlags(cmd, cfg, a.cfg)

			config := zap.NewProductionConfig()
			if a.cfg.Verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			if a.logger, err = config.Build(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&a.cfg.Robot, "robot", "r", a.cfg.Robot, `robot name, or "all"`)
	f.Int64Var(&a.cfg.Seed, "seed", a.cfg.Seed, "random seed")
	f.BoolVarP(&a.cfg.Verbose, "verbose", "v", a.cfg.Verbose, "debug logging")

	root.AddCommand(
		newRunCmd(a),
		newListCmd(),
		newFKCmd(a),
		newSolveCmd(a),
	)

	return root
}

// overlayFlags copies explicitly set flags from flagged onto cfg.
func overlayFlags(cmd *cobra.Command, cfg, flagged Config) Config {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("robot") {
		cfg.Robot = flagged.Robot
	}
	if changed("seed") {
		cfg.Seed = flagged.Seed
	}
	if changed("verbose") {
		cfg.Verbose = flagged.Verbose
	}
	if changed("trials") {
		cfg.Trials = flagged.Trials
	}
	if changed("workers") {
		cfg.Workers = flagged.Workers
	}
	if changed("threshold") {
		cfg.Threshold = flagged.Threshold
	}
	if changed("metrics-file") {
		cfg.MetricsFile = flagged.MetricsFile
	}

	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
