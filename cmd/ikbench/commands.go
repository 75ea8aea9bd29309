// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/poekin/harness"
	"github.com/katalvlaran/poekin/poseio"
	"github.com/katalvlaran/poekin/robots"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	errNoneRunnable = errors.New("no selected robot has a solver")
	errSingleRobot  = errors.New(`needs a single robot: pass --robot NAME (see "ikbench list")`)
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run randomized round-trip trials and print statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := selectRobots(a.cfg.Robot)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			metrics := harness.NewMetrics(reg)

			ran := 0
			for _, name := range names {
				s, err := robots.New(name,
					robots.WithSeed(a.cfg.Seed),
					robots.WithLogger(a.logger),
					robots.WithMetrics(metrics),
					robots.WithErrorThreshold(a.cfg.Threshold))
				if err != nil {
					return err
				}
				if !s.HasSolver() {
					a.logger.Info("skipping robot without solver", zap.String("robot", name))
					continue
				}
				st, err := s.Harness().Run(cmd.Context(), a.cfg.Trials, a.cfg.Workers)
				if err != nil {
					return err
				}
				ran++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, st)
			}
			if ran == 0 {
				return errNoneRunnable
			}
			if a.cfg.MetricsFile != "" {
				if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&a.cfg.Trials, "trials", "n", a.cfg.Trials, "trials per robot")
	f.IntVarP(&a.cfg.Workers, "workers", "w", a.cfg.Workers, "parallel workers (0 = GOMAXPROCS)")
	f.Float64Var(&a.cfg.Threshold, "threshold", a.cfg.Threshold, "failure threshold on the minimum error")
	f.StringVar(&a.cfg.MetricsFile, "metrics-file", a.cfg.MetricsFile, "write Prometheus text metrics to this file")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered robots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tJOINTS\tFIXED\tSOLVER")
			for _, name := range robots.Names() {
				d, err := robots.Lookup(name)
				if err != nil {
					return err
				}
				fixed := "-"
				if d.Fix != nil {
					fixed = fmt.Sprintf("q%d=%.4g", d.Fix.Index+1, d.Fix.Angle)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%t\n", name, d.Build().Joints(), fixed, d.Solver != nil)
			}
			return tw.Flush()
		},
	}
}

func newFKCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fk q1,q2,...",
		Short: "Print the pose text of a joint configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := singleRobot(cmd, a.cfg.Robot)
			if err != nil {
				return err
			}
			s, err := robots.New(name)
			if err != nil {
				return err
			}
			q, err := parseJoints(args[0])
			if err != nil {
				return err
			}
			p, err := s.Model().ForwardKinematics(q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), poseio.FormatPose(p))
			return nil
		},
	}
}

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve POSE",
		Short: "Solve one pose given as 12 comma-separated reals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := singleRobot(cmd, a.cfg.Robot)
			if err != nil {
				return err
			}
			s, err := robots.New(name, robots.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err := s.InitializeFromConfigText(args[0]); err != nil {
				return err
			}
			s.DebugDump(0)
			if err := s.RunSolver(); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), s.ReportWrittenSolutions())
			a.logger.Info("solved",
				zap.String("robot", s.Name()),
				zap.Int("total", s.CountTotalSolutions()),
				zap.Int("approximate", s.CountApproximateSolutions()),
				zap.Float64("min_error", s.Error()))
			return nil
		},
	}
}

func selectRobots(name string) ([]string, error) {
	if name == allRobots {
		return robots.Names(), nil
	}
	if _, err := robots.Lookup(name); err != nil {
		return nil, err
	}

	return []string{name}, nil
}

// singleRobot rejects the "all" selection for commands that act on one robot.
func singleRobot(cmd *cobra.Command, name string) (string, error) {
	if name == allRobots {
		return "", fmt.Errorf("%s: %w", cmd.Name(), errSingleRobot)
	}

	return name, nil
}

func parseJoints(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	q := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("joint %d: %w", i, err)
		}
		q[i] = v
	}

	return q, nil
}
