// SPDX-License-Identifier: MIT

package robots

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/poekin/harness"
	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/poseio"
	"github.com/katalvlaran/poekin/solver"
	"go.uber.org/zap"
)

// ErrNotInitialized is returned by RunSolver before a target pose is set.
var ErrNotInitialized = errors.New("robots: no target pose")

// Setup is one benchmark instance of a registered robot.
// It is not safe for concurrent use; create one Setup per goroutine.
type Setup struct {
	desc    Descriptor
	full    *kinematics.Model
	reduced *kinematics.Reduced // nil when the robot has no fixed joint
	h       *harness.Harness
	bound   bool
	log     *zap.Logger

	target kinematics.Pose
	sample []float64 // nil when the target came from text
	last   harness.TrialResult
}

// New builds a fresh Setup for the robot registered under name.
//
// Errors:
//   - ErrUnknownRobot.
//   - kinematics.ErrNumericalDegeneracy (a repair step failed).
//   - solver.ErrGeometry (bundled solver rejects the geometry).
func New(name string, opts ...Option) (*Setup, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	o := options{logger: zap.NewNop()}
	for _, set := range opts {
		set(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	s := &Setup{desc: d, full: d.Build(), log: o.logger.With(zap.String("robot", d.Name))}
	hopts := []harness.Option{
		harness.WithName(d.Name),
		harness.WithLogger(o.logger),
		harness.WithSeed(o.seed),
		harness.WithMetrics(o.metrics),
		harness.WithErrorThreshold(o.threshold),
	}
	if o.rng != nil {
		hopts = append(hopts, harness.WithSource(o.rng))
	}

	solveModel := s.full
	if d.Fix != nil {
		if s.reduced, err = kinematics.NewReduced(s.full, d.Fix.Index, d.Fix.Angle); err != nil {
			return nil, fmt.Errorf("robots.New(%q): %w", name, err)
		}
		for _, link := range d.Repair {
			if s.reduced, err = s.reduced.Repair(link, kinematics.DefaultPinvTolerance); err != nil {
				return nil, fmt.Errorf("robots.New(%q): %w", name, err)
			}
		}
		solveModel = s.reduced.Model()
		hopts = append(hopts, harness.WithFixed(map[int]float64{d.Fix.Index: d.Fix.Angle}))
	}

	solve := o.solve
	if solve == nil && d.Solver != nil {
		if solve, err = d.Solver(solveModel); err != nil {
			return nil, fmt.Errorf("robots.New(%q): %w", name, err)
		}
		if s.reduced != nil {
			solve = solver.ForReduced(s.reduced, solve, s.log)
		}
	}
	s.bound = solve != nil
	if !s.bound {
		solve = func(kinematics.Pose) []solver.Candidate { return nil }
	}

	if s.h, err = harness.New(s.full, solve, hopts...); err != nil {
		return nil, fmt.Errorf("robots.New(%q): %w", name, err)
	}
	s.reset()

	return s, nil
}

func (s *Setup) reset() {
	s.last = harness.TrialResult{MinError: harness.NoSolution, Best: -1}
}

// InitializeFromRandomPose samples a configuration (fixed joint at its
// constant) and sets the target to its forward kinematics.
func (s *Setup) InitializeFromRandomPose() {
	q := s.h.Sample()
	// q has the model's length by construction.
	p, _ := s.full.ForwardKinematics(q)
	s.target, s.sample = p, q
	s.reset()
}

// InitializeFromConfigText sets the target from pose text.
// Errors: poseio.ErrParse.
func (s *Setup) InitializeFromConfigText(raw string) error {
	p, err := poseio.ParsePose(raw)
	if err != nil {
		return err
	}
	s.target, s.sample = p, nil
	s.reset()

	return nil
}

// RunSolver solves the current target and scores the candidates.
//
// Errors:
//   - ErrNoSolver, ErrNotInitialized.
//   - harness.ErrCandidateLength (solver emitted a malformed candidate).
func (s *Setup) RunSolver() error {
	if !s.bound {
		return fmt.Errorf("%s: %w", s.desc.Name, ErrNoSolver)
	}
	if s.target.R == nil {
		return fmt.Errorf("%s: %w", s.desc.Name, ErrNotInitialized)
	}
	res, err := s.h.Solve(s.target)
	if err != nil {
		return err
	}
	res.Sample = s.sample
	s.last = res

	return nil
}

// ReportWrittenSolutions renders the last candidates, one per line.
func (s *Setup) ReportWrittenSolutions() string {
	return poseio.FormatSolutions(s.last.Candidates)
}

// CountApproximateSolutions counts least-squares candidates of the last run.
func (s *Setup) CountApproximateSolutions() int { return s.last.Approximate }

// CountTotalSolutions counts candidates of the last run.
func (s *Setup) CountTotalSolutions() int { return s.last.Total }

// Name returns the registry name.
func (s *Setup) Name() string { return s.desc.Name }

// Error is the smallest reconstruction error of the last run, or
// harness.NoSolution.
func (s *Setup) Error() float64 { return s.last.MinError }

// DebugDump logs the current target at debug level, tagged with i.
func (s *Setup) DebugDump(i int) {
	if s.target.R == nil {
		s.log.Debug("setup", zap.Int("index", i), zap.Bool("initialized", false))
		return
	}
	s.log.Debug("setup",
		zap.Int("index", i),
		zap.Float64s("rotation", s.target.R.RawRowMajor()),
		zap.Float64s("translation", []float64{s.target.T.X, s.target.T.Y, s.target.T.Z}),
		zap.Float64s("sample", s.sample),
		zap.Int("candidates", s.last.Total))
}

// Target returns the current target pose.
func (s *Setup) Target() kinematics.Pose { return s.target.Clone() }

// Sample returns the configuration behind a random target, or nil.
func (s *Setup) Sample() []float64 { return append([]float64(nil), s.sample...) }

// Result returns the last scored run.
func (s *Setup) Result() harness.TrialResult { return s.last }

// Model returns the full geometry.
func (s *Setup) Model() *kinematics.Model { return s.full }

// Reduced returns the fixed-joint reduction, or nil.
func (s *Setup) Reduced() *kinematics.Reduced { return s.reduced }

// Harness exposes the harness for batch runs.
func (s *Setup) Harness() *harness.Harness { return s.h }

// HasSolver reports whether RunSolver can run.
func (s *Setup) HasSolver() bool { return s.bound }
