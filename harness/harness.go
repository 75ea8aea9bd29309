// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/solver"
	"go.uber.org/zap"
)

// NoSolution is the MinError of a trial whose solver returned no candidates.
var NoSolution = math.Inf(1)

// Harness owns a model, a solver and a random source.
type Harness struct {
	model *kinematics.Model
	solve solver.Func

	fixed    map[int]float64
	fixedIdx []int // ascending
	seed     int64

	mu  sync.Mutex // guards rng
	rng *rand.Rand

	threshold float64
	name      string
	log       *zap.Logger
	metrics   *Metrics
}

// TrialResult is the outcome of one round trip.
type TrialResult struct {
	Sample      []float64          // full joint vector that produced Target
	Target      kinematics.Pose    // FK(Sample)
	Candidates  []solver.Candidate // as returned by the solver
	Errors      []float64          // per-candidate reconstruction error
	MinError    float64            // min(Errors) or NoSolution
	Best        int                // index of MinError in Candidates, −1 if none
	Total       int                // len(Candidates)
	Approximate int                // candidates flagged approximate

	BestApproximate bool // the MinError candidate was flagged approximate
}

// Scoreable reports whether the trial produced at least one candidate.
func (r TrialResult) Scoreable() bool { return r.Total > 0 }

// Failed reports a scoreable trial whose MinError exceeds th.
func (r TrialResult) Failed(th float64) bool { return r.Scoreable() && r.MinError > th }

// New builds a Harness.
//
// Errors:
//   - ErrNilModel, ErrNilSolver.
//   - ErrFixedJoint (index outside [0, n) or every joint fixed).
func New(model *kinematics.Model, solve solver.Func, opts ...Option) (*Harness, error) {
	if model == nil {
		return nil, harnessErrorf(opNew, ErrNilModel)
	}
	if solve == nil {
		return nil, harnessErrorf(opNew, ErrNilSolver)
	}
	o := defaultOptions()
	for _, set := range opts {
		set(&o)
	}

	n := model.Joints()
	idx := make([]int, 0, len(o.fixed))
	for k := range o.fixed {
		if k < 0 || k >= n {
			return nil, harnessErrorf(opNew, fmt.Errorf("index %d joints=%d: %w", k, n, ErrFixedJoint))
		}
		idx = append(idx, k)
	}
	if len(idx) >= n {
		return nil, harnessErrorf(opNew, fmt.Errorf("all %d joints fixed: %w", n, ErrFixedJoint))
	}
	sort.Ints(idx)

	rng := o.rng
	if rng == nil {
		rng = NewSource(o.seed)
	}

	return &Harness{
		model:     model,
		solve:     solve,
		fixed:     o.fixed,
		fixedIdx:  idx,
		seed:      o.seed,
		rng:       rng,
		threshold: o.threshold,
		name:      o.name,
		log:       o.logger.With(zap.String("robot", o.name)),
		metrics:   o.metrics,
	}, nil
}

// Model returns the harness model.
func (h *Harness) Model() *kinematics.Model { return h.model }

// Name returns the label given by WithName.
func (h *Harness) Name() string { return h.name }

// Threshold returns the failure threshold.
func (h *Harness) Threshold() float64 { return h.threshold }

// Free returns the number of joints a reduced-length candidate carries.
func (h *Harness) Free() int { return h.model.Joints() - len(h.fixedIdx) }

// Sample draws the next configuration from the shared source.
func (h *Harness) Sample() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return SampleConfiguration(h.rng, h.model.Joints(), h.fixed)
}

// RunTrial samples a configuration and runs Trial on it.
func (h *Harness) RunTrial() (TrialResult, error) {
	return h.Trial(h.Sample())
}

// Trial runs the round trip for a caller-supplied configuration.
//
// Errors:
//   - kinematics.ErrJointCount (len(q) != n).
//   - ErrCandidateLength (candidate neither full nor free length).
func (h *Harness) Trial(q []float64) (TrialResult, error) {
	target, err := h.model.ForwardKinematics(q)
	if err != nil {
		return TrialResult{}, harnessErrorf(opTrial, err)
	}
	res, err := h.Score(target, h.solve(target.Clone()))
	if err != nil {
		return TrialResult{}, err
	}
	res.Sample = append([]float64(nil), q...)
	h.log.Debug("trial",
		zap.Float64s("sample", res.Sample),
		zap.Int("candidates", res.Total),
		zap.Int("approximate", res.Approximate),
		zap.Float64("min_error", res.MinError))

	return res, nil
}

// Solve runs the solver on an externally supplied target and scores the
// candidates. The result has no Sample.
func (h *Harness) Solve(target kinematics.Pose) (TrialResult, error) {
	return h.Score(target, h.solve(target.Clone()))
}

// Score reconstructs every candidate, measures it against target and
// records metrics. A candidate with a NaN or infinite angle scores
// NoSolution and is logged; it still counts towards Total and Approximate.
func (h *Harness) Score(target kinematics.Pose, cands []solver.Candidate) (TrialResult, error) {
	res := TrialResult{
		Target:     target,
		Candidates: cands,
		Errors:     make([]float64, len(cands)),
		MinError:   NoSolution,
		Best:       -1,
		Total:      len(cands),
	}
	for i, c := range cands {
		full, err := h.Reinsert(c.Q)
		if err != nil {
			return TrialResult{}, harnessErrorf(opTrial, fmt.Errorf("candidate %d: %w", i, err))
		}
		if c.Approximate {
			res.Approximate++
		}
		if !finite(full) {
			res.Errors[i] = NoSolution
			h.log.Warn("candidate has non-finite joint angles",
				zap.Int("candidate", i),
				zap.Float64s("q", full))
			continue
		}
		p, err := h.model.ForwardKinematics(full)
		if err != nil {
			return TrialResult{}, harnessErrorf(opTrial, err)
		}
		e, err := p.Distance(target)
		if err != nil {
			return TrialResult{}, harnessErrorf(opTrial, err)
		}
		res.Errors[i] = e
		if e < res.MinError {
			res.MinError, res.Best = e, i
		}
		if !c.Approximate && e > h.threshold {
			h.log.Warn("exact candidate exceeds error threshold",
				zap.Int("candidate", i),
				zap.Float64("error", e),
				zap.Float64s("q", full))
			h.metrics.incExactHighError(h.name)
		}
	}
	if res.Best >= 0 {
		res.BestApproximate = cands[res.Best].Approximate
	}
	h.metrics.observe(h.name, res)

	return res, nil
}

func finite(q []float64) bool {
	for _, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// Reinsert expands a candidate to the full joint count. Full-length
// candidates are copied as-is; free-length candidates get the fixed
// joints inserted at their indices.
func (h *Harness) Reinsert(q []float64) ([]float64, error) {
	n := h.model.Joints()
	switch len(q) {
	case n:
		return append([]float64(nil), q...), nil
	case h.Free():
		full := make([]float64, 0, n)
		j := 0
		for i := 0; i < n; i++ {
			if v, ok := h.fixed[i]; ok {
				full = append(full, v)
				continue
			}
			full = append(full, q[j])
			j++
		}
		return full, nil
	default:
		return nil, fmt.Errorf("len=%d, want %d or %d: %w", len(q), n, h.Free(), ErrCandidateLength)
	}
}
