// SPDX-License-Identifier: MIT
package harness_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/poekin/harness"
	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/solver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ex = r3.Vec{X: 1}
	ey = r3.Vec{Y: 1}
	ez = r3.Vec{Z: 1}
)

func irb6640() *kinematics.Model {
	return kinematics.MustNew(
		[]r3.Vec{ez, ey, ey, ex, ey, ex},
		[]r3.Vec{{}, {X: 0.32, Z: 0.78}, {Z: 1.075}, {X: 1.1425, Z: 0.2}, {}, {}, {X: 0.2}},
	)
}

func kukaR800() *kinematics.Model {
	return kinematics.MustNew(
		[]r3.Vec{ez, ey, ez, r3.Scale(-1, ey), ez, ey, ez},
		[]r3.Vec{{Z: 0.34}, {}, {Z: 0.21}, {Z: 0.19}, {Z: 0.4}, {}, {}, {Z: 0.126}},
	)
}

func empty(kinematics.Pose) []solver.Candidate { return nil }

func TestNew_Validation(t *testing.T) {
	_, err := harness.New(nil, empty)
	require.ErrorIs(t, err, harness.ErrNilModel)
	_, err = harness.New(irb6640(), nil)
	require.ErrorIs(t, err, harness.ErrNilSolver)
	_, err = harness.New(irb6640(), empty, harness.WithFixed(map[int]float64{6: 0}))
	require.ErrorIs(t, err, harness.ErrFixedJoint)
	_, err = harness.New(
		kinematics.MustNew([]r3.Vec{ez}, []r3.Vec{{}, ex}), empty,
		harness.WithFixed(map[int]float64{0: 0}),
	)
	require.ErrorIs(t, err, harness.ErrFixedJoint)
}

func TestTrial_EmptySolver(t *testing.T) {
	h, err := harness.New(irb6640(), empty)
	require.NoError(t, err)

	res, err := h.RunTrial()
	require.NoError(t, err)
	assert.False(t, res.Scoreable())
	assert.True(t, math.IsInf(res.MinError, 1))
	assert.False(t, math.IsNaN(res.MinError))
	assert.Equal(t, harness.NoSolution, res.MinError)
	assert.Equal(t, -1, res.Best)
	assert.Zero(t, res.Total)
	assert.False(t, res.Failed(harness.DefaultErrorThreshold))
}

func TestRunTrial_AnalyticSolver(t *testing.T) {
	m := irb6640()
	solve, err := solver.SphericalTwoParallel(m)
	require.NoError(t, err)
	h, err := harness.New(m, solve, harness.WithSeed(2024))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		res, err := h.RunTrial()
		require.NoError(t, err)
		require.True(t, res.Scoreable())
		require.Less(t, res.MinError, harness.DefaultErrorThreshold, "trial %d sample %v", i, res.Sample)
	}
}

func TestTrial_OracleReinsertsFixedJoint(t *testing.T) {
	full := kukaR800()
	red, err := kinematics.NewReduced(full, 2, math.Pi/6)
	require.NoError(t, err)

	var current []float64
	oracle := func(kinematics.Pose) []solver.Candidate {
		q, err := red.Extract(current)
		require.NoError(t, err)
		return []solver.Candidate{{Q: q}, {Q: current, Approximate: true}}
	}
	h, err := harness.New(full, oracle, harness.WithFixed(map[int]float64{2: math.Pi / 6}))
	require.NoError(t, err)
	assert.Equal(t, 6, h.Free())

	for i := 0; i < 200; i++ {
		current = h.Sample()
		require.Equal(t, math.Pi/6, current[2])
		res, err := h.Trial(current)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 1, res.Approximate)
		assert.Zero(t, res.MinError)
		assert.Equal(t, 0, res.Best)
		assert.False(t, res.BestApproximate)
	}
}

func TestTrial_CandidateLength(t *testing.T) {
	h, err := harness.New(irb6640(), func(kinematics.Pose) []solver.Candidate {
		return []solver.Candidate{{Q: []float64{1, 2, 3}}}
	})
	require.NoError(t, err)

	_, err = h.RunTrial()
	require.ErrorIs(t, err, harness.ErrCandidateLength)

	_, err = h.Trial([]float64{1})
	require.ErrorIs(t, err, kinematics.ErrJointCount)
}

func TestReinsert(t *testing.T) {
	h, err := harness.New(kukaR800(), empty, harness.WithFixed(map[int]float64{0: -1, 4: 9}))
	require.NoError(t, err)

	q, err := h.Reinsert([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 1, 2, 3, 9, 4, 5}, q)

	q, err = h.Reinsert([]float64{1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, q)
}

func TestSample_Deterministic(t *testing.T) {
	a, err := harness.New(irb6640(), empty, harness.WithSeed(77))
	require.NoError(t, err)
	b, err := harness.New(irb6640(), empty, harness.WithSource(harness.NewSource(77)))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		qa, qb := a.Sample(), b.Sample()
		require.Equal(t, qa, qb)
		for _, v := range qa {
			require.Greater(t, v, -math.Pi)
			require.LessOrEqual(t, v, math.Pi)
		}
	}
}

func TestTrial_WarnsOnExactHighError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	reg := prometheus.NewRegistry()
	metrics := harness.NewMetrics(reg)

	h, err := harness.New(irb6640(), func(kinematics.Pose) []solver.Candidate {
		return []solver.Candidate{
			{Q: []float64{3, 3, 3, 3, 3, 3}},
			{Q: []float64{3, 3, 3, 3, 3, 3}, Approximate: true},
		}
	}, harness.WithLogger(zap.New(core)), harness.WithMetrics(metrics), harness.WithName("bad"))
	require.NoError(t, err)

	res, err := h.Trial(make([]float64, 6))
	require.NoError(t, err)
	assert.Greater(t, res.MinError, harness.DefaultErrorThreshold)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "exact candidate exceeds error threshold", entry.Message)
	assert.Equal(t, "bad", entry.ContextMap()["robot"])

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Trials.WithLabelValues("bad")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Candidates.WithLabelValues("bad")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ApproximateCandidates.WithLabelValues("bad")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ExactHighError.WithLabelValues("bad")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Unsolved.WithLabelValues("bad")))
}

func TestRun_DeterministicAndLeakFree(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := irb6640()
	solve, err := solver.SphericalTwoParallel(m)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	metrics := harness.NewMetrics(reg)
	h, err := harness.New(m, solve, harness.WithSeed(5), harness.WithMetrics(metrics), harness.WithName("irb"))
	require.NoError(t, err)

	first, err := h.Run(context.Background(), 400, 4)
	require.NoError(t, err)
	second, err := h.Run(context.Background(), 400, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 400, first.Trials)
	assert.Equal(t, 400, first.Scored)
	assert.Zero(t, first.Failures)
	assert.Less(t, first.MaxError, harness.DefaultErrorThreshold)
	assert.Equal(t, 800.0, testutil.ToFloat64(metrics.Trials.WithLabelValues("irb")))
}

func TestRun_EmptySolver(t *testing.T) {
	h, err := harness.New(irb6640(), empty)
	require.NoError(t, err)
	st, err := h.Run(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, st.Unsolved)
	assert.Zero(t, st.Scored)
	assert.Zero(t, st.MeanError)
}

func TestRun_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, err := harness.New(irb6640(), empty)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = h.Run(ctx, 100, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTrial_NonFiniteCandidateScoresNoSolution(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	nan, inf := math.NaN(), math.Inf(1)
	h, err := harness.New(irb6640(), func(kinematics.Pose) []solver.Candidate {
		return []solver.Candidate{
			{Q: make([]float64, 6)},
			{Q: []float64{nan, 0, 0, 0, 0, 0}},
			{Q: []float64{0, 0, inf, 0, 0, 0}, Approximate: true},
		}
	}, harness.WithLogger(zap.New(core)))
	require.NoError(t, err)

	res, err := h.Trial(make([]float64, 6))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Approximate)
	assert.Zero(t, res.MinError)
	assert.Equal(t, 0, res.Best)
	assert.Equal(t, []float64{0, harness.NoSolution, harness.NoSolution}, res.Errors)

	require.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "candidate has non-finite joint angles", entry.Message)
	}

	// A batch keeps going past such candidates.
	st, err := h.Run(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, st.Trials)
	assert.Equal(t, 10, st.Scored)
	assert.Equal(t, 30, st.Candidates)
	assert.False(t, math.IsNaN(st.MeanError))
}

func TestRun_IgnoresSharedSource(t *testing.T) {
	m := irb6640()
	solve, err := solver.SphericalTwoParallel(m)
	require.NoError(t, err)
	seeded, err := harness.New(m, solve)
	require.NoError(t, err)
	sourced, err := harness.New(m, solve, harness.WithSource(harness.NewSource(99)))
	require.NoError(t, err)

	a, err := seeded.Run(context.Background(), 50, 2)
	require.NoError(t, err)
	b, err := sourced.Run(context.Background(), 50, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
