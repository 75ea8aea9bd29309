// SPDX-License-Identifier: MIT
package solver_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func minError(t *testing.T, m *kinematics.Model, target kinematics.Pose, cands []solver.Candidate) float64 {
	t.Helper()
	best := math.Inf(1)
	for _, c := range cands {
		p, err := m.ForwardKinematics(c.Q)
		require.NoError(t, err)
		d, err := p.Distance(target)
		require.NoError(t, err)
		best = math.Min(best, d)
	}

	return best
}

func TestSphericalTwoParallel_RoundTrip(t *testing.T) {
	m := irb6640()
	solve, err := solver.SphericalTwoParallel(m)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 1000; trial++ {
		q := make([]float64, 6)
		for i := range q {
			q[i] = math.Pi - 2*math.Pi*rng.Float64()
		}
		target, err := m.ForwardKinematics(q)
		require.NoError(t, err)

		cands := solve(target)
		require.NotEmpty(t, cands, "trial %d", trial)
		require.LessOrEqual(t, len(cands), 8)
		for _, c := range cands {
			require.Len(t, c.Q, 6)
		}
		require.Less(t, minError(t, m, target, cands), 1e-6, "trial %d q=%v", trial, q)
	}
}

func TestSphericalTwoParallel_RecoversJoints(t *testing.T) {
	m := irb6640()
	solve, err := solver.SphericalTwoParallel(m)
	require.NoError(t, err)

	q := []float64{0.4, -0.3, 0.8, 1.1, -0.9, 0.25}
	target, err := m.ForwardKinematics(q)
	require.NoError(t, err)

	found := false
	for _, c := range solve(target) {
		same := true
		for i := range q {
			if math.Abs(math.Remainder(c.Q[i]-q[i], 2*math.Pi)) > 1e-9 {
				same = false
				break
			}
		}
		if same {
			found = true
			assert.False(t, c.Approximate)
		}
	}
	assert.True(t, found)
}

func TestSphericalTwoParallel_Unreachable(t *testing.T) {
	m := irb6640()
	solve, err := solver.SphericalTwoParallel(m)
	require.NoError(t, err)

	target := kinematics.Identity()
	target.T = r3.Vec{X: 50}
	for _, c := range solve(target) {
		assert.True(t, c.Approximate)
	}
	assert.Nil(t, solve(kinematics.Pose{}))
}

func TestSphericalTwoParallel_Geometry(t *testing.T) {
	_, err := solver.SphericalTwoParallel(kinematics.MustNew([]r3.Vec{ez}, []r3.Vec{{}, {}}))
	require.ErrorIs(t, err, solver.ErrGeometry)

	// h2 not parallel to h3.
	bad := kinematics.MustNew(
		[]r3.Vec{ez, ey, ez, ex, ey, ex},
		[]r3.Vec{{}, {Z: 1}, {Z: 1}, {X: 1}, {}, {}, {X: 0.2}},
	)
	_, err = solver.SphericalTwoParallel(bad)
	require.ErrorIs(t, err, solver.ErrGeometry)

	// Offset wrist.
	bad = kinematics.MustNew(
		[]r3.Vec{ez, ey, ey, ex, ey, ex},
		[]r3.Vec{{}, {Z: 1}, {Z: 1}, {X: 1}, {Y: 0.1}, {}, {X: 0.2}},
	)
	_, err = solver.SphericalTwoParallel(bad)
	require.ErrorIs(t, err, solver.ErrGeometry)
}

func TestForReduced_MapsTarget(t *testing.T) {
	red, err := kinematics.NewReduced(irb6640(), 0, 0.7)
	require.NoError(t, err)

	var got kinematics.Pose
	f := solver.ForReduced(red, func(p kinematics.Pose) []solver.Candidate {
		got = p
		return []solver.Candidate{{Q: make([]float64, 5)}}
	}, nil)

	q := []float64{0.7, 0.1, 0.2, 0.3, 0.4, 0.5}
	target, err := red.Full().ForwardKinematics(q)
	require.NoError(t, err)

	cands := f(target)
	require.Len(t, cands, 1)
	want, err := red.Model().ForwardKinematics(q[1:])
	require.NoError(t, err)
	d, err := want.Distance(got)
	require.NoError(t, err)
	assert.Less(t, d, 1e-12)

	core, logs := observer.New(zapcore.WarnLevel)
	assert.Nil(t, solver.ForReduced(red, func(kinematics.Pose) []solver.Candidate {
		t.Fatal("solver must not run without a rotation")
		return nil
	}, zap.New(core))(kinematics.Pose{}))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "target not mappable to reduced model", entry.Message)
	assert.Contains(t, entry.ContextMap()["error"], "nil")
}
