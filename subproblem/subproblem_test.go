// SPDX-License-Identifier: MIT
package subproblem_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/subproblem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const trials = 500

func randVec(rng *rand.Rand) r3.Vec {
	return r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
}

func randUnit(rng *rand.Rand) r3.Vec { return r3.Unit(randVec(rng)) }

func randAngle(rng *rand.Rand) float64 { return math.Pi - 2*math.Pi*rng.Float64() }

func rot(t *testing.T, k r3.Vec, theta float64, v r3.Vec) r3.Vec {
	t.Helper()
	r, err := kinematics.Rot(k, theta)
	require.NoError(t, err)
	out, err := kinematics.Apply(r, v)
	require.NoError(t, err)

	return out
}

func angleDiff(a, b float64) float64 {
	return math.Abs(math.Remainder(a-b, 2*math.Pi))
}

func TestRotate_Exact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < trials; i++ {
		k, p1, theta := randUnit(rng), randVec(rng), randAngle(rng)
		p2 := rot(t, k, theta, p1)

		got, approx := subproblem.Rotate(k, p1, p2)
		require.False(t, approx)
		require.Less(t, angleDiff(theta, got), 1e-9)
	}
}

func TestRotate_LeastSquares(t *testing.T) {
	got, approx := subproblem.Rotate(r3.Vec{Z: 1}, r3.Vec{X: 1}, r3.Vec{Y: 2})
	assert.True(t, approx)
	assert.InDelta(t, math.Pi/2, got, 1e-15)
}

func TestProjection_Exact(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < trials; i++ {
		h, k, p, theta := randUnit(rng), randUnit(rng), randVec(rng), randAngle(rng)
		d := r3.Dot(h, rot(t, k, theta, p))

		got, approx := subproblem.Projection(h, p, k, d)
		if approx {
			// Tangent configurations collapse to one root.
			require.Len(t, got, 1)
		} else {
			require.Len(t, got, 2)
		}
		best := math.Inf(1)
		for _, g := range got {
			assert.InDelta(t, d, r3.Dot(h, rot(t, k, g, p)), 1e-6)
			best = math.Min(best, angleDiff(theta, g))
		}
		if len(got) == 2 && angleDiff(got[0], got[1]) > 1e-2 {
			require.Less(t, best, 1e-6)
		}
	}
}

func TestProjection_Unreachable(t *testing.T) {
	// hᵀrot(z,θ)x ranges over [-1, 1]; d = 2 is out of reach.
	got, approx := subproblem.Projection(r3.Vec{X: 1}, r3.Vec{X: 1}, r3.Vec{Z: 1}, 2)
	assert.True(t, approx)
	require.Len(t, got, 1)
	assert.InDelta(t, 0, got[0], 1e-15)
}

func TestDistance_Exact(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < trials; i++ {
		k, p1, p2, theta := randUnit(rng), randVec(rng), randVec(rng), randAngle(rng)
		d := r3.Norm(r3.Sub(rot(t, k, theta, p1), p2))

		got, _ := subproblem.Distance(p1, p2, k, d)
		require.NotEmpty(t, got)
		for _, g := range got {
			assert.InDelta(t, d, r3.Norm(r3.Sub(rot(t, k, g, p1), p2)), 1e-5)
		}
	}
}

func TestTwoAxis_Exact(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < trials; i++ {
		k1, k2, p2 := randUnit(rng), randUnit(rng), randVec(rng)
		t1, t2 := randAngle(rng), randAngle(rng)
		p1 := rot(t, k1, -t1, rot(t, k2, t2, p2))

		th1, th2, approx := subproblem.TwoAxis(p1, p2, k1, k2)
		require.Len(t, th2, len(th1))
		if approx {
			continue // tangent case, covered by the residual check below
		}
		found := false
		for j := range th1 {
			lhs := rot(t, k1, th1[j], p1)
			rhs := rot(t, k2, th2[j], p2)
			assert.Less(t, r3.Norm(r3.Sub(lhs, rhs)), 1e-6*(1+r3.Norm(p1)))
			if angleDiff(th1[j], t1) < 1e-4 && angleDiff(th2[j], t2) < 1e-4 {
				found = true
			}
		}
		require.True(t, found, "trial %d: generating angles not recovered", i)
	}
}

func TestTwoAxis_LengthMismatch(t *testing.T) {
	_, _, approx := subproblem.TwoAxis(r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{Z: 1}, r3.Vec{Y: 1})
	assert.True(t, approx)

	th1, th2, approx := subproblem.TwoAxis(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Z: 1}, r3.Vec{Y: 1})
	assert.True(t, approx)
	assert.Equal(t, []float64{0}, th1)
	assert.Equal(t, []float64{0}, th2)
}
