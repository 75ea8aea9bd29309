// SPDX-License-Identifier: MIT
package kinematics_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/matrix"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ex = r3.Vec{X: 1}
	ey = r3.Vec{Y: 1}
	ez = r3.Vec{Z: 1}
)

// irb6640 is a six-joint industrial arm with a spherical wrist.
func irb6640(t *testing.T) *kinematics.Model {
	t.Helper()
	m, err := kinematics.New(
		[]r3.Vec{ez, ey, ey, ex, ey, ex},
		[]r3.Vec{
			{},
			{X: 0.32, Z: 0.78},
			{Z: 1.075},
			{X: 1.1425, Z: 0.2},
			{}, {},
			{X: 0.2},
		},
	)
	if err != nil {
		t.Fatalf("irb6640: %v", err)
	}

	return m
}

// rrc is the seven-joint RRC arm, in metres.
func rrc(t *testing.T) *kinematics.Model {
	t.Helper()
	const in = 0.0254
	links := []r3.Vec{
		{},
		{X: 20, Y: -4},
		{Y: 4},
		{X: 21.5, Y: 3.375},
		{Y: -3.375},
		{X: 21.5, Y: 3.325},
		{Y: -3.325},
		{X: 7},
	}
	for i := range links {
		links[i] = r3.Scale(in, links[i])
	}
	m, err := kinematics.New([]r3.Vec{ex, ez, ex, ez, ex, ez, ex}, links)
	if err != nil {
		t.Fatalf("rrc: %v", err)
	}

	return m
}

func randomQ(rng *rand.Rand, n int) []float64 {
	q := make([]float64, n)
	for i := range q {
		q[i] = math.Pi - 2*math.Pi*rng.Float64()
	}

	return q
}

// poseDiff reports a non-empty diff when two poses disagree beyond atol.
func poseDiff(t *testing.T, want, got kinematics.Pose, atol float64) string {
	t.Helper()
	opt := cmpopts.EquateApprox(0, atol)
	if d := cmp.Diff(want.T, got.T, opt); d != "" {
		return "T: " + d
	}

	return cmp.Diff(want.R.RawRowMajor(), got.R.RawRowMajor(), opt)
}

// requirePoseNear fails when ‖ΔR‖_F + ‖ΔT‖ exceeds tol.
func requirePoseNear(t *testing.T, want, got kinematics.Pose, tol float64, msgAndArgs ...any) {
	t.Helper()
	d, err := want.Distance(got)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if !(d <= tol) {
		t.Fatalf("pose distance %g > %g %v\nwant %v\ngot  %v", d, tol, msgAndArgs, want, got)
	}
}

func mustRot(t *testing.T, k r3.Vec, theta float64) *matrix.Dense {
	t.Helper()
	r, err := kinematics.Rot(k, theta)
	if err != nil {
		t.Fatalf("Rot: %v", err)
	}

	return r
}

func mustClose(t *testing.T, a, b matrix.Matrix) bool {
	t.Helper()
	ok, err := matrix.AllClose(a, b, 0, 1e-15)
	if err != nil {
		t.Fatalf("AllClose: %v", err)
	}

	return ok
}

// insertAt returns q with v inserted at index k.
func insertAt(q []float64, k int, v float64) []float64 {
	out := make([]float64, 0, len(q)+1)
	out = append(out, q[:k]...)
	out = append(out, v)

	return append(out, q[k:]...)
}

func mustMul(t *testing.T, a, b matrix.Matrix) *matrix.Dense {
	t.Helper()
	c, err := matrix.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	return c.(*matrix.Dense)
}
