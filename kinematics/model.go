// SPDX-License-Identifier: MIT

package kinematics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/poekin/matrix"
	"gonum.org/v1/gonum/spatial/r3"
)

// AxisTolerance bounds |‖h‖ − 1| for a joint axis to be accepted as unit.
const AxisTolerance = 1e-9

// Model is an immutable POE description of an n-joint serial chain.
// Axes and links are expressed in the base frame at the zero configuration.
type Model struct {
	axes  []r3.Vec // n unit joint axes
	links []r3.Vec // n+1 link vectors; links[0] is base→joint 1, links[n] is joint n→tool
}

// New validates and copies the geometry into a Model.
//
// Errors:
//   - ErrNoJoints   (len(axes) == 0).
//   - ErrLinkCount  (len(links) != len(axes)+1).
//   - ErrNonFinite  (any NaN/Inf component).
//   - ErrAxisNotUnit (|‖hᵢ‖ − 1| > AxisTolerance).
func New(axes, links []r3.Vec) (*Model, error) {
	if len(axes) == 0 {
		return nil, kinErrorf(opNew, ErrNoJoints)
	}
	if len(links) != len(axes)+1 {
		return nil, kinErrorf(opNew, fmt.Errorf("axes=%d links=%d: %w", len(axes), len(links), ErrLinkCount))
	}
	for i, h := range axes {
		if !finite(h) {
			return nil, kinErrorf(opNew, fmt.Errorf("axis %d: %w", i, ErrNonFinite))
		}
		if math.Abs(r3.Norm(h)-1) > AxisTolerance {
			return nil, kinErrorf(opNew, fmt.Errorf("axis %d norm %g: %w", i, r3.Norm(h), ErrAxisNotUnit))
		}
	}
	for i, p := range links {
		if !finite(p) {
			return nil, kinErrorf(opNew, fmt.Errorf("link %d: %w", i, ErrNonFinite))
		}
	}

	return &Model{
		axes:  append([]r3.Vec(nil), axes...),
		links: append([]r3.Vec(nil), links...),
	}, nil
}

// MustNew is New that panics on error. Intended for fixed geometry tables.
func MustNew(axes, links []r3.Vec) *Model {
	m, err := New(axes, links)
	if err != nil {
		panic(err)
	}

	return m
}

// Joints returns the number of joints n.
func (m *Model) Joints() int { return len(m.axes) }

// Axes returns a copy of the joint axes.
func (m *Model) Axes() []r3.Vec { return append([]r3.Vec(nil), m.axes...) }

// Links returns a copy of the link vectors.
func (m *Model) Links() []r3.Vec { return append([]r3.Vec(nil), m.links...) }

// Axis returns hᵢ (0-based).
func (m *Model) Axis(i int) r3.Vec { return m.axes[i] }

// Link returns pᵢ (0-based, 0..n).
func (m *Model) Link(i int) r3.Vec { return m.links[i] }

// ForwardKinematics evaluates the end-effector pose for joint angles q.
//
// Implementation:
//   - R₀ = I; for i = 1..n: Rᵢ = Rᵢ₋₁·Rot(hᵢ, qᵢ), t += Rᵢ·pᵢ.
//   - t starts at p₀.
//
// Errors:
//   - ErrJointCount (len(q) != n).
//   - matrix.ErrNaNInf (non-finite joint angle).
//
// Determinism:
//   - Fixed accumulation order; identical inputs give bit-identical output.
//
// Complexity:
//   - Time O(n), Space O(1) beyond the result.
func (m *Model) ForwardKinematics(q []float64) (Pose, error) {
	if len(q) != len(m.axes) {
		return Pose{}, kinErrorf(opFK, fmt.Errorf("len(q)=%d joints=%d: %w", len(q), len(m.axes), ErrJointCount))
	}

	r, err := matrix.NewIdentity(3)
	if err != nil {
		return Pose{}, kinErrorf(opFK, err)
	}
	t := m.links[0]
	var (
		ri  *matrix.Dense
		acc matrix.Matrix = r
		pi  r3.Vec
	)
	for i, h := range m.axes {
		if ri, err = Rot(h, q[i]); err != nil {
			return Pose{}, kinErrorf(opFK, fmt.Errorf("joint %d: %w", i, err))
		}
		if acc, err = matrix.Mul(acc, ri); err != nil {
			return Pose{}, kinErrorf(opFK, err)
		}
		if pi, err = Apply(acc, m.links[i+1]); err != nil {
			return Pose{}, kinErrorf(opFK, err)
		}
		t = r3.Add(t, pi)
	}

	return Pose{R: acc.(*matrix.Dense), T: t}, nil
}

// String renders the geometry one joint per line.
func (m *Model) String() string {
	s := fmt.Sprintf("p0=%v\n", m.links[0])
	for i, h := range m.axes {
		s += fmt.Sprintf("h%d=%v p%d=%v\n", i+1, h, i+1, m.links[i+1])
	}

	return s
}

func finite(v r3.Vec) bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}
