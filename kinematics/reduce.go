// SPDX-License-Identifier: MIT

package kinematics

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/poekin/matrix"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultPinvTolerance is the singular-value threshold used by RepairLink.
const DefaultPinvTolerance = 1e-12

// RepairResidualTolerance bounds ‖A·α − pₖ‖ after a link repair.
const RepairResidualTolerance = 1e-9

// Reduce fixes joint k (0-based) at angle and folds it into an (n−1)-joint
// model. rIn is an accumulated output rotation from earlier reductions
// (nil means I). The returned rOut = Rot(hₖ, angle)·rIn satisfies
//
//	m.FK(q).R == reduced.FK(q').R · rOut
//	m.FK(q).T == reduced.FK(q').T
//
// for rIn = I, where q' is q with entry k removed.
//
// Implementation:
//   - Rₖ = Rot(hₖ, angle).
//   - Axes before k are kept, axes after k become Rₖ·hⱼ.
//   - Links before k are kept, the merged link is pₖ + Rₖ·pₖ₊₁,
//     links after it become Rₖ·pⱼ.
//
// Errors:
//   - ErrTooFewJoints (n < 2), ErrJointIndex (k ∉ [0, n)).
//   - matrix.ErrNaNInf (non-finite angle), matrix.ErrDimensionMismatch (rIn not 3×3).
//
// Complexity:
//   - Time O(n), Space O(n).
func (m *Model) Reduce(angle float64, k int, rIn *matrix.Dense) (*Model, *matrix.Dense, error) {
	n := len(m.axes)
	if n < 2 {
		return nil, nil, kinErrorf(opReduce, fmt.Errorf("joints=%d: %w", n, ErrTooFewJoints))
	}
	if k < 0 || k >= n {
		return nil, nil, kinErrorf(opReduce, fmt.Errorf("k=%d joints=%d: %w", k, n, ErrJointIndex))
	}
	if rIn == nil {
		var err error
		if rIn, err = matrix.NewIdentity(3); err != nil {
			return nil, nil, kinErrorf(opReduce, err)
		}
	}

	rk, err := Rot(m.axes[k], angle)
	if err != nil {
		return nil, nil, kinErrorf(opReduce, err)
	}

	axes := make([]r3.Vec, 0, n-1)
	axes = append(axes, m.axes[:k]...)
	var v r3.Vec
	for _, h := range m.axes[k+1:] {
		if v, err = Apply(rk, h); err != nil {
			return nil, nil, kinErrorf(opReduce, err)
		}
		axes = append(axes, v)
	}

	links := make([]r3.Vec, 0, n)
	links = append(links, m.links[:k]...)
	if v, err = Apply(rk, m.links[k+1]); err != nil {
		return nil, nil, kinErrorf(opReduce, err)
	}
	links = append(links, r3.Add(m.links[k], v))
	for _, p := range m.links[k+2:] {
		if v, err = Apply(rk, p); err != nil {
			return nil, nil, kinErrorf(opReduce, err)
		}
		links = append(links, v)
	}

	out, err := matrix.Mul(rk, rIn)
	if err != nil {
		return nil, nil, kinErrorf(opReduce, err)
	}
	reduced, err := New(axes, links)
	if err != nil {
		return nil, nil, kinErrorf(opReduce, err)
	}

	return reduced, out.(*matrix.Dense), nil
}

// RepairLink re-expresses link vector p_link as α₀·h_{link−1} + α₁·h_link,
// moving the two components onto the neighbouring links:
//
//	p_{link−1} += α₀·h_{link−1}
//	p_link      = 0
//	p_{link+1} += α₁·h_link
//
// with α = pinv([h_{link−1} h_link], tol)·p_link. Indices are 0-based into
// the link list, so valid links are 1..n−1. The forward kinematics of the
// returned model equal those of m for every configuration.
//
// Errors:
//   - ErrJointIndex (link ∉ [1, n−1]).
//   - ErrNumericalDegeneracy wrapping matrix.ErrSingular (the two axes are
//     parallel within tol).
//   - ErrNumericalDegeneracy wrapping ErrRepairResidual (p_link has a
//     component outside the span of the two axes).
func RepairLink(m *Model, link int, tol float64) (*Model, error) {
	n := len(m.axes)
	if link < 1 || link > n-1 {
		return nil, kinErrorf(opRepair, fmt.Errorf("link=%d joints=%d: %w", link, n, ErrJointIndex))
	}
	h1, h2 := m.axes[link-1], m.axes[link]
	p := m.links[link]

	a, err := matrix.NewDense(3, 2)
	if err != nil {
		return nil, kinErrorf(opRepair, err)
	}
	for j, h := range [...]r3.Vec{h1, h2} {
		for i, c := range [...]float64{h.X, h.Y, h.Z} {
			if err = a.Set(i, j, c); err != nil {
				return nil, kinErrorf(opRepair, err)
			}
		}
	}
	pinv, err := matrix.PseudoInverse(a, tol)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, kinErrorf(opRepair, fmt.Errorf("%w: %w", ErrNumericalDegeneracy, err))
		}
		return nil, kinErrorf(opRepair, err)
	}
	alpha, err := matrix.MatVec(pinv, []float64{p.X, p.Y, p.Z})
	if err != nil {
		return nil, kinErrorf(opRepair, err)
	}

	u1, u2 := r3.Scale(alpha[0], h1), r3.Scale(alpha[1], h2)
	if res := r3.Norm(r3.Sub(r3.Add(u1, u2), p)); res > RepairResidualTolerance {
		return nil, kinErrorf(opRepair, fmt.Errorf("residual %g at link %d: %w: %w",
			res, link, ErrNumericalDegeneracy, ErrRepairResidual))
	}

	links := m.Links()
	links[link-1] = r3.Add(links[link-1], u1)
	links[link] = r3.Vec{}
	links[link+1] = r3.Add(links[link+1], u2)

	return New(m.axes, links)
}
