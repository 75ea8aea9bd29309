// SPDX-License-Identifier: MIT

package kinematics

import (
	"fmt"

	"github.com/katalvlaran/poekin/matrix"
)

// Reduced is an (n−1)-joint model obtained by fixing one joint of a full
// model, together with the bookkeeping needed to move joint vectors and
// target poses between the two.
type Reduced struct {
	full    *Model
	model   *Model
	index   int
	angle   float64
	rotOut  *matrix.Dense
	repairs []int
}

// NewReduced fixes joint index of full at angle.
func NewReduced(full *Model, index int, angle float64) (*Reduced, error) {
	m, rOut, err := full.Reduce(angle, index, nil)
	if err != nil {
		return nil, err
	}

	return &Reduced{full: full, model: m, index: index, angle: angle, rotOut: rOut}, nil
}

// Repair returns a copy of r whose reduced model had RepairLink applied at link.
func (r *Reduced) Repair(link int, tol float64) (*Reduced, error) {
	m, err := RepairLink(r.model, link, tol)
	if err != nil {
		return nil, err
	}
	cp := *r
	cp.model = m
	cp.repairs = append(append([]int(nil), r.repairs...), link)

	return &cp, nil
}

// Full returns the unreduced model.
func (r *Reduced) Full() *Model { return r.full }

// Model returns the reduced (n−1)-joint model.
func (r *Reduced) Model() *Model { return r.model }

// Index returns the 0-based index of the fixed joint in the full model.
func (r *Reduced) Index() int { return r.index }

// Angle returns the fixed joint angle.
func (r *Reduced) Angle() float64 { return r.angle }

// Repairs lists the links repaired so far, in order.
func (r *Reduced) Repairs() []int { return append([]int(nil), r.repairs...) }

// Rotation returns a copy of R_out.
func (r *Reduced) Rotation() *matrix.Dense { return r.rotOut.Clone().(*matrix.Dense) }

// Insert expands a reduced joint vector to the full model by reinserting
// the fixed angle at Index.
func (r *Reduced) Insert(q []float64) ([]float64, error) {
	if len(q) != r.model.Joints() {
		return nil, kinErrorf(opInsert, fmt.Errorf("len(q)=%d joints=%d: %w", len(q), r.model.Joints(), ErrJointCount))
	}
	out := make([]float64, 0, len(q)+1)
	out = append(out, q[:r.index]...)
	out = append(out, r.angle)

	return append(out, q[r.index:]...), nil
}

// Extract drops the fixed joint from a full joint vector.
func (r *Reduced) Extract(q []float64) ([]float64, error) {
	if len(q) != r.full.Joints() {
		return nil, kinErrorf(opExtract, fmt.Errorf("len(q)=%d joints=%d: %w", len(q), r.full.Joints(), ErrJointCount))
	}
	out := make([]float64, 0, len(q)-1)
	out = append(out, q[:r.index]...)

	return append(out, q[r.index+1:]...), nil
}

// Target maps a full-model target pose to the reduced model's frame:
// R' = R·R_outᵀ, T' = T.
func (r *Reduced) Target(p Pose) (Pose, error) {
	rt, err := matrix.Transpose(r.rotOut)
	if err != nil {
		return Pose{}, kinErrorf(opTarget, err)
	}
	rr, err := matrix.Mul(p.R, rt)
	if err != nil {
		return Pose{}, kinErrorf(opTarget, err)
	}

	return Pose{R: rr.(*matrix.Dense), T: p.T}, nil
}

// Compose maps a reduced-model pose back to the full model: R = R'·R_out.
func (r *Reduced) Compose(p Pose) (Pose, error) {
	rr, err := matrix.Mul(p.R, r.rotOut)
	if err != nil {
		return Pose{}, kinErrorf(opCompose, err)
	}

	return Pose{R: rr.(*matrix.Dense), T: p.T}, nil
}
