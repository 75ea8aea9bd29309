// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/matrix"
	"github.com/katalvlaran/poekin/subproblem"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrGeometry is returned when a model does not have the kinematic
// structure a closed-form solver requires.
var ErrGeometry = errors.New("solver: unsupported geometry")

// geometryTolerance bounds the parallelism and zero-offset checks.
const geometryTolerance = 1e-9

// Candidate is one IK solution.
type Candidate struct {
	Q           []float64
	Approximate bool // least-squares rather than exact
}

// Func solves the IK problem for a target pose. An empty result means no
// solution was found.
type Func func(target kinematics.Pose) []Candidate

// ForReduced wraps f, written against r.Model(), so that it accepts poses
// of the full model. Candidates keep the reduced length.
//
// A target that cannot be mapped (missing or malformed rotation) yields no
// candidates, since Func has no error path; the cause is logged at Warn on
// log (nil discards it).
func ForReduced(r *kinematics.Reduced, f Func, log *zap.Logger) Func {
	if log == nil {
		log = zap.NewNop()
	}

	return func(target kinematics.Pose) []Candidate {
		t, err := r.Target(target)
		if err != nil {
			log.Warn("target not mappable to reduced model",
				zap.Int("fixed_joint", r.Index()),
				zap.Error(err))
			return nil
		}

		return f(t)
	}
}

// SphericalTwoParallel returns a closed-form solver for m.
//
// Requirements:
//   - six joints; h₂ ∥ h₃;
//   - spherical wrist: p₄₅ = p₅₆ = 0;
//   - h₅ not parallel to h₆.
//
// Implementation:
//   - p₁₆ = t − p₀₁ − R·p₆T.
//   - q₁: SP4  h₂ᵀ·rot(−h₁, q₁)·p₁₆ = h₂ᵀ(p₁₂ + p₂₃ + p₃₄).
//   - q₃: SP3  ‖rot(h₃, q₃)·p₃₄ + p₂₃‖ = ‖R₀₁ᵀp₁₆ − p₁₂‖.
//   - q₂: SP1  rot(h₂, q₂)·(p₂₃ + R₂₃p₃₄) = R₀₁ᵀp₁₆ − p₁₂.
//   - q₄, q₅: SP2  rot(−h₄, q₄)·R₀₃ᵀR·h₆ = rot(h₅, q₅)·h₆.
//   - q₆: SP1  rot(h₆, q₆)·h₅ = R₀₅ᵀR·h₅.
//
// Up to 2·2·2 = 8 candidates are produced; a candidate is approximate when
// any subproblem on its branch fell back to least squares.
func SphericalTwoParallel(m *kinematics.Model) (Func, error) {
	if m.Joints() != 6 {
		return nil, fmt.Errorf("SphericalTwoParallel: joints=%d: %w", m.Joints(), ErrGeometry)
	}
	h := m.Axes()
	p := m.Links()
	if r3.Norm(r3.Cross(h[1], h[2])) > geometryTolerance {
		return nil, fmt.Errorf("SphericalTwoParallel: h2 not parallel to h3: %w", ErrGeometry)
	}
	if r3.Norm(p[4]) > geometryTolerance || r3.Norm(p[5]) > geometryTolerance {
		return nil, fmt.Errorf("SphericalTwoParallel: wrist is not spherical: %w", ErrGeometry)
	}
	if r3.Norm(r3.Cross(h[4], h[5])) < geometryTolerance {
		return nil, fmt.Errorf("SphericalTwoParallel: h5 parallel to h6: %w", ErrGeometry)
	}

	s := &sphericalTwoParallel{h: h, p: p}

	return s.solve, nil
}

type sphericalTwoParallel struct {
	h []r3.Vec
	p []r3.Vec
}

func (s *sphericalTwoParallel) solve(target kinematics.Pose) []Candidate {
	if target.R == nil {
		return nil
	}
	h, p := s.h, s.p

	p6, err := kinematics.Apply(target.R, p[6])
	if err != nil {
		return nil
	}
	p16 := r3.Sub(r3.Sub(target.T, p[0]), p6)
	rh6, err := kinematics.Apply(target.R, h[5])
	if err != nil {
		return nil
	}
	rh5, err := kinematics.Apply(target.R, h[4])
	if err != nil {
		return nil
	}

	var out []Candidate
	d1 := r3.Dot(h[1], r3.Add(r3.Add(p[1], p[2]), p[3]))
	q1s, ls1 := subproblem.Projection(h[1], p16, r3.Scale(-1, h[0]), d1)
	for _, q1 := range q1s {
		r01, err := kinematics.Rot(h[0], q1)
		if err != nil {
			continue
		}
		w, err := kinematics.ApplyT(r01, p16)
		if err != nil {
			continue
		}
		w = r3.Sub(w, p[1])

		q3s, ls3 := subproblem.Distance(p[3], r3.Scale(-1, p[2]), h[2], r3.Norm(w))
		for _, q3 := range q3s {
			r23, err := kinematics.Rot(h[2], q3)
			if err != nil {
				continue
			}
			v, err := kinematics.Apply(r23, p[3])
			if err != nil {
				continue
			}
			q2, ls2 := subproblem.Rotate(h[1], r3.Add(p[2], v), w)

			r03, err := chain(r01, h[1], q2, h[2], q3)
			if err != nil {
				continue
			}
			wrist, err := kinematics.ApplyT(r03, rh6)
			if err != nil {
				continue
			}
			q4s, q5s, ls45 := subproblem.TwoAxis(wrist, h[5], r3.Scale(-1, h[3]), h[4])
			for i := range q4s {
				r05, err := chain(r03, h[3], q4s[i], h[4], q5s[i])
				if err != nil {
					continue
				}
				u, err := kinematics.ApplyT(r05, rh5)
				if err != nil {
					continue
				}
				q6, ls6 := subproblem.Rotate(h[5], h[4], u)

				out = append(out, Candidate{
					Q:           []float64{q1, q2, q3, q4s[i], q5s[i], q6},
					Approximate: ls1 || ls2 || ls3 || ls45 || ls6,
				})
			}
		}
	}

	return out
}

// chain returns r·rot(ha, qa)·rot(hb, qb).
func chain(r *matrix.Dense, ha r3.Vec, qa float64, hb r3.Vec, qb float64) (*matrix.Dense, error) {
	ra, err := kinematics.Rot(ha, qa)
	if err != nil {
		return nil, err
	}
	rb, err := kinematics.Rot(hb, qb)
	if err != nil {
		return nil, err
	}
	out, err := matrix.Mul(r, ra)
	if err != nil {
		return nil, err
	}
	if out, err = matrix.Mul(out, rb); err != nil {
		return nil, err
	}

	return out.(*matrix.Dense), nil
}
