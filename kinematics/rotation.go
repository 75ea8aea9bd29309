// SPDX-License-Identifier: MIT

package kinematics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/poekin/matrix"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rot returns the 3×3 rotation by theta about the unit axis k (Rodrigues):
//
//	R = I + sinθ·K + (1 − cosθ)·K²,  K = [k]×
//
// The axis is assumed unit; Model guarantees this for its own axes.
//
// Errors:
//   - matrix.ErrNaNInf (non-finite theta or axis).
func Rot(k r3.Vec, theta float64) (*matrix.Dense, error) {
	s, c := math.Sincos(theta)
	v := 1 - c
	x, y, z := k.X, k.Y, k.Z

	r, err := matrix.NewDenseFrom(3, 3, []float64{
		c + v*x*x, v*x*y - s*z, v*x*z + s*y,
		v*x*y + s*z, c + v*y*y, v*y*z - s*x,
		v*x*z - s*y, v*y*z + s*x, c + v*z*z,
	})
	if err != nil {
		return nil, kinErrorf(opRot, fmt.Errorf("theta=%g: %w", theta, err))
	}

	return r, nil
}

// Apply returns R·v for a 3×3 matrix R.
func Apply(r matrix.Matrix, v r3.Vec) (r3.Vec, error) {
	y, err := matrix.MatVec(r, []float64{v.X, v.Y, v.Z})
	if err != nil {
		return r3.Vec{}, err
	}
	if len(y) != 3 {
		return r3.Vec{}, fmt.Errorf("Apply: rows=%d: %w", len(y), matrix.ErrDimensionMismatch)
	}

	return r3.Vec{X: y[0], Y: y[1], Z: y[2]}, nil
}

// ApplyT returns Rᵀ·v for a 3×3 matrix R.
func ApplyT(r matrix.Matrix, v r3.Vec) (r3.Vec, error) {
	rt, err := matrix.Transpose(r)
	if err != nil {
		return r3.Vec{}, err
	}

	return Apply(rt, v)
}
