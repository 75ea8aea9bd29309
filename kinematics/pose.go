// SPDX-License-Identifier: MIT

package kinematics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/poekin/matrix"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a rigid transform: orientation R (3×3) and translation T.
type Pose struct {
	R *matrix.Dense
	T r3.Vec
}

// NewPose builds a Pose from a row-major 3×3 rotation and a translation.
func NewPose(rowMajor [9]float64, t r3.Vec) (Pose, error) {
	r, err := matrix.NewDenseFrom(3, 3, rowMajor[:])
	if err != nil {
		return Pose{}, err
	}

	return Pose{R: r, T: t}, nil
}

// Identity returns the pose with R = I and T = 0.
func Identity() Pose {
	r, _ := matrix.NewIdentity(3)

	return Pose{R: r}
}

// Clone returns a deep copy of p.
func (p Pose) Clone() Pose {
	if p.R == nil {
		return p
	}

	return Pose{R: p.R.Clone().(*matrix.Dense), T: p.T}
}

// Distance returns ‖R − q.R‖_F + ‖T − q.T‖₂, the pose error metric used to
// score IK candidates. The sum is symmetric in p and q.
//
// Errors:
//   - matrix.ErrNilMatrix (either rotation missing).
func (p Pose) Distance(q Pose) (float64, error) {
	d, err := matrix.Sub(p.R, q.R)
	if err != nil {
		return math.NaN(), kinErrorf(opPoseDst, err)
	}
	fr, err := matrix.FrobeniusNorm(d)
	if err != nil {
		return math.NaN(), kinErrorf(opPoseDst, err)
	}

	return fr + r3.Norm(r3.Sub(p.T, q.T)), nil
}

// String formats the pose as "R=[..] T=(x, y, z)".
func (p Pose) String() string {
	return fmt.Sprintf("R=%v T=%v", p.R, p.T)
}
