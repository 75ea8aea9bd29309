// SPDX-License-Identifier: MIT

package subproblem

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rotate solves rot(k, θ)·p1 = p2 (SP1).
// approximate is set when ‖p1‖ ≠ ‖p2‖ or kᵀp1 ≠ kᵀp2; θ then minimises
// ‖rot(k, θ)·p1 − p2‖.
func Rotate(k, p1, p2 r3.Vec) (theta float64, approximate bool) {
	kxp := r3.Cross(k, p1)
	perp := r3.Sub(p1, r3.Scale(r3.Dot(k, p1), k))
	theta = math.Atan2(r3.Dot(p2, kxp), r3.Dot(p2, perp))

	approximate = math.Abs(r3.Norm(p1)-r3.Norm(p2)) > ExactTolerance ||
		math.Abs(r3.Dot(k, p1)-r3.Dot(k, p2)) > ExactTolerance

	return theta, approximate
}

// Projection solves hᵀ·rot(k, θ)·p = d (SP4).
//
// Implementation:
//   - hᵀrot(k,θ)p = hᵀk·kᵀp + A·[sinθ cosθ]ᵀ with
//     A = [hᵀ(k×p), −hᵀ(k×(k×p))].
//   - With b = d − hᵀk·kᵀp, the line A·x = b meets the unit circle in two
//     points when ‖A‖² > b², otherwise the closest point is returned.
//
// Returns one or two angles; approximate is set in the single-angle case.
func Projection(h, p, k r3.Vec, d float64) (thetas []float64, approximate bool) {
	a1 := r3.Cross(k, p)
	a2 := r3.Scale(-1, r3.Cross(k, a1))
	a := [2]float64{r3.Dot(h, a1), r3.Dot(h, a2)}
	b := d - r3.Dot(h, k)*r3.Dot(k, p)

	norm2 := a[0]*a[0] + a[1]*a[1]
	xls := [2]float64{a[0] * b, a[1] * b}
	if norm2 > b*b {
		xi := math.Sqrt(norm2 - b*b)
		n := [2]float64{a[1], -a[0]}
		return []float64{
			math.Atan2(xls[0]+xi*n[0], xls[1]+xi*n[1]),
			math.Atan2(xls[0]-xi*n[0], xls[1]-xi*n[1]),
		}, false
	}

	return []float64{math.Atan2(xls[0], xls[1])}, true
}

// Distance solves ‖rot(k, θ)·p1 − p2‖ = d (SP3) by reduction to SP4:
//
//	p2ᵀ·rot(k, θ)·p1 = (‖p1‖² + ‖p2‖² − d²) / 2
func Distance(p1, p2, k r3.Vec, d float64) (thetas []float64, approximate bool) {
	n1, n2 := r3.Dot(p1, p1), r3.Dot(p2, p2)

	return Projection(p2, p1, k, (n1+n2-d*d)/2)
}

// TwoAxis solves rot(k1, θ1)·p1 = rot(k2, θ2)·p2 (SP2).
//
// Implementation:
//   - Normalise p1 and p2; a length mismatch is only solvable approximately.
//   - Rotation about k2 preserves the k2 component, so θ1 solves
//     k2ᵀ·rot(k1, θ1)·p̂1 = k2ᵀ·p̂2 (SP4).
//   - For each θ1, θ2 = Rotate(k2, p̂2, rot(k1, θ1)·p̂1).
//
// theta1[i] pairs with theta2[i].
func TwoAxis(p1, p2, k1, k2 r3.Vec) (theta1, theta2 []float64, approximate bool) {
	n1, n2 := r3.Norm(p1), r3.Norm(p2)
	approximate = math.Abs(n1-n2) > ExactTolerance
	if n1 == 0 || n2 == 0 {
		return []float64{0}, []float64{0}, approximate
	}
	u1, u2 := r3.Scale(1/n1, p1), r3.Scale(1/n2, p2)

	t1, ls := Projection(k2, u1, k1, r3.Dot(k2, u2))
	approximate = approximate || ls

	theta1 = t1
	theta2 = make([]float64, len(t1))
	for i, th := range t1 {
		v := rotateVec(k1, th, u1)
		var ls2 bool
		theta2[i], ls2 = Rotate(k2, u2, v)
		approximate = approximate || (ls2 && !ls)
	}

	return theta1, theta2, approximate
}

// rotateVec applies Rodrigues' formula to v:
// v·cosθ + (k×v)·sinθ + k·(kᵀv)·(1 − cosθ).
func rotateVec(k r3.Vec, theta float64, v r3.Vec) r3.Vec {
	s, c := math.Sincos(theta)

	return r3.Add(
		r3.Add(r3.Scale(c, v), r3.Scale(s, r3.Cross(k, v))),
		r3.Scale(r3.Dot(k, v)*(1-c), k),
	)
}
