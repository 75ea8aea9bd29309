// SPDX-License-Identifier: MIT

// Package matrix - norms and the minimum-norm (Moore–Penrose) pseudo-inverse.
//
// Purpose:
//   - FrobeniusNorm measures matrix deviation (e.g. ‖R_c − R*‖_F).
//   - PseudoInverse solves tall or wide full-rank systems in the
//     minimum-norm / least-squares sense and refuses rank-deficient input.
//
// Numeric policy:
//   - Singular values come from the Jacobi eigen-solver on the Gram matrix
//     (AᵀA for tall, AAᵀ for wide inputs): σᵢ = √λᵢ.
//   - Any σᵢ ≤ tol is reported as ErrSingular. There is no silent truncation:
//     callers that reach this point hold constant geometry that must be
//     well-conditioned.
//   - Forming the Gram matrix squares the condition number, so λᵢ carries
//     rounding of order n·ε·λ_max. Eigenvalues below that floor are treated
//     as zero singular values as well.

package matrix

import (
	"fmt"
	"math"
)

const (
	opFrobenius = "FrobeniusNorm"
	opPinv      = "PseudoInverse"

	// gramEpsilon is the unit roundoff used for the Gram eigenvalue floor.
	gramEpsilon = 2.220446049250313e-16
)

// FrobeniusNorm returns √(Σ m[i,j]²).
//
// Errors:
//   - ErrNilMatrix (nil input).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	var sum float64
	if d, ok := m.(*Dense); ok {
		for _, v := range d.data {
			sum += v * v
		}
		return math.Sqrt(sum), nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, matrixErrorf(opFrobenius, err)
			}
			sum += v * v
		}
	}

	return math.Sqrt(sum), nil
}

// PseudoInverse returns the minimum-norm generalized inverse A⁺ of a
// full-rank r×c matrix. The result has shape c×r.
//
// Implementation:
//   - Stage 1: validate A and tol; pick the smaller Gram matrix G.
//   - Stage 2: G = V·diag(λ)·Vᵀ by Jacobi; reject any √λᵢ ≤ tol.
//   - Stage 3: G⁻¹ = V·diag(1/λ)·Vᵀ; A⁺ = G⁻¹Aᵀ (tall) or AᵀG⁻¹ (wide).
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (tol not finite or negative).
//   - ErrSingular (rank deficient beyond tol).
//   - ErrMatrixEigenFailed (Jacobi did not converge under opts).
//
// Complexity:
//   - Time O(r*c*min(r,c)), Space O(r*c).
//
// AI-Hints:
//   - For a 3×2 pair of unit screw axes, σ_min = √(1 − |h₁·h₂|): the call fails
//     exactly when the axes are (numerically) parallel.
func PseudoInverse(a Matrix, tol float64, opts ...Option) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < zeroTol {
		return nil, matrixErrorf(opPinv, ErrNaNInf)
	}
	o := gatherOptions(opts...)

	at, err := Transpose(a)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	tall := a.Rows() >= a.Cols()

	var g Matrix
	if tall {
		g, err = Mul(at, a) // c×c
	} else {
		g, err = Mul(a, at) // r×r
	}
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}

	gInv, err := invertGram(g, tol, o)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}

	var res Matrix
	if tall {
		res, err = Mul(gInv, at)
	} else {
		res, err = Mul(at, gInv)
	}
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}

	return res.(*Dense), nil
}

// invertGram inverts a symmetric positive semi-definite Gram matrix through
// its eigen-decomposition, failing with ErrSingular on any σ = √λ ≤ tol.
// Complexity: O(maxIter·n² + n³).
func invertGram(g Matrix, tol float64, o Options) (*Dense, error) {
	lambda, v, err := Eigen(g, o.eigenTol, o.eigenMaxIter)
	if err != nil {
		return nil, err
	}
	n := len(lambda)
	lmax := NormZero
	for _, l := range lambda {
		lmax = math.Max(lmax, math.Abs(l))
	}
	floor := math.Max(tol*tol, float64(n)*gramEpsilon*lmax)
	for k, l := range lambda {
		if l <= floor {
			return nil, fmt.Errorf("singular value %d = %g <= %g: %w", k, math.Sqrt(math.Max(l, 0)), math.Sqrt(floor), ErrSingular)
		}
	}

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var i, j, k int
	var acc float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			acc = ZeroSum
			for k = 0; k < n; k++ {
				acc += v.data[i*n+k] * v.data[j*n+k] / lambda[k]
			}
			inv.data[i*n+j] = acc
		}
	}

	return inv, nil
}
