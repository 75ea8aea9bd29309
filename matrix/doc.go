// Package matrix offers the small dense linear-algebra toolkit used by the
// kinematics core.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-value policy.
//   - Kernels: Sub, Mul, Transpose, MatVec, Jacobi Eigen.
//   - Norms and solves: FrobeniusNorm, AllClose, PseudoInverse.
//
// Every kernel validates its inputs, never panics on user input, and returns
// sentinel errors (see errors.go) wrapped with an operation tag.
//
// Loop orders are fixed, so identical inputs give bit-identical outputs.
package matrix
