// SPDX-License-Identifier: MIT

// Package solver defines the contract between inverse-kinematics solvers
// and the validation harness, and ships one closed-form solver.
//
// A Func maps a target Pose to zero or more Candidates. Each candidate is a
// joint vector, either of the model's full length or, for reduced-DOF
// setups, with the fixed joints omitted; the harness reinserts them.
//
// SphericalTwoParallel solves six-joint arms whose joints 2 and 3 are
// parallel and whose last three axes meet at a point (IRB 6640 family).
// ForReduced adapts any Func written against a reduced model so that it
// accepts full-model target poses.
package solver
