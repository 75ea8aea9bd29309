// SPDX-License-Identifier: MIT

// Package subproblem implements the canonical geometric subproblems used to
// build closed-form inverse kinematics solvers (Paden–Kahan, IK-Geo form).
//
// Every solver returns exact solutions when they exist and otherwise the
// least-squares angle, flagged approximate:
//
//	Rotate     (SP1): θ  with rot(k, θ)·p₁ = p₂
//	TwoAxis    (SP2): θ₁, θ₂ with rot(k₁, θ₁)·p₁ = rot(k₂, θ₂)·p₂
//	Distance   (SP3): θ  with ‖rot(k, θ)·p₁ − p₂‖ = d
//	Projection (SP4): θ  with hᵀ·rot(k, θ)·p = d
//
// Axes (k, k₁, k₂, h) must be unit vectors. Angles are in (−π, π].
// All functions are pure and allocation-light.
package subproblem

// ExactTolerance is the residual below which a solution is reported exact.
const ExactTolerance = 1e-8
