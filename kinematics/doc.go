// SPDX-License-Identifier: MIT

// Package kinematics models a serial manipulator as a product-of-exponentials
// (POE) chain and evaluates its forward kinematics.
//
// A Model holds n unit joint axes h₁…hₙ and n+1 link vectors p₀…pₙ, all
// expressed in the home (zero-angle) frame:
//
//	p₀ ─ h₁ ─ p₁ ─ h₂ ─ … ─ hₙ ─ pₙ ─ tool
//
// Forward kinematics:
//
//	R₀ = I,  Rᵢ = Rᵢ₋₁·Rot(hᵢ, qᵢ)
//	t  = p₀ + Σᵢ Rᵢ·pᵢ
//
// Chain reduction (Model.Reduce) fixes one joint at a constant angle and
// folds it into an equivalent (n−1)-joint Model plus a constant rotation
// R_out such that
//
//	full.FK(q).R  == reduced.FK(q').R · R_out
//	full.FK(q).T  == reduced.FK(q').T
//
// where q is q' with the fixed angle reinserted. RepairLink re-expresses an
// ill-conditioned link vector along its two neighbouring axes without
// changing the physical transform. Reduced bundles a reduction with the
// reinsert/extract bookkeeping the validation harness needs.
//
// Concurrency:
//   - Model and Reduced are immutable after construction; every accessor
//     returns a copy. They are safe to share across goroutines.
//   - Pose values are owned by the caller that produced them.
package kinematics
