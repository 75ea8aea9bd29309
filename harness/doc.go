// SPDX-License-Identifier: MIT

// Package harness runs randomized round-trip validation of inverse
// kinematics solvers against a kinematic model.
//
// One trial:
//
//	q ~ U(−π, π]ⁿ (fixed joints take their constants)
//	target = FK(q)
//	candidates = solve(target)
//	for each candidate: reinsert fixed joints, e = ‖R_c − R*‖_F + ‖t_c − t*‖₂
//	MinError = min e, or NoSolution when there are no candidates
//
// Determinism:
//   - Sample and RunTrial draw from one seeded source under a mutex; the
//     sequence of samples depends on call order.
//   - Run derives one source per worker from the seed, so its aggregate
//     Stats are reproducible for a fixed (seed, workers) pair.
//
// Observability:
//   - A *zap.Logger (WithLogger) receives per-trial Debug entries and Warn
//     entries for exact candidates whose error exceeds the threshold.
//   - Metrics (WithMetrics) exports Prometheus counters and a MinError
//     histogram labelled by robot name.
package harness
