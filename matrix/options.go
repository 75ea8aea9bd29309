// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy of the
// spectral kernels. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultEigenTolerance is the Jacobi convergence threshold used by
	// PseudoInverse when no WithEigenTolerance option is supplied.
	DefaultEigenTolerance = 1e-14

	// DefaultEigenMaxIter caps the Jacobi sweeps used by PseudoInverse.
	DefaultEigenMaxIter = 100
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEigenTolInvalid  = "matrix: WithEigenTolerance: tol must be finite, positive"
	panicEigenIterInvalid = "matrix: WithEigenMaxIter: maxIter must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	eigenTol     float64 // > 0; DefaultEigenTolerance
	eigenMaxIter int     // > 0; DefaultEigenMaxIter
}

// WithEigenTolerance sets the Jacobi convergence threshold.
// Panics when tol is not finite or not positive.
// Complexity: O(1).
func WithEigenTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicEigenTolInvalid)
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithEigenMaxIter caps the number of Jacobi rotations.
// Panics when maxIter <= 0.
// Complexity: O(1).
func WithEigenMaxIter(maxIter int) Option {
	if maxIter <= 0 {
		panic(panicEigenIterInvalid)
	}

	return func(o *Options) { o.eigenMaxIter = maxIter }
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Implementation:
//   - Stage 1: start from documented defaults.
//   - Stage 2: apply setters in order (last-writer-wins).
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		eigenTol:     DefaultEigenTolerance,
		eigenMaxIter: DefaultEigenMaxIter,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
