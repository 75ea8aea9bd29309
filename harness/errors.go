// SPDX-License-Identifier: MIT

package harness

import (
	"errors"
	"fmt"
)

var (
	// ErrCandidateLength is returned when a solver emits a joint vector whose
	// length is neither the full joint count nor the free joint count.
	ErrCandidateLength = errors.New("harness: candidate length mismatch")

	// ErrNilSolver is returned by New when no solver is supplied.
	ErrNilSolver = errors.New("harness: nil solver")

	// ErrNilModel is returned by New when no model is supplied.
	ErrNilModel = errors.New("harness: nil model")

	// ErrFixedJoint is returned when a fixed joint index is out of range,
	// or when every joint is fixed.
	ErrFixedJoint = errors.New("harness: invalid fixed joint")
)

const (
	opNew   = "New"
	opTrial = "Trial"
	opRun   = "Run"
)

func harnessErrorf(tag string, err error) error {
	return fmt.Errorf("harness.%s: %w", tag, err)
}
