// SPDX-License-Identifier: MIT

package kinematics

import (
	"errors"
	"fmt"
)

var (
	// ErrNoJoints is returned when a model is built without any joint axis.
	ErrNoJoints = errors.New("kinematics: model has no joints")

	// ErrLinkCount is returned when len(links) != len(axes)+1.
	ErrLinkCount = errors.New("kinematics: link count must equal joint count + 1")

	// ErrAxisNotUnit is returned when a joint axis is not unit length within AxisTolerance.
	ErrAxisNotUnit = errors.New("kinematics: joint axis is not a unit vector")

	// ErrNonFinite is returned when an axis or link component is NaN or ±Inf.
	ErrNonFinite = errors.New("kinematics: non-finite geometry")

	// ErrJointCount is returned when a joint vector does not match the model's joint count.
	ErrJointCount = errors.New("kinematics: joint vector length mismatch")

	// ErrJointIndex is returned when a joint or link index is out of range.
	ErrJointIndex = errors.New("kinematics: joint index out of range")

	// ErrTooFewJoints is returned when reducing a model with fewer than two joints.
	ErrTooFewJoints = errors.New("kinematics: too few joints to reduce")

	// ErrNumericalDegeneracy is returned when the link repair meets geometry
	// that cannot absorb the offset (parallel axes, or an offset outside the
	// plane of the two axes). It signals a geometry-table bug.
	ErrNumericalDegeneracy = errors.New("kinematics: numerical degeneracy")

	// ErrRepairResidual accompanies ErrNumericalDegeneracy when the link vector
	// has a component outside the span of the two neighbouring axes.
	ErrRepairResidual = errors.New("kinematics: link offset not in span of neighbouring axes")
)

// Operation tags for error wrapping.
const (
	opNew     = "New"
	opRot     = "Rot"
	opFK      = "ForwardKinematics"
	opReduce  = "Reduce"
	opRepair  = "RepairLink"
	opInsert  = "Reduced.Insert"
	opExtract = "Reduced.Extract"
	opTarget  = "Reduced.Target"
	opCompose = "Reduced.Compose"
	opPoseDst = "Pose.Distance"
)

// kinErrorf wraps err with an operation tag, preserving it for errors.Is.
func kinErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
