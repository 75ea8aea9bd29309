// SPDX-License-Identifier: MIT

package robots

import (
	"math"

	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/solver"
	"gonum.org/v1/gonum/spatial/r3"
)

// Robot names as exposed by the registry.
const (
	IRB6640          = "IRB 6640"
	KukaR800FixedQ3  = "KUKA R800 Fixed Q3"
	RRCFixedQ6       = "RRC Fixed Q6"
	YumiFixedQ3      = "Yumi Fixed Q3"
	UR5              = "UR5"
	ThreeParallelBot = "Three Parallel Bot"
	TwoParallelBot   = "Two Parallel Bot"
	SphericalBot     = "Spherical Bot"
)

// Fixed pins one joint of a redundant arm.
type Fixed struct {
	Index int     // 0-based joint index
	Angle float64 // radians
}

// Descriptor is a registry entry.
type Descriptor struct {
	Name   string
	Build  func() *kinematics.Model
	Fix    *Fixed // nil for non-redundant arms
	Repair []int  // links of the reduced model passed to RepairLink, in order
	// Solver builds a solver for the model the robot is solved on: the full
	// model, or the reduced and repaired one when Fix is set. Nil when no
	// solver ships with the module.
	Solver func(*kinematics.Model) (solver.Func, error)
}

var (
	zv = r3.Vec{}
	ex = r3.Vec{X: 1}
	ey = r3.Vec{Y: 1}
	ez = r3.Vec{Z: 1}
)

func neg(v r3.Vec) r3.Vec { return r3.Scale(-1, v) }

func add(vs ...r3.Vec) r3.Vec {
	var s r3.Vec
	for _, v := range vs {
		s = r3.Add(s, v)
	}

	return s
}

func sc(f float64, v r3.Vec) r3.Vec { return r3.Scale(f, v) }

var descriptors = []Descriptor{
	{
		Name: IRB6640,
		Build: func() *kinematics.Model {
			return kinematics.MustNew(
				[]r3.Vec{ez, ey, ey, ex, ey, ex},
				[]r3.Vec{zv, add(sc(0.32, ex), sc(0.78, ez)), sc(1.075, ez), add(sc(1.1425, ex), sc(0.2, ez)), zv, zv, sc(0.2, ex)},
			)
		},
		Solver: solver.SphericalTwoParallel,
	},
	{
		Name: KukaR800FixedQ3,
		Build: func() *kinematics.Model {
			return kinematics.MustNew(
				[]r3.Vec{ez, ey, ez, neg(ey), ez, ey, ez},
				[]r3.Vec{sc(0.15+0.19, ez), zv, sc(0.21, ez), sc(0.19, ez), sc(0.21+0.19, ez), zv, zv, sc(0.081+0.045, ez)},
			)
		},
		Fix: &Fixed{Index: 2, Angle: math.Pi / 6},
	},
	{
		Name:  RRCFixedQ6,
		Build: buildRRC,
		Fix:   &Fixed{Index: 5, Angle: math.Pi / 6},
		// Folding joint 6 leaves an offset between two intersecting axes.
		Repair: []int{5},
	},
	{
		Name:  YumiFixedQ3,
		Build: buildYumi,
		Fix:   &Fixed{Index: 2, Angle: math.Pi / 6},
	},
	{
		Name: UR5,
		Build: func() *kinematics.Model {
			return kinematics.MustNew(
				[]r3.Vec{ez, ey, ey, ey, neg(ez), ey},
				[]r3.Vec{sc(0.089159, ez), sc(0.1358, ey), add(sc(-0.1197, ey), sc(0.425, ex)), sc(0.3922, ex), sc(0.093, ey), sc(-0.0946, ez), sc(0.0823, ey)},
			)
		},
	},
	{
		Name: ThreeParallelBot,
		Build: func() *kinematics.Model {
			return kinematics.MustNew(
				[]r3.Vec{ez, ex, ex, ex, ez, ex},
				[]r3.Vec{ez, ey, ey, ey, ey, add(ey, ex), ex},
			)
		},
	},
	{
		Name: TwoParallelBot,
		Build: func() *kinematics.Model {
			es := r3.Unit(add(ex, ez))
			return kinematics.MustNew(
				[]r3.Vec{ez, ex, ex, ez, ex, es},
				[]r3.Vec{ez, ey, ey, ey, ey, ey, ez},
			)
		},
	},
	{
		Name: SphericalBot,
		Build: func() *kinematics.Model {
			return kinematics.MustNew(
				[]r3.Vec{ey, ez, ey, ex, ey, ex},
				[]r3.Vec{zv, add(ez, ex), add(ez, ex), add(ez, ex), zv, zv, ex},
			)
		},
	},
}

func buildRRC() *kinematics.Model {
	const inch = 0.0254
	links := []r3.Vec{
		zv,
		add(sc(20, ex), sc(-4, ey)),
		sc(4, ey),
		add(sc(21.5, ex), sc(3.375, ey)),
		sc(-3.375, ey),
		add(sc(21.5, ex), sc(3.325, ey)),
		sc(-3.325, ey),
		sc(7, ex),
	}
	for i := range links {
		links[i] = sc(inch, links[i])
	}

	return kinematics.MustNew([]r3.Vec{ex, ez, ex, ez, ex, ez, ex}, links)
}

// yumiP and yumiH are row-major 3×8 and 3×7 tables.
var (
	yumiP = [3][8]float64{
		{0.0536, 0.0642, 0.1578, 0.0880, 0.1270, 0.0354, 0.0385, 0.0040},
		{0.0725, 0.0527, 0.0406, 0.0011, -0.0877, -0.0712, -0.0087, -0.0043},
		{0.4149, 0.0632, 0.0650, 0.0143, -0.0700, -0.0670, -0.0030, -0.0038},
	}
	yumiH = [3][7]float64{
		{0.8138, 0.1048, 0.8138, 0.1048, 0.5716, 0.1048, 0.5716},
		{0.3420, 0.7088, 0.3420, 0.7088, -0.6170, 0.7088, -0.6170},
		{0.4698, -0.6976, 0.4698, -0.6976, -0.5410, -0.6976, -0.5410},
	}
)

func buildYumi() *kinematics.Model {
	links := make([]r3.Vec, 8)
	for j := range links {
		links[j] = r3.Vec{X: yumiP[0][j], Y: yumiP[1][j], Z: yumiP[2][j]}
	}
	// The published axes carry four significant digits; normalise them.
	axes := make([]r3.Vec, 7)
	for j := range axes {
		axes[j] = r3.Unit(r3.Vec{X: yumiH[0][j], Y: yumiH[1][j], Z: yumiH[2][j]})
	}

	return kinematics.MustNew(axes, links)
}
