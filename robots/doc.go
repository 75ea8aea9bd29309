// SPDX-License-Identifier: MIT

// Package robots is the registry of benchmark robots.
//
// Each Descriptor names a geometry table, an optional fixed joint with the
// links to repair after folding it, and an optional bundled solver. New
// builds a Setup: a per-instance object exposing the capability set a
// benchmark driver needs (initialise a target, run the solver, report and
// score the candidates).
//
//	s, _ := robots.New("IRB 6640", robots.WithSeed(1))
//	s.InitializeFromRandomPose()
//	_ = s.RunSolver()
//	fmt.Print(s.ReportWrittenSolutions())
package robots
