// Package poekin is a toolkit for product-of-exponentials (POE) kinematics
// of serial manipulators and for validating analytic inverse kinematics
// solvers by randomized round trips.
//
// 🚀 What is poekin?
//
//	A deterministic, dependency-light library that brings together:
//		• Dense linear algebra: products, transpose, Jacobi eigen, pseudo-inverse
//		• Kinematics: POE models, forward kinematics, joint folding, link repair
//		• Subproblems: the four canonical geometric IK subproblems
//		• Solvers: a closed-form solver for spherical-wrist arms
//		• Harness: seeded sampling, scoring, parallel batches, Prometheus metrics
//		• Robots: a registry of eight benchmark arms
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/      Dense type, validators, kernels, PseudoInverse
//	kinematics/  Model, Pose, Rot, ForwardKinematics, Reduce, RepairLink, Reduced
//	subproblem/  Rotate, TwoAxis, Distance, Projection
//	solver/      Candidate, Func, SphericalTwoParallel, ForReduced
//	poseio/      pose text parser, solution writer
//	harness/     Harness, TrialResult, Stats, Metrics
//	robots/      Descriptor registry and per-instance Setup
//	cmd/ikbench  benchmark CLI
//
// Quick start:
//
//	go install github.com/katalvlaran/poekin/cmd/ikbench@latest
//	ikbench run --robot "IRB 6640" --trials 10000
package poekin
