// SPDX-License-Identifier: MIT

// Package poseio reads target poses from their configuration text form and
// writes candidate solutions in the benchmark output form.
//
// Pose text: at least 12 comma-separated reals. The first 9 fill a row-major
// 3×3 rotation, the next 3 the translation. Whitespace around tokens is
// ignored, as are tokens after the 12th. NaN and infinities are rejected.
//
// Solution text: one line per candidate, its joint angles comma-separated
// in joint order. Flags and errors are not part of the format.
package poseio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/poekin/kinematics"
	"github.com/katalvlaran/poekin/solver"
	"gonum.org/v1/gonum/spatial/r3"
)

// PoseTokens is the number of reals in a pose record.
const PoseTokens = 12

const sep = ","

// ErrParse reports malformed configuration text.
var ErrParse = errors.New("poseio: malformed pose text")

// ParsePose decodes a pose record.
//
// Errors:
//   - ErrParse (fewer than PoseTokens tokens, a token that is not a real,
//     or a NaN/±Inf token).
func ParsePose(raw string) (kinematics.Pose, error) {
	tokens := strings.Split(strings.TrimSpace(raw), sep)
	if len(tokens) < PoseTokens {
		return kinematics.Pose{}, fmt.Errorf("ParsePose: got %d tokens, want %d: %w", len(tokens), PoseTokens, ErrParse)
	}

	var vals [PoseTokens]float64
	for i := range vals {
		v, err := strconv.ParseFloat(strings.TrimSpace(tokens[i]), 64)
		if err != nil {
			return kinematics.Pose{}, fmt.Errorf("ParsePose: token %d %q: %w", i, tokens[i], errors.Join(ErrParse, err))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return kinematics.Pose{}, fmt.Errorf("ParsePose: token %d %q: non-finite: %w", i, tokens[i], ErrParse)
		}
		vals[i] = v
	}

	var rot [9]float64
	copy(rot[:], vals[:9])
	p, err := kinematics.NewPose(rot, r3.Vec{X: vals[9], Y: vals[10], Z: vals[11]})
	if err != nil {
		return kinematics.Pose{}, fmt.Errorf("ParsePose: %w", err)
	}

	return p, nil
}

// FormatPose encodes p as a pose record accepted by ParsePose.
func FormatPose(p kinematics.Pose) string {
	vals := append(p.R.RawRowMajor(), p.T.X, p.T.Y, p.T.Z)

	return joinFloats(vals)
}

// WriteSolutions writes one line per candidate.
func WriteSolutions(w io.Writer, cs []solver.Candidate) error {
	bw := bufio.NewWriter(w)
	for _, c := range cs {
		if _, err := bw.WriteString(joinFloats(c.Q)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// FormatSolutions is WriteSolutions into a string.
func FormatSolutions(cs []solver.Candidate) string {
	var b strings.Builder
	_ = WriteSolutions(&b, cs)

	return b.String()
}

func joinFloats(vals []float64) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(s, sep)
}
