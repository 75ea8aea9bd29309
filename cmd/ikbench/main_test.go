// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/poekin/robots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	for _, name := range robots.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "q6=0.5236")
}

func TestFKThenSolve(t *testing.T) {
	pose, err := execute(t, "fk", "--robot", robots.IRB6640, "0.1,0.2,0.3,0.4,0.5,0.6")
	require.NoError(t, err)
	pose = strings.TrimSpace(pose)
	require.Len(t, strings.Split(pose, ","), 12)

	out, err := execute(t, "solve", "--robot", robots.IRB6640, "--", pose)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.NotEmpty(t, lines)
	for _, l := range lines {
		assert.Len(t, strings.Split(l, ","), 6)
	}
}

func TestSolve_Errors(t *testing.T) {
	_, err := execute(t, "solve", "--robot", robots.UR5, "1,0,0,0,1,0,0,0,1,0,0,0")
	require.ErrorIs(t, err, robots.ErrNoSolver)

	_, err = execute(t, "solve", "--robot", "nope", "1")
	require.ErrorIs(t, err, robots.ErrUnknownRobot)
}

func TestSingleRobotCommands_RejectAll(t *testing.T) {
	_, err := execute(t, "fk", "0,0,0,0,0,0")
	require.ErrorIs(t, err, errSingleRobot)
	require.ErrorContains(t, err, "fk")

	_, err = execute(t, "solve", "--robot", allRobots, "1,0,0,0,1,0,0,0,1,0,0,0")
	require.ErrorIs(t, err, errSingleRobot)
}

func TestRun_WritesMetrics(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "ikbench.prom")
	out, err := execute(t, "run", "--trials", "50", "--workers", "2", "--metrics-file", metrics)
	require.NoError(t, err)
	assert.Contains(t, out, robots.IRB6640+": trials=50")

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `poekin_trials_total{robot="IRB 6640"} 50`)
}

func TestRun_NoSolver(t *testing.T) {
	_, err := execute(t, "run", "--robot", robots.UR5, "--trials", "1")
	require.ErrorIs(t, err, errNoneRunnable)
}
