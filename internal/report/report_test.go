package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localSearch/internal/opt"
)

func TestNewHeaderStatus(t *testing.T) {
	res := opt.Result{Problem: "queens", Objective: 0, Restarts: 3}

	h := NewHeader(res, opt.Minimize, nil)
	assert.Equal(t, StatusOK, h.Status)
	assert.NotEqual(t, uuid.Nil, h.RunID)
	assert.Empty(t, h.Reason)

	h = NewHeader(res, opt.Minimize, fmt.Errorf("%w: n=3", opt.ErrNecessaryCondition))
	assert.Equal(t, StatusInfeasible, h.Status)
	assert.Contains(t, h.Reason, "n=3")

	h = NewHeader(res, opt.Minimize, fmt.Errorf("queens: %w", opt.ErrNoSolution))
	assert.Equal(t, StatusNoSolution, h.Status)
}

func TestWriteOK(t *testing.T) {
	h := Header{
		RunID:      uuid.MustParse("5f0c6a1e-8a1b-4c59-9a55-3b1de3f0a9d2"),
		Problem:    "knapsack",
		Status:     StatusOK,
		Sense:      opt.Maximize,
		Objective:  1234567,
		Restarts:   30,
		Skipped:    2,
		Iterations: 6000000,
		Stopped:    opt.StopStagnated,
		Duration:   1500 * time.Millisecond,
	}
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf))
	assert.Equal(t, "Run: 5f0c6a1e-8a1b-4c59-9a55-3b1de3f0a9d2\n"+
		"Problem: Knapsack\n"+
		"Status: OK\n"+
		"Objective: 1,234,567 (max)\n"+
		"Restarts: 30 (skipped 2)\n"+
		"Iterations: 6,000,000\n"+
		"Stopped: stagnated\n"+
		"Duration: 1.5s\n\n", buf.String())
}

func TestWriteFractionalObjective(t *testing.T) {
	h := Header{Problem: "netdesign", Status: StatusOK, Objective: 2.5}
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf))
	assert.Contains(t, buf.String(), "Objective: 2.500000 (min)\n")
}

func TestWriteNoSolutionMarker(t *testing.T) {
	h := Header{Problem: "assign", Status: StatusNoSolution, Reason: "assign: no feasible solution found", Restarts: 40, Skipped: 40}
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf))
	out := buf.String()
	assert.NotContains(t, out, "Objective:")
	assert.Contains(t, out, "\nNO SOLUTION\nReason: assign: no feasible solution found\n")
	assert.Contains(t, out, "Restarts: 40 (skipped 40)\n")
}
