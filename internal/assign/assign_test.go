package assign

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localSearch/internal/opt"
)

// two workers, three modules; worker 1 is cheapest for all but can hold only two.
func tightInstance(t *testing.T) *Instance {
	t.Helper()
	inst, err := NewInstance(
		[][]int{{1, 1, 1}, {5, 3, 4}},
		[][]int{{2, 2, 2}, {2, 2, 2}},
		[]int{4, 6},
	)
	require.NoError(t, err)
	return inst
}

func TestInstanceValidate(t *testing.T) {
	_, err := NewInstance([][]int{{1, 2}}, [][]int{{1}}, []int{3})
	require.ErrorIs(t, err, opt.ErrInstanceInvalid)

	_, err = NewInstance([][]int{{1}}, [][]int{{1}}, []int{1, 2})
	require.ErrorIs(t, err, opt.ErrInstanceInvalid)

	_, err = NewInstance([][]int{{1}}, [][]int{{-1}}, []int{1})
	require.ErrorIs(t, err, opt.ErrInstanceInvalid)
}

func TestRepairPicksCheapestReassignment(t *testing.T) {
	p, err := NewProblem(tightInstance(t))
	require.NoError(t, err)

	s, err := p.NewSolution(p.Cheapest())
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 0}, s.Assign)
	require.False(t, s.Feasible())

	require.NoError(t, p.Repair(s))
	// module 2 has the smallest cost delta (3-1)
	assert.Equal(t, []int{0, 1, 0}, s.Assign)
	assert.Equal(t, []int{4, 2}, s.Loads)
	assert.Equal(t, 5, s.Total)
}

func TestRepairIsIdempotent(t *testing.T) {
	p, err := NewProblem(tightInstance(t))
	require.NoError(t, err)

	s, err := p.NewSolution([]int{1, 0, 0})
	require.NoError(t, err)
	require.True(t, s.Feasible())
	require.NoError(t, p.Repair(s))
	assert.Equal(t, []int{1, 0, 0}, s.Assign)
}

func TestRepairUnrepairable(t *testing.T) {
	inst, err := NewInstance(
		[][]int{{1, 1}, {2, 2}},
		[][]int{{3, 3}, {3, 3}},
		[]int{3, 2},
	)
	require.NoError(t, err)
	p, err := NewProblem(inst)
	require.NoError(t, err)

	s, err := p.NewSolution([]int{0, 0})
	require.NoError(t, err)
	require.ErrorIs(t, p.Repair(s), opt.ErrUnrepairable)
}

func TestPrecheck(t *testing.T) {
	inst, err := NewInstance([][]int{{1}, {1}}, [][]int{{5}, {6}}, []int{4, 4})
	require.NoError(t, err)
	p, err := NewProblem(inst)
	require.NoError(t, err)
	require.ErrorIs(t, p.Precheck(), opt.ErrNecessaryCondition)
}

func TestConstructFeasibleOrUnrepairable(t *testing.T) {
	rng := opt.NewRNG(17)
	for k := 0; k < 40; k++ {
		inst := RandomInstance(2+rng.Intn(6), 4+rng.Intn(30), 20, rng)
		p, err := NewProblem(inst)
		require.NoError(t, err)

		c, err := p.Construct(context.Background(), rng)
		if err != nil {
			require.True(t, errors.Is(err, opt.ErrUnrepairable))
			continue
		}
		s := c.(*Solution)
		require.True(t, Feasible(inst, s.Assign))

		total, err := Cost(inst, s.Assign)
		require.NoError(t, err)
		assert.Equal(t, total, s.Total)
		load, err := Loads(inst, s.Assign)
		require.NoError(t, err)
		assert.Equal(t, load, s.Loads)
	}
}

func TestNeighborHasNoMoves(t *testing.T) {
	p, err := NewProblem(tightInstance(t))
	require.NoError(t, err)
	c, err := p.Construct(context.Background(), opt.NewRNG(1))
	require.NoError(t, err)
	_, err = p.Neighbor(c, opt.NewRNG(1))
	require.ErrorIs(t, err, opt.ErrNoMove)
}

func TestEngineUsesRestarts(t *testing.T) {
	p, err := NewProblem(tightInstance(t))
	require.NoError(t, err)

	cfg := opt.DefaultConfig()
	cfg.MaxRestarts = 10
	cfg.MaxIterations = 1
	cfg.StagnationLimit = 0

	eng, err := opt.New(cfg, nil, nil)
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Restarts)
	assert.Equal(t, 0, res.Iterations)
	assert.Equal(t, opt.StopNoMove, res.Stopped)
	assert.Equal(t, 5.0, res.Objective)
}

func TestReadText(t *testing.T) {
	in := "2 3\n1 1 1\n5 3 4\n2 2 2\n2 2 2\n4 6\n"
	inst, err := ReadText(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, inst.Workers)
	assert.Equal(t, 3, inst.Modules)
	assert.Equal(t, []int{4, 6}, inst.Capacity)

	_, err = ReadText(strings.NewReader("2 3\n1 1 1\n"))
	require.ErrorIs(t, err, opt.ErrInstanceInvalid)
}

func TestParseJSON(t *testing.T) {
	inst, err := ParseJSON([]byte(`{"cost": [[1,1,1],[5,3,4]], "hours": [[2,2,2],[2,2,2]], "capacity": [4,6]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, inst.Modules)
}

func TestWriteReport(t *testing.T) {
	p, err := NewProblem(tightInstance(t))
	require.NoError(t, err)
	s, err := p.NewSolution([]int{0, 1, 0})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "Module 2 -> Worker 2\n")
	assert.Contains(t, out, "Total cost: 5")
	assert.Contains(t, out, "W1: 4 / 4")
}

func TestReadTextRejectsOversizedCount(t *testing.T) {
	for _, in := range []string{
		"4611686018427387904 3\n1 1 1\n5 3 4\n2 2 2\n2 2 2\n4 6\n",
		"2 4611686018427387904\n1 1 1\n5 3 4\n2 2 2\n2 2 2\n4 6\n",
		"9223372036854775807 9223372036854775807\n1\n",
	} {
		_, err := ReadText(strings.NewReader(in))
		require.ErrorIs(t, err, opt.ErrInstanceInvalid, in)
	}
}
