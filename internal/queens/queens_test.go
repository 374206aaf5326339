package queens

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localSearch/internal/opt"
)

func TestConflicts(t *testing.T) {
	assert.Equal(t, 0, Conflicts([]int{1, 3, 0, 2}))
	assert.Equal(t, 6, Conflicts([]int{0, 0, 0, 0}))
	assert.Equal(t, 6, Conflicts([]int{0, 1, 2, 3}))
}

func TestBoardCountersMatchConflicts(t *testing.T) {
	rng := opt.NewRNG(19)
	for trial := 0; trial < 30; trial++ {
		inst := RandomInstance(4+rng.Intn(40), rng)
		p, err := NewProblem(inst)
		require.NoError(t, err)

		c, err := p.Construct(context.Background(), rng)
		require.NoError(t, err)
		b := c.(*Board)
		require.Equal(t, Conflicts(b.Rows), b.Conflicts)

		for step := 0; step < 200; step++ {
			mv, err := p.Neighbor(b, rng)
			if err != nil {
				require.ErrorIs(t, err, opt.ErrNoMove)
				require.Equal(t, 0, b.Conflicts)
				break
			}
			before := b.Conflicts
			mv.Apply()
			require.Equal(t, Conflicts(b.Rows), b.Conflicts)
			if step%4 == 0 {
				mv.Undo()
				require.Equal(t, before, b.Conflicts)
				require.Equal(t, Conflicts(b.Rows), b.Conflicts)
			}
		}
	}
}

func TestConflictedColumnExistsWheneverConflictsPositive(t *testing.T) {
	rng := opt.NewRNG(23)
	for trial := 0; trial < 200; trial++ {
		b := newBoard(RandomInstance(1+rng.Intn(12), rng).Initial)
		if b.Conflicts == 0 {
			continue
		}
		found := false
		for c := range b.Rows {
			found = found || b.InConflict(c)
		}
		require.True(t, found)
	}
}

func TestMinConflictsMovesToBestRow(t *testing.T) {
	p, err := NewProblem(&Instance{N: 4, Initial: []int{0, 0, 0, 0}})
	require.NoError(t, err)
	b := newBoard([]int{1, 3, 0, 0})
	// only columns 2 and 3 are attacked (same row)
	for i := 0; i < 20; i++ {
		mv, err := p.Neighbor(b, opt.NewRNG(int64(i+1)))
		require.NoError(t, err)
		pm := mv.(*placeMove)
		assert.Contains(t, []int{2, 3}, pm.col)
		mv.Apply()
		assert.LessOrEqual(t, b.Conflicts, 1)
		mv.Undo()
	}
}

func TestPrecheck(t *testing.T) {
	for _, n := range []int{2, 3} {
		inst, err := NewInstance(make([]int, n))
		require.NoError(t, err)
		p, err := NewProblem(inst)
		require.NoError(t, err)
		require.ErrorIs(t, p.Precheck(), opt.ErrNecessaryCondition)
	}
}

func TestEngineSolvesFourQueensFromWorstCase(t *testing.T) {
	inst, err := NewInstance([]int{0, 0, 0, 0})
	require.NoError(t, err)
	p, err := NewProblem(inst)
	require.NoError(t, err)

	for seed := int64(1); seed <= 20; seed++ {
		cfg := opt.DefaultConfig()
		cfg.Acceptance = opt.AcceptWalk
		cfg.MaxRestarts = 40
		cfg.MaxIterations = 300000
		cfg.StagnationLimit = 0
		cfg.Seed = seed

		eng, err := opt.New(cfg, nil, nil)
		require.NoError(t, err)
		res, err := eng.Solve(context.Background(), p)
		require.NoError(t, err)
		require.Equal(t, 0.0, res.Objective, "seed %d", seed)
		require.Equal(t, opt.StopSolved, res.Stopped)
		assert.Equal(t, 0, Conflicts(res.Best.(*Board).Rows))
	}
}

func TestReadText(t *testing.T) {
	inst, err := ReadText(strings.NewReader("4\n2 4\n1 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 0, 2}, inst.Initial)

	_, err = ReadText(strings.NewReader("4\n2 4 1\n"))
	require.ErrorIs(t, err, opt.ErrInstanceInvalid)
	_, err = ReadText(strings.NewReader("4\n2 4 1 5\n"))
	require.ErrorIs(t, err, opt.ErrInstanceInvalid)
}

func TestParseJSON(t *testing.T) {
	inst, err := ParseJSON([]byte(`{"n": 4, "rows": [2, 4, 1, 3]}`))
	require.NoError(t, err)
	assert.Equal(t, 4, inst.N)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, newBoard([]int{1, 3, 0, 2})))
	assert.Contains(t, buf.String(), "Column 1 -> Row 2\n")
	assert.Contains(t, buf.String(), "Conflicts: 0\n")
}

func TestReadTextRejectsOversizedCount(t *testing.T) {
	for _, in := range []string{
		"9223372036854775807\n2 4 1 3\n",
		"4611686018427387904\n2 4 1 3\n",
	} {
		_, err := ReadText(strings.NewReader(in))
		require.ErrorIs(t, err, opt.ErrInstanceInvalid, in)
	}
}
