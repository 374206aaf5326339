package opt

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line is a toy problem: walk an integer towards target.
type line struct {
	target    int
	span      int
	sense     Sense
	precheck  error
	noStart   bool
	evenOnly  bool
	stepDelay time.Duration
}

type point struct {
	x, target int
	evenOnly  bool
	sense     Sense
}

func (p *point) Objective() float64 {
	d := p.x - p.target
	if d < 0 {
		d = -d
	}
	if p.sense == Maximize {
		return float64(-d)
	}
	return float64(d)
}

func (p *point) Feasible() bool { return !p.evenOnly || p.x%2 == 0 }

func (p *point) Clone() Candidate {
	c := *p
	return &c
}

type stepMove struct {
	p *point
	d int
}

func (m stepMove) Apply() { m.p.x += m.d }
func (m stepMove) Undo()  { m.p.x -= m.d }

func (l *line) Name() string    { return "line" }
func (l *line) Sense() Sense    { return l.sense }
func (l *line) Precheck() error { return l.precheck }

func (l *line) Construct(_ context.Context, rng *rand.Rand) (Candidate, error) {
	if l.noStart {
		return nil, fmt.Errorf("%w: toy", ErrNoFeasibleStart)
	}
	return &point{x: rng.Intn(l.span), target: l.target, evenOnly: l.evenOnly, sense: l.sense}, nil
}

func (l *line) Neighbor(c Candidate, rng *rand.Rand) (Move, error) {
	if l.stepDelay > 0 {
		time.Sleep(l.stepDelay)
	}
	return stepMove{p: c.(*point), d: 1 - 2*rng.Intn(2)}, nil
}

type solvableLine struct{ *line }

func (s solvableLine) Solved(c Candidate) bool { return c.(*point).x == s.target }

type recorder struct {
	restarts []RestartStats
	improved []float64
}

func (r *recorder) RestartDone(_ string, st RestartStats) { r.restarts = append(r.restarts, st) }
func (r *recorder) Improved(_ string, obj float64)        { r.improved = append(r.improved, obj) }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxRestarts = 5
	cfg.MaxIterations = 2000
	cfg.StagnationLimit = 0
	cfg.Seed = 42
	return cfg
}

func TestSolveReachesTargetAndStops(t *testing.T) {
	p := solvableLine{&line{target: 50, span: 100}}
	cfg := testConfig()
	eng, err := New(cfg, nil, nil)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Objective)
	assert.Equal(t, StopSolved, res.Stopped)
	assert.Equal(t, 1, res.Restarts, "a solved restart ends the run")
	assert.Equal(t, 50, res.Best.(*point).x)
}

func TestObserverSeesMonotonicBest(t *testing.T) {
	for _, sense := range []Sense{Minimize, Maximize} {
		p := &line{target: 500, span: 1000, sense: sense}
		cfg := testConfig()
		cfg.MaxRestarts = 8
		cfg.MaxIterations = 30
		rec := &recorder{}
		eng, err := New(cfg, nil, rec)
		require.NoError(t, err)

		res, err := eng.Solve(context.Background(), p)
		require.NoError(t, err)
		require.Len(t, rec.restarts, 8)
		require.NotEmpty(t, rec.improved)
		for i := 1; i < len(rec.improved); i++ {
			assert.True(t, sense.Better(rec.improved[i], rec.improved[i-1]), "%s: %v", sense, rec.improved)
		}
		assert.Equal(t, rec.improved[len(rec.improved)-1], res.Objective)
	}
}

func TestBestIsAlwaysFeasible(t *testing.T) {
	p := &line{target: 51, span: 100, evenOnly: true}
	// greedy passes through 50 on its way to the infeasible optimum 51
	eng, err := New(testConfig(), nil, nil)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, res.Best.Feasible())
	assert.Equal(t, 1.0, res.Objective)
}

func TestTimeLimitTerminates(t *testing.T) {
	p := &line{target: 1 << 30, span: 10, stepDelay: time.Millisecond}
	cfg := testConfig()
	cfg.MaxRestarts = 1000
	cfg.MaxIterations = 0
	cfg.TimeLimitS = 0.2
	eng, err := New(cfg, nil, nil)
	require.NoError(t, err)

	start := time.Now()
	res, err := eng.Solve(context.Background(), p)
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Less(t, elapsed, 700*time.Millisecond)
	assert.Equal(t, StopDeadline, res.Stopped)
	assert.Less(t, res.Restarts, 1000)
}

func TestAllRestartsSkipped(t *testing.T) {
	p := &line{span: 10, noStart: true}
	cfg := testConfig()
	cfg.ConstructAttempts = 3
	rec := &recorder{}
	eng, err := New(cfg, nil, rec)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background(), p)
	require.ErrorIs(t, err, ErrNoSolution)
	assert.False(t, Fatal(err))
	assert.Nil(t, res.Best)
	assert.Equal(t, cfg.MaxRestarts, res.Skipped)
	assert.Empty(t, rec.improved)
	for _, st := range rec.restarts {
		assert.Equal(t, StopSkipped, st.Stopped)
	}
}

func TestPrecheckIsFatal(t *testing.T) {
	p := &line{span: 10, precheck: fmt.Errorf("%w: toy bound", ErrNecessaryCondition)}
	rec := &recorder{}
	eng, err := New(testConfig(), nil, rec)
	require.NoError(t, err)

	_, err = eng.Solve(context.Background(), p)
	require.ErrorIs(t, err, ErrNecessaryCondition)
	assert.True(t, Fatal(err))
	assert.Empty(t, rec.restarts)
}

func TestParallelMatchesSequential(t *testing.T) {
	p := &line{target: 5000, span: 10000}
	cfg := testConfig()
	cfg.MaxRestarts = 12
	cfg.MaxIterations = 300

	seq, err := New(cfg, nil, nil)
	require.NoError(t, err)
	want, err := seq.Solve(context.Background(), p)
	require.NoError(t, err)

	cfg.Workers = 4
	par, err := New(cfg, nil, nil)
	require.NoError(t, err)
	got, err := par.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, want.Objective, got.Objective)
	assert.Equal(t, want.Best.(*point).x, got.Best.(*point).x)
	assert.Equal(t, want.Iterations, got.Iterations)
	assert.Equal(t, want.Restarts, got.Restarts)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng, err := New(testConfig(), nil, nil)
	require.NoError(t, err)

	res, err := eng.Solve(ctx, &line{span: 10})
	require.ErrorIs(t, err, ErrNoSolution)
	assert.Equal(t, StopContext, res.Stopped)
	assert.Zero(t, res.Restarts)
}

type stuckLine struct{ *line }

func (stuckLine) Neighbor(Candidate, *rand.Rand) (Move, error) { return nil, ErrNoMove }

func TestNoMoveEndsRestart(t *testing.T) {
	cfg := testConfig()
	rec := &recorder{}
	eng, err := New(cfg, nil, rec)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background(), stuckLine{&line{target: 3, span: 10}})
	require.NoError(t, err)
	assert.Equal(t, StopNoMove, res.Stopped)
	assert.Zero(t, res.Iterations)
	require.Len(t, rec.restarts, cfg.MaxRestarts)
}

func TestNeighborErrorOtherThanNoMove(t *testing.T) {
	p := errLine{&line{span: 10}}
	eng, err := New(testConfig(), nil, nil)
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), p)
	require.NoError(t, err, "the constructed start is still a solution")
	assert.Equal(t, StopNoMove, res.Stopped)
}

type errLine struct{ *line }

func (errLine) Neighbor(Candidate, *rand.Rand) (Move, error) { return nil, errors.New("boom") }

func TestStagnationStopsRestart(t *testing.T) {
	// greedy at the optimum never improves again
	p := &line{target: 0, span: 1}
	cfg := testConfig()
	cfg.MaxIterations = 0
	cfg.StagnationLimit = 50
	rec := &recorder{}
	eng, err := New(cfg, nil, rec)
	require.NoError(t, err)

	_, err = eng.Solve(context.Background(), p)
	require.NoError(t, err)
	for _, st := range rec.restarts {
		assert.Equal(t, StopStagnated, st.Stopped)
		assert.Equal(t, 51, st.Iterations)
	}
}

// timeline records construction starts and observer events in one sequence.
type timeline struct {
	events []string
}

func (tl *timeline) RestartDone(_ string, st RestartStats) {
	tl.events = append(tl.events, fmt.Sprintf("done %d", st.Index))
}

func (tl *timeline) Improved(string, float64) {
	tl.events = append(tl.events, "improved")
}

type tracedLine struct {
	*line
	tl *timeline
}

func (l tracedLine) Construct(ctx context.Context, rng *rand.Rand) (Candidate, error) {
	l.tl.events = append(l.tl.events, "start")
	return l.line.Construct(ctx, rng)
}

func TestObserverReportsEachRestartAsItEnds(t *testing.T) {
	tl := &timeline{}
	p := tracedLine{line: &line{target: 0, span: 1}, tl: tl}
	cfg := testConfig()
	cfg.MaxRestarts = 3
	cfg.MaxIterations = 10
	eng, err := New(cfg, nil, tl)
	require.NoError(t, err)

	_, err = eng.Solve(context.Background(), p)
	require.NoError(t, err)
	// every restart lands on the optimum 0, so only the first improves the gauge
	assert.Equal(t, []string{
		"start", "done 0", "improved",
		"start", "done 1",
		"start", "done 2",
	}, tl.events)
}

func TestObserverParallelSeesEveryRestart(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig()
	cfg.MaxRestarts = 10
	cfg.MaxIterations = 100
	cfg.Workers = 3
	eng, err := New(cfg, nil, rec)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background(), &line{target: 5000, span: 10000})
	require.NoError(t, err)
	require.Len(t, rec.restarts, 10)
	require.NotEmpty(t, rec.improved)
	assert.Equal(t, res.Objective, rec.improved[len(rec.improved)-1])
}
