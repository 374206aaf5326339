package hamcycle

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"localSearch/internal/opt"
)

// Options bound the sampling done during construction and search.
type Options struct {
	TriangleTries int
	InsertSamples int
	KickEvery     int
	KickTries     int
	MoveTries     int
}

func DefaultOptions() Options {
	return Options{
		TriangleTries: 20000,
		InsertSamples: 100,
		KickEvery:     10,
		KickTries:     800,
		MoveTries:     1000,
	}
}

func (o Options) Validate() error {
	if o.TriangleTries <= 0 || o.InsertSamples <= 0 || o.KickEvery <= 0 || o.KickTries < 0 || o.MoveTries <= 0 {
		return fmt.Errorf("invalid hamcycle options %+v", o)
	}
	return nil
}

// Tour is a closed vertex order with its cached cost.
type Tour struct {
	inst  *Instance
	Order []int
	Cost  int
}

func (t *Tour) Objective() float64 { return float64(t.Cost) }
func (t *Tour) Feasible() bool     { return len(t.Order) == t.inst.N }

func (t *Tour) Clone() opt.Candidate {
	c := *t
	c.Order = slices.Clone(t.Order)
	return &c
}

type Problem struct {
	inst *Instance
	opts Options
}

func NewProblem(inst *Instance, opts Options) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Problem{inst: inst, opts: opts}, nil
}

func (p *Problem) Name() string        { return "hamcycle" }
func (p *Problem) Sense() opt.Sense    { return opt.Minimize }
func (p *Problem) Instance() *Instance { return p.inst }

// Precheck rejects graphs that cannot hold a Hamiltonian cycle:
// fewer than 3 vertices, a vertex of degree < 2, or a disconnected graph.
func (p *Problem) Precheck() error {
	n := p.inst.N
	if n < 3 {
		return fmt.Errorf("%w: a cycle needs at least 3 vertices (got %d)", opt.ErrNecessaryCondition, n)
	}
	var low []int
	for v := 0; v < n; v++ {
		if len(p.inst.Adj(v)) < 2 {
			low = append(low, v+1)
		}
	}
	if len(low) > 0 {
		return fmt.Errorf("%w: %d vertices with degree < 2 (e.g. %v)", opt.ErrNecessaryCondition, len(low), low[:min(10, len(low))])
	}

	seen := make([]bool, n)
	seen[0] = true
	queue := []int{0}
	reached := 1
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range p.inst.Adj(u) {
			if !seen[v] {
				seen[v] = true
				reached++
				queue = append(queue, v)
			}
		}
	}
	if reached != n {
		return fmt.Errorf("%w: graph is disconnected", opt.ErrNecessaryCondition)
	}
	return nil
}

// Construct grows a cycle from a random triangle by cheapest insertion.
// Stuck insertions trigger 2-opt kicks; too many failures abandon the attempt.
func (p *Problem) Construct(ctx context.Context, rng *rand.Rand) (opt.Candidate, error) {
	n := p.inst.N
	tour := p.triangle(rng)
	if tour == nil {
		return nil, fmt.Errorf("%w: no triangle found in %d tries", opt.ErrNoFeasibleStart, p.opts.TriangleTries)
	}

	inTour := make([]bool, n)
	for _, v := range tour {
		inTour[v] = true
	}
	queue := make([]int, 0, n-3)
	for v := 0; v < n; v++ {
		if !inTour[v] {
			queue = append(queue, v)
		}
	}
	rng.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })

	maxFailures := max(40, n/20)
	failures := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", opt.ErrNoFeasibleStart, err)
		}
		x := queue[0]
		var ok bool
		if tour, ok = p.insert(tour, x, rng); ok {
			queue = queue[1:]
			failures = 0
			continue
		}
		failures++
		if failures%p.opts.KickEvery == 0 {
			p.kick(tour, rng)
		}
		if failures > maxFailures {
			return nil, fmt.Errorf("%w: %d vertices left uninserted", opt.ErrNoFeasibleStart, len(queue))
		}
		queue = append(queue[1:], x)
	}

	cost, err := TourCost(p.inst, tour)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opt.ErrNoFeasibleStart, err)
	}
	return &Tour{inst: p.inst, Order: tour, Cost: cost}, nil
}

func (p *Problem) triangle(rng *rand.Rand) []int {
	n := p.inst.N
	for try := 0; try < p.opts.TriangleTries; try++ {
		a := rng.Intn(n)
		adjA := p.inst.Adj(a)
		if len(adjA) == 0 {
			continue
		}
		b := adjA[rng.Intn(len(adjA))]
		adjB := p.inst.Adj(b)
		if len(adjB) == 0 {
			continue
		}
		c := adjB[rng.Intn(len(adjB))]
		if c != a && p.inst.Edge(c, a) {
			return []int{a, b, c}
		}
	}
	return nil
}

// insert places x between the pair (tour[i], tour[i+1]) with the lowest
// added cost. A bounded random sample is tried first, then a full scan.
func (p *Problem) insert(tour []int, x int, rng *rand.Rand) ([]int, bool) {
	m := len(tour)
	bestPos, bestDelta := -1, 0
	try := func(i int) {
		a, b := tour[i], tour[(i+1)%m]
		if !p.inst.Edge(a, x) || !p.inst.Edge(x, b) {
			return
		}
		delta := p.inst.Weight(a, x) + p.inst.Weight(x, b) - p.inst.Weight(a, b)
		if bestPos < 0 || delta < bestDelta {
			bestPos, bestDelta = i+1, delta
		}
	}

	for s := 0; s < min(p.opts.InsertSamples, m); s++ {
		try(rng.Intn(m))
	}
	if bestPos < 0 {
		for i := 0; i < m; i++ {
			try(i)
		}
	}
	if bestPos < 0 {
		return tour, false
	}
	return slices.Insert(tour, bestPos, x), true
}

// kick applies one random edge-preserving 2-opt to change adjacency.
func (p *Problem) kick(tour []int, rng *rand.Rand) bool {
	for try := 0; try < p.opts.KickTries; try++ {
		if i, k, ok := p.sampleTwoOpt(tour, rng); ok {
			reverse(tour, i, k)
			return true
		}
	}
	return false
}

// sampleTwoOpt draws i<k, k-i>=2; the move is valid when the new edges
// (tour[i-1], tour[k]) and (tour[i], tour[k+1]) both exist.
func (p *Problem) sampleTwoOpt(tour []int, rng *rand.Rand) (int, int, bool) {
	n := len(tour)
	i, k := rng.Intn(n), rng.Intn(n)
	if i > k {
		i, k = k, i
	}
	if k-i < 2 || (i == 0 && k == n-1) {
		return 0, 0, false
	}
	a, b := tour[(i-1+n)%n], tour[i]
	c, d := tour[k], tour[(k+1)%n]
	if !p.inst.Edge(a, c) || !p.inst.Edge(b, d) {
		return 0, 0, false
	}
	return i, k, true
}

// Delta2Opt is the cost change of reversing tour[i..k].
func (p *Problem) Delta2Opt(tour []int, i, k int) int {
	n := len(tour)
	a, b := tour[(i-1+n)%n], tour[i]
	c, d := tour[k], tour[(k+1)%n]
	return p.inst.Weight(a, c) + p.inst.Weight(b, d) - p.inst.Weight(a, b) - p.inst.Weight(c, d)
}

// Neighbor samples a valid 2-opt up to MoveTries times. When the budget
// runs out it returns a no-op so the stagnation counter still advances.
func (p *Problem) Neighbor(c opt.Candidate, rng *rand.Rand) (opt.Move, error) {
	t := c.(*Tour)
	for try := 0; try < p.opts.MoveTries; try++ {
		if i, k, ok := p.sampleTwoOpt(t.Order, rng); ok {
			return &twoOptMove{t: t, i: i, k: k, delta: p.Delta2Opt(t.Order, i, k)}, nil
		}
	}
	return opt.NopMove{}, nil
}

type twoOptMove struct {
	t     *Tour
	i, k  int
	delta int
}

func (m *twoOptMove) Apply() {
	reverse(m.t.Order, m.i, m.k)
	m.t.Cost += m.delta
}

func (m *twoOptMove) Undo() {
	reverse(m.t.Order, m.i, m.k)
	m.t.Cost -= m.delta
}
