package netdesign

import (
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"slices"

	"localSearch/internal/opt"
	"localSearch/internal/ts"
)

type Options struct {
	// MoveTries bounds both the removable-edge and the addable-pair sampling.
	MoveTries int
	Tabu      ts.Config
}

func DefaultOptions() Options {
	return Options{MoveTries: 2000, Tabu: ts.DefaultConfig()}
}

func (o Options) Validate() error {
	if o.MoveTries <= 0 {
		return fmt.Errorf("MoveTries must be > 0 (got %d)", o.MoveTries)
	}
	return o.Tabu.Validate()
}

// Design is a selected edge set with positions, degrees and cached length.
// It also carries the restart's tabu list of recently removed pairs.
type Design struct {
	inst  *Instance
	Edges []Edge
	Deg   []int
	Cost  float64

	pos  map[Edge]int
	tabu *ts.List
	step int
}

func (d *Design) Objective() float64 { return d.Cost }

func (d *Design) Feasible() bool {
	if len(d.Edges) != d.inst.M {
		return false
	}
	for _, g := range d.Deg {
		if g < 1 || g > d.inst.K {
			return false
		}
	}
	return true
}

func (d *Design) Clone() opt.Candidate {
	c := *d
	c.Edges = slices.Clone(d.Edges)
	c.Deg = slices.Clone(d.Deg)
	c.pos = make(map[Edge]int, len(d.pos))
	for e, i := range d.pos {
		c.pos[e] = i
	}
	c.tabu = d.tabu.Clone()
	return &c
}

// Has reports whether the pair (a,b) is selected.
func (d *Design) Has(a, b int) bool {
	_, ok := d.pos[NewEdge(a, b)]
	return ok
}

// Removable holds when dropping e keeps both endpoints connected.
func (d *Design) Removable(e Edge) bool { return d.Deg[e.A] > 1 && d.Deg[e.B] > 1 }

func (d *Design) add(e Edge) {
	d.pos[e] = len(d.Edges)
	d.Edges = append(d.Edges, e)
	d.Deg[e.A]++
	d.Deg[e.B]++
}

// removeAt swap-removes Edges[i].
func (d *Design) removeAt(i int) Edge {
	e := d.Edges[i]
	last := len(d.Edges) - 1
	if i != last {
		d.Edges[i] = d.Edges[last]
		d.pos[d.Edges[i]] = i
	}
	d.Edges = d.Edges[:last]
	delete(d.pos, e)
	d.Deg[e.A]--
	d.Deg[e.B]--
	return e
}

// restoreAt puts e back at index i, moving the current occupant to the end.
func (d *Design) restoreAt(i int, e Edge) {
	if i < len(d.Edges) {
		moved := d.Edges[i]
		d.pos[moved] = len(d.Edges)
		d.Edges = append(d.Edges, moved)
		d.Edges[i] = e
	} else {
		d.Edges = append(d.Edges, e)
	}
	d.pos[e] = i
	d.Deg[e.A]++
	d.Deg[e.B]++
}

type candidate struct {
	e Edge
	w float64
}

type Problem struct {
	inst *Instance
	opts Options
	// byLength lists every pair by ascending length, ties by (A,B).
	byLength []candidate
}

func NewProblem(inst *Instance, opts Options) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := inst.N
	byLength := make([]candidate, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			byLength = append(byLength, candidate{e: Edge{A: i, B: j}, w: inst.Dist(i, j)})
		}
	}
	slices.SortFunc(byLength, func(x, y candidate) int {
		if c := cmp.Compare(x.w, y.w); c != 0 {
			return c
		}
		if c := cmp.Compare(x.e.A, y.e.A); c != 0 {
			return c
		}
		return cmp.Compare(x.e.B, y.e.B)
	})
	return &Problem{inst: inst, opts: opts, byLength: byLength}, nil
}

func (p *Problem) Name() string        { return "netdesign" }
func (p *Problem) Sense() opt.Sense    { return opt.Minimize }
func (p *Problem) Instance() *Instance { return p.inst }

// Precheck applies the degree-sum bounds: every vertex needs one edge, so
// M >= ceil(N/2); no vertex exceeds K, so M <= floor(N*K/2).
func (p *Problem) Precheck() error {
	n, m, k := p.inst.N, p.inst.M, p.inst.K
	switch {
	case k < 1:
		return fmt.Errorf("%w: K must be >= 1 (got %d)", opt.ErrNecessaryCondition, k)
	case n < 2:
		return fmt.Errorf("%w: need at least 2 points (got %d)", opt.ErrNecessaryCondition, n)
	case m < (n+1)/2:
		return fmt.Errorf("%w: M=%d too small, need M >= ceil(N/2) = %d", opt.ErrNecessaryCondition, m, (n+1)/2)
	case m > n*k/2:
		return fmt.Errorf("%w: M=%d too large, need M <= floor(N*K/2) = %d", opt.ErrNecessaryCondition, m, n*k/2)
	case m > n*(n-1)/2:
		return fmt.Errorf("%w: M=%d exceeds the %d available pairs", opt.ErrNecessaryCondition, m, n*(n-1)/2)
	}
	return nil
}

func (p *Problem) newDesign() *Design {
	return &Design{
		inst:  p.inst,
		Edges: make([]Edge, 0, p.inst.M),
		Deg:   make([]int, p.inst.N),
		pos:   make(map[Edge]int, p.inst.M),
		tabu:  ts.New(p.opts.Tabu),
	}
}

// NewDesign builds a design from an explicit edge list.
func (p *Problem) NewDesign(edges []Edge) (*Design, error) {
	if err := CheckEdges(p.inst, edges); err != nil {
		return nil, err
	}
	d := p.newDesign()
	for _, e := range edges {
		d.add(e)
	}
	d.Cost = EdgeCost(p.inst, d.Edges)
	return d, nil
}

func (p *Problem) addable(d *Design, e Edge) bool {
	return e.A != e.B && d.Deg[e.A] < p.inst.K && d.Deg[e.B] < p.inst.K && !d.Has(e.A, e.B)
}

// Construct covers zero-degree vertices with the shortest pairs first,
// then links each still isolated vertex (random order) to its nearest
// partner with spare degree, then tops up with the shortest addable pairs.
func (p *Problem) Construct(ctx context.Context, rng *rand.Rand) (opt.Candidate, error) {
	n, m, k := p.inst.N, p.inst.M, p.inst.K
	d := p.newDesign()

	zero := n
	for _, c := range p.byLength {
		if zero == 0 || len(d.Edges) >= m {
			break
		}
		e := c.e
		if (d.Deg[e.A] == 0 || d.Deg[e.B] == 0) && d.Deg[e.A] < k && d.Deg[e.B] < k {
			if d.Deg[e.A] == 0 {
				zero--
			}
			if d.Deg[e.B] == 0 {
				zero--
			}
			d.add(e)
		}
	}

	if zero > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", opt.ErrNoFeasibleStart, err)
		}
		for _, v := range rng.Perm(n) {
			if d.Deg[v] != 0 {
				continue
			}
			best := -1
			for u := 0; u < n; u++ {
				if u == v || d.Deg[u] >= k || d.Has(u, v) {
					continue
				}
				if best < 0 || p.inst.Dist(v, u) < p.inst.Dist(v, best) {
					best = u
				}
			}
			if best < 0 {
				return nil, fmt.Errorf("%w: vertex %d has no partner with spare degree", opt.ErrNoFeasibleStart, v+1)
			}
			d.add(NewEdge(v, best))
		}
	}

	if len(d.Edges) > m {
		return nil, fmt.Errorf("%w: covering used %d edges, more than M=%d", opt.ErrNoFeasibleStart, len(d.Edges), m)
	}
	for _, c := range p.byLength {
		if len(d.Edges) == m {
			break
		}
		if p.addable(d, c.e) {
			d.add(c.e)
		}
	}

	d.Cost = EdgeCost(p.inst, d.Edges)
	if !d.Feasible() {
		return nil, fmt.Errorf("%w: built %d of %d edges", opt.ErrNoFeasibleStart, len(d.Edges), m)
	}
	return d, nil
}

// Neighbor swaps one removable edge for a random addable pair that differs
// from it and is not tabu.
func (p *Problem) Neighbor(c opt.Candidate, rng *rand.Rand) (opt.Move, error) {
	d := c.(*Design)
	if len(d.Edges) == 0 {
		return nil, opt.ErrNoMove
	}
	n := p.inst.N
	d.step++

	for try := 0; try < p.opts.MoveTries; try++ {
		i := rng.Intn(len(d.Edges))
		old := d.Edges[i]
		if !d.Removable(old) {
			continue
		}
		for add := 0; add < p.opts.MoveTries; add++ {
			a, b := rng.Intn(n), rng.Intn(n)
			if a == b {
				continue
			}
			e := NewEdge(a, b)
			if e == old || d.tabu.IsTabu(e.key(), d.step) {
				continue
			}
			// degrees as if old were already removed
			da, db := d.Deg[e.A], d.Deg[e.B]
			if e.A == old.A || e.A == old.B {
				da--
			}
			if e.B == old.A || e.B == old.B {
				db--
			}
			if da >= p.inst.K || db >= p.inst.K || d.Has(e.A, e.B) {
				continue
			}
			return &swapMove{
				d:       d,
				i:       i,
				removed: old,
				added:   e,
				delta:   p.inst.Dist(e.A, e.B) - p.inst.Dist(old.A, old.B),
				rng:     rng,
			}, nil
		}
	}
	return nil, opt.ErrNoMove
}

type swapMove struct {
	d              *Design
	i              int
	removed, added Edge
	delta          float64
	prevCost       float64
	prevExpiry     int
	wasTabu        bool
	rng            *rand.Rand
}

func (m *swapMove) Apply() {
	m.prevCost = m.d.Cost
	m.prevExpiry, m.wasTabu = m.d.tabu.Expiry(m.removed.key())
	m.d.removeAt(m.i)
	m.d.add(m.added)
	m.d.Cost += m.delta
	m.d.tabu.Forbid(m.removed.key(), m.d.step, m.rng)
}

func (m *swapMove) Undo() {
	m.d.tabu.Restore(m.removed.key(), m.prevExpiry, m.wasTabu)
	m.d.removeAt(len(m.d.Edges) - 1)
	m.d.restoreAt(m.i, m.removed)
	m.d.Cost = m.prevCost
}
