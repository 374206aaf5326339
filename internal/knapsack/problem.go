package knapsack

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"localSearch/internal/opt"
)

// Solution is a selection bit vector with cached totals.
type Solution struct {
	inst     *Instance
	Selected []bool
	Benefit  int
	Cost     int
}

func (s *Solution) Objective() float64 { return float64(s.Benefit) }
func (s *Solution) Feasible() bool     { return s.Cost <= s.inst.Capacity }

func (s *Solution) Clone() opt.Candidate {
	c := *s
	c.Selected = slices.Clone(s.Selected)
	return &c
}

func (s *Solution) set(i int, on bool) {
	if s.Selected[i] == on {
		return
	}
	s.Selected[i] = on
	if on {
		s.Benefit += s.inst.Benefits[i]
		s.Cost += s.inst.Costs[i]
	} else {
		s.Benefit -= s.inst.Benefits[i]
		s.Cost -= s.inst.Costs[i]
	}
}

type Problem struct {
	inst *Instance
	// dropOrder lists items with positive cost by ascending benefit/cost, ties by index.
	dropOrder []int
}

func NewProblem(inst *Instance) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	order := make([]int, 0, inst.Items())
	for i, c := range inst.Costs {
		if c > 0 {
			order = append(order, i)
		}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		// b_a/c_a < b_b/c_b  <=>  b_a*c_b < b_b*c_a
		l := int64(inst.Benefits[a]) * int64(inst.Costs[b])
		r := int64(inst.Benefits[b]) * int64(inst.Costs[a])
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		}
		return a - b
	})
	return &Problem{inst: inst, dropOrder: order}, nil
}

func (p *Problem) Name() string        { return "knapsack" }
func (p *Problem) Sense() opt.Sense    { return opt.Maximize }
func (p *Problem) Instance() *Instance { return p.inst }
func (p *Problem) Precheck() error     { return nil }

// NewSolution wraps a selection vector, computing its totals.
func (p *Problem) NewSolution(sel []bool) (*Solution, error) {
	b, c, err := Evaluate(p.inst, sel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opt.ErrInstanceInvalid, err)
	}
	return &Solution{inst: p.inst, Selected: sel, Benefit: b, Cost: c}, nil
}

// Repair drops the lowest-density selected items until the capacity holds.
// A feasible solution is returned unchanged.
func (p *Problem) Repair(s *Solution) error {
	p.repair(s)
	if !s.Feasible() {
		return fmt.Errorf("%w: cost %d exceeds capacity %d", opt.ErrUnrepairable, s.Cost, p.inst.Capacity)
	}
	return nil
}

func (p *Problem) repair(s *Solution) (dropped []int) {
	for _, i := range p.dropOrder {
		if s.Cost <= p.inst.Capacity {
			break
		}
		if s.Selected[i] {
			s.set(i, false)
			dropped = append(dropped, i)
		}
	}
	return dropped
}

func (p *Problem) Construct(_ context.Context, rng *rand.Rand) (opt.Candidate, error) {
	sel := make([]bool, p.inst.Items())
	for i := range sel {
		sel[i] = rng.Intn(2) == 1
	}
	s, err := p.NewSolution(sel)
	if err != nil {
		return nil, err
	}
	if err := p.Repair(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Problem) Neighbor(c opt.Candidate, rng *rand.Rand) (opt.Move, error) {
	s := c.(*Solution)
	return &flipMove{p: p, s: s, i: rng.Intn(len(s.Selected))}, nil
}

// flipMove flips one bit and repairs; Undo restores the dropped items.
type flipMove struct {
	p       *Problem
	s       *Solution
	i       int
	dropped []int
}

func (m *flipMove) Apply() {
	m.s.set(m.i, !m.s.Selected[m.i])
	m.dropped = m.p.repair(m.s)
}

func (m *flipMove) Undo() {
	for k := len(m.dropped) - 1; k >= 0; k-- {
		m.s.set(m.dropped[k], true)
	}
	m.s.set(m.i, !m.s.Selected[m.i])
	m.dropped = m.dropped[:0]
}
