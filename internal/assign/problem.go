package assign

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"localSearch/internal/opt"
)

// Solution maps each module to a worker, with cached loads and total cost.
type Solution struct {
	inst   *Instance
	Assign []int
	Loads  []int
	Total  int
}

func (s *Solution) Objective() float64 { return float64(s.Total) }

func (s *Solution) Feasible() bool {
	for p, l := range s.Loads {
		if l > s.inst.Capacity[p] {
			return false
		}
	}
	return true
}

func (s *Solution) Clone() opt.Candidate {
	c := *s
	c.Assign = slices.Clone(s.Assign)
	c.Loads = slices.Clone(s.Loads)
	return &c
}

func (s *Solution) move(m, q int) {
	p := s.Assign[m]
	s.Loads[p] -= s.inst.Hours[p][m]
	s.Total -= s.inst.Cost[p][m]
	s.Assign[m] = q
	s.Loads[q] += s.inst.Hours[q][m]
	s.Total += s.inst.Cost[q][m]
}

type Problem struct {
	inst *Instance
	// perturb is the number of random reassignments after the cheapest start.
	perturb int
}

func NewProblem(inst *Instance) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Problem{inst: inst, perturb: inst.Modules / 4}, nil
}

func (p *Problem) Name() string        { return "assign" }
func (p *Problem) Sense() opt.Sense    { return opt.Minimize }
func (p *Problem) Instance() *Instance { return p.inst }

// Precheck fails when some module fits no worker even on an empty schedule.
func (p *Problem) Precheck() error {
	for m := 0; m < p.inst.Modules; m++ {
		fits := false
		for w := 0; w < p.inst.Workers && !fits; w++ {
			fits = p.inst.Hours[w][m] <= p.inst.Capacity[w]
		}
		if !fits {
			return fmt.Errorf("%w: module %d exceeds every worker's capacity", opt.ErrNecessaryCondition, m+1)
		}
	}
	return nil
}

// NewSolution wraps an assignment, computing loads and cost.
func (p *Problem) NewSolution(a []int) (*Solution, error) {
	total, err := Cost(p.inst, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opt.ErrInstanceInvalid, err)
	}
	load, _ := Loads(p.inst, a)
	return &Solution{inst: p.inst, Assign: a, Loads: load, Total: total}, nil
}

// Cheapest assigns every module to its cheapest worker, ties to the lowest index.
func (p *Problem) Cheapest() []int {
	a := make([]int, p.inst.Modules)
	for m := range a {
		best := 0
		for w := 1; w < p.inst.Workers; w++ {
			if p.inst.Cost[w][m] < p.inst.Cost[best][m] {
				best = w
			}
		}
		a[m] = best
	}
	return a
}

// Repair moves modules off the most overloaded worker until every load fits.
// Each step picks the (cost delta, module, target) minimum among modules with
// positive hours whose target has room; total excess strictly decreases.
func (p *Problem) Repair(s *Solution) error {
	for {
		worst, excess := -1, 0
		for w, l := range s.Loads {
			if e := l - p.inst.Capacity[w]; e > excess {
				worst, excess = w, e
			}
		}
		if worst < 0 {
			return nil
		}

		bestM, bestQ, bestDelta := -1, -1, 0
		for m, w := range s.Assign {
			if w != worst || p.inst.Hours[worst][m] == 0 {
				continue
			}
			for q := 0; q < p.inst.Workers; q++ {
				if q == worst || s.Loads[q]+p.inst.Hours[q][m] > p.inst.Capacity[q] {
					continue
				}
				// m and q ascend, so a strict < keeps the lexicographic minimum
				delta := p.inst.Cost[q][m] - p.inst.Cost[worst][m]
				if bestM < 0 || delta < bestDelta {
					bestM, bestQ, bestDelta = m, q, delta
				}
			}
		}
		if bestM < 0 {
			return fmt.Errorf("%w: worker %d over capacity by %d", opt.ErrUnrepairable, worst+1, excess)
		}
		s.move(bestM, bestQ)
	}
}

// Construct starts from the cheapest assignment, applies a light random
// perturbation and repairs.
func (p *Problem) Construct(_ context.Context, rng *rand.Rand) (opt.Candidate, error) {
	a := p.Cheapest()
	for k := 0; k < p.perturb; k++ {
		a[rng.Intn(p.inst.Modules)] = rng.Intn(p.inst.Workers)
	}
	s, err := p.NewSolution(a)
	if err != nil {
		return nil, err
	}
	if err := p.Repair(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Neighbor never proposes a move: this domain searches by repeated
// perturbed constructions, one per restart.
func (p *Problem) Neighbor(opt.Candidate, *rand.Rand) (opt.Move, error) {
	return nil, opt.ErrNoMove
}
