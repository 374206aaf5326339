package binpack

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"localSearch/internal/opt"
)

// Start selects the initial packing.
type Start string

const (
	StartFirstFit  Start = "firstfit"
	StartSingleton Start = "singleton"
)

// Packing is a list of bins of item indices with cached loads.
type Packing struct {
	inst  *Instance
	Bins  [][]int
	Loads []int
}

func (pk *Packing) Objective() float64 { return float64(len(pk.Bins)) }

func (pk *Packing) Feasible() bool {
	for _, l := range pk.Loads {
		if l > pk.inst.Capacity {
			return false
		}
	}
	return true
}

func (pk *Packing) Clone() opt.Candidate {
	c := &Packing{inst: pk.inst, Bins: make([][]int, len(pk.Bins)), Loads: slices.Clone(pk.Loads)}
	for b, bin := range pk.Bins {
		c.Bins[b] = slices.Clone(bin)
	}
	return c
}

// Sizes returns the item sizes of bin b.
func (pk *Packing) Sizes(b int) []int {
	out := make([]int, len(pk.Bins[b]))
	for k, it := range pk.Bins[b] {
		out[k] = pk.inst.Items[it]
	}
	return out
}

type Problem struct {
	inst  *Instance
	start Start
}

func NewProblem(inst *Instance, start Start) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	switch start {
	case "":
		start = StartFirstFit
	case StartFirstFit, StartSingleton:
	default:
		return nil, fmt.Errorf("unknown start %q", start)
	}
	return &Problem{inst: inst, start: start}, nil
}

func (p *Problem) Name() string        { return "binpack" }
func (p *Problem) Sense() opt.Sense    { return opt.Minimize }
func (p *Problem) Instance() *Instance { return p.inst }
func (p *Problem) Precheck() error     { return nil }

func (p *Problem) Construct(context.Context, *rand.Rand) (opt.Candidate, error) {
	pk := &Packing{inst: p.inst}
	if p.start == StartSingleton {
		for it, size := range p.inst.Items {
			pk.Bins = append(pk.Bins, []int{it})
			pk.Loads = append(pk.Loads, size)
		}
		return pk, nil
	}
	pk.Bins, pk.Loads = FirstFit(p.inst)
	return pk, nil
}

// Neighbor takes a random item out of a random bin and plans its reinsertion
// into the first bin with room, bins scanned in random order.
func (p *Problem) Neighbor(c opt.Candidate, rng *rand.Rand) (opt.Move, error) {
	pk := c.(*Packing)
	if len(pk.Bins) == 0 {
		return nil, opt.ErrNoMove
	}
	b := rng.Intn(len(pk.Bins))
	j := rng.Intn(len(pk.Bins[b]))
	size := p.inst.Items[pk.Bins[b][j]]
	emptied := len(pk.Bins[b]) == 1

	target := -1
	for _, t := range rng.Perm(len(pk.Bins)) {
		load := pk.Loads[t]
		if t == b {
			if emptied {
				continue
			}
			load -= size
		}
		if load+size <= p.inst.Capacity {
			target = t
			break
		}
	}
	if emptied && target > b {
		// indices shift once the source bin is deleted
		target--
	}
	return &relocateMove{pk: pk, from: b, pos: j, to: target, emptied: emptied}, nil
}

// relocateMove removes Bins[from][pos] and appends it to bin to, or to a
// new bin when to < 0. Indices of to are post-removal.
type relocateMove struct {
	pk      *Packing
	from    int
	pos     int
	to      int
	emptied bool
	item    int
}

func (m *relocateMove) Apply() {
	pk := m.pk
	m.item = pk.Bins[m.from][m.pos]
	size := pk.inst.Items[m.item]
	if m.emptied {
		pk.Bins = slices.Delete(pk.Bins, m.from, m.from+1)
		pk.Loads = slices.Delete(pk.Loads, m.from, m.from+1)
	} else {
		pk.Bins[m.from] = slices.Delete(pk.Bins[m.from], m.pos, m.pos+1)
		pk.Loads[m.from] -= size
	}
	if m.to < 0 {
		pk.Bins = append(pk.Bins, []int{m.item})
		pk.Loads = append(pk.Loads, size)
		return
	}
	pk.Bins[m.to] = append(pk.Bins[m.to], m.item)
	pk.Loads[m.to] += size
}

func (m *relocateMove) Undo() {
	pk := m.pk
	size := pk.inst.Items[m.item]
	if m.to < 0 {
		last := len(pk.Bins) - 1
		pk.Bins = pk.Bins[:last]
		pk.Loads = pk.Loads[:last]
	} else {
		pk.Bins[m.to] = pk.Bins[m.to][:len(pk.Bins[m.to])-1]
		pk.Loads[m.to] -= size
	}
	if m.emptied {
		pk.Bins = slices.Insert(pk.Bins, m.from, []int{m.item})
		pk.Loads = slices.Insert(pk.Loads, m.from, size)
		return
	}
	pk.Bins[m.from] = slices.Insert(pk.Bins[m.from], m.pos, m.item)
	pk.Loads[m.from] += size
}
