package assign

import (
	"errors"
	"fmt"
	"math/rand"

	"localSearch/internal/opt"
)

// Instance assigns NM modules to NP workers. Cost and Hours are indexed
// [worker][module]; Capacity is indexed by worker.
type Instance struct {
	Workers  int
	Modules  int
	Cost     [][]int
	Hours    [][]int
	Capacity []int
}

func NewInstance(cost, hours [][]int, capacity []int) (*Instance, error) {
	inst := &Instance{Workers: len(cost), Cost: cost, Hours: hours, Capacity: capacity}
	if len(cost) > 0 {
		inst.Modules = len(cost[0])
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Workers <= 0 {
		return fmt.Errorf("%w: workers must be > 0 (got %d)", opt.ErrInstanceInvalid, inst.Workers)
	}
	if inst.Modules <= 0 {
		return fmt.Errorf("%w: modules must be > 0 (got %d)", opt.ErrInstanceInvalid, inst.Modules)
	}
	if len(inst.Cost) != inst.Workers || len(inst.Hours) != inst.Workers || len(inst.Capacity) != inst.Workers {
		return fmt.Errorf("%w: cost, hours and capacity must have %d workers (got %d, %d, %d)",
			opt.ErrInstanceInvalid, inst.Workers, len(inst.Cost), len(inst.Hours), len(inst.Capacity))
	}
	for p := 0; p < inst.Workers; p++ {
		if len(inst.Cost[p]) != inst.Modules || len(inst.Hours[p]) != inst.Modules {
			return fmt.Errorf("%w: worker %d rows must have %d modules", opt.ErrInstanceInvalid, p+1, inst.Modules)
		}
		if inst.Capacity[p] < 0 {
			return fmt.Errorf("%w: capacity[%d] must be >= 0 (got %d)", opt.ErrInstanceInvalid, p, inst.Capacity[p])
		}
		for m := 0; m < inst.Modules; m++ {
			if inst.Hours[p][m] < 0 {
				return fmt.Errorf("%w: hours[%d][%d] must be >= 0 (got %d)", opt.ErrInstanceInvalid, p, m, inst.Hours[p][m])
			}
		}
	}
	return nil
}

// RandomInstance draws costs and hours from [1,maxValue]; every worker
// gets capacity for about its share of the cheapest plan plus slack.
func RandomInstance(workers, modules, maxValue int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if workers <= 0 || modules <= 0 || maxValue <= 0 {
		panic("invalid instance bounds")
	}
	cost := make([][]int, workers)
	hours := make([][]int, workers)
	total := 0
	for p := range cost {
		cost[p] = make([]int, modules)
		hours[p] = make([]int, modules)
		for m := 0; m < modules; m++ {
			cost[p][m] = 1 + rng.Intn(maxValue)
			hours[p][m] = 1 + rng.Intn(maxValue)
			total += hours[p][m]
		}
	}
	capacity := make([]int, workers)
	share := total/(workers*workers) + maxValue
	for p := range capacity {
		capacity[p] = share + share/2
	}
	inst, err := NewInstance(cost, hours, capacity)
	if err != nil {
		panic(err)
	}
	return inst
}
