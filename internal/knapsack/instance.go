package knapsack

import (
	"errors"
	"fmt"
	"math/rand"

	"localSearch/internal/opt"
)

type Instance struct {
	Capacity int
	// Benefits and Costs are indexed by item and must have equal length.
	Benefits []int
	Costs    []int
}

func NewInstance(capacity int, benefits, costs []int) (*Instance, error) {
	inst := &Instance{Capacity: capacity, Benefits: benefits, Costs: costs}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if len(inst.Benefits) == 0 {
		return fmt.Errorf("%w: no items", opt.ErrInstanceInvalid)
	}
	if len(inst.Benefits) != len(inst.Costs) {
		return fmt.Errorf("%w: benefit count %d != cost count %d", opt.ErrInstanceInvalid, len(inst.Benefits), len(inst.Costs))
	}
	if inst.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be >= 0 (got %d)", opt.ErrInstanceInvalid, inst.Capacity)
	}
	for i := range inst.Benefits {
		if inst.Benefits[i] < 0 {
			return fmt.Errorf("%w: benefits[%d] must be >= 0 (got %d)", opt.ErrInstanceInvalid, i, inst.Benefits[i])
		}
		if inst.Costs[i] < 0 {
			return fmt.Errorf("%w: costs[%d] must be >= 0 (got %d)", opt.ErrInstanceInvalid, i, inst.Costs[i])
		}
	}
	return nil
}

func (inst *Instance) Items() int { return len(inst.Benefits) }

// RandomInstance draws benefits and costs from [1,maxValue]; capacity is half the total cost.
func RandomInstance(n, maxValue int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n <= 0 || maxValue <= 0 {
		panic("invalid instance bounds")
	}
	benefits := make([]int, n)
	costs := make([]int, n)
	total := 0
	for i := 0; i < n; i++ {
		benefits[i] = 1 + rng.Intn(maxValue)
		costs[i] = 1 + rng.Intn(maxValue)
		total += costs[i]
	}
	inst, err := NewInstance(total/2, benefits, costs)
	if err != nil {
		panic(err)
	}
	return inst
}
