package binpack

import (
	"errors"
	"fmt"
	"math/rand"

	"localSearch/internal/opt"
)

type Instance struct {
	Capacity int
	Items    []int
}

func NewInstance(capacity int, items []int) (*Instance, error) {
	inst := &Instance{Capacity: capacity, Items: items}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0 (got %d)", opt.ErrInstanceInvalid, inst.Capacity)
	}
	if len(inst.Items) == 0 {
		return fmt.Errorf("%w: no items", opt.ErrInstanceInvalid)
	}
	for i, v := range inst.Items {
		if v < 0 || v > inst.Capacity {
			return fmt.Errorf("%w: items[%d]=%d out of range [0,%d]", opt.ErrInstanceInvalid, i, v, inst.Capacity)
		}
	}
	return nil
}

// RandomInstance draws n item sizes from [1,capacity/2+capacity/4].
func RandomInstance(n, capacity int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n <= 0 || capacity <= 1 {
		panic("invalid instance bounds")
	}
	hi := max(1, capacity/2+capacity/4)
	items := make([]int, n)
	for i := range items {
		items[i] = 1 + rng.Intn(hi)
	}
	inst, err := NewInstance(capacity, items)
	if err != nil {
		panic(err)
	}
	return inst
}
