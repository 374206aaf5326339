package queens

import (
	"errors"
	"fmt"
	"math/rand"

	"localSearch/internal/opt"
)

// Instance is an n×n board with one queen per column; Initial[c] is the
// 0-indexed row of the queen in column c.
type Instance struct {
	N       int
	Initial []int
}

func NewInstance(initial []int) (*Instance, error) {
	inst := &Instance{N: len(initial), Initial: initial}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.N <= 0 {
		return fmt.Errorf("%w: board size must be > 0", opt.ErrInstanceInvalid)
	}
	if len(inst.Initial) != inst.N {
		return fmt.Errorf("%w: need %d rows (got %d)", opt.ErrInstanceInvalid, inst.N, len(inst.Initial))
	}
	for c, r := range inst.Initial {
		if r < 0 || r >= inst.N {
			return fmt.Errorf("%w: column %d row %d out of range [1,%d]", opt.ErrInstanceInvalid, c+1, r+1, inst.N)
		}
	}
	return nil
}

// RandomInstance places every queen in a uniformly random row.
func RandomInstance(n int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n <= 0 {
		panic("invalid instance bounds")
	}
	rows := make([]int, n)
	for c := range rows {
		rows[c] = rng.Intn(n)
	}
	inst, err := NewInstance(rows)
	if err != nil {
		panic(err)
	}
	return inst
}
