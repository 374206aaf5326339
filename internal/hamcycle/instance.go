package hamcycle

import (
	"errors"
	"fmt"
	"math/rand"

	"localSearch/internal/opt"
)

// Instance is an undirected weighted graph given as a dense matrix.
// A zero weight means the edge is absent.
type Instance struct {
	N int
	// W length must be N*N; symmetric with a zero diagonal.
	W   []int
	adj [][]int
}

func NewInstance(n int, weights []int) (*Instance, error) {
	inst := &Instance{N: n, W: weights}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	inst.adj = make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && inst.W[i*n+j] > 0 {
				inst.adj[i] = append(inst.adj[i], j)
			}
		}
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.N <= 0 {
		return fmt.Errorf("%w: n must be > 0 (got %d)", opt.ErrInstanceInvalid, inst.N)
	}
	n := inst.N
	if len(inst.W) != n*n {
		return fmt.Errorf("%w: weight matrix must have n*n=%d entries (got %d)", opt.ErrInstanceInvalid, n*n, len(inst.W))
	}
	for i := 0; i < n; i++ {
		if inst.W[i*n+i] != 0 {
			return fmt.Errorf("%w: w[%d][%d] must be 0 (got %d)", opt.ErrInstanceInvalid, i, i, inst.W[i*n+i])
		}
		for j := 0; j < n; j++ {
			w := inst.W[i*n+j]
			if w < 0 {
				return fmt.Errorf("%w: w[%d][%d] must be >= 0 (got %d)", opt.ErrInstanceInvalid, i, j, w)
			}
			if w != inst.W[j*n+i] {
				return fmt.Errorf("%w: matrix is not symmetric at (%d,%d)", opt.ErrInstanceInvalid, i, j)
			}
		}
	}
	return nil
}

func (inst *Instance) Weight(a, b int) int { return inst.W[a*inst.N+b] }
func (inst *Instance) Edge(a, b int) bool  { return inst.W[a*inst.N+b] > 0 }
func (inst *Instance) Adj(v int) []int     { return inst.adj[v] }

// RandomInstance plants a random Hamiltonian cycle and adds every other
// edge with probability density. Weights are drawn from [1,maxWeight].
func RandomInstance(n int, density float64, maxWeight int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n < 3 || maxWeight <= 0 {
		panic("invalid instance bounds")
	}
	w := make([]int, n*n)
	set := func(a, b int) {
		v := 1 + rng.Intn(maxWeight)
		w[a*n+b] = v
		w[b*n+a] = v
	}
	perm := rng.Perm(n)
	for i := range perm {
		set(perm[i], perm[(i+1)%n])
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if w[i*n+j] == 0 && rng.Float64() < density {
				set(i, j)
			}
		}
	}
	inst, err := NewInstance(n, w)
	if err != nil {
		panic(err)
	}
	return inst
}
