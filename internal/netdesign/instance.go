package netdesign

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"localSearch/internal/opt"
)

// Instance places N points in the plane; a design selects exactly M edges
// with every degree in [1,K].
type Instance struct {
	N  int
	M  int
	K  int
	Xs []float64
	Ys []float64
	d  []float64
}

func NewInstance(m, k int, xs, ys []float64) (*Instance, error) {
	inst := &Instance{N: len(xs), M: m, K: k, Xs: xs, Ys: ys}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	n := inst.N
	inst.d = make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := math.Hypot(xs[i]-xs[j], ys[i]-ys[j])
			inst.d[i*n+j] = w
			inst.d[j*n+i] = w
		}
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.N <= 0 {
		return fmt.Errorf("%w: no points", opt.ErrInstanceInvalid)
	}
	if len(inst.Xs) != inst.N || len(inst.Ys) != inst.N {
		return fmt.Errorf("%w: need %d x and y coordinates (got %d, %d)", opt.ErrInstanceInvalid, inst.N, len(inst.Xs), len(inst.Ys))
	}
	if inst.M < 0 || inst.K < 0 {
		return fmt.Errorf("%w: M and K must be >= 0 (got %d, %d)", opt.ErrInstanceInvalid, inst.M, inst.K)
	}
	for i := 0; i < inst.N; i++ {
		if math.IsNaN(inst.Xs[i]) || math.IsInf(inst.Xs[i], 0) || math.IsNaN(inst.Ys[i]) || math.IsInf(inst.Ys[i], 0) {
			return fmt.Errorf("%w: point %d has a non-finite coordinate", opt.ErrInstanceInvalid, i+1)
		}
	}
	return nil
}

// Dist is the Euclidean distance between points a and b.
func (inst *Instance) Dist(a, b int) float64 { return inst.d[a*inst.N+b] }

// RandomInstance scatters n points uniformly over [0,100)².
func RandomInstance(n, m, k int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n <= 1 {
		panic("invalid instance bounds")
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.Float64() * 100
		ys[i] = rng.Float64() * 100
	}
	inst, err := NewInstance(m, k, xs, ys)
	if err != nil {
		panic(err)
	}
	return inst
}
