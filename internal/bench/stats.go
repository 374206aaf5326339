package bench

import (
	"math"

	"localSearch/internal/opt"
)

type Stats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcStats — лучшее значение по направлению sense, среднее и
// выборочное стандартное отклонение.
func CalcStats(values []float64, sense opt.Sense) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	sum := 0.0
	for _, v := range values {
		if sense.Better(v, best) {
			best = v
		}
		sum += v
	}
	mean := sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}

	s.Best = best
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}
