package hamcycle

import "fmt"

// ValidateTour checks that tour is a permutation of 0..n-1.
func ValidateTour(tour []int, n int) error {
	if len(tour) != n {
		return fmt.Errorf("tour length must be %d (got %d)", n, len(tour))
	}
	seen := make([]bool, n)
	for i, v := range tour {
		if v < 0 || v >= n {
			return fmt.Errorf("tour[%d]=%d out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("duplicate vertex %d in tour", v)
		}
		seen[v] = true
	}
	return nil
}

// TourCost sums the weights along the closed tour; a missing edge is an error.
func TourCost(inst *Instance, tour []int) (int, error) {
	if err := ValidateTour(tour, inst.N); err != nil {
		return 0, err
	}
	total := 0
	for i, a := range tour {
		b := tour[(i+1)%len(tour)]
		if !inst.Edge(a, b) {
			return 0, fmt.Errorf("no edge between %d and %d", a, b)
		}
		total += inst.Weight(a, b)
	}
	return total, nil
}

// reverse flips tour[i..k] in place.
func reverse(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}
