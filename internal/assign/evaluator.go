package assign

import "fmt"

func checkAssignment(inst *Instance, a []int) error {
	if len(a) != inst.Modules {
		return fmt.Errorf("assignment length must be %d (got %d)", inst.Modules, len(a))
	}
	for m, p := range a {
		if p < 0 || p >= inst.Workers {
			return fmt.Errorf("assignment[%d]=%d out of range [0,%d)", m, p, inst.Workers)
		}
	}
	return nil
}

// Cost sums cost[worker][module] over the assignment.
func Cost(inst *Instance, a []int) (int, error) {
	if err := checkAssignment(inst, a); err != nil {
		return 0, err
	}
	total := 0
	for m, p := range a {
		total += inst.Cost[p][m]
	}
	return total, nil
}

// Loads returns the hours assigned to each worker.
func Loads(inst *Instance, a []int) ([]int, error) {
	if err := checkAssignment(inst, a); err != nil {
		return nil, err
	}
	load := make([]int, inst.Workers)
	for m, p := range a {
		load[p] += inst.Hours[p][m]
	}
	return load, nil
}

func Feasible(inst *Instance, a []int) bool {
	load, err := Loads(inst, a)
	if err != nil {
		return false
	}
	for p, l := range load {
		if l > inst.Capacity[p] {
			return false
		}
	}
	return true
}
