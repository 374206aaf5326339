package knapsack

import "fmt"

// Evaluate returns total benefit and total cost of a selection.
func Evaluate(inst *Instance, sel []bool) (benefit, cost int, err error) {
	if len(sel) != inst.Items() {
		return 0, 0, fmt.Errorf("selection length must be %d (got %d)", inst.Items(), len(sel))
	}
	for i, on := range sel {
		if on {
			benefit += inst.Benefits[i]
			cost += inst.Costs[i]
		}
	}
	return benefit, cost, nil
}

// Feasible reports whether the selection respects the capacity.
func Feasible(inst *Instance, sel []bool) bool {
	_, cost, err := Evaluate(inst, sel)
	return err == nil && cost <= inst.Capacity
}
