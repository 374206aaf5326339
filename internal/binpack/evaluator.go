package binpack

import "fmt"

// Validate checks that bins hold every item index exactly once and that
// no bin exceeds the capacity.
func Validate(inst *Instance, bins [][]int) error {
	seen := make([]bool, len(inst.Items))
	for b, bin := range bins {
		if len(bin) == 0 {
			return fmt.Errorf("bin %d is empty", b)
		}
		load := 0
		for _, it := range bin {
			if it < 0 || it >= len(inst.Items) {
				return fmt.Errorf("bin %d holds unknown item %d", b, it)
			}
			if seen[it] {
				return fmt.Errorf("item %d packed twice", it)
			}
			seen[it] = true
			load += inst.Items[it]
		}
		if load > inst.Capacity {
			return fmt.Errorf("bin %d load %d exceeds capacity %d", b, load, inst.Capacity)
		}
	}
	for it, ok := range seen {
		if !ok {
			return fmt.Errorf("item %d not packed", it)
		}
	}
	return nil
}

// FirstFit packs items in order into the first bin with room.
func FirstFit(inst *Instance) (bins [][]int, loads []int) {
	for it, size := range inst.Items {
		placed := false
		for b := range bins {
			if loads[b]+size <= inst.Capacity {
				bins[b] = append(bins[b], it)
				loads[b] += size
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, []int{it})
			loads = append(loads, size)
		}
	}
	return bins, loads
}
