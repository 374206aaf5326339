package knapsack

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteReport lists the selected items (1-indexed) and the totals.
func WriteReport(w io.Writer, s *Solution) error {
	items := make([]string, 0, len(s.Selected))
	for i, on := range s.Selected {
		if on {
			items = append(items, strconv.Itoa(i+1))
		}
	}
	_, err := fmt.Fprintf(w, "Selected items (1-indexed):\n%s\n\nTotal benefit: %d\nTotal cost: %d\nCapacity: %d\n",
		strings.Join(items, " "), s.Benefit, s.Cost, s.inst.Capacity)
	return err
}
