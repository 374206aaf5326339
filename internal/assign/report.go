package assign

import (
	"bufio"
	"fmt"
	"io"
)

// WriteReport lists every module's worker (1-indexed), the cost and the loads.
func WriteReport(w io.Writer, s *Solution) error {
	bw := bufio.NewWriter(w)
	for m, p := range s.Assign {
		fmt.Fprintf(bw, "Module %d -> Worker %d\n", m+1, p+1)
	}
	fmt.Fprintf(bw, "\nTotal cost: %d\n\n", s.Total)
	for p, l := range s.Loads {
		fmt.Fprintf(bw, "W%d: %d / %d\n", p+1, l, s.inst.Capacity[p])
	}
	return bw.Flush()
}
