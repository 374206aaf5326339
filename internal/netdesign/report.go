package netdesign

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
)

// WriteReport lists the selected pairs sorted and 1-indexed, then the total length.
func WriteReport(w io.Writer, d *Design) error {
	edges := slices.Clone(d.Edges)
	slices.SortFunc(edges, func(x, y Edge) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Connections (1-indexed):")
	for _, e := range edges {
		fmt.Fprintf(bw, "%d %d\n", e.A+1, e.B+1)
	}
	fmt.Fprintf(bw, "\nTotal distance: %.6f\n", d.Cost)
	return bw.Flush()
}
