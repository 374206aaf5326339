package binpack

import (
	"bufio"
	"fmt"
	"io"
)

// WriteReport prints each bin's item sizes and load.
func WriteReport(w io.Writer, pk *Packing) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Number of bins: %d\n\n", len(pk.Bins))
	for b := range pk.Bins {
		fmt.Fprintf(bw, "Bin %d: %v | sum = %d\n", b+1, pk.Sizes(b), pk.Loads[b])
	}
	fmt.Fprintf(bw, "\nBin capacity: %d\n", pk.inst.Capacity)
	return bw.Flush()
}
