package queens

import (
	"bufio"
	"fmt"
	"io"
)

// WriteReport lists each column's row (1-indexed) and the conflict count.
func WriteReport(w io.Writer, b *Board) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Final placement:")
	for c, r := range b.Rows {
		fmt.Fprintf(bw, "Column %d -> Row %d\n", c+1, r+1)
	}
	fmt.Fprintf(bw, "\nConflicts: %d\n", b.Conflicts)
	return bw.Flush()
}
