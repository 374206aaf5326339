package hamcycle

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteReport prints the closed route (1-indexed) and its cost.
func WriteReport(w io.Writer, t *Tour) error {
	if len(t.Order) == 0 {
		_, err := fmt.Fprintln(w, "Route: empty")
		return err
	}
	route := make([]string, 0, len(t.Order)+1)
	for _, v := range t.Order {
		route = append(route, strconv.Itoa(v+1))
	}
	route = append(route, route[0])
	_, err := fmt.Fprintf(w, "Route (1-indexed):\n%s\n\nTotal cost: %d\n", strings.Join(route, " -> "), t.Cost)
	return err
}
