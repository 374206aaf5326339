package netdesign

import (
	"fmt"

	"localSearch/internal/ts"
)

// Edge is an unordered pair stored with A < B.
type Edge struct{ A, B int }

func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

func (e Edge) key() uint64 { return ts.PairKey(e.A, e.B) }

// EdgeCost sums the lengths of the edges.
func EdgeCost(inst *Instance, edges []Edge) float64 {
	total := 0.0
	for _, e := range edges {
		total += inst.Dist(e.A, e.B)
	}
	return total
}

// CheckEdges verifies the edge count, that there are no loops or duplicates,
// and that every degree lies in [1,K].
func CheckEdges(inst *Instance, edges []Edge) error {
	if len(edges) != inst.M {
		return fmt.Errorf("design has %d edges, want %d", len(edges), inst.M)
	}
	deg := make([]int, inst.N)
	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if e.A < 0 || e.B >= inst.N || e.A >= e.B {
			return fmt.Errorf("invalid edge (%d,%d)", e.A, e.B)
		}
		if _, dup := seen[e]; dup {
			return fmt.Errorf("duplicate edge (%d,%d)", e.A, e.B)
		}
		seen[e] = struct{}{}
		deg[e.A]++
		deg[e.B]++
	}
	for v, d := range deg {
		if d < 1 || d > inst.K {
			return fmt.Errorf("vertex %d has degree %d outside [1,%d]", v, d, inst.K)
		}
	}
	return nil
}
