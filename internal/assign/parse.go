package assign

import (
	"fmt"
	"io"

	"localSearch/internal/instfile"
)

// ReadText parses "NP NM", the NP×NM cost matrix, the NP×NM hours matrix
// and NP capacities, ignoring line breaks.
func ReadText(r io.Reader) (*Instance, error) {
	t, err := instfile.NewTokens(r)
	if err != nil {
		return nil, err
	}
	np, err := t.Int("NP")
	if err != nil {
		return nil, err
	}
	nm, err := t.Int("NM")
	if err != nil {
		return nil, err
	}
	if np <= 0 || nm <= 0 {
		return nil, instfile.Invalid("NP and NM must be > 0 (got %d, %d)", np, nm)
	}
	// NP×NM must fit in what is left before any matrix is allocated
	if rem := t.Remaining(); np > rem || nm > rem/np {
		return nil, instfile.Invalid("NP×NM = %d×%d exceeds the %d values left", np, nm, rem)
	}
	matrix := func(what string) ([][]int, error) {
		out := make([][]int, np)
		for p := range out {
			row, err := t.IntN(nm, fmt.Sprintf("%s[%d]", what, p))
			if err != nil {
				return nil, err
			}
			out[p] = row
		}
		return out, nil
	}
	cost, err := matrix("cost")
	if err != nil {
		return nil, err
	}
	hours, err := matrix("hours")
	if err != nil {
		return nil, err
	}
	capacity, err := t.IntN(np, "capacity")
	if err != nil {
		return nil, err
	}
	return NewInstance(cost, hours, capacity)
}

// ParseJSON reads {"cost": [[...]], "hours": [[...]], "capacity": [...]}.
func ParseJSON(data []byte) (*Instance, error) {
	root, err := instfile.JSON(data)
	if err != nil {
		return nil, err
	}
	cost, err := instfile.IntMatrix(root, "cost")
	if err != nil {
		return nil, err
	}
	hours, err := instfile.IntMatrix(root, "hours")
	if err != nil {
		return nil, err
	}
	capacity, err := instfile.IntSlice(root, "capacity")
	if err != nil {
		return nil, err
	}
	return NewInstance(cost, hours, capacity)
}
