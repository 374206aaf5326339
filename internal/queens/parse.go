package queens

import (
	"io"

	"localSearch/internal/instfile"
)

// ReadText parses n followed by n 1-indexed rows, one per column.
func ReadText(r io.Reader) (*Instance, error) {
	t, err := instfile.NewTokens(r)
	if err != nil {
		return nil, err
	}
	n, err := t.Int("n")
	if err != nil {
		return nil, err
	}
	rows, err := t.IntN(n, "rows")
	if err != nil {
		return nil, err
	}
	return fromOneIndexed(rows)
}

// ParseJSON reads {"rows": [...]} with 1-indexed rows; an optional "n" must agree.
func ParseJSON(data []byte) (*Instance, error) {
	root, err := instfile.JSON(data)
	if err != nil {
		return nil, err
	}
	rows, err := instfile.IntSlice(root, "rows")
	if err != nil {
		return nil, err
	}
	if root.Get("n").Exists() {
		n, err := instfile.Int(root, "n")
		if err != nil {
			return nil, err
		}
		if n != len(rows) {
			return nil, instfile.Invalid("n=%d but got %d rows", n, len(rows))
		}
	}
	return fromOneIndexed(rows)
}

func fromOneIndexed(rows []int) (*Instance, error) {
	out := make([]int, len(rows))
	for c, r := range rows {
		out[c] = r - 1
	}
	return NewInstance(out)
}
