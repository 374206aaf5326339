package hamcycle

import (
	"io"

	"localSearch/internal/instfile"
)

// ReadText parses n followed by n rows of n weights.
func ReadText(r io.Reader) (*Instance, error) {
	lines, err := instfile.Lines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, instfile.Invalid("empty input")
	}
	head, err := instfile.Ints(lines[0], "n")
	if err != nil {
		return nil, err
	}
	if len(head) != 1 || head[0] <= 0 {
		return nil, instfile.Invalid("first line must be a positive vertex count")
	}
	n := head[0]
	if len(lines)-1 < n {
		return nil, instfile.Invalid("expected %d matrix rows, got %d", n, len(lines)-1)
	}
	w := make([]int, 0, n*n)
	for i := 1; i <= n; i++ {
		row, err := instfile.Ints(lines[i], "row")
		if err != nil {
			return nil, err
		}
		if len(row) != n {
			return nil, instfile.Invalid("row %d has %d entries, want %d", i, len(row), n)
		}
		w = append(w, row...)
	}
	return NewInstance(n, w)
}

// ParseJSON reads {"weights": [[...], ...]}; an optional "n" must agree.
func ParseJSON(data []byte) (*Instance, error) {
	root, err := instfile.JSON(data)
	if err != nil {
		return nil, err
	}
	rows, err := instfile.IntMatrix(root, "weights")
	if err != nil {
		return nil, err
	}
	n := len(rows)
	if root.Get("n").Exists() {
		declared, err := instfile.Int(root, "n")
		if err != nil {
			return nil, err
		}
		if declared != n {
			return nil, instfile.Invalid("n=%d but weights has %d rows", declared, n)
		}
	}
	w := make([]int, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, instfile.Invalid("row %d has %d entries, want %d", i+1, len(row), n)
		}
		w = append(w, row...)
	}
	return NewInstance(n, w)
}
