package knapsack

import (
	"io"

	"localSearch/internal/instfile"
)

// ReadText parses three non-empty lines: capacity, benefits, costs.
func ReadText(r io.Reader) (*Instance, error) {
	lines, err := instfile.Lines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, instfile.Invalid("expected 3 lines (capacity, benefits, costs), got %d", len(lines))
	}
	capacity, err := instfile.Ints(lines[0], "capacity")
	if err != nil {
		return nil, err
	}
	if len(capacity) != 1 {
		return nil, instfile.Invalid("capacity line must hold one value (got %d)", len(capacity))
	}
	benefits, err := instfile.Ints(lines[1], "benefits")
	if err != nil {
		return nil, err
	}
	costs, err := instfile.Ints(lines[2], "costs")
	if err != nil {
		return nil, err
	}
	return NewInstance(capacity[0], benefits, costs)
}

// ParseJSON reads {"capacity": c, "benefits": [...], "costs": [...]}.
func ParseJSON(data []byte) (*Instance, error) {
	root, err := instfile.JSON(data)
	if err != nil {
		return nil, err
	}
	capacity, err := instfile.Int(root, "capacity")
	if err != nil {
		return nil, err
	}
	benefits, err := instfile.IntSlice(root, "benefits")
	if err != nil {
		return nil, err
	}
	costs, err := instfile.IntSlice(root, "costs")
	if err != nil {
		return nil, err
	}
	return NewInstance(capacity, benefits, costs)
}
