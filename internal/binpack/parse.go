package binpack

import (
	"io"

	"localSearch/internal/instfile"
)

// ReadText parses capacity, item count and the item sizes.
func ReadText(r io.Reader) (*Instance, error) {
	t, err := instfile.NewTokens(r)
	if err != nil {
		return nil, err
	}
	capacity, err := t.Int("capacity")
	if err != nil {
		return nil, err
	}
	n, err := t.Int("n")
	if err != nil {
		return nil, err
	}
	items, err := t.IntN(n, "items")
	if err != nil {
		return nil, err
	}
	if rest := t.Remaining(); rest > 0 {
		return nil, instfile.Invalid("declared %d items but found %d more values", n, rest)
	}
	return NewInstance(capacity, items)
}

// ParseJSON reads {"capacity": c, "items": [...]}.
func ParseJSON(data []byte) (*Instance, error) {
	root, err := instfile.JSON(data)
	if err != nil {
		return nil, err
	}
	capacity, err := instfile.Int(root, "capacity")
	if err != nil {
		return nil, err
	}
	items, err := instfile.IntSlice(root, "items")
	if err != nil {
		return nil, err
	}
	return NewInstance(capacity, items)
}
