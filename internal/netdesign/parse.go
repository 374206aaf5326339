package netdesign

import (
	"io"

	"localSearch/internal/instfile"
)

// ReadText parses five lines: N, M, K, the x coordinates and the y
// coordinates. Coordinates may use a decimal comma.
func ReadText(r io.Reader) (*Instance, error) {
	lines, err := instfile.Lines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 5 {
		return nil, instfile.Invalid("expected 5 non-empty lines, got %d", len(lines))
	}
	var head [3]int
	for i, what := range []string{"N", "M", "K"} {
		v, err := instfile.Ints(lines[i], what)
		if err != nil {
			return nil, err
		}
		if len(v) != 1 {
			return nil, instfile.Invalid("line %d must hold %s alone", i+1, what)
		}
		head[i] = v[0]
	}
	xs, err := instfile.Floats(lines[3], "x")
	if err != nil {
		return nil, err
	}
	ys, err := instfile.Floats(lines[4], "y")
	if err != nil {
		return nil, err
	}
	if len(xs) != head[0] || len(ys) != head[0] {
		return nil, instfile.Invalid("N=%d but got %d x and %d y coordinates", head[0], len(xs), len(ys))
	}
	return NewInstance(head[1], head[2], xs, ys)
}

// ParseJSON reads {"n": N, "m": M, "k": K, "xs": [...], "ys": [...]};
// "n" is optional.
func ParseJSON(data []byte) (*Instance, error) {
	root, err := instfile.JSON(data)
	if err != nil {
		return nil, err
	}
	m, err := instfile.Int(root, "m")
	if err != nil {
		return nil, err
	}
	k, err := instfile.Int(root, "k")
	if err != nil {
		return nil, err
	}
	xs, err := instfile.FloatSlice(root, "xs")
	if err != nil {
		return nil, err
	}
	ys, err := instfile.FloatSlice(root, "ys")
	if err != nil {
		return nil, err
	}
	if root.Get("n").Exists() {
		n, err := instfile.Int(root, "n")
		if err != nil {
			return nil, err
		}
		if n != len(xs) || n != len(ys) {
			return nil, instfile.Invalid("n=%d but got %d x and %d y coordinates", n, len(xs), len(ys))
		}
	}
	return NewInstance(m, k, xs, ys)
}
