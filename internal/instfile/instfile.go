// Package instfile holds the small readers shared by the instance loaders:
// a line/token scanner for the whitespace formats and gjson helpers for JSON.
package instfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"localSearch/internal/opt"
)

// Lines returns the non-empty lines of r, trimmed.
func Lines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		if ln := strings.TrimSpace(sc.Text()); ln != "" {
			out = append(out, ln)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ints parses every whitespace-separated field of line.
func Ints(line, what string) ([]int, error) {
	fields := strings.Fields(line)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, Invalid("%s[%d]: %q is not an integer", what, i, f)
		}
		out[i] = v
	}
	return out, nil
}

// Floats parses every field of line; a decimal comma is accepted.
func Floats(line, what string) ([]float64, error) {
	fields := strings.Fields(line)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseFloat(f)
		if err != nil {
			return nil, Invalid("%s[%d]: %q is not a number", what, i, f)
		}
		out[i] = v
	}
	return out, nil
}

func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// Invalid formats an error wrapping opt.ErrInstanceInvalid.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", opt.ErrInstanceInvalid, fmt.Sprintf(format, args...))
}

// Tokens reads a whole stream as integer tokens, ignoring line structure.
type Tokens struct {
	toks []string
	pos  int
}

func NewTokens(r io.Reader) (*Tokens, error) {
	lines, err := Lines(r)
	if err != nil {
		return nil, err
	}
	t := &Tokens{}
	for _, ln := range lines {
		t.toks = append(t.toks, strings.Fields(ln)...)
	}
	return t, nil
}

// Int reads the next integer; what names the field in errors.
func (t *Tokens) Int(what string) (int, error) {
	if t.pos >= len(t.toks) {
		return 0, Invalid("%s: unexpected end of input", what)
	}
	f := t.toks[t.pos]
	v, err := strconv.Atoi(f)
	if err != nil {
		return 0, Invalid("%s: %q is not an integer", what, f)
	}
	t.pos++
	return v, nil
}

func (t *Tokens) IntN(n int, what string) ([]int, error) {
	if n < 0 {
		return nil, Invalid("%s: negative count %d", what, n)
	}
	if n > t.Remaining() {
		return nil, Invalid("%s: expected %d values, %d left", what, n, t.Remaining())
	}
	out := make([]int, n)
	for i := range out {
		v, err := t.Int(fmt.Sprintf("%s[%d]", what, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (t *Tokens) Remaining() int { return len(t.toks) - t.pos }

var errNotJSON = errors.New("input is not valid JSON")

// JSON validates data and returns its root.
func JSON(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: %v", opt.ErrInstanceInvalid, errNotJSON)
	}
	return gjson.ParseBytes(data), nil
}

// Field returns root.key or an error when it is absent.
func Field(root gjson.Result, key string) (gjson.Result, error) {
	v := root.Get(key)
	if !v.Exists() {
		return v, Invalid("missing field %q", key)
	}
	return v, nil
}

func Int(root gjson.Result, key string) (int, error) {
	v, err := Field(root, key)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number {
		return 0, Invalid("field %q must be a number", key)
	}
	return int(v.Int()), nil
}

func IntSlice(root gjson.Result, key string) ([]int, error) {
	v, err := Field(root, key)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, Invalid("field %q must be an array", key)
	}
	arr := v.Array()
	out := make([]int, len(arr))
	for i, item := range arr {
		if item.Type != gjson.Number {
			return nil, Invalid("%s[%d] must be a number", key, i)
		}
		out[i] = int(item.Int())
	}
	return out, nil
}

// FloatSlice also accepts numeric strings with a decimal comma.
func FloatSlice(root gjson.Result, key string) ([]float64, error) {
	v, err := Field(root, key)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, Invalid("field %q must be an array", key)
	}
	arr := v.Array()
	out := make([]float64, len(arr))
	for i, item := range arr {
		switch item.Type {
		case gjson.Number:
			out[i] = item.Float()
		case gjson.String:
			f, err := ParseFloat(item.Str)
			if err != nil {
				return nil, Invalid("%s[%d]: %q is not a number", key, i, item.Str)
			}
			out[i] = f
		default:
			return nil, Invalid("%s[%d] must be a number", key, i)
		}
	}
	return out, nil
}

// IntMatrix reads an array of integer rows; rows may be ragged, callers check shape.
func IntMatrix(root gjson.Result, key string) ([][]int, error) {
	v, err := Field(root, key)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, Invalid("field %q must be an array of rows", key)
	}
	rows := v.Array()
	out := make([][]int, len(rows))
	for i, row := range rows {
		if !row.IsArray() {
			return nil, Invalid("%s[%d] must be an array", key, i)
		}
		cells := row.Array()
		out[i] = make([]int, len(cells))
		for j, c := range cells {
			if c.Type != gjson.Number {
				return nil, Invalid("%s[%d][%d] must be a number", key, i, j)
			}
			out[i][j] = int(c.Int())
		}
	}
	return out, nil
}
