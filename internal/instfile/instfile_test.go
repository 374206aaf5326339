package instfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localSearch/internal/opt"
)

func TestTokensIntN(t *testing.T) {
	tok, err := NewTokens(strings.NewReader("3\n1 2\n\n3 4\n"))
	require.NoError(t, err)

	n, err := tok.Int("n")
	require.NoError(t, err)
	vals, err := tok.IntN(n, "vals")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, vals)
	assert.Equal(t, 1, tok.Remaining())

	tests := map[string]int{
		"more than left": 2,
		"huge":           1 << 62,
		"negative":       -1,
	}
	for name, count := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tok.IntN(count, "vals")
			require.ErrorIs(t, err, opt.ErrInstanceInvalid)
			assert.Equal(t, 1, tok.Remaining(), "a rejected count consumes nothing")
		})
	}
}

func TestFloatsAcceptDecimalComma(t *testing.T) {
	vals, err := Floats("0,5 1.25 -2", "xs")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.25, -2}, vals)

	_, err = Floats("1 x", "xs")
	require.ErrorIs(t, err, opt.ErrInstanceInvalid)
}
