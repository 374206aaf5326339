package ts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	assert.False(t, DefaultConfig().Enabled())
	assert.Error(t, Config{Tenure: -1}.Validate())
	assert.Error(t, Config{TenureRand: -1}.Validate())
}

func TestForbidExpires(t *testing.T) {
	l := New(Config{Tenure: 3})
	k := PairKey(2, 5)
	l.Forbid(k, 10, nil)

	assert.True(t, l.IsTabu(k, 10))
	assert.True(t, l.IsTabu(k, 12))
	assert.False(t, l.IsTabu(k, 13))
	assert.False(t, l.IsTabu(PairKey(2, 6), 10))
}

func TestForbidDisabledIsNoop(t *testing.T) {
	l := New(DefaultConfig())
	l.Forbid(PairKey(1, 2), 0, rand.New(rand.NewSource(1)))
	assert.False(t, l.IsTabu(PairKey(1, 2), 0))
}

func TestRandomTenureBounds(t *testing.T) {
	l := New(Config{Tenure: 2, TenureRand: 3})
	rng := rand.New(rand.NewSource(9))
	for k := uint64(1); k <= 50; k++ {
		l.Forbid(k, 0, rng)
		assert.True(t, l.IsTabu(k, 1))
		assert.False(t, l.IsTabu(k, 5))
	}
}

func TestRemoveAndClone(t *testing.T) {
	l := New(Config{Tenure: 100})
	a, b := PairKey(0, 1), PairKey(3, 4)
	l.Forbid(a, 0, nil)

	c := l.Clone()
	l.Remove(a)
	l.Forbid(b, 0, nil)

	assert.False(t, l.IsTabu(a, 1))
	assert.True(t, c.IsTabu(a, 1), "clone keeps its own entries")
	assert.False(t, c.IsTabu(b, 1))
}

func TestRingEvictsOldest(t *testing.T) {
	l := New(Config{Tenure: 1})
	size := len(l.key)
	for k := uint64(1); k <= uint64(size)+1; k++ {
		l.Add(k, 1000)
	}
	assert.False(t, l.IsTabu(1, 0), "first key was overwritten")
	assert.True(t, l.IsTabu(2, 0))
	assert.True(t, l.IsTabu(uint64(size)+1, 0))
}

func TestPairKey(t *testing.T) {
	assert.Equal(t, PairKey(3, 7), PairKey(7, 3))
	assert.NotEqual(t, PairKey(3, 7), PairKey(3, 8))
	assert.NotZero(t, PairKey(0, 0))
}

func TestRestoreKeepsEarlierExpiry(t *testing.T) {
	l := New(Config{Tenure: 50})
	k := PairKey(1, 4)
	l.Forbid(k, 0, nil)

	exp, ok := l.Expiry(k)
	require.True(t, ok)
	l.Forbid(k, 10, nil)
	l.Restore(k, exp, ok)
	got, _ := l.Expiry(k)
	assert.Equal(t, 50, got)

	fresh := PairKey(2, 3)
	exp, ok = l.Expiry(fresh)
	require.False(t, ok)
	l.Forbid(fresh, 0, nil)
	l.Restore(fresh, exp, ok)
	assert.False(t, l.IsTabu(fresh, 0))
}
