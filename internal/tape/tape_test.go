package tape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocReturnsLowestFreeAddress(t *testing.T) {
	tp := New()
	a := tp.Alloc(0, "a")
	b := tp.Alloc(0, "b")
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestReleaseFreesAddressForReuse(t *testing.T) {
	tp := New()
	a := tp.Alloc(0, "a")
	tp.Release(a)
	b := tp.Alloc(0, "b")
	assert.Equal(t, a, b)
}

func TestReleaseIsIdempotent(t *testing.T) {
	tp := New()
	a := tp.Alloc(0, "a")
	tp.Release(a)
	assert.NotPanics(t, func() { tp.Release(a) })
	assert.False(t, tp.Occupied(a))
}

func TestAllocRunFindsContiguousGap(t *testing.T) {
	tp := New()
	tp.Alloc(0, "x")    // occupies 0
	tp.Alloc(1, "y")    // occupies 1
	tp.Release(0)       // free 0 again, leaving a lone gap at 0, run at 2+
	start := tp.AllocRun(3, 0, "run")
	require.Equal(t, 2, start)
	for a := start; a < start+3; a++ {
		assert.True(t, tp.Occupied(a))
	}
}

func TestAllocRunPanicsOnNonPositiveLength(t *testing.T) {
	tp := New()
	assert.Panics(t, func() { tp.AllocRun(0, 0, "bad") })
}

func TestLenTracksLiveCells(t *testing.T) {
	tp := New()
	assert.Equal(t, 0, tp.Len())
	a := tp.Alloc(0, "a")
	tp.Alloc(0, "b")
	assert.Equal(t, 2, tp.Len())
	tp.Release(a)
	assert.Equal(t, 1, tp.Len())
}
