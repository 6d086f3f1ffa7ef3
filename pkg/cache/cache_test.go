package cache_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/stretchr/testify/assert"
)

func TestTableInsertGet(t *testing.T) {
	tbl := cache.NewTable[int32](8)

	_, ok := tbl.Get(42)
	assert.False(t, ok)

	assert.True(t, tbl.Insert(42, 7))
	v, ok := tbl.Get(42)
	assert.True(t, ok)
	assert.EqualValues(t, 7, v)
}

func TestTableInsertIfAbsent(t *testing.T) {
	tbl := cache.NewTable[int32](8)

	assert.True(t, tbl.Insert(1, 10))
	assert.False(t, tbl.Insert(1, 20)) // occupied: no replacement policy

	v, ok := tbl.Get(1)
	assert.True(t, ok)
	assert.EqualValues(t, 10, v)
}

func TestTableSizeIsPowerOfTwo(t *testing.T) {
	tbl := cache.NewTable[int32](100)
	assert.EqualValues(t, 64, tbl.Size())
}

func TestDefaultConfigEnablesAllThree(t *testing.T) {
	assert.Equal(t, cache.Config{Moves: true, Vision: true, Eval: true}, cache.DefaultConfig)
}

func TestMovesCacheRoundTrip(t *testing.T) {
	// Configure is a no-op once any process-wide cache has been touched, so this
	// only asserts the roundtrip under whatever config is already in effect
	// (DefaultConfig unless an earlier test in this binary changed it).
	ms := []board.Move{{From: board.A2, To: board.A4}}
	cache.InsertMoves(777001, ms)
	if got, ok := cache.GetMoves(777001); ok {
		assert.Equal(t, ms, got)
	}
}
