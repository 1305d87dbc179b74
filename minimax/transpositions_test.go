package minimax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/fishderby/game"
)

func TestTableMissingKey(t *testing.T) {
	tt := NewTranspositionTable(false)
	key := synthPos(7).Key()
	assert.False(t, tt.Contains(key))
	_, err := tt.Get(key)
	assert.ErrorIs(t, err, ErrNoSuchKey)
	_, ok := tt.Probe(key, 0)
	assert.False(t, ok)
}

func TestTableFirstWriteWins(t *testing.T) {
	tt := NewTranspositionTable(false)
	key := synthPos(7).Key()
	tt.Put(key, 1.5)
	tt.Put(key, 99)
	tt.PutDepth(key, 42, 8)

	assert.True(t, tt.Contains(key))
	v, err := tt.Get(key)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	assert.Equal(t, 1, tt.Len())

	// depth is ignored when probing a depth-agnostic table.
	v, ok := tt.Probe(key, 100)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)
}

func TestTableDepthAware(t *testing.T) {
	tt := NewTranspositionTable(true)
	key := synthPos(7).Key()
	tt.PutDepth(key, 1, 2)

	_, ok := tt.Probe(key, 3)
	assert.False(t, ok)
	v, ok := tt.Probe(key, 2)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	// shallower results never replace deeper ones.
	tt.PutDepth(key, 5, 1)
	v, _ = tt.Get(key)
	assert.Equal(t, 1.0, v)

	tt.PutDepth(key, 6, 4)
	v, ok = tt.Probe(key, 3)
	assert.True(t, ok)
	assert.Equal(t, 6.0, v)
	assert.Equal(t, 1, tt.Len())
}

func TestTableKeysAreCanonical(t *testing.T) {
	tt := NewTranspositionTable(false)
	hooks := [2]game.Coord{{X: 2, Y: 3}, {X: 9, Y: 1}}
	a := game.NewPosition(hooks,
		map[game.FishID]game.Coord{1: {X: 4, Y: 4}, 0: {X: 5, Y: 5}},
		map[game.FishID]int{0: 3, 1: 7}, [2]int{2, 0})
	b := game.NewPosition(hooks,
		map[game.FishID]game.Coord{0: {X: 5, Y: 5}, 1: {X: 4, Y: 4}},
		map[game.FishID]int{1: 7, 0: 3}, [2]int{2, 0})

	tt.Put(a.Key(), 3)
	v, err := tt.Get(b.Key())
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestTableReset(t *testing.T) {
	tt := NewTranspositionTable(false)
	tt.Presize(0.0001)
	for i := 0; i < 100; i++ {
		tt.Put(synthPos(i).Key(), float64(i))
	}
	tt.Probe(synthPos(3).Key(), 0)
	created, lookups, hits, _ := tt.Stats()
	assert.Equal(t, uint64(100), created)
	assert.Equal(t, uint64(1), lookups)
	assert.Equal(t, uint64(1), hits)

	tt.Reset()
	assert.Equal(t, 0, tt.Len())
	assert.False(t, tt.Contains(synthPos(3).Key()))
}

func TestTablePresizeIsCapped(t *testing.T) {
	tt := NewTranspositionTable(false)
	tt.Presize(1.0)
	assert.Equal(t, MaxPresize, tt.SizeHint())

	tt.Put(synthPos(1).Key(), 1)
	tt.Reset()
	tt.Put(synthPos(2).Key(), 2)
	assert.Equal(t, 1, tt.Len())
	assert.False(t, tt.Contains(synthPos(1).Key()))
	assert.True(t, tt.Contains(synthPos(2).Key()))
}
