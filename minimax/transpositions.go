package minimax

import (
	"errors"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/fishderby/game"
)

var ErrNoSuchKey = errors.New("no such key in transposition table")

// entrySize is a rough per-entry cost, used only to presize the table.
const entrySize = 96

// MaxPresize caps the capacity hint; the table itself is unbounded. A
// decision cycle stores a few thousand positions.
const MaxPresize = 1 << 14

type tableEntry struct {
	key   game.ConfigurationKey
	value float64
	depth int
}

// TranspositionTable maps configuration keys to search values. Entries are
// bucketed by an xxhash of the key and verified against the full key, so a
// hash collision can never return a value for the wrong position.
//
// In the default mode the depth a value was computed at is ignored: the
// first write for a key wins and every probe hits. In depth-aware mode a
// probe only hits entries searched at least as deep as requested, and
// deeper results overwrite shallower ones.
//
// A TranspositionTable is not safe for concurrent use.
type TranspositionTable struct {
	buckets    map[uint64][]tableEntry
	depthAware bool
	sizeHint   int

	created    uint64
	lookups    uint64
	hits       uint64
	collisions uint64
}

// NewTranspositionTable creates an empty table.
func NewTranspositionTable(depthAware bool) *TranspositionTable {
	return &TranspositionTable{
		buckets:    make(map[uint64][]tableEntry),
		depthAware: depthAware,
	}
}

// Presize sets the initial capacity of an empty table from a fraction of
// the system memory.
func (t *TranspositionTable) Presize(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desired := int(fractionOfMemory * float64(totalMem) / entrySize)
	t.sizeHint = max(0, min(desired, MaxPresize))
	log.Debug().Int("size-hint", t.sizeHint).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-presize")
	if len(t.buckets) == 0 {
		t.buckets = make(map[uint64][]tableEntry, t.sizeHint)
	}
}

// SizeHint is the capacity the table was presized with.
func (t *TranspositionTable) SizeHint() int {
	return t.sizeHint
}

// DepthAware reports the probing mode.
func (t *TranspositionTable) DepthAware() bool {
	return t.depthAware
}

func (t *TranspositionTable) find(key game.ConfigurationKey) (uint64, int) {
	h := xxhash.Sum64String(string(key))
	for i, e := range t.buckets[h] {
		if e.key == key {
			return h, i
		}
	}
	return h, -1
}

// Contains reports whether a value is stored for key.
func (t *TranspositionTable) Contains(key game.ConfigurationKey) bool {
	_, i := t.find(key)
	return i >= 0
}

// Get returns the value stored for key, or ErrNoSuchKey.
func (t *TranspositionTable) Get(key game.ConfigurationKey) (float64, error) {
	h, i := t.find(key)
	if i < 0 {
		return 0, ErrNoSuchKey
	}
	return t.buckets[h][i].value, nil
}

// Put stores value for key unless the key is already present.
func (t *TranspositionTable) Put(key game.ConfigurationKey, value float64) {
	t.PutDepth(key, value, 0)
}

// PutDepth stores a value together with the depth it was searched at.
func (t *TranspositionTable) PutDepth(key game.ConfigurationKey, value float64, depth int) {
	h, i := t.find(key)
	if i >= 0 {
		if t.depthAware && depth > t.buckets[h][i].depth {
			t.buckets[h][i] = tableEntry{key: key, value: value, depth: depth}
		}
		return
	}
	if len(t.buckets[h]) > 0 {
		t.collisions++
	}
	t.buckets[h] = append(t.buckets[h], tableEntry{key: key, value: value, depth: depth})
	t.created++
}

// Probe looks a key up for a search of the given remaining depth.
func (t *TranspositionTable) Probe(key game.ConfigurationKey, depth int) (float64, bool) {
	t.lookups++
	h, i := t.find(key)
	if i < 0 {
		return 0, false
	}
	e := t.buckets[h][i]
	if t.depthAware && e.depth < depth {
		return 0, false
	}
	t.hits++
	return e.value, true
}

// Len is the number of stored keys.
func (t *TranspositionTable) Len() int {
	return int(t.created)
}

// Reset empties the table and its counters. The map is cleared in place.
func (t *TranspositionTable) Reset() {
	if t.buckets == nil {
		t.buckets = make(map[uint64][]tableEntry, t.sizeHint)
	} else {
		clear(t.buckets)
	}
	t.created = 0
	t.lookups = 0
	t.hits = 0
	t.collisions = 0
}

// Stats returns the counters: stored keys, probes, hits and bucket collisions.
func (t *TranspositionTable) Stats() (created, lookups, hits, collisions uint64) {
	return t.created, t.lookups, t.hits, t.collisions
}
