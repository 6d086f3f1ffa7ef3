package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/logw"
)

// TranspositionTable memoizes static evaluations by Zobrist key, per spec
// C11: "only overwritten when the cache slot is absent; no replacement
// policy". It is a thin, millipawn-quantized view over a dedicated
// pkg/cache.Table, sized in bytes at construction (the engine's "Hash"
// option), distinct from the process-wide singleton caches in pkg/cache
// (which are unsized and shared across engine instances).
type TranspositionTable interface {
	// Read returns the cached score for hash, for the side to move, if present.
	Read(hash board.ZobristHash) (eval.Pawns, bool)
	// Write stores score for hash. A no-op if the slot is already occupied.
	Write(hash board.ZobristHash, score eval.Pawns)

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64
}

// TranspositionTableFactory builds a TranspositionTable of approximately the
// given size in bytes.
type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

const bytesPerEntry = 24 // hash (8) + millipawn score (4), rounded up for pointer/slice overhead.

// NewTranspositionTable allocates a table sized to roughly size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := size / bytesPerEntry
	t := &table{t: cache.NewTable[int32](n)}

	logw.Infof(ctx, "Allocating %vMB TT with %v entries", size>>20, t.t.Size())
	return t
}

type table struct {
	t *cache.Table[int32]
}

func (t *table) Read(hash board.ZobristHash) (eval.Pawns, bool) {
	v, ok := t.t.Get(hash)
	if !ok {
		return 0, false
	}
	return eval.Pawns(v) / 1000, true
}

func (t *table) Write(hash board.ZobristHash, score eval.Pawns) {
	t.t.Insert(hash, int32(score*1000))
}

func (t *table) Size() uint64 {
	return t.t.Size() * bytesPerEntry
}

func (t *table) Used() float64 {
	return t.t.Used()
}

// NoTranspositionTable is a Nop implementation, used when the engine is
// configured with Hash=0.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(hash board.ZobristHash) (eval.Pawns, bool) { return 0, false }
func (NoTranspositionTable) Write(hash board.ZobristHash, score eval.Pawns) {}
func (NoTranspositionTable) Size() uint64                                  { return 0 }
func (NoTranspositionTable) Used() float64                                 { return 0 }
