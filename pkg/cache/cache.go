// Package cache contains the process-wide concurrent caches shared by move
// generation, the legality filter and search: a moves cache (position -> move
// list, used by the opening book), a vision cache (position -> bitboard of
// opposing pieces attacked by the side to move, used by quiescence's "is this
// position quiet" probe) and an
// evaluation cache (position -> static score). All three are generalized from
// the same lock-free table type, grounded on morlock's
// pkg/search/transposition.go table: a power-of-two slice of atomic pointers
// keyed by the low bits of a Zobrist hash, insert-if-absent, no eviction.
package cache

import (
	"math/bits"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/corvidchess/corvid/pkg/board"
)

// Table is a fixed-size, lock-free, insert-if-absent map keyed by a Zobrist
// hash. The hash itself is the index (after masking to the table size): no
// secondary hash is computed, per the "hash key is identity" requirement.
// Concurrent inserts into the same empty slot race; the first successful CAS
// wins, the loser's value is discarded, and there is no replacement policy for an occupied slot -- Insert on an occupied slot
// is a no-op.
type Table[V any] struct {
	slots []unsafe.Pointer // *entry[V]
	mask  uint64
	used  uint64
}

type entry[V any] struct {
	hash  board.ZobristHash
	value V
}

// NewTable allocates a table sized to hold approximately n entries, rounded
// down to the nearest power of two.
func NewTable[V any](n uint64) *Table[V] {
	if n < 2 {
		n = 2
	}
	size := uint64(1) << (63 - bits.LeadingZeros64(n))
	return &Table[V]{
		slots: make([]unsafe.Pointer, size),
		mask:  size - 1,
	}
}

// Get returns the cached value for hash, if present.
func (t *Table[V]) Get(hash board.ZobristHash) (V, bool) {
	addr := &t.slots[uint64(hash)&t.mask]
	if e := (*entry[V])(atomic.LoadPointer(addr)); e != nil && e.hash == hash {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Insert stores value for hash if the slot is empty. Returns true iff it
// stored the value -- an occupied slot, whether for the same or a different
// hash, is left untouched; there is no replacement policy.
func (t *Table[V]) Insert(hash board.ZobristHash, value V) bool {
	addr := &t.slots[uint64(hash)&t.mask]
	if atomic.LoadPointer(addr) != nil {
		return false
	}
	fresh := unsafe.Pointer(&entry[V]{hash: hash, value: value})
	if atomic.CompareAndSwapPointer(addr, nil, fresh) {
		atomic.AddUint64(&t.used, 1)
		return true
	}
	return false
}

// Size returns the number of slots in the table.
func (t *Table[V]) Size() uint64 {
	return uint64(len(t.slots))
}

// Used returns the fraction of slots occupied, in [0;1].
func (t *Table[V]) Used() float64 {
	return float64(atomic.LoadUint64(&t.used)) / float64(len(t.slots))
}

// Config gates which of the three named process-wide caches actually store
// entries. A disabled cache accepts Insert calls and drops them; Get always
// reports absent. All caches are enabled by default.
type Config struct {
	Moves  bool
	Vision bool
	Eval   bool
}

// DefaultConfig enables all three caches.
var DefaultConfig = Config{Moves: true, Vision: true, Eval: true}

const (
	defaultMovesSize  = 1 << 16
	defaultVisionSize = 1 << 18
	defaultEvalSize   = 1 << 20
)

var (
	once sync.Once

	cfg    Config
	moves  *Table[[]board.Move]
	vision *Table[board.Bitboard]
	eval   *Table[int32]
)

// Configure sets the process-wide cache enablement flags. It must be called,
// if at all, before the caches are first used -- it has no effect afterwards,
// since the tables are lazily initialized exactly once.
func Configure(c Config) {
	initCachesWith(c)
}

func initCaches() {
	initCachesWith(DefaultConfig)
}

func initCachesWith(c Config) {
	once.Do(func() {
		cfg = c
		moves = NewTable[[]board.Move](defaultMovesSize)
		vision = NewTable[board.Bitboard](defaultVisionSize)
		eval = NewTable[int32](defaultEvalSize)
	})
}

// GetMoves looks up the moves cache: a position (by Zobrist key) to its list
// of candidate moves, as consulted by the opening book.
func GetMoves(hash board.ZobristHash) ([]board.Move, bool) {
	initCaches()
	if !cfg.Moves {
		return nil, false
	}
	return moves.Get(hash)
}

// InsertMoves stores into the moves cache, if enabled.
func InsertMoves(hash board.ZobristHash, ms []board.Move) {
	initCaches()
	if cfg.Moves {
		moves.Insert(hash, ms)
	}
}

// GetVision looks up the vision/attack cache: a position (by Zobrist key) to
// the bitboard of opposing pieces attacked by the side to move (used to answer
// "is the position quiet" cheaply during quiescence).
func GetVision(hash board.ZobristHash) (board.Bitboard, bool) {
	initCaches()
	if !cfg.Vision {
		return 0, false
	}
	return vision.Get(hash)
}

// InsertVision stores into the vision cache, if enabled.
func InsertVision(hash board.ZobristHash, attackers board.Bitboard) {
	initCaches()
	if cfg.Vision {
		vision.Insert(hash, attackers)
	}
}

// GetEval looks up the evaluation cache: a position (by Zobrist key) to its
// static evaluation, in millipawns, for the side to move.
func GetEval(hash board.ZobristHash) (int32, bool) {
	initCaches()
	if !cfg.Eval {
		return 0, false
	}
	return eval.Get(hash)
}

// InsertEval stores into the evaluation cache, if enabled.
func InsertEval(hash board.ZobristHash, score int32) {
	initCaches()
	if cfg.Eval {
		eval.Insert(hash, score)
	}
}
