// Package search implements the engine's alpha-beta search with quiescence
// extension (spec C12): a single-depth best-move search over one position
// (iterative deepening is layered on top by pkg/search/searchctl), move
// ordering by MVV-LVA, a Zobrist-keyed transposition/eval cache, and a soft
// wall-clock deadline. Unlike the teacher this collapses a family of
// pluggable search algorithms (alphabeta/pvs/minimax) and exploration
// strategies down to one concrete implementation, since the engine this
// repository builds only ever runs alpha-beta with quiescence.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// ErrHalted indicates the search was halted (deadline or explicit stop)
// before completing the requested depth.
var ErrHalted = errors.New("search halted")

// PV represents the principal variation found at a given iterative-deepening
// depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Pawns
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table occupancy, [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.FormatMoves(p.Moves, board.Move.String))
}
