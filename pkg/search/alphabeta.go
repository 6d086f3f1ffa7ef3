package search

import (
	"context"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/movegen"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// KingCapturedScore is the side-to-move-relative score (in Pawns units, where
// 1.0 == a pawn, matching pkg/eval's scale) returned the instant the search
// discovers that the side to move has no king left on the board: its king was
// captured by the move just played, one ply up. Spec names this "±200,000
// (centipawns)"; 200,000 centipawns == 2,000 pawns in this package's units.
// This stands in for running the legality filter on every internal search
// node (spec §4.6/§4.12): the search recurses over pseudo-legal moves only,
// and a king-exposing move is punished the ply after it is made, the instant
// the opponent's reply captures the king, rather than rejected up front.
const KingCapturedScore eval.Pawns = 2000

func pastDeadline(ctx context.Context, deadline time.Time) bool {
	if contextx.IsCancelled(ctx) {
		return true
	}
	return !deadline.IsZero() && time.Now().After(deadline)
}

// BestMove runs iterative-deepening-free, single-depth search from the root
// and returns the best legal move found, its score (from the perspective of
// the side to move) and the node count. Each root move is evaluated by
// recursing into quiescence with the remaining depth budget (spec §4.12);
// there is no separate full-width search phase above quiescence. If the side
// to move has no legal move, BestMove returns ok=false and no move, rather
// than a zero Move a caller could mistake for a real one; it does not itself
// adjudicate checkmate or stalemate on the board.
//
// Root moves are evaluated in parallel across independently forked boards, one
// goroutine per legal move and no shared alpha-beta window between them, per
// spec §4.12/§5: "parallelism is bounded by the number of root moves... ties
// at the root are broken by the first move encountered in MVV-LVA order."
func BestMove(ctx context.Context, b *board.Board, tt TranspositionTable, ev eval.Evaluator, depth int, deadline time.Time) (uint64, eval.Pawns, []board.Move, bool) {
	legal := movegen.LegalMoves(b.Position(), b.Turn())
	if len(legal) == 0 {
		return 0, 0, nil, false
	}
	board.SortByPriority(legal, eval.MVVLVA)

	type outcome struct {
		nodes uint64
		score eval.Pawns
		pv    []board.Move
		ok    bool
	}
	results := make([]outcome, len(legal))

	done := make(chan int, len(legal))
	for i, m := range legal {
		i, m := i, m
		go func() {
			defer func() { done <- i }()

			fb := b.Fork()
			if !fb.PushMove(m) {
				return
			}
			nodes, score := quiescence(ctx, fb, tt, ev, depth-1, eval.NegInf, eval.Inf, deadline)
			results[i] = outcome{
				nodes: nodes,
				score: eval.IncrementMateDistance(score).Negate(),
				pv:    []board.Move{m}, // single-move PV: spec excludes PV reporting beyond the best move.
				ok:    true,
			}
		}()
	}
	for range legal {
		<-done
	}

	best := -1
	var total uint64
	for i, o := range results {
		if !o.ok {
			continue
		}
		total += o.nodes
		if best == -1 || o.score > results[best].score {
			best = i
		}
	}
	if best == -1 {
		return total, 0, nil, false
	}
	return total, results[best].score, results[best].pv, true
}
