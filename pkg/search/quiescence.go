package search

import (
	"context"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/movegen"
)

// quiescence is the search's single recursive procedure (spec §4.12): every
// node, whatever its remaining depth, is a quiescence node. It checks the
// deadline and the depth budget, the intermediate "king captured" state, and
// whether the position is quiet (no attacks on any opposing piece); only once
// none of those apply does it expand pseudo-legal moves and recurse with
// depth-1. There is no separate full-width phase handed off to a
// captures-only sub-search above some fixed depth -- depth exhaustion and
// quietness are two independent early exits on the same call, and every
// pseudo-legal move (not just captures) is tried once a node is non-quiet.
func quiescence(ctx context.Context, b *board.Board, tt TranspositionTable, ev eval.Evaluator, depth int, alpha, beta eval.Pawns, deadline time.Time) (uint64, eval.Pawns) {
	if pastDeadline(ctx, deadline) || depth <= 0 {
		return 1, cachedEval(ctx, b, tt, ev)
	}
	if b.Result().Outcome == board.Draw {
		return 1, 0
	}

	turn := b.Turn()
	if b.Position().PiecesOf(turn, board.King) == 0 {
		return 1, -KingCapturedScore
	}

	hash := b.Hash()
	if !hasAttacks(b.Position(), turn, hash) {
		// Quiet position: no attacks on any opposing piece, return (and cache)
		// the static eval directly.
		return 1, cachedEvalAt(ctx, b, tt, ev, hash)
	}

	// NOTE: don't cut off on the static eval before trying moves -- a move may
	// still improve on standing pat, and this node isn't a leaf yet.
	pseudo := movegen.PseudoLegalMoves(b.Position(), turn)
	board.SortByPriority(pseudo, eval.MVVLVA)

	var nodes uint64 = 1
	played := 0
	best := eval.NegInf

	for _, m := range pseudo {
		if pastDeadline(ctx, deadline) {
			break
		}
		if !b.PushMove(m) {
			continue
		}
		n, score := quiescence(ctx, b, tt, ev, depth-1, beta.Negate(), alpha.Negate(), deadline)
		b.PopMove()

		nodes += n
		played++

		score = eval.IncrementMateDistance(score).Negate()
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break // beta cutoff
		}
	}

	if played == 0 {
		if result := b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return nodes, eval.NegInf // mated: worst possible score for the side to move
		}
		return nodes, 0 // stalemate
	}
	return nodes, best
}

// cachedEval consults (and populates) the eval cache keyed by the board's
// current Zobrist hash, per spec C11's "only overwritten when the cache slot
// is absent" contract.
func cachedEval(ctx context.Context, b *board.Board, tt TranspositionTable, ev eval.Evaluator) eval.Pawns {
	return cachedEvalAt(ctx, b, tt, ev, b.Hash())
}

func cachedEvalAt(ctx context.Context, b *board.Board, tt TranspositionTable, ev eval.Evaluator, hash board.ZobristHash) eval.Pawns {
	if cached, ok := tt.Read(hash); ok {
		return cached
	}
	score := ev.Evaluate(ctx, b)
	tt.Write(hash, score)
	return score
}

// hasAttacks reports whether turn has any pseudo-legal attack on an opposing
// piece, consulting (and populating) the vision/attack cache keyed by Zobrist
// hash: the bitboard of opposing pieces attacked by turn's pieces. Spec C11
// names this cache "a vision/attack cache" independent of the moves and eval
// caches.
func hasAttacks(pos *board.Position, turn board.Color, hash board.ZobristHash) bool {
	if bb, ok := cache.GetVision(hash); ok {
		return bb != 0
	}
	bb := attackedOpponentPieces(pos, turn)
	cache.InsertVision(hash, bb)
	return bb != 0
}

func attackedOpponentPieces(pos *board.Position, turn board.Color) board.Bitboard {
	opp := turn.Opponent()
	oppOcc := pos.OccupiedBy(opp)
	occupied := pos.Occupied()

	var attacked board.Bitboard
	attacked |= board.PawnCaptureboard(turn, pos.PiecesOf(turn, board.Pawn)) & oppOcc

	for bb := pos.PiecesOf(turn, board.Knight); bb != 0; {
		attacked |= board.KnightAttackboard(bb.PopLSB()) & oppOcc
	}
	for bb := pos.PiecesOf(turn, board.Bishop); bb != 0; {
		attacked |= board.BishopAttackboard(occupied, bb.PopLSB()) & oppOcc
	}
	for bb := pos.PiecesOf(turn, board.Rook); bb != 0; {
		attacked |= board.RookAttackboard(occupied, bb.PopLSB()) & oppOcc
	}
	for bb := pos.PiecesOf(turn, board.Queen); bb != 0; {
		attacked |= board.QueenAttackboard(occupied, bb.PopLSB()) & oppOcc
	}
	attacked |= board.KingAttackboard(pos.PiecesOf(turn, board.King).LSB()) & oppOcc

	if ep, ok := pos.EnPassant(); ok {
		if board.PawnCaptureboard(turn, pos.PiecesOf(turn, board.Pawn)).IsSet(ep) {
			attacked |= board.BitMask(ep)
		}
	}
	return attacked
}
