package eval

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
)

// Evaluator is a static position evaluator, returning the score in pawns for the
// side to move.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Pawns
}

// Material is the simplest possible evaluator: the nominal material balance for
// the side to move, ignoring everything else.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()

	var score Pawns
	for p := board.Pawn; p <= board.King; p++ {
		score += Pawns(pos.PiecesOf(turn, p).PopCount()-pos.PiecesOf(turn.Opponent(), p).PopCount()) * NominalValue(p)
	}
	return score
}

// PestoEvaluator is the default full evaluator: material plus piece-square
// tables, king safety and pawn structure, each an independent term summed into
// the total, for the side to move.
type PestoEvaluator struct{}

func (PestoEvaluator) Evaluate(ctx context.Context, b *board.Board) Pawns {
	hash := b.Hash()
	if v, ok := cache.GetEval(hash); ok {
		return Pawns(v) / 1000
	}

	pos := b.Position()
	turn := b.Turn()

	score := materialAndPST(pos, turn) - materialAndPST(pos, turn.Opponent())
	score += KingSafety(pos, turn) - KingSafety(pos, turn.Opponent())
	score += PawnStructure(pos, turn) - PawnStructure(pos, turn.Opponent())
	score = Crop(score)

	cache.InsertEval(hash, int32(score*1000))
	return score
}

// NominalValue is the absolute nominal value in pawns of a piece. The king has
// an arbitrary large value so that exchange evaluation never treats it as a
// capturable piece of ordinary worth.
func NominalValue(p board.Piece) Pawns {
	switch p {
	case board.Pawn:
		return 1
	case board.Knight:
		return 3
	case board.Bishop:
		return 3.25
	case board.Rook:
		return 5
	case board.Queen:
		return 9
	case board.King:
		return 100
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of a move: the value of what it
// captures and/or promotes to, net of the pawn given up on promotion.
func NominalValueGain(m board.Move) Pawns {
	var gain Pawns
	if m.Capture != board.NoPiece {
		gain += NominalValue(m.Capture)
	} else if m.IsEnPassant() {
		gain += NominalValue(board.Pawn)
	}
	if m.Promotion != board.NoPiece {
		gain += NominalValue(m.Promotion) - NominalValue(board.Pawn)
	}
	return gain
}
