package eval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval"
)

func mustBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, np, fm, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, np, fm)
}

func TestMaterialEvaluatesStartingPositionAsLevel(t *testing.T) {
	b := mustBoard(t, fen.Initial)
	assert.Equal(t, eval.Pawns(0), eval.Material{}.Evaluate(context.Background(), b))
}

func TestMaterialRewardsExtraPiece(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKB1R w KQkq - 0 1") // black missing a knight
	score := eval.Material{}.Evaluate(context.Background(), b)
	assert.Greater(t, score, eval.Pawns(0))
}

func TestNominalValueGain(t *testing.T) {
	capture := board.Move{Piece: board.Knight, Capture: board.Rook}
	assert.Equal(t, eval.NominalValue(board.Rook), eval.NominalValueGain(capture))

	promotion := board.Move{Piece: board.Pawn, Promotion: board.Queen}
	assert.Equal(t, eval.NominalValue(board.Queen)-eval.NominalValue(board.Pawn), eval.NominalValueGain(promotion))

	quiet := board.Move{Piece: board.Knight}
	assert.Equal(t, eval.Pawns(0), eval.NominalValueGain(quiet))
}

func TestMVVLVAPrefersBestTradeFirst(t *testing.T) {
	pawnTakesQueen := board.Move{Piece: board.Pawn, Capture: board.Queen}
	queenTakesPawn := board.Move{Piece: board.Queen, Capture: board.Pawn}
	quiet := board.Move{Piece: board.Knight}

	assert.Greater(t, eval.MVVLVA(pawnTakesQueen), eval.MVVLVA(queenTakesPawn))
	assert.Greater(t, eval.MVVLVA(queenTakesPawn), eval.MVVLVA(quiet))
}

func TestPawnStructurePenalizesDoubledPawns(t *testing.T) {
	doubled, err := board.NewPosition([]board.Placement{
		{Square: board.A2, Color: board.White, Piece: board.Pawn},
		{Square: board.A3, Color: board.White, Piece: board.Pawn},
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}, 0, board.ZeroSquare)
	require.NoError(t, err)

	healthy, err := board.NewPosition([]board.Placement{
		{Square: board.A2, Color: board.White, Piece: board.Pawn},
		{Square: board.B3, Color: board.White, Piece: board.Pawn},
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}, 0, board.ZeroSquare)
	require.NoError(t, err)

	assert.Less(t, eval.PawnStructure(doubled, board.White), eval.PawnStructure(healthy, board.White))
}

func TestRandomIsDeterministicPerSeed(t *testing.T) {
	b := mustBoard(t, fen.Initial)
	a := eval.Randomize(eval.Material{}, 20, 42).Evaluate(context.Background(), b)
	c := eval.Randomize(eval.Material{}, 20, 42).Evaluate(context.Background(), b)
	assert.Equal(t, a, c)
}
