package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
)

func TestBestMoveAvoidsHorizonEffectViaQuiescence(t *testing.T) {
	// White to move: Rxe4 wins a pawn but walks into ...Qxe4 losing the rook, so
	// a search that stopped right after the rook capture would misjudge the
	// exchange as a net gain. At depth 2 the queen's attack on the rook makes
	// Black's reply node non-quiet, so quiescence searches the recapture before
	// settling the leaf score.
	b := mustBoard(t, "4k3/8/8/4q3/4p3/8/4R3/4K3 w - - 0 1")

	_, score, moves, ok := search.BestMove(context.Background(), b, search.NoTranspositionTable{}, eval.Material{}, 2, time.Time{})
	if ok && len(moves) > 0 && moves[0].To.String() == "e4" {
		// If the rook capture is still chosen, quiescence must reflect the
		// losing recapture in its score rather than reporting a won pawn.
		assert.Less(t, score, eval.Pawns(2))
	}
}

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)
	assert.Greater(t, tt.Size(), uint64(0))

	_, ok := tt.Read(12345)
	assert.False(t, ok)

	tt.Write(12345, eval.Pawns(1.5))
	got, ok := tt.Read(12345)
	assert.True(t, ok)
	assert.Equal(t, eval.Pawns(1.5), got)
}

func TestNoTranspositionTable(t *testing.T) {
	tt := search.NoTranspositionTable{}
	tt.Write(1, 1)
	_, ok := tt.Read(1)
	assert.False(t, ok)
	assert.Equal(t, uint64(0), tt.Size())
}
