package nn_test

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval/nn"
)

func mustPosition(t *testing.T, f string) (*board.Position, board.Color) {
	t.Helper()
	pos, turn, _, _, err := fen.Decode(f)
	require.NoError(t, err)
	return pos, turn
}

func TestLoadRoundTrips(t *testing.T) {
	var want nn.Model
	want.Weights[0] = 1.5
	want.Bias = 0.25

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(want))

	got, err := nn.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.Bias, got.Bias)
	assert.Equal(t, want.Weights[0], got.Weights[0])
}

func TestPredictIsZeroWithZeroWeights(t *testing.T) {
	var m nn.Model
	pos, turn := mustPosition(t, fen.Initial)
	assert.Equal(t, float64(0), m.Predict(pos, turn))
}

func TestPredictEqualsBiasFromEitherPerspective(t *testing.T) {
	// With every weight zero, Predict collapses to the bias term regardless
	// of perspective or position, so flipping perspective flips nothing about
	// the feature sum -- only the caller's use of Predict (eval.WithNN, keyed
	// off the side to move) makes the score perspective-relative.
	var m nn.Model
	m.Bias = 3

	pos, _ := mustPosition(t, fen.Initial)
	assert.Equal(t, float64(3), m.Predict(pos, board.White))
	assert.Equal(t, float64(3), m.Predict(pos, board.Black))
}

func TestPredictIncludesOwnPieceFeature(t *testing.T) {
	pos, turn := mustPosition(t, "4k3/8/8/8/8/8/8/4KP2 w - - 0 1")

	var m nn.Model
	// Weight the single white pawn's feature heavily from White's perspective.
	ksq := pos.PiecesOf(board.White, board.King).LSB()
	psq := pos.PiecesOf(board.White, board.Pawn).LSB()
	idx := featureIndexForTest(board.White, ksq, board.Pawn, psq, true)
	m.Weights[idx] = 10

	assert.Equal(t, float64(10), m.Predict(pos, turn))
}

// featureIndexForTest reimplements nn's unexported featureIndex so the test
// can target a specific feature without depending on package internals.
func featureIndexForTest(perspective board.Color, ksq board.Square, piece board.Piece, psq board.Square, own bool) int {
	const (
		squares = 64
		pieces  = 5
	)
	p := int(piece - board.Pawn)
	side := 0
	if !own {
		side = 1
	}
	return ((int(ksq)*pieces+p)*squares+int(psq))*2 + side
}
