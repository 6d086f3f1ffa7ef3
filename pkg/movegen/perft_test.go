package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/movegen"
)

// perft counts the leaves of the legal-move tree to the given depth, the
// standard move-generation correctness check: see
// https://www.chessprogramming.org/Perft_Results.
func perft(pos *board.Position, turn board.Color, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range movegen.LegalMoves(pos, turn) {
		next := pos.ApplyMove(turn, m)
		nodes += perft(next, turn.Opponent(), depth-1)
	}
	return nodes
}

// TestPerftFromStartingPosition pins down the exact leaf counts from the
// standard starting position, depths 1-4. Depths 5-6 (4,865,609 and
// 119,060,324 leaves) are the same property but too slow for a unit test;
// they are exercised instead by cmd/perft against this same LegalMoves path.
func TestPerftFromStartingPosition(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tt := range tests {
		if testing.Short() && tt.depth >= 4 {
			continue
		}
		require.Equal(t, tt.expected, perft(pos, turn, tt.depth), "perft(%v)", tt.depth)
	}
}

// TestPerftKiwipete exercises castling, en passant and promotions together, via
// the well-known "Kiwipete" position (Peter McKenzie's perft test suite).
func TestPerftKiwipete(t *testing.T) {
	pos, turn, _, _, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, tt := range tests {
		if testing.Short() && tt.depth >= 3 {
			continue
		}
		require.Equal(t, tt.expected, perft(pos, turn, tt.depth), "perft(%v)", tt.depth)
	}
}
