package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/movegen"
)

func TestPseudoLegalMoves(t *testing.T) {
	t.Run("pawns", func(t *testing.T) {
		tests := []struct {
			name      string
			turn      board.Color
			pieces    []board.Placement
			enpassant board.Square
			expected  []board.Move
		}{
			{
				"empty board",
				board.White,
				nil,
				board.ZeroSquare,
				nil,
			},
			{
				"push and jump",
				board.White,
				[]board.Placement{
					{Square: board.E2, Color: board.White, Piece: board.Pawn},
					{Square: board.G5, Color: board.White, Piece: board.Pawn},
				},
				board.ZeroSquare,
				[]board.Move{
					{Piece: board.Pawn, From: board.E2, To: board.E3},
					{Piece: board.Pawn, From: board.E2, To: board.E4},
					{Piece: board.Pawn, From: board.G5, To: board.G6},
				},
			},
			{
				"black push and jump",
				board.Black,
				[]board.Placement{
					{Square: board.C7, Color: board.Black, Piece: board.Pawn},
					{Square: board.G6, Color: board.Black, Piece: board.Pawn},
				},
				board.ZeroSquare,
				[]board.Move{
					{Piece: board.Pawn, From: board.G6, To: board.G5},
					{Piece: board.Pawn, From: board.C7, To: board.C6},
					{Piece: board.Pawn, From: board.C7, To: board.C5},
				},
			},
			{
				"obstructed with captures",
				board.White,
				[]board.Placement{
					{Square: board.E2, Color: board.White, Piece: board.Pawn},
					{Square: board.E4, Color: board.Black, Piece: board.Bishop},
					{Square: board.D3, Color: board.Black, Piece: board.Knight},
					{Square: board.H5, Color: board.White, Piece: board.Pawn},
					{Square: board.G6, Color: board.Black, Piece: board.Bishop},
				},
				board.ZeroSquare,
				[]board.Move{
					{Piece: board.Pawn, From: board.E2, To: board.D3, Capture: board.Knight},
					{Piece: board.Pawn, From: board.E2, To: board.E3},
					{Piece: board.Pawn, From: board.H5, To: board.G6, Capture: board.Bishop},
					{Piece: board.Pawn, From: board.H5, To: board.H6},
				},
			},
			{
				"promotion",
				board.White,
				[]board.Placement{
					{Square: board.D7, Color: board.White, Piece: board.Pawn},
				},
				board.ZeroSquare,
				[]board.Move{
					{Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Queen},
					{Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Rook},
					{Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Bishop},
					{Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Knight},
				},
			},
			{
				"en passant, two takers",
				board.Black,
				[]board.Placement{
					{Square: board.C4, Color: board.Black, Piece: board.Pawn},
					{Square: board.D4, Color: board.White, Piece: board.Pawn},
					{Square: board.E4, Color: board.Black, Piece: board.Pawn},
					{Square: board.F4, Color: board.Black, Piece: board.Pawn},
				},
				board.D3,
				[]board.Move{
					{Piece: board.Pawn, From: board.F4, To: board.F3},
					{Piece: board.Pawn, From: board.E4, To: board.E3},
					{Piece: board.Pawn, From: board.E4, To: board.D3},
					{Piece: board.Pawn, From: board.C4, To: board.C3},
					{Piece: board.Pawn, From: board.C4, To: board.D3},
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				pos, err := board.NewPosition(withKings(tt.pieces, tt.turn), 0, tt.enpassant)
				require.NoError(t, err)

				actual := stripKingMoves(movegen.PseudoLegalMoves(pos, tt.turn))
				assert.ElementsMatch(t, tt.expected, actual)
			})
		}
	})

	t.Run("officers", func(t *testing.T) {
		tests := []struct {
			name     string
			pieces   []board.Placement
			expected []board.Move
		}{
			{
				"knight",
				[]board.Placement{
					{Square: board.A3, Color: board.White, Piece: board.Knight},
					{Square: board.B1, Color: board.Black, Piece: board.Rook},
					{Square: board.B5, Color: board.Black, Piece: board.Bishop},
					{Square: board.C2, Color: board.Black, Piece: board.Queen},
				},
				[]board.Move{
					{Piece: board.Knight, From: board.A3, To: board.C4},
					{Piece: board.Knight, From: board.A3, To: board.B5, Capture: board.Bishop},
					{Piece: board.Knight, From: board.A3, To: board.B1, Capture: board.Rook},
					{Piece: board.Knight, From: board.A3, To: board.C2, Capture: board.Queen},
				},
			},
			{
				"bishop partly obstructed",
				[]board.Placement{
					{Square: board.G3, Color: board.White, Piece: board.Bishop},
					{Square: board.F2, Color: board.Black, Piece: board.Rook},
					{Square: board.E5, Color: board.Black, Piece: board.Rook},
				},
				[]board.Move{
					{Piece: board.Bishop, From: board.G3, To: board.H2},
					{Piece: board.Bishop, From: board.G3, To: board.H4},
					{Piece: board.Bishop, From: board.G3, To: board.F4},
					{Piece: board.Bishop, From: board.G3, To: board.E5, Capture: board.Rook},
					{Piece: board.Bishop, From: board.G3, To: board.F2, Capture: board.Rook},
				},
			},
			{
				"rook",
				[]board.Placement{
					{Square: board.D3, Color: board.White, Piece: board.Rook},
					{Square: board.B3, Color: board.Black, Piece: board.Rook},
					{Square: board.E3, Color: board.Black, Piece: board.Bishop},
					{Square: board.D5, Color: board.Black, Piece: board.Queen},
				},
				[]board.Move{
					{Piece: board.Rook, From: board.D3, To: board.D1},
					{Piece: board.Rook, From: board.D3, To: board.D2},
					{Piece: board.Rook, From: board.D3, To: board.C3},
					{Piece: board.Rook, From: board.D3, To: board.B3, Capture: board.Rook},
					{Piece: board.Rook, From: board.D3, To: board.E3, Capture: board.Bishop},
					{Piece: board.Rook, From: board.D3, To: board.D4},
					{Piece: board.Rook, From: board.D3, To: board.D5, Capture: board.Queen},
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				pos, err := board.NewPosition(withKings(tt.pieces, board.White), 0, board.ZeroSquare)
				require.NoError(t, err)

				actual := stripKingMoves(movegen.PseudoLegalMoves(pos, board.White))
				assert.ElementsMatch(t, tt.expected, actual)
			})
		}
	})

	t.Run("castling", func(t *testing.T) {
		tests := []struct {
			name     string
			pieces   []board.Placement
			castling board.Castling
			expected []board.Move
		}{
			{
				"no rights",
				[]board.Placement{
					{Square: board.E1, Color: board.White, Piece: board.King},
					{Square: board.H1, Color: board.White, Piece: board.Rook},
					{Square: board.A1, Color: board.White, Piece: board.Rook},
					{Square: board.E8, Color: board.Black, Piece: board.King},
				},
				0,
				nil,
			},
			{
				"full rights",
				[]board.Placement{
					{Square: board.E1, Color: board.White, Piece: board.King},
					{Square: board.H1, Color: board.White, Piece: board.Rook},
					{Square: board.A1, Color: board.White, Piece: board.Rook},
					{Square: board.E8, Color: board.Black, Piece: board.King},
				},
				board.FullCastingRights,
				[]board.Move{
					{Piece: board.King, From: board.E1, To: board.G1},
					{Piece: board.King, From: board.E1, To: board.C1},
				},
			},
			{
				"obstructed kingside",
				[]board.Placement{
					{Square: board.E8, Color: board.Black, Piece: board.King},
					{Square: board.H8, Color: board.Black, Piece: board.Rook},
					{Square: board.G8, Color: board.White, Piece: board.Bishop},
					{Square: board.A8, Color: board.Black, Piece: board.Rook},
					{Square: board.E1, Color: board.White, Piece: board.King},
				},
				board.FullCastingRights,
				[]board.Move{
					{Piece: board.King, From: board.E8, To: board.C8},
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				pos, err := board.NewPosition(tt.pieces, tt.castling, board.ZeroSquare)
				require.NoError(t, err)

				// The castling fixtures name the mover's king square in the expected
				// moves' From field (E1 for white, E8 for black); the no-rights
				// fixture exercises white, since expected is empty either way.
				mover := board.White
				if len(tt.expected) > 0 && tt.expected[0].From == board.E8 {
					mover = board.Black
				}

				actual := filterCastles(movegen.PseudoLegalMoves(pos, mover))
				assert.ElementsMatch(t, tt.expected, actual)
			})
		}
	})

	t.Run("perft1", func(t *testing.T) {
		pos, turn, _, _, err := fen.Decode("r4rk1/1pp1qppp/p1np1n2/2b1p1B1/1PB1P1b1/P1NP1N2/2P1QPPP/R4RK1 b - b3 0 10")
		require.NoError(t, err)

		moves := movegen.PseudoLegalMoves(pos, turn)
		assert.Len(t, moves, 45)
	})
}

// withKings adds a king for each side not already present among pieces, placed on
// a corner far from the action, so that positions built for officer/pawn-only
// fixtures still satisfy NewPosition's one-king-per-side rule.
func withKings(pieces []board.Placement, turn board.Color) []board.Placement {
	hasWhiteKing, hasBlackKing := false, false
	for _, p := range pieces {
		if p.Piece == board.King {
			if p.Color == board.White {
				hasWhiteKing = true
			} else {
				hasBlackKing = true
			}
		}
	}
	if !hasWhiteKing {
		pieces = append(pieces, board.Placement{Square: board.H1, Color: board.White, Piece: board.King})
	}
	if !hasBlackKing {
		pieces = append(pieces, board.Placement{Square: board.A8, Color: board.Black, Piece: board.King})
	}
	return pieces
}

// stripKingMoves filters out the king moves added by withKings's filler king, which
// the fixtures above don't intend to exercise.
func stripKingMoves(ms []board.Move) []board.Move {
	var ret []board.Move
	for _, m := range ms {
		if m.Piece == board.King && (m.From == board.H1 || m.From == board.A8) {
			continue
		}
		ret = append(ret, m)
	}
	return ret
}

func filterCastles(ms []board.Move) []board.Move {
	var ret []board.Move
	for _, m := range ms {
		if m.IsCastle() {
			ret = append(ret, m)
		}
	}
	return ret
}
