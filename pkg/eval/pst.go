package eval

import "github.com/corvidchess/corvid/pkg/board"

// Piece-square tables, PeSTO-style: one middlegame and one endgame table per
// piece, values in centipawns, interpolated by game phase. Tables are written
// from White's point of view, a1=0..h8=63; a Black piece looks up the mirror
// square (flip the rank only, via sq^56) so the tables only need to be written
// once.

var mgValue = [board.NumPieces]int{board.Pawn: 82, board.Knight: 337, board.Bishop: 365, board.Rook: 477, board.Queen: 1025, board.King: 0}
var egValue = [board.NumPieces]int{board.Pawn: 94, board.Knight: 281, board.Bishop: 297, board.Rook: 512, board.Queen: 936, board.King: 0}

var mgPawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var egPawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10,
	20, 20, 20, 20, 20, 20, 20, 20,
	30, 30, 30, 30, 30, 30, 30, 30,
	50, 50, 50, 50, 50, 50, 50, 50,
	80, 80, 80, 80, 80, 80, 80, 80,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var mgKnightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var egKnightTable = mgKnightTable

var mgBishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var egBishopTable = mgBishopTable

var mgRookTable = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var egRookTable = mgRookTable

var mgQueenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var egQueenTable = mgQueenTable

var mgKingTable = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var egKingTable = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

var mgTables = [board.NumPieces]*[64]int{
	board.Pawn: &mgPawnTable, board.Knight: &mgKnightTable, board.Bishop: &mgBishopTable,
	board.Rook: &mgRookTable, board.Queen: &mgQueenTable, board.King: &mgKingTable,
}
var egTables = [board.NumPieces]*[64]int{
	board.Pawn: &egPawnTable, board.Knight: &egKnightTable, board.Bishop: &egBishopTable,
	board.Rook: &egRookTable, board.Queen: &egQueenTable, board.King: &egKingTable,
}

// phaseWeight is the game-phase contribution of one piece of each kind, summing
// to 24 at the start of the game (pawns and king contribute none).
var phaseWeight = [board.NumPieces]int{board.Knight: 1, board.Bishop: 1, board.Rook: 2, board.Queen: 4}

const totalPhase = 24

// mirror flips a square vertically (rank r -> rank 7-r, same file), used to look
// up a White-oriented table for a Black piece.
func mirror(sq board.Square) board.Square {
	return board.Square(uint8(sq) ^ 56)
}

// materialAndPST returns the side's material-plus-positional score, phase-
// interpolated between the middlegame and endgame tables.
func materialAndPST(pos *board.Position, side board.Color) Pawns {
	var mg, eg, phase int

	for p := board.Pawn; p <= board.King; p++ {
		for _, sq := range pos.PiecesOf(side, p).Squares() {
			idx := sq
			if side == board.Black {
				idx = mirror(sq)
			}
			mg += mgValue[p] + mgTables[p][idx]
			eg += egValue[p] + egTables[p][idx]
			phase += phaseWeight[p]
		}
	}

	if phase > totalPhase {
		phase = totalPhase
	}
	// Linear interpolation between the middlegame and endgame scores, weighted by
	// how much non-pawn material remains on the board.
	blended := (mg*phase + eg*(totalPhase-phase)) / totalPhase
	return Pawns(blended) / 100
}
