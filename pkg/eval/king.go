package eval

import "github.com/corvidchess/corvid/pkg/board"

// KingSafety scores the shelter around a side's king: each of the eight squares
// around the king that is occupied by one of the side's own pawns adds a small
// bonus, and each one that is attacked by the opponent subtracts one, mirroring
// the "defense of the king" term's additive, parametrized style.
func KingSafety(pos *board.Position, side board.Color) Pawns {
	kingSq := pos.PiecesOf(side, board.King).LSB()
	ring := board.KingAttackboard(kingSq)

	shelter := (ring & pos.PiecesOf(side, board.Pawn)).PopCount()

	exposed := 0
	for _, sq := range ring.Squares() {
		if pos.IsAttacked(side, sq) {
			exposed++
		}
	}

	return Pawns(shelter)*0.1 - Pawns(exposed)*0.15
}
