package eval

import "github.com/corvidchess/corvid/pkg/board"

// MVVLVA implements the "most valuable victim, least valuable attacker" move
// priority: captures and promotions that net material are ranked above quiet
// moves, ordered by the size of the net gain and, among equal gains, by the
// cheapest attacker first. A move with no net gain scores minus the nominal
// value of the piece moved.
func MVVLVA(m board.Move) board.MovePriority {
	if gain := NominalValueGain(m); gain > 0 {
		return board.MovePriority(100*gain) - board.MovePriority(NominalValue(m.Piece))
	}
	return -board.MovePriority(NominalValue(m.Piece))
}
