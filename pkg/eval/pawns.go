package eval

import "github.com/corvidchess/corvid/pkg/board"

// PawnStructure scores a side's pawn structure: doubled, isolated and blocked
// (an opposing pawn directly in front) pawns each cost a small penalty, and a
// passed pawn earns a bonus scaled by how close it is to promoting.
func PawnStructure(pos *board.Position, side board.Color) Pawns {
	own := pos.PiecesOf(side, board.Pawn)
	opp := pos.PiecesOf(side.Opponent(), board.Pawn)

	var score Pawns
	for _, sq := range own.Squares() {
		f := sq.File()

		if (own & board.BitFile(f)).PopCount() > 1 {
			score -= 0.15 // doubled
		}
		if !hasNeighborFilePawn(own, f) {
			score -= 0.1 // isolated
		}
		ahead := board.BitMask(sq) << 8
		if side == board.Black {
			ahead = board.BitMask(sq) >> 8
		}
		if opp&ahead != 0 {
			score -= 0.1 // blocked
		}
		if isPassed(opp, side, sq) {
			score += passedPawnBonus(side, sq.Rank())
		}
	}
	return score
}

func hasNeighborFilePawn(pawns board.Bitboard, f board.File) bool {
	var mask board.Bitboard
	if f > board.FileA {
		mask |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		mask |= board.BitFile(f + 1)
	}
	return pawns&mask != 0
}

// isPassed reports whether a pawn on sq has no opposing pawn able to block or
// capture it on its own file or an adjacent file, anywhere ahead of it.
func isPassed(opp board.Bitboard, side board.Color, sq board.Square) bool {
	f, r := sq.File(), sq.Rank()

	var front board.Bitboard
	if side == board.White {
		for rr := r + 1; rr.IsValid(); rr++ {
			front |= board.BitRank(rr)
		}
	} else {
		for rr := int(r) - 1; rr >= 0; rr-- {
			front |= board.BitRank(board.Rank(rr))
		}
	}

	var files board.Bitboard = board.BitFile(f)
	if f > board.FileA {
		files |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		files |= board.BitFile(f + 1)
	}

	return opp&front&files == 0
}

func passedPawnBonus(side board.Color, r board.Rank) Pawns {
	steps := int(r)
	if side == board.Black {
		steps = int(board.Rank8) - int(r)
	}
	return Pawns(steps) * 0.1
}
