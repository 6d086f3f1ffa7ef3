// Package eval contains static position evaluation: material, piece-square
// tables, king safety and pawn structure, plus the MVV-LVA move-ordering
// heuristic used by pkg/search and pkg/movegen's priority function.
package eval

import (
	"fmt"

	"github.com/corvidchess/corvid/pkg/board"
)

// Pawns is a signed position or move score, in units of a pawn. Positive favors
// the side to move (see Unit for White's point of view). A mate score is encoded as a large magnitude near Mate that shrinks by
// one per ply as it is propagated up the tree (IncrementMateDistance), so the
// search always prefers the shortest forced mate while the value stays ordered
// correctly against plain material scores.
type Pawns float32

const (
	MaxScore Pawns = 1000000
	MinScore Pawns = -MaxScore
	Inf      Pawns = MaxScore + 1
	NegInf   Pawns = MinScore - 1

	// Mate is the magnitude above which a score is understood to encode a forced
	// mate rather than a material/positional evaluation.
	Mate Pawns = 900000
)

func (s Pawns) String() string {
	return fmt.Sprintf("%.2f", float32(s))
}

// Negate flips the score to the opponent's point of view, as used by negamax.
func (s Pawns) Negate() Pawns {
	return -s
}

// Crop clamps a score into [MinScore, MaxScore].
func Crop(s Pawns) Pawns {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the larger of the two scores.
func Max(a, b Pawns) Pawns {
	if a < b {
		return b
	}
	return a
}

// Min returns the smaller of the two scores.
func Min(a, b Pawns) Pawns {
	if a < b {
		return a
	}
	return b
}

// Unit returns the signed unit for the color: 1 for White, -1 for Black. Useful
// for converting a side-to-move-relative score into White's point of view.
func Unit(c board.Color) Pawns {
	if c == board.White {
		return 1
	}
	return -1
}

// IncrementMateDistance nudges a mate score one ply further from the root as it
// propagates up the search tree.
func IncrementMateDistance(s Pawns) Pawns {
	switch {
	case s > Mate:
		return s - 1
	case s < -Mate:
		return s + 1
	default:
		return s
	}
}

// IsMate reports whether the score encodes a forced mate.
func (s Pawns) IsMate() bool {
	return s > Mate || s < -Mate
}

// MateDistance returns the number of plies to the forced mate the score
// encodes, if any. A distance of 0 means the position is itself checkmate.
func (s Pawns) MateDistance() (int, bool) {
	if !s.IsMate() {
		return 0, false
	}
	mag := s
	if mag < 0 {
		mag = -mag
	}
	return int(MaxScore + 1 - mag), true
}
