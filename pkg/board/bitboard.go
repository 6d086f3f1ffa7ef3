// Package board contains the chess board representation and utilities: bitboards,
// squares, pieces, positions, moves and Zobrist hashing.
package board

import (
	"math/bits"
	"strings"

	"github.com/corvidchess/corvid/pkg/magic"
)

// Bitboard is a bit-wise representation of the chess board. Bit i corresponds to
// Square(i): bit 0 = A1, bit 63 = H8. It relies on CPU support for popcount and
// bit-scan, exposed here via math/bits.
type Bitboard uint64

const EmptyBitboard Bitboard = 0

// BitMask returns a bitboard with only the given square set.
func BitMask(sq Square) Bitboard {
	return Bitboard(1) << uint(sq)
}

// BitRank returns a bitboard for the entire given rank.
func BitRank(r Rank) Bitboard {
	return Bitboard(0xff) << (uint(r) * 8)
}

// BitFile returns a bitboard for the entire given file.
func BitFile(f File) Bitboard {
	return Bitboard(0x0101010101010101) << uint(f)
}

var (
	fileMasks [NumFiles]Bitboard
	rankMasks [NumRanks]Bitboard

	// DiagA1H8 and DiagA8H1 are the two long diagonals.
	DiagA1H8 Bitboard
	DiagA8H1 Bitboard

	// diagonals[d] and antiDiagonals[d] hold every diagonal/anti-diagonal mask,
	// indexed by (file - rank + 7) and (file + rank) respectively.
	diagonals     [15]Bitboard
	antiDiagonals [15]Bitboard
)

func init() {
	for f := ZeroFile; f < NumFiles; f++ {
		fileMasks[f] = BitFile(f)
	}
	for r := ZeroRank; r < NumRanks; r++ {
		rankMasks[r] = BitRank(r)
	}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		f, r := int(sq.File()), int(sq.Rank())
		diagonals[f-r+7] |= BitMask(sq)
		antiDiagonals[f+r] |= BitMask(sq)
	}
	DiagA1H8 = diagonals[7]
	DiagA8H1 = antiDiagonals[7]
}

// Diagonal returns the long-diagonal mask (a1-h8 direction) through the given square.
func Diagonal(sq Square) Bitboard {
	return diagonals[int(sq.File())-int(sq.Rank())+7]
}

// AntiDiagonal returns the anti-diagonal mask (a8-h1 direction) through the given square.
func AntiDiagonal(sq Square) Bitboard {
	return antiDiagonals[int(sq.File())+int(sq.Rank())]
}

// IsSet returns true iff the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&BitMask(sq) != 0
}

// Set returns a copy of b with the given square set.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | BitMask(sq)
}

// Clear returns a copy of b with the given square cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ BitMask(sq)
}

// PopCount returns the population count of the bitboard, i.e., the number of 1 bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the square of the least-significant set bit. Returns NumSquares if b is empty.
func (b Bitboard) LSB() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB clears and returns the least-significant set bit's square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Squares returns every set square in ascending index order.
func (b Bitboard) Squares() []Square {
	ret := make([]Square, 0, b.PopCount())
	for bb := b; bb != 0; {
		ret = append(ret, bb.PopLSB())
	}
	return ret
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for r := int(NumRanks) - 1; r >= 0; r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			if b.IsSet(NewSquare(f, Rank(r))) {
				sb.WriteRune('X')
			} else {
				sb.WriteRune('-')
			}
		}
		if r != 0 {
			sb.WriteRune('/')
		}
	}
	return sb.String()
}

// PawnCaptureboard returns all potential pawn captures for the given color's pawns,
// guarding against file wrap-around.
func PawnCaptureboard(c Color, pawns Bitboard) Bitboard {
	if c == White {
		return ((pawns &^ fileMasks[FileA]) << 9) | ((pawns &^ fileMasks[FileH]) << 7)
	}
	return ((pawns &^ fileMasks[FileH]) >> 9) | ((pawns &^ fileMasks[FileA]) >> 7)
}

// PawnPushboard returns single-step pawn pushes for the given color, excluding any
// pawns that would push onto an occupied square.
func PawnPushboard(empty Bitboard, c Color, pawns Bitboard) Bitboard {
	if c == White {
		return (pawns << 8) & empty
	}
	return (pawns >> 8) & empty
}

// PawnPromotionRank returns the mask of the promotion rank for the given color.
func PawnPromotionRank(c Color) Bitboard {
	if c == White {
		return rankMasks[Rank8]
	}
	return rankMasks[Rank1]
}

// PawnStartRank returns the mask of the initial rank of the given color's pawns.
func PawnStartRank(c Color) Bitboard {
	if c == White {
		return rankMasks[Rank2]
	}
	return rankMasks[Rank7]
}

// PawnJumpRank returns the mask of the destination rank of a two-square pawn push.
func PawnJumpRank(c Color) Bitboard {
	if c == White {
		return rankMasks[Rank4]
	}
	return rankMasks[Rank5]
}

// RookAttackboard returns the squares a rook on sq attacks given the occupied
// squares on the board, via the magic bitboard tables in pkg/magic.
func RookAttackboard(occupied Bitboard, sq Square) Bitboard {
	return Bitboard(magic.RookAttacks(uint8(sq), uint64(occupied)))
}

// BishopAttackboard returns the squares a bishop on sq attacks given the occupied
// squares on the board, via the magic bitboard tables in pkg/magic.
func BishopAttackboard(occupied Bitboard, sq Square) Bitboard {
	return Bitboard(magic.BishopAttacks(uint8(sq), uint64(occupied)))
}

// QueenAttackboard returns the squares a queen on sq attacks given the occupied
// squares on the board: the union of the rook and bishop attack sets.
func QueenAttackboard(occupied Bitboard, sq Square) Bitboard {
	return Bitboard(magic.QueenAttacks(uint8(sq), uint64(occupied)))
}

// KingAttackboard returns the squares a king on sq attacks.
func KingAttackboard(sq Square) Bitboard {
	return kingAttacks[sq]
}

// KnightAttackboard returns the squares a knight on sq attacks.
func KnightAttackboard(sq Square) Bitboard {
	return knightAttacks[sq]
}

var (
	kingAttacks   [NumSquares]Bitboard
	knightAttacks [NumSquares]Bitboard
)

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		bb := BitMask(sq)
		adjacent := ((bb &^ fileMasks[FileA]) >> 1) | ((bb &^ fileMasks[FileH]) << 1)
		adjacent |= bb
		kingAttacks[sq] = (adjacent<<8 | adjacent>>8 | adjacent) &^ bb

		one := ((bb &^ fileMasks[FileA]) >> 1) | ((bb &^ fileMasks[FileH]) << 1)
		two := ((bb &^ (fileMasks[FileA] | fileMasks[FileB])) >> 2) | ((bb &^ (fileMasks[FileG] | fileMasks[FileH])) << 2)
		knightAttacks[sq] = one<<16 | one>>16 | two<<8 | two>>8
	}
}
