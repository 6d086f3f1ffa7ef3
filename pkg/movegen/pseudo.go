// Package movegen generates pseudo-legal and legal moves for a position. Sliding
// piece attacks are resolved through the magic bitboard tables in pkg/magic; the
// legality filter uses the "super-piece" technique (§legal.go) to avoid
// materializing a full post-move position for every candidate.
package movegen

import "github.com/corvidchess/corvid/pkg/board"

// PseudoLegalMoves generates every move the rules of piece movement permit for the
// side to move, without checking whether the mover's own king is left in attack.
func PseudoLegalMoves(pos *board.Position, turn board.Color) []board.Move {
	var moves []board.Move
	moves = appendPawnMoves(moves, pos, turn)
	moves = appendKnightMoves(moves, pos, turn)
	moves = appendSliderMoves(moves, pos, turn, board.Bishop)
	moves = appendSliderMoves(moves, pos, turn, board.Rook)
	moves = appendSliderMoves(moves, pos, turn, board.Queen)
	moves = appendKingMoves(moves, pos, turn)
	return moves
}

var promotionPieces = [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

func appendPawnMoves(moves []board.Move, pos *board.Position, turn board.Color) []board.Move {
	opp := turn.Opponent()
	empty := ^pos.Occupied()
	promoRank := board.PawnPromotionRank(turn)
	epTarget, hasEP := pos.EnPassant()

	for bb := pos.PiecesOf(turn, board.Pawn); bb != 0; {
		from := bb.PopLSB()

		// Single push.
		if to := pawnForward(turn, from); to.IsValid() && empty.IsSet(to) {
			moves = appendPawnMoveOrPromotions(moves, from, to, board.NoPiece, promoRank)

			// Double push, only from the pawn's start rank, only if the single-push
			// square was itself empty.
			if board.PawnStartRank(turn).IsSet(from) {
				if jump := pawnForward(turn, to); empty.IsSet(jump) {
					moves = append(moves, board.Move{From: from, To: jump, Piece: board.Pawn})
				}
			}
		}

		// Captures, including en passant.
		for _, to := range pawnCaptureSquares(turn, from) {
			if !to.IsValid() {
				continue
			}
			if c, p, ok := pos.Square(to); ok && c == opp {
				moves = appendPawnMoveOrPromotions(moves, from, to, p, promoRank)
			} else if hasEP && to == epTarget {
				moves = append(moves, board.Move{From: from, To: to, Piece: board.Pawn})
			}
		}
	}
	return moves
}

func appendPawnMoveOrPromotions(moves []board.Move, from, to board.Square, capture board.Piece, promoRank board.Bitboard) []board.Move {
	if promoRank.IsSet(to) {
		for _, promo := range promotionPieces {
			moves = append(moves, board.Move{From: from, To: to, Piece: board.Pawn, Capture: capture, Promotion: promo})
		}
		return moves
	}
	return append(moves, board.Move{From: from, To: to, Piece: board.Pawn, Capture: capture})
}

// pawnForward returns the square one rank forward of sq for the given color, or
// board.NumSquares (invalid) if sq is already on the back rank in that direction.
func pawnForward(c board.Color, sq board.Square) board.Square {
	if c == board.White {
		if sq.Rank() == board.Rank8 {
			return board.NumSquares
		}
		return board.NewSquare(sq.File(), sq.Rank()+1)
	}
	if sq.Rank() == board.Rank1 {
		return board.NumSquares
	}
	return board.NewSquare(sq.File(), sq.Rank()-1)
}

// pawnCaptureSquares returns the (up to two) diagonal-forward squares from sq for
// the given color, guarding against file wrap-around. An invalid (out-of-board)
// result is board.NumSquares.
func pawnCaptureSquares(c board.Color, sq board.Square) [2]board.Square {
	invalid := board.NumSquares
	r := pawnForward(c, sq)
	if r == invalid {
		return [2]board.Square{invalid, invalid}
	}

	var left, right board.Square = invalid, invalid
	if sq.File() > board.FileA {
		left = board.NewSquare(sq.File()-1, r.Rank())
	}
	if sq.File() < board.FileH {
		right = board.NewSquare(sq.File()+1, r.Rank())
	}
	return [2]board.Square{left, right}
}

func appendKnightMoves(moves []board.Move, pos *board.Position, turn board.Color) []board.Move {
	notOwn := ^pos.OccupiedBy(turn)
	for bb := pos.PiecesOf(turn, board.Knight); bb != 0; {
		from := bb.PopLSB()
		targets := board.KnightAttackboard(from) & notOwn
		moves = appendTargets(moves, pos, from, board.Knight, targets)
	}
	return moves
}

func appendKingMoves(moves []board.Move, pos *board.Position, turn board.Color) []board.Move {
	notOwn := ^pos.OccupiedBy(turn)
	from := pos.PiecesOf(turn, board.King).LSB()
	targets := board.KingAttackboard(from) & notOwn
	moves = appendTargets(moves, pos, from, board.King, targets)
	moves = appendCastlingMoves(moves, pos, turn)
	return moves
}

func appendSliderMoves(moves []board.Move, pos *board.Position, turn board.Color, piece board.Piece) []board.Move {
	notOwn := ^pos.OccupiedBy(turn)
	occupied := pos.Occupied()

	for bb := pos.PiecesOf(turn, piece); bb != 0; {
		from := bb.PopLSB()

		var targets board.Bitboard
		switch piece {
		case board.Bishop:
			targets = board.BishopAttackboard(occupied, from)
		case board.Rook:
			targets = board.RookAttackboard(occupied, from)
		case board.Queen:
			targets = board.QueenAttackboard(occupied, from)
		}
		targets &= notOwn

		moves = appendTargets(moves, pos, from, piece, targets)
	}
	return moves
}

func appendTargets(moves []board.Move, pos *board.Position, from board.Square, piece board.Piece, targets board.Bitboard) []board.Move {
	for t := targets; t != 0; {
		to := t.PopLSB()
		_, capture, _ := pos.Square(to)
		moves = append(moves, board.Move{From: from, To: to, Piece: piece, Capture: capture})
	}
	return moves
}

func appendCastlingMoves(moves []board.Move, pos *board.Position, turn board.Color) []board.Move {
	rights := pos.Castling()
	occupied := pos.Occupied()

	if turn == board.White {
		if rights.IsAllowed(board.WhiteKingSideCastle) &&
			occupied&(board.BitMask(board.F1)|board.BitMask(board.G1)) == 0 &&
			!anyAttacked(pos, board.Black, board.E1, board.F1, board.G1) {
			moves = append(moves, board.Move{From: board.E1, To: board.G1, Piece: board.King})
		}
		if rights.IsAllowed(board.WhiteQueenSideCastle) &&
			occupied&(board.BitMask(board.B1)|board.BitMask(board.C1)|board.BitMask(board.D1)) == 0 &&
			!anyAttacked(pos, board.Black, board.E1, board.D1, board.C1) {
			moves = append(moves, board.Move{From: board.E1, To: board.C1, Piece: board.King})
		}
		return moves
	}

	if rights.IsAllowed(board.BlackKingSideCastle) &&
		occupied&(board.BitMask(board.F8)|board.BitMask(board.G8)) == 0 &&
		!anyAttacked(pos, board.White, board.E8, board.F8, board.G8) {
		moves = append(moves, board.Move{From: board.E8, To: board.G8, Piece: board.King})
	}
	if rights.IsAllowed(board.BlackQueenSideCastle) &&
		occupied&(board.BitMask(board.B8)|board.BitMask(board.C8)|board.BitMask(board.D8)) == 0 &&
		!anyAttacked(pos, board.White, board.E8, board.D8, board.C8) {
		moves = append(moves, board.Move{From: board.E8, To: board.C8, Piece: board.King})
	}
	return moves
}

func anyAttacked(pos *board.Position, by board.Color, squares ...board.Square) bool {
	defender := by.Opponent()
	for _, sq := range squares {
		if pos.IsAttacked(defender, sq) {
			return true
		}
	}
	return false
}
