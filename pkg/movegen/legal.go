package movegen

import "github.com/corvidchess/corvid/pkg/board"

// LegalMoves generates every legal move for the side to move: the pseudo-legal
// moves filtered down to those that do not leave the mover's own king in check.
func LegalMoves(pos *board.Position, turn board.Color) []board.Move {
	pseudo := PseudoLegalMoves(pos, turn)
	legal := make([]board.Move, 0, len(pseudo))
	for _, m := range pseudo {
		if IsLegal(pos, turn, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegal reports whether a pseudo-legal move leaves the mover's own king safe. It
// uses the super-piece technique: rather than applying the move to build a new
// position, it adjusts the occupied-squares bitboard and the captured piece's
// bitboard in place, then asks whether the king's square (its own square, or the
// move's destination for a king move) is attacked under that adjusted state.
//
// Castling moves are always legal here: appendCastlingMoves already rejected any
// castle whose king would pass through or land on an attacked square.
func IsLegal(pos *board.Position, turn board.Color, m board.Move) bool {
	if m.IsCastle() {
		return true
	}

	kingSq := pos.PiecesOf(turn, board.King).LSB()
	if m.Piece == board.King {
		kingSq = m.To
	}

	occupied := pos.Occupied().Clear(m.From).Set(m.To)

	capturedSq := board.NumSquares
	capturedPiece := board.NoPiece
	switch {
	case m.IsEnPassant():
		capturedSq = board.NewSquare(m.To.File(), m.From.Rank())
		capturedPiece = board.Pawn
		occupied = occupied.Clear(capturedSq)
	case m.Capture != board.NoPiece:
		capturedSq = m.To
		capturedPiece = m.Capture
	}

	return !attacksSquare(pos, turn.Opponent(), kingSq, occupied, capturedSq, capturedPiece)
}

// attacksSquare reports whether sq is attacked by color opp, given an occupied-
// squares bitboard that already reflects the candidate move, and with the piece
// at capturedSq (if any, of kind capturedPiece) excluded from opp's bitboards --
// it was just captured and no longer threatens anything.
func attacksSquare(pos *board.Position, opp board.Color, sq board.Square, occupied board.Bitboard, capturedSq board.Square, capturedPiece board.Piece) bool {
	piecesOf := func(p board.Piece) board.Bitboard {
		bb := pos.PiecesOf(opp, p)
		if p == capturedPiece && capturedSq.IsValid() {
			bb = bb.Clear(capturedSq)
		}
		return bb
	}

	if bishops := piecesOf(board.Bishop) | piecesOf(board.Queen); bishops != 0 && board.BishopAttackboard(occupied, sq)&bishops != 0 {
		return true
	}
	if rooks := piecesOf(board.Rook) | piecesOf(board.Queen); rooks != 0 && board.RookAttackboard(occupied, sq)&rooks != 0 {
		return true
	}
	if knights := piecesOf(board.Knight); knights != 0 && board.KnightAttackboard(sq)&knights != 0 {
		return true
	}
	if kings := piecesOf(board.King); kings != 0 && board.KingAttackboard(sq)&kings != 0 {
		return true
	}
	return board.PawnCaptureboard(opp, piecesOf(board.Pawn))&board.BitMask(sq) != 0
}
