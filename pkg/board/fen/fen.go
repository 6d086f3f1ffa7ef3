// Package fen contains utilities for reading and writing positions in Forsyth-Edwards
// Notation (FEN).
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/corvidchess/corvid/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Error is a dedicated error kind for malformed FEN input, distinguishing a bad
// record from other kinds of failure (e.g. an inconsistent position).
type Error struct {
	FEN    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid FEN %q: %v", e.FEN, e.Reason)
}

// Decode returns a new position and game status from a FEN record.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (*board.Position, board.Color, int, int, error) {
	// A FEN record contains six space-separated fields.

	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, 0, 0, 0, &Error{fen, "expected 6 fields"}
	}

	// (1) Piece placement, from white's perspective: rank 8 down to rank 1, each
	// rank from file a through file h.

	var pieces []board.Placement

	rank, file := 7, 0
	for _, r := range []rune(parts[0]) {
		switch {
		case r == '/':
			if file != 8 {
				return nil, 0, 0, 0, &Error{fen, "rank does not cover 8 files"}
			}
			rank--
			file = 0

		case unicode.IsDigit(r):
			file += int(r - '0')

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, 0, 0, 0, &Error{fen, fmt.Sprintf("unknown piece %q", r)}
			}
			if rank < 0 || file > 7 {
				return nil, 0, 0, 0, &Error{fen, "piece placement out of range"}
			}
			pieces = append(pieces, board.Placement{Square: board.NewSquare(board.File(file), board.Rank(rank)), Color: color, Piece: piece})
			file++

		default:
			return nil, 0, 0, 0, &Error{fen, fmt.Sprintf("unexpected character %q", r)}
		}
	}
	if rank != 0 || file != 8 {
		return nil, 0, 0, 0, &Error{fen, "wrong number of ranks or files"}
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, &Error{fen, "invalid active color"}
	}

	// (3) Castling availability. "-" means neither side can castle; otherwise one
	// or more of "K", "Q", "k", "q".

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, &Error{fen, "invalid castling availability"}
	}

	// (4) En passant target square, or "-" if none.

	var ep board.Square
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, &Error{fen, "invalid en passant target"}
		}
		ep = sq
	}

	// (5) Halfmove clock: halfmoves since the last pawn advance or capture.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return nil, 0, 0, 0, &Error{fen, "invalid halfmove clock"}
	}

	// (6) Fullmove number, starting at 1 and incremented after black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 1 {
		return nil, 0, 0, 0, &Error{fen, "invalid fullmove number"}
	}

	pos, err := board.NewPosition(pieces, castling, ep)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: %v", fen, err)
	}
	return pos, active, np, fm, nil
}

// Encode encodes the position and game metadata in FEN notation.
func Encode(pos *board.Position, c board.Color, noprogress, fullmoves int) string {
	var sb strings.Builder
	for r := int(board.NumRanks) - 1; r >= 0; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, board.Rank(r)))
			if !ok {
				blanks++
				continue
			}

			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}

		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteString("/")
		}
	}

	turn := printColor(c)
	castling := printCastling(pos.Castling())

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, castling, ep, noprogress, fullmoves)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}

	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	switch r {
	case 'P':
		return board.White, board.Pawn, true
	case 'B':
		return board.White, board.Bishop, true
	case 'N':
		return board.White, board.Knight, true
	case 'R':
		return board.White, board.Rook, true
	case 'Q':
		return board.White, board.Queen, true
	case 'K':
		return board.White, board.King, true

	case 'p':
		return board.Black, board.Pawn, true
	case 'b':
		return board.Black, board.Bishop, true
	case 'n':
		return board.Black, board.Knight, true
	case 'r':
		return board.Black, board.Rook, true
	case 'q':
		return board.Black, board.Queen, true
	case 'k':
		return board.Black, board.King, true

	default:
		return 0, 0, false
	}
}

func printPiece(c board.Color, p board.Piece) rune {
	var r rune
	switch p {
	case board.Pawn:
		r = 'p'
	case board.Bishop:
		r = 'b'
	case board.Knight:
		r = 'n'
	case board.Rook:
		r = 'r'
	case board.Queen:
		r = 'q'
	case board.King:
		r = 'k'
	default:
		return '?'
	}
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
