// Package pgn replays archived games recorded in Portable Game Notation and
// feeds the resulting positions into a book.Builder. It is kept separate from
// pkg/book so the core book package never has to import a PGN parser: a
// caller that only wants to load a hand-authored set of opening lines never
// pays for this package's tokenizer.
//
// The movetext tokenizer follows the regexp-driven approach used by
// juanfgarcia-pgnparser's PgnBoard.UpdateBoard; disambiguation here is solved
// by filtering movegen's own legal moves rather than rebuilding a threat
// table from scratch, since a legal move generator is already on hand.
package pgn

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/book"
	"github.com/corvidchess/corvid/pkg/movegen"
)

// Game is a single parsed PGN game: its tag pairs and the SAN move tokens of
// its mainline, with any comments, NAGs and side variations discarded.
type Game struct {
	Tags  map[string]string
	SAN   []string
	Result string // "1-0", "0-1", "1/2-1/2" or "*"
}

var reTag = regexp.MustCompile(`^\[(\w+)\s+"(.*)"\]$`)

// Parse reads zero or more games from r, in the usual one-tag-pair-per-line,
// blank-line-separated PGN database format.
func Parse(r io.Reader) ([]Game, error) {
	var games []Game
	var tags map[string]string
	var movetext strings.Builder

	flush := func() {
		if tags == nil && movetext.Len() == 0 {
			return
		}
		san, result := tokenizeMovetext(movetext.String())
		games = append(games, Game{Tags: tags, SAN: san, Result: result})
		tags = nil
		movetext.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "["):
			if movetext.Len() > 0 {
				// A new tag section after movetext marks a new game.
				flush()
			}
			if tags == nil {
				tags = map[string]string{}
			}
			if m := reTag.FindStringSubmatch(line); m != nil {
				tags[m[1]] = m[2]
			}
		default:
			movetext.WriteString(line)
			movetext.WriteString(" ")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pgn: %v", err)
	}
	flush()

	return games, nil
}

var (
	reMoveNumber = regexp.MustCompile(`^\d+\.+$`)
	reResult     = regexp.MustCompile(`^(1-0|0-1|1/2-1/2|\*)$`)
)

// tokenizeMovetext strips comments, NAGs, side variations and move numbers
// from a game's movetext, returning the mainline SAN tokens and the trailing
// result token (or "*" if none was found).
func tokenizeMovetext(text string) ([]string, string) {
	var sb strings.Builder
	depthParen, depthBrace := 0, 0
	for _, r := range text {
		switch {
		case r == '{':
			depthBrace++
		case r == '}':
			if depthBrace > 0 {
				depthBrace--
			}
		case depthBrace > 0:
			// inside a comment: skip
		case r == '(':
			depthParen++
		case r == ')':
			if depthParen > 0 {
				depthParen--
			}
		case depthParen > 0:
			// inside a side variation: skip
		default:
			sb.WriteRune(r)
		}
	}

	result := "*"
	var san []string
	for _, tok := range strings.Fields(sb.String()) {
		switch {
		case tok == "":
			continue
		case strings.HasPrefix(tok, "$"):
			// NAG, e.g. "$1": discard
		case reResult.MatchString(tok):
			result = tok
		case reMoveNumber.MatchString(tok):
			// move number, e.g. "12." or "12...": discard
		default:
			san = append(san, tok)
		}
	}
	return san, result
}

// reSANMove captures a non-castling SAN move: piece, disambiguator,
// destination square and promotion piece, ignoring a trailing check/mate
// marker or annotation glyphs (e.g. "Nbd7+", "exd5", "e8=Q!").
var reSANMove = regexp.MustCompile(`^([NBRQK]?)([a-h]?[1-8]?)x?([a-h][1-8])(?:=([NBRQK]))?[+#]?[!?]*$`)
var reSANCastle = regexp.MustCompile(`^(O-O-O|O-O)[+#]?[!?]*$`)

// resolveSAN returns the single legal move in moves whose SAN rendering
// matches san, played by turn from pos.
func resolveSAN(pos *board.Position, turn board.Color, moves []board.Move, san string) (board.Move, error) {
	san = strings.TrimSpace(san)

	if reSANCastle.MatchString(san) {
		m := reSANCastle.FindStringSubmatch(san)[1]
		wantsLong := m == "O-O-O"
		for _, cand := range moves {
			if !cand.IsCastle() {
				continue
			}
			isLong := cand.To.File() == board.FileC
			if isLong == wantsLong {
				return cand, nil
			}
		}
		return board.Move{}, fmt.Errorf("no legal castle matching %q", san)
	}

	m := reSANMove.FindStringSubmatch(san)
	if m == nil {
		return board.Move{}, fmt.Errorf("unrecognized move %q", san)
	}

	piece := board.Pawn
	if m[1] != "" {
		piece, _ = board.ParsePiece(rune(m[1][0]))
	}
	to, err := board.ParseSquareStr(m[3])
	if err != nil {
		return board.Move{}, fmt.Errorf("invalid target square in %q: %v", san, err)
	}
	promo := board.NoPiece
	if m[4] != "" {
		promo, _ = board.ParsePiece(rune(m[4][0]))
	}

	var fromFile, fromRank rune
	for _, r := range m[2] {
		if r >= 'a' && r <= 'h' {
			fromFile = r
		} else {
			fromRank = r
		}
	}

	var candidates []board.Move
	for _, cand := range moves {
		if cand.Piece != piece || cand.To != to || cand.Promotion != promo {
			continue
		}
		if fromFile != 0 && byte(cand.From.File().String()[0]) != byte(fromFile) {
			continue
		}
		if fromRank != 0 && byte(cand.From.Rank().String()[0]) != byte(fromRank) {
			continue
		}
		candidates = append(candidates, cand)
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return board.Move{}, fmt.Errorf("no legal move matches %q for %v", san, turn)
	default:
		return board.Move{}, fmt.Errorf("ambiguous move %q: %d candidates (bad disambiguator?)", san, len(candidates))
	}
}

// resultToOutcome maps a PGN result tag to the book's tri-valued game
// outcome. ok is false for "*" (unknown/ongoing) games, which contribute no
// training signal.
func resultToOutcome(result string) (book.Outcome, bool) {
	switch result {
	case "1-0":
		return book.WhiteWon, true
	case "0-1":
		return book.BlackWon, true
	case "1/2-1/2":
		return book.Drawn, true
	default:
		return 0, false
	}
}

// Import replays g's mainline from the standard starting position and feeds
// every position reached within the first maxPly plies into b. It stops
// replaying (without error) at the first SAN token it cannot resolve to a
// legal move, since archived games occasionally carry transcription errors
// that only matter past the point the book would ever consult.
func Import(b *book.Builder, g Game, maxPly int) error {
	outcome, ok := resultToOutcome(g.Result)
	if !ok {
		return nil
	}

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	if err != nil {
		return fmt.Errorf("decoding initial position: %v", err)
	}

	for ply, san := range g.SAN {
		if maxPly > 0 && ply >= maxPly {
			break
		}

		legal := movegen.LegalMoves(pos, turn)
		move, err := resolveSAN(pos, turn, legal, san)
		if err != nil {
			break
		}

		b.Insert(pos, turn, move, outcome)

		pos = pos.ApplyMove(turn, move)
		turn = turn.Opponent()
	}

	return nil
}

// ImportAll is a convenience wrapper around Import for a batch of games,
// tolerating and skipping any game whose replay fails outright.
func ImportAll(b *book.Builder, games []Game, maxPly int) {
	for _, g := range games {
		_ = Import(b, g, maxPly)
	}
}
