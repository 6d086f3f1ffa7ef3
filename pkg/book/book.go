// Package book implements a small in-memory opening book (spec C13): a set of
// named opening lines compiled into a position -> moves lookup, consulted by
// the engine before it falls back to search.
package book

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/movegen"
)

// Book looks up candidate moves for a position.
type Book interface {
	// Find returns the -- potentially empty -- set of book moves for the given
	// FEN position. Once it returns an empty list for a position, the engine
	// should stop consulting the book for the rest of the game.
	Find(ctx context.Context, fen string) ([]board.Move, error)
}

// Line is a named sequence of moves in coordinate notation, e.g. "e2e4 d7d5 d2d4".
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook Book = &book{moves: map[string][]board.Move{}}

// New compiles a set of opening lines into a Book. Every move in every line
// must be a legal move from the position reached by the line's prefix;
// compilation fails otherwise.
func New(lines []Line) (Book, error) {
	m := map[string]map[board.Move]bool{}
	for _, line := range lines {
		key := fen.Initial
		for _, str := range line {
			next, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("invalid line %q: %v", line, err)
			}

			pos, turn, _, _, err := fen.Decode(key)
			if err != nil {
				return nil, fmt.Errorf("invalid line %q: %v", line, err)
			}

			found := false
			for _, candidate := range movegen.LegalMoves(pos, turn) {
				if !candidate.Equals(next) {
					continue
				}

				found = true
				k := fenKey(key)
				if m[k] == nil {
					m[k] = map[board.Move]bool{}
				}
				m[k][candidate] = true

				child := pos.ApplyMove(turn, candidate)
				key = fen.Encode(child, turn.Opponent(), 0, 1)
				break
			}

			if !found {
				return nil, fmt.Errorf("invalid line %q: move %v not legal", line, next)
			}
		}
	}

	dedup := map[string][]board.Move{}
	for k, v := range m {
		list := make([]board.Move, 0, len(v))
		for move := range v {
			list = append(list, move)
		}
		board.SortByPriority(list, eval.MVVLVA)
		dedup[k] = list
	}
	return newBook(dedup), nil
}

// zt hashes book lookups for the process-wide moves cache. A fixed seed
// suffices: the book only ever needs internal consistency between Find calls,
// not agreement with a particular engine instance's own Zobrist table.
var zt = board.NewZobristTable(0)

type book struct {
	moves map[string][]board.Move // cropped fen -> []move
	salt  board.ZobristHash       // per-book key offset into the shared moves cache
}

var bookSeq atomic.Uint64

// newBook gives each compiled book its own salt, so two books in one process
// never read each other's entries from the process-wide moves cache.
func newBook(moves map[string][]board.Move) *book {
	return &book{moves: moves, salt: board.ZobristHash(bookSeq.Add(1) * 0x9e3779b97f4a7c15)}
}

func (b *book) Find(ctx context.Context, f string) ([]board.Move, error) {
	pos, turn, _, _, err := fen.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("invalid position %q: %v", f, err)
	}

	hash := zt.Hash(pos, turn) ^ b.salt
	if list, ok := cache.GetMoves(hash); ok {
		return list, nil
	}

	list := b.moves[fenKey(f)]
	cache.InsertMoves(hash, list)
	return list, nil
}

// Pick chooses uniformly at random among a list of book moves returned by
// Find. The book itself never picks a move -- callers decide, per spec,
// whether and how to break ties among equally-book moves.
func Pick(r *rand.Rand, moves []board.Move) (board.Move, bool) {
	if len(moves) == 0 {
		return board.Move{}, false
	}
	return moves[r.Intn(len(moves))], true
}

// fenKey crops a FEN record down to its first 4 fields (piece placement,
// active color, castling rights, en passant target), ignoring the halfmove
// clock and fullmove number so transpositions reached via different move
// orders still hit the same book entry.
func fenKey(f string) string {
	parts := strings.Split(f, " ")
	return strings.Join(parts[:4], " ")
}

// Outcome is the final result of an archived game, from which a move's
// track record is scored.
type Outcome int

const (
	Drawn Outcome = iota
	WhiteWon
	BlackWon
)

// tally accumulates a move's record across every archived game it was played
// in: how often the mover went on to win or draw that game. A losing side's
// moves are never tallied -- see Insert -- so there is no losses field.
type tally struct {
	move        board.Move
	wins, draws int
}

// score ranks a move by a win-weighted count of the games it was recorded
// in, favoring a move with more winning samples over one seen mostly in
// draws, and (via the total game count) a well-attested move over a single
// lucky draw.
func (t tally) score() float64 {
	return float64(t.wins) + 0.5*float64(t.draws)
}

// games is the secondary sort key: how many archived games recorded this
// move at all, so two draws (score 1, two games) outrank a single win (score
// 1, one game).
func (t tally) games() int {
	return t.wins + t.draws
}

// Builder accumulates move statistics from archived games -- see pkg/book/pgn
// -- into a compiled Book. Unlike New, which trusts every line it is given
// equally, a Builder ranks moves by how they actually fared.
type Builder struct {
	games map[string]map[board.Move]*tally // cropped fen -> move -> record
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{games: map[string]map[board.Move]*tally{}}
}

// Insert records that move was played from pos by turn in a game that ended
// in outcome, unless turn went on to lose that game: only the move actually
// played by the winning side (or by both sides, in a drawn game) carries
// training signal, so a losing side's move is silently dropped rather than
// tallied. It is the unit of training signal fed by an archived-game reader;
// the caller decides how many plies of a game are worth recording.
func (b *Builder) Insert(pos *board.Position, turn board.Color, move board.Move, outcome Outcome) {
	if outcome != Drawn && (outcome == WhiteWon) != (turn == board.White) {
		return
	}

	key := fenKey(fen.Encode(pos, turn, 0, 1))

	moves := b.games[key]
	if moves == nil {
		moves = map[board.Move]*tally{}
		b.games[key] = moves
	}
	t := moves[move]
	if t == nil {
		t = &tally{move: move}
		moves[move] = t
	}

	if outcome == Drawn {
		t.draws++
	} else {
		t.wins++
	}
}

// Build compiles the accumulated statistics into a Book, with each
// position's moves ranked best-scoring first.
func (b *Builder) Build() Book {
	compiled := map[string][]board.Move{}
	for key, moves := range b.games {
		tallies := make([]tally, 0, len(moves))
		for _, t := range moves {
			tallies = append(tallies, *t)
		}
		sort.Slice(tallies, func(i, j int) bool {
			if tallies[i].score() != tallies[j].score() {
				return tallies[i].score() > tallies[j].score()
			}
			return tallies[i].games() > tallies[j].games()
		})

		list := make([]board.Move, len(tallies))
		for i, t := range tallies {
			list[i] = t.move
		}
		compiled[key] = list
	}
	return newBook(compiled)
}
