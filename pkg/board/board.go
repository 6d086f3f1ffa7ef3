// Package board contains the chess board representation and utilities: bitboards,
// squares, pieces, positions, moves and Zobrist hashing.
package board

import "fmt"

const (
	repetition3Limit   = 3
	repetition5Limit   = 5
	noprogressPlyLimit = 100
)

type node struct {
	pos        *Position
	hash       ZobristHash
	noprogress int

	next Move // if not current
	prev *node
}

// Board represents a chess board, metadata and history of positions needed to
// correctly adjudicate game results, notably the various draw conditions. Not
// thread-safe; concurrent search goroutines operate on independent Forks.
type Board struct {
	zt          *ZobristTable
	repetitions map[ZobristHash]int

	fullmoves int
	turn      Color
	result    Result
	current   *node
}

// NewBoard creates a board from an initial position and game-level metadata.
func NewBoard(zt *ZobristTable, pos *Position, turn Color, noprogress, fullmoves int) *Board {
	current := &node{
		pos:        pos,
		noprogress: noprogress,
		hash:       zt.Hash(pos, turn),
	}

	repetitions := map[ZobristHash]int{
		current.hash: 1,
	}

	return &Board{
		zt:          zt,
		repetitions: repetitions,
		fullmoves:   fullmoves,
		turn:        turn,
		current:     current,
	}
}

// Fork branches off a new board, sharing the node history for past positions. If
// forked, the shared history should not be mutated (via PopMove) as the forward
// moves in node might then become stale.
func (b *Board) Fork() *Board {
	fork := &Board{
		zt:          b.zt,
		repetitions: map[ZobristHash]int{},
		fullmoves:   b.fullmoves,
		turn:        b.turn,
		result:      b.result,
		current: &node{
			pos:        b.current.pos,
			hash:       b.current.hash,
			noprogress: b.current.noprogress,
			prev:       b.current.prev,
		},
	}
	for k, v := range b.repetitions {
		fork.repetitions[k] = v
	}

	return fork
}

func (b *Board) Position() *Position {
	return b.current.pos
}

func (b *Board) Hash() ZobristHash {
	return b.current.hash
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) NoProgress() int {
	return b.current.noprogress
}

func (b *Board) FullMoves() int {
	return b.fullmoves
}

func (b *Board) Result() Result {
	return b.result
}

// PushMove makes an already-verified-legal move, fully annotated (Piece and,
// if any, Capture filled in) by the move generator. Returns false if the game
// already ended by checkmate or stalemate, in which case there are no legal
// moves left to make.
func (b *Board) PushMove(m Move) bool {
	if b.result.Reason == Checkmate || b.result.Reason == Stalemate {
		return false
	}

	next := b.current.pos.ApplyMove(b.turn, m)

	// (1) Move is legal. Create new node.

	n := &node{
		pos:        next,
		hash:       b.zt.Move(b.current.hash, b.current.pos, b.turn, m),
		noprogress: updateNoProgress(b.current.noprogress, m),
		prev:       b.current,
	}

	b.current.next = m
	b.current = n

	// (2) Update board-level metadata.

	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]++
	if b.turn == White {
		b.fullmoves++
	}

	// (3) Determine if a draw condition applies.

	if b.repetitions[b.current.hash] >= repetition3Limit {
		actual := b.identicalPositionCount(b.current, b.turn.Opponent())
		switch {
		case actual >= repetition5Limit:
			b.result = Result{Outcome: Draw, Reason: Repetition5}
		case actual >= repetition3Limit:
			b.result = Result{Outcome: Draw, Reason: Repetition3}
		default:
			// zobrist collision: not an actual repetition
		}
	}

	if b.current.noprogress >= noprogressPlyLimit {
		b.result = Result{Outcome: Draw, Reason: NoProgress}
	}

	if b.current.pos.HasInsufficientMaterial() {
		b.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
	}

	return true
}

// PopMove undoes the latest move, if any.
func (b *Board) PopMove() (Move, bool) {
	if b.current.prev == nil {
		return Move{}, false
	}

	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]--
	b.result = Result{}
	if b.turn == Black {
		b.fullmoves--
	}

	b.current = b.current.prev
	m := b.current.next
	b.current.next = Move{}
	return m, true
}

// AdjudicateNoLegalMoves adjudicates the position assuming the side to move has no
// legal moves: the result is then either Checkmate (if in check) or Stalemate.
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if b.Position().IsChecked(b.Turn()) {
		result = Result{Outcome: Loss(b.Turn()), Reason: Checkmate}
	}
	b.Adjudicate(result)
	return result
}

// Adjudicate sets the result as given, e.g. from an external arbiter.
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

func (b *Board) identicalPositionCount(n *node, turn Color) int {
	ret := 1
	tmp := n.prev
	t := turn.Opponent()

	for tmp != nil && ret < repetition5Limit {
		if tmp.hash == n.hash && t == turn && positionsEqual(tmp.pos, n.pos) {
			ret++
		}
		tmp = tmp.prev
		t = t.Opponent()
	}
	return ret
}

func positionsEqual(a, b *Position) bool {
	if a.castling != b.castling || a.enpassant != b.enpassant {
		return false
	}
	return a.pieces == b.pieces
}

// LastMove returns the last move, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.current.prev != nil {
		return b.current.prev.next, true
	}
	return Move{}, false
}

// HasCastled returns true iff the given color has castled at some point in history.
func (b *Board) HasCastled(c Color) bool {
	t := b.turn.Opponent()
	cur := b.current.prev

	for cur != nil {
		if t == c && cur.next.IsCastle() {
			return true
		}
		t = t.Opponent()
		cur = cur.prev
	}
	return false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v, hash=%x (%v) noprogress=%v, fullmoves=%v, result=%v}",
		b.current.pos, b.turn, b.current.hash, b.repetitions[b.current.hash], b.current.noprogress, b.fullmoves, b.result)
}

func updateNoProgress(old int, m Move) int {
	if m.Piece == Pawn || m.Capture != NoPiece {
		return 0
	}
	return old + 1
}
