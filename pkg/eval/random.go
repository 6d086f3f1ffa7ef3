package eval

import (
	"context"
	"math/rand"

	"github.com/corvidchess/corvid/pkg/board"
)

// Random adds a small amount of noise to a base evaluator's score, so that
// otherwise-equal moves aren't always resolved identically. Limit is the noise
// range in millipawns, applied as [-limit/2, limit-limit/2) (integer
// division, upper end excluded); a non-positive limit
// disables noise and Random becomes a pass-through.
type Random struct {
	Eval  Evaluator
	Limit int
	rand  *rand.Rand
}

func Randomize(e Evaluator, limit int, seed int64) Random {
	return Random{Eval: e, Limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(ctx context.Context, b *board.Board) Pawns {
	base := n.Eval.Evaluate(ctx, b)
	if n.Limit <= 0 {
		return base
	}
	noise := Pawns(n.rand.Intn(n.Limit)-n.Limit/2) / 1000
	return base + noise
}
