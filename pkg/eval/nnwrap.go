package eval

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/seekerror/logw"
)

// Predictor is the narrow interface the optional NN evaluator (pkg/eval/nn)
// must satisfy: a scalar score for a position from a given perspective. It is
// declared here, rather than depending on pkg/eval/nn directly, so that a base
// evaluator never has to import the model/weight-loading machinery.
type Predictor interface {
	Predict(pos *board.Position, perspective board.Color) float64
}

// NN wraps a base evaluator and adds the model's prediction, scaled by Weight,
// to the base score. It fails open: Predictor.Predict has no error return, so
// a nil model makes NN a pass-through, and a panic raised inside Predict is
// recovered (see predict), logged, and contributes nothing.
type NN struct {
	Base   Evaluator
	Model  Predictor
	Weight Pawns
}

// WithNN builds an evaluator that adds model's prediction, scaled by weight,
// to base's score. A nil model makes NN a pass-through to base.
func WithNN(base Evaluator, model Predictor, weight Pawns) NN {
	return NN{Base: base, Model: model, Weight: weight}
}

func (n NN) Evaluate(ctx context.Context, b *board.Board) Pawns {
	base := n.Base.Evaluate(ctx, b)
	if n.Model == nil {
		return base
	}

	term, err := n.predict(b)
	if err != nil {
		logw.Warningf(ctx, "NN evaluator failed, ignoring term: %v", err)
		return base
	}
	return Crop(base + n.Weight*term)
}

// predict recovers from any panic the model raises (e.g. a malformed or
// partially-loaded weight table indexing out of range) and reports it as an
// error, so a bad model can never take down the search -- spec §6.4's
// fail-open contract applies to every way a model can misbehave, not just an
// explicit error return.
func (n NN) predict(b *board.Board) (_ Pawns, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{r}
		}
	}()
	return Pawns(n.Model.Predict(b.Position(), b.Turn())), nil
}

type panicError struct{ v any }

func (p panicError) Error() string { return "nn: panic during predict" }
