// Package nn is an optional neural-network position scorer (spec §6.4): a
// single linear layer over a HalfKA-style king/piece/square feature set,
// simplified from hailam-chessplay's sfnnue/features/half_ka_v2_hm.go feature
// indexing (king-relative piece-square buckets) down to one weight per
// feature, with no incremental accumulator machinery -- spec.md §6.4 only
// calls for a scalar Predict(position), not an NNUE-speed hot path.
package nn

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/corvidchess/corvid/pkg/board"
)

const (
	squares  = 64
	pieces   = 5 // Pawn, Bishop, Knight, Rook, Queen; King excluded from the feature set.
	features = squares * pieces * squares * 2
)

// Model is a linear scorer over the king-relative piece-square feature set: one
// weight per (own-king-square, piece kind, piece square, perspective) feature,
// summed and passed through a bias, mirroring the shape of half_ka_v2_hm's
// feature indexing without its incremental-update bookkeeping.
type Model struct {
	Weights [features]float32
	Bias    float32
}

// Load decodes a Model from its gob-encoded weight file.
func Load(r io.Reader) (*Model, error) {
	var m Model
	if err := gob.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("nn: decode model: %v", err)
	}
	return &m, nil
}

// featureIndex mirrors half_ka_v2_hm.MakeIndex's shape: a feature is identified
// by the perspective's own king square, the piece kind, the piece's square and
// which perspective (own or opponent) the piece belongs to.
func featureIndex(perspective board.Color, ksq board.Square, piece board.Piece, psq board.Square, own bool) int {
	p := int(piece - board.Pawn) // 0..4
	side := 0
	if !own {
		side = 1
	}
	return ((int(ksq)*pieces+p)*squares+int(psq))*2 + side
}

// Predict scores pos from perspective's point of view: positive favors
// perspective. The model-dependent range is whatever the trained weights
// produce; the caller (eval.WithNN) is responsible for scaling it.
func (m *Model) Predict(pos *board.Position, perspective board.Color) float64 {
	ksq := pos.PiecesOf(perspective, board.King).LSB()
	opp := perspective.Opponent()

	var sum float32
	for piece := board.Pawn; piece < board.King; piece++ {
		for bb := pos.PiecesOf(perspective, piece); bb != 0; {
			sq := bb.PopLSB()
			sum += m.Weights[featureIndex(perspective, ksq, piece, sq, true)]
		}
		for bb := pos.PiecesOf(opp, piece); bb != 0; {
			sq := bb.PopLSB()
			sum += m.Weights[featureIndex(perspective, ksq, piece, sq, false)]
		}
	}
	return float64(sum + m.Bias)
}
