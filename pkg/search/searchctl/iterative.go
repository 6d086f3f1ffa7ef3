package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is the standard iterative-deepening Launcher: it calls
// search.BestMove at depth 1, 2, 3, ... reporting a PV after each completed
// depth, until it is halted or a stopping condition (depth limit, soft time
// limit, or an exact forced mate) is reached.
type Iterative struct{}

func (i Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, ev eval.Evaluator, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, b, tt, ev, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, b *board.Board, tt search.TranspositionTable, ev eval.Evaluator, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		var deadline time.Time
		if useSoft {
			deadline = start.Add(soft)
		}

		nodes, score, moves, ok := search.BestMove(wctx, b, tt, ev, depth, deadline)
		if !ok {
			return // no legal move at root: out closes without a PV.
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if tt != nil {
			pv.Hash = tt.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", b.Position(), pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if md, ok := score.MateDistance(); ok && md <= depth {
			return // halt: forced mate found within full-width search. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start a new depth.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
