// Package searchctl wraps pkg/search's single-depth alpha-beta search with an
// iterative-deepening harness and a stoppable, time-controlled handle, so the
// engine facade can run a search in the background and halt it on demand
// (move now, new position, time control, or depth limit).
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options holds the dynamic, per-search options the caller may set.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search by the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages iterative-deepening searches.
type Launcher interface {
	// Launch starts a new search from b, which must be an exclusive (forked)
	// board the launcher owns exclusively until the returned Handle is halted.
	// It returns immediately with a Handle and a channel of successively
	// deeper PVs, closed once the search is exhausted or halted.
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, ev eval.Evaluator, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the engine stop a running search. The engine is expected to
// fork a board per search and abandon/halt it once no longer needed.
type Handle interface {
	// Halt stops the search, if running, and returns the last PV found.
	// Idempotent.
	Halt() search.PV
}
