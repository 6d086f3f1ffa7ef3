package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents the remaining time for each side and, optionally,
// the number of moves left before the next time allotment.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns a soft and hard deadline for the side to move. After the
// soft limit, no new iterative-deepening depth is started; the hard limit
// forcibly halts whatever depth is in flight.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	// Assume 40 moves to the end of the game absent better information. Let
	// B = T/80 be the soft timeout and the hard timeout be 3B.
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft := remainder / (2 * moves)
	hard := 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl arms the hard deadline (via Halt) and returns the soft
// limit, if a time control is set.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
