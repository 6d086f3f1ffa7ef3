// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/book"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/search/searchctl"

	"github.com/corvidchess/corvid/pkg/engine"
)

const ProtocolName = "uci"

// Option is a UCI driver option.
type Option func(*options)

type options struct {
	useBook bool
	book    book.Book
	rand    *rand.Rand
}

// UseBook instructs the driver to use the given opening book.
func UseBook(b book.Book, seed int64) Option {
	return func(opt *options) {
		opt.useBook = true
		opt.book = b
		opt.rand = rand.New(rand.NewSource(seed))
	}
}

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e   *engine.Engine
	opt options

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string, opts ...Option) (*Driver, <-chan string) {
	var opt options
	for _, fn := range opts {
		fn(&opt)
	}

	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		opt:    opt,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	// After "uci", identify the engine and declare its options, then ack with
	// "uciok".

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	if d.opt.book != nil {
		d.out <- fmt.Sprintf("option name OwnBook type check default %v", d.opt.useBook)
	}

	d.out <- "uciok"

commands:
	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				d.out <- "readyok"

			case "debug":
				// Not implemented: no extra "info string" traffic.

			case "setoption":
				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}

				switch name {
				case "OwnBook":
					d.opt.useBook, _ = strconv.ParseBool(value)
				}

			case "register":
				// Not implemented: no registration scheme.

			case "ucinewgame":
				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				// position [fen <fenstring> | startpos] moves <move1> ... <movei>

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of game: just apply the new suffix of moves.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Split(moves, " ") {
						if arg == "moves" || arg == "" {
							continue
						}
						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
							continue commands
						}
					}

					d.lastPosition = line
					break
				}

				position := fen.Initial
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					continue commands
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						continue commands
					}
				}
				d.lastPosition = line

			case "go":
				d.ensureInactive(ctx)

				var opt searchctl.Options
				var tc searchctl.TimeControl
				haveTC := false
				infinite := false
				timeout := time.Duration(0)

				for i := 0; i < len(args); i++ {
					cmd := args[i]
					switch cmd {
					case "wtime", "btime", "movestogo", "depth", "movetime":
						i++
						if i == len(args) {
							logw.Errorf(ctx, "No argument for %v: %v", cmd, line)
							continue commands
						}
						n, err := strconv.Atoi(args[i])
						if err != nil {
							logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
							continue commands
						}

						switch cmd {
						case "depth":
							opt.DepthLimit = lang.Some(uint(n))
						case "wtime":
							tc.White = time.Millisecond * time.Duration(n)
							haveTC = true
						case "btime":
							tc.Black = time.Millisecond * time.Duration(n)
							haveTC = true
						case "movestogo":
							tc.Moves = n
							haveTC = true
						case "movetime":
							timeout = time.Millisecond * time.Duration(n)
						}

					case "infinite":
						infinite = true

					default:
						// silently ignore anything not handled (searchmoves, ponder, nodes, mate).
					}
				}
				if haveTC {
					opt.TimeControl = lang.Some(tc)
				}

				if d.opt.useBook && d.opt.book != nil {
					moves, err := d.opt.book.Find(ctx, d.e.Position())
					if err != nil {
						logw.Errorf(ctx, "Failed to find book move for %v: %v", d.e.Position(), err)
						continue commands
					}

					if winner, ok := book.Pick(d.opt.rand, moves); ok {
						pv := search.PV{Moves: []board.Move{winner}}

						d.active.Store(true)
						d.searchCompleted(ctx, pv)
						break
					} // else: no book move
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					continue commands
				}
				d.active.Store(true)

				// Forward ponder info. Complete search if it ends, unless infinite.

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

				if timeout > 0 {
					time.AfterFunc(timeout, func() {
						_, _ = d.e.Halt(ctx)
					})
				}

			case "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// Not implemented: ponder moves are not distinguished from normal search.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if len(pv.Moves) > 0 {
			// Before the final "bestmove", send one last "info" with the final
			// search stats, so the GUI has complete statistics about the search.
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", printMove(pv.Moves[0]))
		} else {
			// No PV: the position was checkmate or stalemate. Send the UCI
			// null move.
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	// "info depth 2 score cp 214 nodes 2124 time 1242 nps 1710 pv e2e4 e7e5 g1f3"

	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	if md, ok := pv.Score.MateDistance(); ok {
		moves := (md + 1) / 2
		if pv.Score < 0 {
			moves = -moves
		}
		parts = append(parts, fmt.Sprintf("score mate %v", moves))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score*100)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv")
		parts = append(parts, board.FormatMoves(pv.Moves, printMove))
	}

	return strings.Join(parts, " ")
}

func printMove(m board.Move) string {
	return fmt.Sprintf("%v%v%v", m.From, m.To, printPromoPiece(m.Promotion))
}

func printPromoPiece(p board.Piece) string {
	switch p {
	case board.Queen:
		return "q"
	case board.Rook:
		return "r"
	case board.Knight:
		return "n"
	case board.Bishop:
		return "b"
	default:
		return ""
	}
}
