package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"

	"github.com/corvidchess/corvid/pkg/book"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/engine/uci"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero for no limit)")
	hash  = flag.Uint("hash", 32, "Transposition table size in MB (zero to disable)")
	noise = flag.Uint("noise", 10, "Evaluation noise in millipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

corvid is a simple UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corvid", "corvidchess", engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: *noise,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in, uci.UseBook(book.NoBook, 0))
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
