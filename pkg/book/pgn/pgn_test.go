package pgn_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/pkg/book"
	"github.com/corvidchess/corvid/pkg/book/pgn"
)

const sampleDatabase = `[Event "rated bullet game"]
[Site "https://example.test/1"]
[Date "2026.01.01"]
[White "alice"]
[Black "bob"]
[Result "1-0"]

1. e4 { best by test } e5 2. Nf3 Nc6 3. Bb5 a6 (3... Nf6 4. O-O) 4. Ba4 Nf6 1-0

[Event "rated bullet game"]
[Site "https://example.test/2"]
[Date "2026.01.02"]
[White "carol"]
[Black "dave"]
[Result "0-1"]

1. d4 d5 2. c4 e6 0-1
`

func TestParseSplitsGamesAndStripsAnnotations(t *testing.T) {
	games, err := pgn.Parse(strings.NewReader(sampleDatabase))
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "1-0", games[0].Result)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6"}, games[0].SAN)
	assert.Equal(t, "alice", games[0].Tags["White"])

	assert.Equal(t, "0-1", games[1].Result)
	assert.Equal(t, []string{"d4", "d5", "c4", "e6"}, games[1].SAN)
}

func TestImportFeedsBuilderAndCompilesToBook(t *testing.T) {
	games, err := pgn.Parse(strings.NewReader(sampleDatabase))
	require.NoError(t, err)

	b := book.NewBuilder()
	pgn.ImportAll(b, games, 4)

	compiled := b.Build()

	moves, err := compiled.Find(context.Background(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	found := false
	for _, m := range moves {
		if m.String() == "e2e4" {
			found = true
		}
	}
	assert.True(t, found)
}

// TestImportExcludesLosingSidesMoves covers the second sample game, a 0-1
// result: White played 1. d4, then lost, so 1. d4 must never surface from the
// compiled book even though it was played by a real archived game. Only the
// winning side's moves (Black's d5/e6 here) carry training signal.
func TestImportExcludesLosingSidesMoves(t *testing.T) {
	games, err := pgn.Parse(strings.NewReader(sampleDatabase))
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, "0-1", games[1].Result)

	b := book.NewBuilder()
	require.NoError(t, pgn.Import(b, games[1], 4))

	compiled := b.Build()

	moves, err := compiled.Find(context.Background(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	for _, m := range moves {
		assert.NotEqual(t, "d2d4", m.String(), "losing side's move must not be recorded")
	}

	afterD4, err := compiled.Find(context.Background(), "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1")
	require.NoError(t, err)
	require.NotEmpty(t, afterD4, "Black's winning reply d7d5 should be recorded")
	assert.Equal(t, "d7d5", afterD4[0].String())
}

func TestImportStopsAtUnresolvableMoveWithoutError(t *testing.T) {
	bad := `[Event "test"]
[Result "1-0"]

1. e4 e5 2. Zz9 garbage 1-0
`
	games, err := pgn.Parse(strings.NewReader(bad))
	require.NoError(t, err)
	require.Len(t, games, 1)

	b := book.NewBuilder()
	require.NoError(t, pgn.Import(b, games[0], 10))
}

func TestImportIgnoresUnfinishedGames(t *testing.T) {
	unfinished := `[Event "test"]
[Result "*"]

1. e4 e5 2. Nf3 *
`
	games, err := pgn.Parse(strings.NewReader(unfinished))
	require.NoError(t, err)

	b := book.NewBuilder()
	require.NoError(t, pgn.Import(b, games[0], 10))

	compiled := b.Build()
	moves, err := compiled.Find(context.Background(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.Empty(t, moves)
}
