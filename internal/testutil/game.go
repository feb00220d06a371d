package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/game"
	"github.com/lgbarn/chesscore-go/internal/parser"
)

// PlayGame builds a game from fen (empty for the standard start) and plays
// the SAN moves. It calls t.Fatal on the first error.
func PlayGame(t testing.TB, fen string, sans ...string) *game.Game {
	t.Helper()
	g, err := game.New(game.Config{StartPosition: fen})
	if err != nil {
		t.Fatalf("game.New(%q) error: %v", fen, err)
	}
	for _, san := range sans {
		if g, err = g.MoveSAN(san); err != nil {
			t.Fatalf("MoveSAN(%q) error: %v", san, err)
		}
	}
	return g
}

// ParseTestGames parses a PGN string and returns all games found.
// Returns an empty slice if parsing fails or no games are found.
func ParseTestGames(pgn string) []*parser.Game {
	games, err := parser.NewParser(strings.NewReader(pgn)).ParseAllGames()
	if err != nil {
		return nil
	}
	return games
}

// MustParseGame parses a PGN string and returns the first game.
// It calls t.Fatal if parsing fails or no games are found.
func MustParseGame(t testing.TB, pgn string) *parser.Game {
	t.Helper()
	games := ParseTestGames(pgn)
	if len(games) == 0 {
		t.Fatalf("failed to parse test game:\n%s", pgn)
	}
	return games[0]
}

// MustReplay parses the first game of pgn and plays its main line.
func MustReplay(t testing.TB, pgn string) *game.Game {
	t.Helper()
	g, err := parser.Replay(MustParseGame(t, pgn))
	if err != nil {
		t.Fatalf("Replay error: %v", err)
	}
	return g
}
