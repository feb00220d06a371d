// Package testutil provides shared test helpers for building games and
// checking positions.
package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/game"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%smismatch (-want +got):\n%s", prefix(msgAndArgs...), diff)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%serror = %v, want %v", prefix(msgAndArgs...), err, target)
	}
}

// AssertFEN fails unless the game's current position is want.
func AssertFEN(t testing.TB, g *game.Game, want string) {
	t.Helper()
	if got := g.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

// AssertSANs fails unless the game's moves, in SAN, are want.
func AssertSANs(t testing.TB, g *game.Game, want ...string) {
	t.Helper()
	got := make([]string, 0, g.Ply())
	for _, hm := range g.Plies() {
		got = append(got, hm.SAN)
	}
	AssertEqual(t, got, want, "moves")
}

// AssertOutcome fails unless the game ended by method with result. An
// empty method asserts the game is still in progress.
func AssertOutcome(t testing.TB, g *game.Game, method chess.Method, result chess.Result) {
	t.Helper()
	got := g.Outcome()
	switch {
	case method == "" && got != nil:
		t.Errorf("Outcome() = %s, want game in progress", got)
	case method == "":
	case got == nil:
		t.Errorf("Outcome() = nil, want %s", chess.Outcome{Result: result, By: method})
	case got.By != method || got.Result != result:
		t.Errorf("Outcome() = %s, want %s", got, chess.Outcome{Result: result, By: method})
	}
}

// AssertPieceAt fails unless the piece on square (e.g. "e4") is want.
// A zero Piece asserts an empty square.
func AssertPieceAt(t testing.TB, pos chess.Position, square string, want chess.Piece) {
	t.Helper()
	sq, err := chess.ParseSquare(square)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error: %v", square, err)
	}
	got, _ := pos.Get(sq)
	if got != want {
		t.Errorf("piece at %s = %v, want %v", square, got, want)
	}
}

// prefix formats optional message arguments as "msg: ".
func prefix(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(s, msgAndArgs[1:]...) + ": "
	}
	return fmt.Sprintf("%v: ", msgAndArgs[0])
}
