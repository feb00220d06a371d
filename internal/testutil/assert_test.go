package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
)

// The helpers cannot be made to fail against a real *testing.T, so the
// success paths are checked directly and the failure paths through a
// recording testing.TB.

type recordingT struct {
	testing.TB
	errors []string
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestAssertEqual(t *testing.T) {
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, nil, nil)

	r := &recordingT{TB: t}
	AssertEqual(r, "a", "b", "value %d", 7)
	if len(r.errors) != 1 {
		t.Fatalf("AssertEqual recorded %d errors, want 1", len(r.errors))
	}
	if !strings.HasPrefix(r.errors[0], "value 7: mismatch") {
		t.Errorf("AssertEqual message = %q, want prefix %q", r.errors[0], "value 7: mismatch")
	}
}

func TestAssertErrorIs(t *testing.T) {
	err := chesserrors.Wrap(chesserrors.ErrIllegalMove, "e5")
	AssertErrorIs(t, err, chesserrors.ErrIllegalMove)

	r := &recordingT{TB: t}
	AssertErrorIs(r, err, chesserrors.ErrInvalidFEN)
	AssertErrorIs(r, nil, chesserrors.ErrInvalidFEN)
	if len(r.errors) != 2 {
		t.Errorf("AssertErrorIs recorded %d errors, want 2", len(r.errors))
	}
}

func TestAssertGameHelpers(t *testing.T) {
	g := PlayGame(t, "", "f3", "e5", "g4", "Qh4#")

	AssertSANs(t, g, "f3", "e5", "g4", "Qh4#")
	AssertFEN(t, g, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	AssertOutcome(t, g, chess.Checkmate, chess.BlackWins)
	AssertPieceAt(t, g.Board(), "h4", chess.Piece{Colour: chess.Black, Type: chess.Queen})
	AssertPieceAt(t, g.Board(), "e7", chess.NoPiece)

	r := &recordingT{TB: t}
	AssertOutcome(r, g, "", "")
	AssertOutcome(r, g, chess.Checkmate, chess.WhiteWins)
	AssertSANs(r, g, "f3")
	AssertPieceAt(r, g.Board(), "e1", chess.NoPiece)
	if len(r.errors) != 4 {
		t.Errorf("recorded %d errors, want 4: %v", len(r.errors), r.errors)
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		args []interface{}
		want string
	}{
		{nil, ""},
		{[]interface{}{"plain"}, "plain: "},
		{[]interface{}{"ply %d", 3}, "ply 3: "},
		{[]interface{}{42}, "42: "},
	}
	for _, tt := range tests {
		if got := prefix(tt.args...); got != tt.want {
			t.Errorf("prefix(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
