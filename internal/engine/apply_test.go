package engine

import (
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// findMove returns the legal move in state with the given UCI text.
func findMove(t testing.TB, state chess.GameState, uci string) chess.Move {
	t.Helper()
	m, err := MatchUCI(LegalMoves(state), uci)
	if err != nil {
		t.Fatalf("no legal move %s in %s: %v", uci, FormatFEN(state), err)
	}
	return m
}

// playUCI applies a sequence of UCI moves from fen and returns the final state.
func playUCI(t testing.TB, fen string, moves ...string) chess.GameState {
	t.Helper()
	state := mustParseFEN(t, fen)
	for _, uci := range moves {
		state, _ = ExecuteMove(state, findMove(t, state, uci))
	}
	return state
}

func TestExecuteMove(t *testing.T) {
	tests := []struct {
		name         string
		fen          string
		move         string
		wantFEN      string
		wantCaptured chess.Piece
	}{
		{
			name:    "pawn single move",
			fen:     InitialFEN,
			move:    "e2e3",
			wantFEN: "rnbqkbnr/pppppppp/8/8/8/4P3/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
		},
		{
			name:    "pawn double move sets en passant target",
			fen:     InitialFEN,
			move:    "e2e4",
			wantFEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name:    "knight move increments half-move clock",
			fen:     InitialFEN,
			move:    "g1f3",
			wantFEN: "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
		},
		{
			name:    "black move increments full-move number",
			fen:     "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
			move:    "g8f6",
			wantFEN: "rnbqkb1r/pppppppp/5n2/8/8/5N2/PPPPPPPP/RNBQKB1R w KQkq - 2 2",
		},
		{
			name:         "pawn capture",
			fen:          "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
			move:         "e4d5",
			wantFEN:      "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
			wantCaptured: chess.Piece{Colour: chess.Black, Type: chess.Pawn},
		},
		{
			name:         "white en passant capture",
			fen:          "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
			move:         "f5e6",
			wantFEN:      "rnbqkbnr/pppp1ppp/4P3/8/8/8/PPPPP1PP/RNBQKBNR b KQkq - 0 3",
			wantCaptured: chess.Piece{Colour: chess.Black, Type: chess.Pawn},
		},
		{
			name:         "black en passant capture",
			fen:          "rnbqkbnr/ppppp1pp/8/8/4Pp2/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3",
			move:         "f4e3",
			wantFEN:      "rnbqkbnr/ppppp1pp/8/8/8/4p3/PPPP1PPP/RNBQKBNR w KQkq - 0 4",
			wantCaptured: chess.Piece{Colour: chess.White, Type: chess.Pawn},
		},
		{
			name:    "white kingside castle",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
			move:    "e1g1",
			wantFEN: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1 b kq - 1 1",
		},
		{
			name:    "white queenside castle",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
			move:    "e1c1",
			wantFEN: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/2KR3R b kq - 1 1",
		},
		{
			name:    "black kingside castle",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1",
			move:    "e8g8",
			wantFEN: "r4rk1/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQ - 1 2",
		},
		{
			name:    "black queenside castle",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1",
			move:    "e8c8",
			wantFEN: "2kr3r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQ - 1 2",
		},
		{
			name:    "rook move revokes one right",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
			move:    "h1g1",
			wantFEN: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K1R1 b Qkq - 1 1",
		},
		{
			name:    "king move revokes both rights",
			fen:     "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
			move:    "e1f1",
			wantFEN: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4K1R b kq - 1 1",
		},
		{
			name:         "capture on rook home square revokes right",
			fen:          "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:         "a1a8",
			wantFEN:      "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
			wantCaptured: chess.Piece{Colour: chess.Black, Type: chess.Rook},
		},
		{
			name:    "promotion to queen",
			fen:     "8/P7/8/8/8/8/8/4K2k w - - 0 1",
			move:    "a7a8q",
			wantFEN: "Q7/8/8/8/8/8/8/4K2k b - - 0 1",
		},
		{
			name:         "capture promotion to knight",
			fen:          "1r6/P7/8/8/8/8/8/4K2k w - - 0 1",
			move:         "a7b8n",
			wantFEN:      "1N6/8/8/8/8/8/8/4K2k b - - 0 1",
			wantCaptured: chess.Piece{Colour: chess.Black, Type: chess.Rook},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustParseFEN(t, tt.fen)
			next, captured := ExecuteMove(state, findMove(t, state, tt.move))

			if got := FormatFEN(next); got != tt.wantFEN {
				t.Errorf("ExecuteMove(%s) FEN = %q, want %q", tt.move, got, tt.wantFEN)
			}
			if captured != tt.wantCaptured {
				t.Errorf("ExecuteMove(%s) captured = %v, want %v", tt.move, captured, tt.wantCaptured)
			}
			if got := FormatFEN(state); got != tt.fen {
				t.Errorf("ExecuteMove modified its input: %q", got)
			}
		})
	}
}

func TestExecuteMove_EmptyStartPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ExecuteMove from an empty square did not panic")
		}
	}()
	ExecuteMove(InitialState(), chess.Move{Start: chess.E4, End: chess.E5, Capture: chess.NoSquare})
}

func TestExecuteMove_EnPassantTargetExpires(t *testing.T) {
	state := playUCI(t, InitialFEN, "e2e4", "g8f6")
	if state.EnPassantTarget != chess.NoSquare {
		t.Errorf("EnPassantTarget = %v after a non-pawn reply, want none", state.EnPassantTarget)
	}
}
