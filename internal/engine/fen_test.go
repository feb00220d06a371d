package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chesscore-go/internal/chess"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
)

// mustParseFEN parses fen or fails the test.
func mustParseFEN(t testing.TB, fen string) chess.GameState {
	t.Helper()
	state, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error = %v", fen, err)
	}
	return state
}

func TestParseFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(chess.GameState) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(s chess.GameState) bool {
				return s.Position[chess.E1] == chess.Piece{Colour: chess.White, Type: chess.King} &&
					s.Position[chess.E8] == chess.Piece{Colour: chess.Black, Type: chess.King} &&
					s.Position[chess.E2] == chess.Piece{Colour: chess.White, Type: chess.Pawn} &&
					s.Position[chess.D8] == chess.Piece{Colour: chess.Black, Type: chess.Queen} &&
					s.ActiveColour == chess.White &&
					s.CastleRights.White.KingSide && s.CastleRights.Black.QueenSide &&
					s.EnPassantTarget == chess.NoSquare &&
					s.HalfMoveCount == 0 && s.FullMoveCount == 1
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(s chess.GameState) bool {
				return s.Position[chess.E4].Type == chess.Pawn &&
					s.Position[chess.E2].IsEmpty() &&
					s.ActiveColour == chess.Black &&
					s.EnPassantTarget == chess.E3
			},
		},
		{
			name: "partial castling rights and clocks",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w Kq - 12 40",
			checkFn: func(s chess.GameState) bool {
				return s.CastleRights.White == chess.CastleSide{KingSide: true} &&
					s.CastleRights.Black == chess.CastleSide{QueenSide: true} &&
					s.HalfMoveCount == 12 && s.FullMoveCount == 40
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustParseFEN(t, tt.fen)
			if !tt.checkFn(state) {
				t.Errorf("ParseFEN(%q) state check failed:\n%s", tt.fen, state.Position.Draw())
			}
		})
	}
}

func TestParseFEN_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		wantField string
	}{
		{"empty", "", "fields"},
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", "fields"},
		{"seven fields", InitialFEN + " extra", "fields"},
		{"bad colour", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", "active colour"},
		{"bad castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1", "castling"},
		{"too many castling letters", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkqK - 0 1", "castling"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", "en passant"},
		{"negative half-move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", "half-move clock"},
		{"non-numeric full-move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 one", "full-move number"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "board"},
		{"short rank", "rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "board"},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "board"},
		{"split digits", "rnbqkbnr/pppppppp/44/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ""},
		{"bad piece letter", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "board"},
		{"nine digit", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "board"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ParseFEN(%q) unexpected error: %v", tt.fen, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ParseFEN(%q) error = nil, want error", tt.fen)
			}
			if !errors.Is(err, chesserrors.ErrInvalidFEN) {
				t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
			var fenErr *chesserrors.FENError
			if !errors.As(err, &fenErr) {
				t.Fatalf("ParseFEN(%q) error is not a *FENError", tt.fen)
			}
			if fenErr.Field != tt.wantField {
				t.Errorf("ParseFEN(%q) field = %q, want %q", tt.fen, fenErr.Field, tt.wantField)
			}
		})
	}
}

func TestFormatFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/8/8/8/8/8/8/4K2k b - - 99 120",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			state := mustParseFEN(t, fen)
			if got := FormatFEN(state); got != fen {
				t.Errorf("FormatFEN(ParseFEN(%q)) = %q", fen, got)
			}
			again := mustParseFEN(t, FormatFEN(state))
			if diff := cmp.Diff(state, again); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatFEN_CanonicalCastling(t *testing.T) {
	state := mustParseFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w qkQK - 0 1")
	if got, want := FormatFEN(state), "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"; got != want {
		t.Errorf("FormatFEN() = %q, want %q", got, want)
	}
}

func TestFormatFEN_ReachableStates(t *testing.T) {
	// Every state reachable in two plies from the start survives a round trip.
	start := InitialState()
	for _, m1 := range LegalMoves(start) {
		s1, _ := ExecuteMove(start, m1)
		for _, m2 := range LegalMoves(s1) {
			s2, _ := ExecuteMove(s1, m2)
			back, err := ParseFEN(FormatFEN(s2))
			if err != nil {
				t.Fatalf("ParseFEN(FormatFEN()) error = %v", err)
			}
			if back != s2 {
				t.Errorf("round trip of %s differs", FormatFEN(s2))
			}
		}
	}
}

func TestPositionKey(t *testing.T) {
	a := mustParseFEN(t, "8/8/8/8/8/8/8/4K2k w - - 0 1")
	b := mustParseFEN(t, "8/8/8/8/8/8/8/4K2k w - - 10 30")
	if PositionKey(a) != PositionKey(b) {
		t.Errorf("PositionKey ignores counters: %q != %q", PositionKey(a), PositionKey(b))
	}
	if got, want := FENPositionKey(FormatFEN(b)), PositionKey(b); got != want {
		t.Errorf("FENPositionKey() = %q, want %q", got, want)
	}
}
