package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
)

var nopLogger = zerolog.Nop()

// parseTestGame is a helper that parses a PGN string and returns the game.
func parseTestGame(t *testing.T, pgn string) *Game {
	t.Helper()
	p := NewParser(strings.NewReader(pgn))
	game, err := p.ParseGame()
	if err != nil {
		t.Fatalf("ParseGame error: %v", err)
	}
	if game == nil {
		t.Fatal("Expected game, got nil")
	}
	return game
}

func sanList(moves []*Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.SAN)
	}
	return out
}

func TestParseSimpleGame(t *testing.T) {
	pgn := `[Event "Test"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0
`

	game := parseTestGame(t, pgn)

	if got := game.Tag("Event"); got != "Test" {
		t.Errorf("Event = %q, want %q", got, "Test")
	}
	if got := game.Tag("White"); got != "Player1" {
		t.Errorf("White = %q, want %q", got, "Player1")
	}
	if got := game.Tag("Black"); got != "Player2" {
		t.Errorf("Black = %q, want %q", got, "Player2")
	}
	if len(game.Tags) != 7 {
		t.Errorf("len(Tags) = %d, want 7", len(game.Tags))
	}

	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}
	if diff := cmp.Diff(want, sanList(game.Moves)); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
	if got := game.Result; got != "1-0" {
		t.Errorf("Result = %q, want %q", got, "1-0")
	}
	if game.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", game.StartLine)
	}
}

func TestParseFoolsMate(t *testing.T) {
	game := parseTestGame(t, `1. f3 e5 2. g4 Qh4# 0-1`)

	if count := game.PlyCount(); count != 4 {
		t.Errorf("PlyCount = %d, want 4", count)
	}
	if got := game.Moves[3].SAN; got != "Qh4#" {
		t.Errorf("last move = %q, want %q", got, "Qh4#")
	}
	if got := game.Result; got != "0-1" {
		t.Errorf("Result = %q, want %q", got, "0-1")
	}
	if got := game.Tag("Result"); got != "0-1" {
		t.Errorf("Result tag = %q, want it filled from the movetext", got)
	}
}

func TestParseWithComments(t *testing.T) {
	pgn := `[Event "Test"]
[Result "*"]

{Prefix} 1. e4 {Best by
test} e5 ; rest of line
2. Nf3 Nc6 {trailing} *
`

	game := parseTestGame(t, pgn)

	if got := game.PrefixComment; got != "Prefix" {
		t.Errorf("PrefixComment = %q, want %q", got, "Prefix")
	}
	tests := []struct {
		ply  int
		want string
	}{
		{0, "Best by test"},
		{1, "rest of line"},
		{2, ""},
		{3, "trailing"},
	}
	for _, tt := range tests {
		if got := game.Moves[tt.ply].Comment; got != tt.want {
			t.Errorf("Moves[%d].Comment = %q, want %q", tt.ply, got, tt.want)
		}
	}
}

func TestParseWithVariations(t *testing.T) {
	pgn := `[Event "Test"]
[Result "*"]

1. e4 e5 (1... c5 2. Nf3 (2. Nc3 Nc6) d6) 2. Nf3 *
`

	game := parseTestGame(t, pgn)

	if diff := cmp.Diff([]string{"e4", "e5", "Nf3"}, sanList(game.Moves)); diff != "" {
		t.Fatalf("main line mismatch (-want +got):\n%s", diff)
	}

	e5 := game.Moves[1]
	if len(e5.Variations) != 1 {
		t.Fatalf("len(e5.Variations) = %d, want 1", len(e5.Variations))
	}
	sicilian := e5.Variations[0]
	if diff := cmp.Diff([]string{"c5", "Nf3", "d6"}, sanList(sicilian)); diff != "" {
		t.Errorf("variation mismatch (-want +got):\n%s", diff)
	}
	if len(sicilian[1].Variations) != 1 || sanList(sicilian[1].Variations[0])[0] != "Nc3" {
		t.Errorf("nested variation on 2. Nf3 missing: %+v", sicilian[1].Variations)
	}
}

func TestParseCastling(t *testing.T) {
	tests := []struct {
		name     string
		pgn      string
		expected string
	}{
		{"O-O", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O *", "O-O"},
		{"O-O-O", "1. d4 d5 2. Nc3 Nc6 3. Bf4 Bf5 4. Qd2 Qd7 5. O-O-O *", "O-O-O"},
		{"0-0", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. 0-0 *", "O-O"},
		{"0-0-0", "1. d4 d5 2. Nc3 Nc6 3. Bf4 Bf5 4. Qd2 Qd7 5. 0-0-0 *", "O-O-O"},
		{"o-o", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. o-o *", "O-O"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := parseTestGame(t, tt.pgn)
			last := game.Moves[len(game.Moves)-1]
			if last.SAN != tt.expected {
				t.Errorf("castling move = %q, want %q", last.SAN, tt.expected)
			}
		})
	}
}

func TestParseMultipleGames(t *testing.T) {
	pgn := `[Event "Game 1"]
[Result "1-0"]

1. e4 e5 1-0

[Event "Game 2"]
[Result "0-1"]

1. d4 d5 0-1
`

	p := NewParser(strings.NewReader(pgn))
	games, err := p.ParseAllGames()
	if err != nil {
		t.Fatalf("ParseAllGames error: %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	if got := games[0].Tag("Event"); got != "Game 1" {
		t.Errorf("games[0].Event = %q, want %q", got, "Game 1")
	}
	if got := games[1].Tag("Event"); got != "Game 2" {
		t.Errorf("games[1].Event = %q, want %q", got, "Game 2")
	}
	if games[1].StartLine != 6 {
		t.Errorf("games[1].StartLine = %d, want 6", games[1].StartLine)
	}
}

func TestParseNAGs(t *testing.T) {
	game := parseTestGame(t, `1. e4! e5? 2. Nf3!! Nc6?? 3. Bc4 $14 $32 Bc5!? *`)

	want := [][]int{{1}, {2}, {3}, {4}, {14, 32}, {5}}
	for i, nags := range want {
		if diff := cmp.Diff(nags, game.Moves[i].NAGs); diff != "" {
			t.Errorf("Moves[%d].NAGs mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   "} {
		game, err := NewParser(strings.NewReader(input)).ParseGame()
		if game != nil || err != nil {
			t.Errorf("ParseGame(%q) = %v, %v, want nil, nil", input, game, err)
		}
	}
}

func TestParseMissingTerminator(t *testing.T) {
	game := parseTestGame(t, "[Result \"1/2-1/2\"]\n\n1. e4 e5\n")
	if game.Result != "1/2-1/2" {
		t.Errorf("Result = %q, want the Result tag value", game.Result)
	}
}

func TestParseUnclosedVariation(t *testing.T) {
	p := NewParser(strings.NewReader("1. e4 (1. d4 d5\n"))
	_, err := p.ParseGame()
	if !errors.Is(err, chesserrors.ErrParseFailure) {
		t.Fatalf("ParseGame error = %v, want ErrParseFailure", err)
	}

	var parseErr *chesserrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error %T is not a *ParseError", err)
	}
	if parseErr.Got != "end of input" {
		t.Errorf("Got = %q, want %q", parseErr.Got, "end of input")
	}

	_, err = NewParser(strings.NewReader("1. e4 (1. d4 d5\n")).ParseAllGames()
	var gameErr *chesserrors.GameError
	if !errors.As(err, &gameErr) || gameErr.GameNum != 1 {
		t.Errorf("ParseAllGames error = %v, want GameError for game 1", err)
	}
}

func TestLexerTokens(t *testing.T) {
	lexer := NewLexer(strings.NewReader(`[White "A \"B\""] 12... Nxe5+ $3 {c} 1/2-1/2`), nopLogger)

	want := []Token{
		{Type: TagToken, Text: "White"},
		{Type: StringToken, Text: `A "B"`},
		{Type: MoveNumber, MoveNum: 12},
		{Type: MoveToken, Text: "Nxe5"},
		{Type: CheckSymbol, Text: "+"},
		{Type: NAGToken, NAG: 3, Text: "$3"},
		{Type: CommentToken, Text: "c"},
		{Type: TerminatingResult, Text: "1/2-1/2"},
		{Type: EOFToken},
	}

	for i, w := range want {
		got := *lexer.NextToken()
		got.Line, got.Column = 0, 0
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("token %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestLexerColumns(t *testing.T) {
	lexer := NewLexer(strings.NewReader("1. e4 e5\n2. Nf3"), nopLogger)
	tests := []struct {
		text   string
		line   uint
		column uint
	}{
		{"", 1, 1},
		{"e4", 1, 4},
		{"e5", 1, 7},
		{"", 2, 1},
		{"Nf3", 2, 4},
	}
	for _, tt := range tests {
		tok := lexer.NextToken()
		if tok.Text != tt.text || tok.Line != tt.line || tok.Column != tt.column {
			t.Errorf("token %q at %d:%d, want %q at %d:%d", tok.Text, tok.Line, tok.Column, tt.text, tt.line, tt.column)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := MoveToken.String(); got != "MOVE" {
		t.Errorf("MoveToken.String() = %q, want %q", got, "MOVE")
	}
	if got := TokenType(999).String(); got != "UNKNOWN" {
		t.Errorf("TokenType(999).String() = %q, want %q", got, "UNKNOWN")
	}
}

func TestGameSetTag(t *testing.T) {
	g := &Game{}
	g.SetTag("White", "A")
	g.SetTag("Black", "B")
	g.SetTag("White", "C")

	want := []Tag{{"White", "C"}, {"Black", "B"}}
	if diff := cmp.Diff(want, g.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"White": "C", "Black": "B"}, g.TagMap()); diff != "" {
		t.Errorf("TagMap mismatch (-want +got):\n%s", diff)
	}
	if got := g.Tag("Event"); got != "" {
		t.Errorf("Tag(Event) = %q, want empty", got)
	}
}
