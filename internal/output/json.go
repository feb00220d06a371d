package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/game"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	Outcome    string            `json:"outcome,omitempty"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN"`
	FinalFEN   string            `json:"finalFEN"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int      `json:"moveNumber"`
	Colour     string   `json:"colour"` // "white" or "black"
	SAN        string   `json:"san"`
	UCI        string   `json:"uci"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Piece      string   `json:"piece"`
	Captured   string   `json:"captured,omitempty"`
	Promotion  string   `json:"promotion,omitempty"`
	FEN        string   `json:"fen"`
	Elapsed    *float64 `json:"elapsed,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game and its tags to the JSON export form.
func GameToJSON(g *game.Game, tags map[string]string) *JSONGame {
	jg := &JSONGame{
		Tags:       copyTags(tags),
		Result:     GameResult(g, tags),
		PlyCount:   g.Ply(),
		InitialFEN: g.InitialFEN(),
		FinalFEN:   g.FEN(),
	}
	jg.Tags["Result"] = jg.Result
	if outcome := g.Outcome(); outcome != nil {
		jg.Outcome = string(outcome.By)
	}

	board := g.InitialState().Position
	for _, hm := range g.Plies() {
		jg.Moves = append(jg.Moves, convertMove(hm, board))
		board = hm.Board
	}
	return jg
}

// convertMove builds the JSON form of hm, played on board.
func convertMove(hm game.HalfMove, board chess.Position) JSONMove {
	jm := JSONMove{
		MoveNumber: hm.Number,
		Colour:     hm.Colour.Name(),
		SAN:        hm.SAN,
		UCI:        hm.Move.UCI(),
		From:       hm.Move.Start.String(),
		To:         hm.Move.End.String(),
		FEN:        hm.FEN,
		Elapsed:    hm.Elapsed,
	}
	if piece, ok := board.Get(hm.Move.Start); ok {
		jm.Piece = strings.ToLower(piece.Type.String())
	}
	if !hm.Captured.IsEmpty() {
		jm.Captured = strings.ToLower(hm.Captured.Type.String())
	}
	if hm.Move.IsPromotion() {
		jm.Promotion = strings.ToLower(hm.Move.Promotion.String())
	}
	return jm
}

// copyTags copies game tags and ensures the seven tag roster has values.
func copyTags(tags map[string]string) map[string]string {
	result := make(map[string]string, len(tags)+len(SevenTagRoster))
	for k, v := range tags {
		result[k] = v
	}
	for _, tag := range SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	return result
}

// WriteJSON writes one game as indented JSON.
func WriteJSON(w io.Writer, g *game.Game, tags map[string]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(g, tags))
}
