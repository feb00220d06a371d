package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chesscore-go/internal/game"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON, etc.).
type GameWriter interface {
	// WriteGame writes a single game with its tags to the output.
	WriteGame(g *game.Game, tags map[string]string) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer for the named format: "pgn", "json" or
// "jsonl" (one JSON document per game).
func NewGameWriter(w io.Writer, format string, opts Options) (GameWriter, bool) {
	switch format {
	case "", "pgn":
		return NewPGNWriter(w, opts), true
	case "json":
		return NewJSONWriter(w), true
	case "jsonl":
		return NewJSONWriterSingle(w), true
	}
	return nil, false
}

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w    io.Writer
	opts Options
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, opts Options) *PGNWriter {
	return &PGNWriter{
		w:    w,
		opts: opts,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(g *game.Game, tags map[string]string) error {
	return WritePGN(pw.w, g, tags, pw.opts)
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*JSONGame, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game
// immediately as one compact line.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(g *game.Game, tags map[string]string) error {
	if jw.single {
		return json.NewEncoder(jw.w).Encode(GameToJSON(g, tags))
	}

	// Converted now so later changes to tags do not leak into the batch
	jw.games = append(jw.games, GameToJSON(g, tags))
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.games})

	// Clear buffer after writing
	jw.games = nil

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
