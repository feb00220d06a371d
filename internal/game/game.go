// Package game provides the Game aggregate: a position together with the
// history, captures and outcome that led to it. A Game is immutable; every
// transition returns a new Game and leaves the receiver untouched.
package game

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// TimeControl is stored with a game for display. It is never enforced.
type TimeControl struct {
	InitialSeconds   int
	IncrementSeconds int
}

// Config describes how a game starts.
type Config struct {
	// StartPosition is a FEN string; empty means the standard start.
	StartPosition string
	TimeControl   *TimeControl
}

// HalfMove is one recorded ply.
type HalfMove struct {
	Move     chess.Move
	SAN      string
	FEN      string         // Position after the move
	Board    chess.Position // Snapshot after the move
	Colour   chess.Colour   // Side that moved
	Number   int            // Full-move number the ply belongs to
	Captured chess.Piece    // NoPiece for quiet moves
	Elapsed  *float64       // Seconds spent, if recorded
}

// MovePair groups a white ply with the black reply. White is nil when the
// game started with black to move; Black is nil while the reply is pending.
type MovePair struct {
	White *HalfMove
	Black *HalfMove
}

// Game is an immutable snapshot of a game in progress or concluded.
type Game struct {
	config     Config
	initial    chess.GameState
	initialFEN string
	state      chess.GameState
	legalMoves []chess.Move
	plies      []HalfMove
	captured   []chess.Piece
	outcome    *chess.Outcome
	fen        string
}

// New creates a game from cfg. An unparseable start position is reported
// as an error wrapping errors.ErrInvalidConfig.
func New(cfg Config) (*Game, error) {
	fen := cfg.StartPosition
	if strings.TrimSpace(fen) == "" {
		fen = engine.InitialFEN
	}
	state, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "start position: %v", err)
	}
	if cfg.TimeControl != nil {
		tc := *cfg.TimeControl
		if tc.InitialSeconds < 0 || tc.IncrementSeconds < 0 {
			return nil, errors.Wrap(errors.ErrInvalidConfig, "time control must not be negative")
		}
		cfg.TimeControl = &tc
	}

	normalized := engine.FormatFEN(state)
	g := &Game{
		config:     cfg,
		initial:    state,
		initialFEN: normalized,
		state:      state,
		legalMoves: engine.LegalMoves(state),
		fen:        normalized,
	}
	return g, nil
}

// MoveOption configures a single call to Move.
type MoveOption func(*HalfMove)

// WithElapsed records the seconds spent on the move.
func WithElapsed(seconds float64) MoveOption {
	return func(h *HalfMove) {
		h.Elapsed = &seconds
	}
}

// Move plays m, which must be == to one of LegalMoves, and returns the
// resulting game. Rejections are *errors.MoveError values wrapping
// errors.ErrGameOver or errors.ErrIllegalMove.
func (g *Game) Move(m chess.Move, opts ...MoveOption) (*Game, error) {
	if g.outcome != nil {
		return nil, g.moveError(errors.ErrGameOver, m.UCI())
	}
	if !g.isLegal(m) {
		return nil, g.moveError(errors.ErrIllegalMove, m.UCI())
	}
	return g.play(m, opts), nil
}

// MoveUCI plays the legal move given in UCI notation, e.g. "e7e8q".
func (g *Game) MoveUCI(uci string, opts ...MoveOption) (*Game, error) {
	if g.outcome != nil {
		return nil, g.moveError(errors.ErrGameOver, uci)
	}
	m, err := engine.MatchUCI(g.legalMoves, uci)
	if err != nil {
		return nil, g.moveError(err, uci)
	}
	return g.play(m, opts), nil
}

// MoveSAN plays the legal move given in SAN, e.g. "Nbd2" or "O-O".
func (g *Game) MoveSAN(san string, opts ...MoveOption) (*Game, error) {
	if g.outcome != nil {
		return nil, g.moveError(errors.ErrGameOver, san)
	}
	m, err := engine.ParseSAN(g.state, g.legalMoves, san)
	if err != nil {
		return nil, g.moveError(err, san)
	}
	return g.play(m, opts), nil
}

// Conclude ends the game by a decision outside the rules: resignation,
// timeout or agreement. Rule-based endings are detected by Move itself.
func (g *Game) Conclude(outcome chess.Outcome) (*Game, error) {
	if g.outcome != nil {
		return nil, errors.Wrapf(errors.ErrGameOver, "already decided %s", *g.outcome)
	}
	switch {
	case outcome.By.IsAutomatic():
		return nil, errors.Wrapf(errors.ErrInvalidOutcome, "%s is decided by the rules", outcome.By)
	case outcome.By == chess.Agreement && outcome.Result != chess.Draw:
		return nil, errors.Wrap(errors.ErrInvalidOutcome, "agreement must be a draw")
	case outcome.By == chess.Resignation && outcome.Result == chess.Draw:
		return nil, errors.Wrap(errors.ErrInvalidOutcome, "resignation cannot be a draw")
	}
	switch outcome.Result {
	case chess.WhiteWins, chess.BlackWins, chess.Draw:
	default:
		return nil, errors.Wrapf(errors.ErrInvalidOutcome, "unknown result %q", string(outcome.Result))
	}
	switch outcome.By {
	case chess.Resignation, chess.Timeout, chess.Agreement:
	default:
		return nil, errors.Wrapf(errors.ErrInvalidOutcome, "unknown method %q", string(outcome.By))
	}

	next := g.clone()
	next.outcome = &outcome
	return next, nil
}

// Resign concludes the game with colour resigning.
func (g *Game) Resign(colour chess.Colour) (*Game, error) {
	return g.Conclude(chess.Outcome{Result: chess.WinnerResult(colour.Opposite()), By: chess.Resignation})
}

func (g *Game) isLegal(m chess.Move) bool {
	for _, lm := range g.legalMoves {
		if lm == m {
			return true
		}
	}
	return false
}

func (g *Game) moveError(err error, text string) error {
	return &errors.MoveError{Err: err, Ply: len(g.plies) + 1, MoveText: text}
}

// play applies a move already known to be legal.
func (g *Game) play(m chess.Move, opts []MoveOption) *Game {
	san := engine.MoveToSAN(m, g.state, g.legalMoves)
	state, captured := engine.ExecuteMove(g.state, m)
	legal := engine.LegalMoves(state)
	fen := engine.FormatFEN(state)

	hm := HalfMove{
		Move:     m,
		SAN:      san,
		FEN:      fen,
		Board:    state.Position,
		Colour:   g.state.ActiveColour,
		Number:   g.state.FullMoveCount,
		Captured: captured,
	}
	for _, opt := range opts {
		opt(&hm)
	}

	next := g.clone()
	next.state = state
	next.legalMoves = legal
	next.fen = fen
	next.outcome = engine.EvaluateOutcome(state, legal, m, g.historyFENs())
	next.plies = append(next.plies, hm)
	if !captured.IsEmpty() {
		next.captured = append(next.captured, captured)
	}
	return next
}

// clone copies g so that appends on the copy never alias the receiver.
func (g *Game) clone() *Game {
	next := *g
	next.plies = append([]HalfMove(nil), g.plies...)
	next.captured = append([]chess.Piece(nil), g.captured...)
	next.legalMoves = append([]chess.Move(nil), g.legalMoves...)
	if g.outcome != nil {
		o := *g.outcome
		next.outcome = &o
	}
	return &next
}

func (g *Game) historyFENs() []string {
	fens := make([]string, len(g.plies))
	for i, p := range g.plies {
		fens[i] = p.FEN
	}
	return fens
}

// State returns the current game state.
func (g *Game) State() chess.GameState { return g.state }

// Board returns the current piece placement.
func (g *Game) Board() chess.Position { return g.state.Position }

// FEN returns the FEN string of the current position.
func (g *Game) FEN() string { return g.fen }

// InitialFEN returns the normalized FEN of the starting position.
func (g *Game) InitialFEN() string { return g.initialFEN }

// InitialState returns the starting position.
func (g *Game) InitialState() chess.GameState { return g.initial }

// Turn returns the colour to move.
func (g *Game) Turn() chess.Colour { return g.state.ActiveColour }

// Ply returns the number of half-moves played.
func (g *Game) Ply() int { return len(g.plies) }

// Config returns a copy of the configuration the game was created with.
func (g *Game) Config() Config {
	cfg := g.config
	if cfg.TimeControl != nil {
		tc := *cfg.TimeControl
		cfg.TimeControl = &tc
	}
	return cfg
}

// LegalMoves returns the moves available to the side to move. It is empty
// after checkmate or stalemate.
func (g *Game) LegalMoves() []chess.Move {
	return append([]chess.Move(nil), g.legalMoves...)
}

// CapturedPieces returns the pieces taken so far in capture order.
func (g *Game) CapturedPieces() []chess.Piece {
	return append([]chess.Piece(nil), g.captured...)
}

// Outcome returns the outcome, or nil while the game continues.
func (g *Game) Outcome() *chess.Outcome {
	if g.outcome == nil {
		return nil
	}
	o := *g.outcome
	return &o
}

// Result returns the result of the game, or "" while it continues.
func (g *Game) Result() chess.Result {
	if g.outcome == nil {
		return ""
	}
	return g.outcome.Result
}

// LastMove returns the most recent move and whether there is one.
func (g *Game) LastMove() (chess.Move, bool) {
	if len(g.plies) == 0 {
		return chess.Move{}, false
	}
	return g.plies[len(g.plies)-1].Move, true
}

// LastHalfMove returns the most recent ply and whether there is one.
func (g *Game) LastHalfMove() (HalfMove, bool) {
	if len(g.plies) == 0 {
		return HalfMove{}, false
	}
	return copyHalfMove(g.plies[len(g.plies)-1]), true
}

// Plies returns every half-move in order.
func (g *Game) Plies() []HalfMove {
	out := make([]HalfMove, len(g.plies))
	for i, p := range g.plies {
		out[i] = copyHalfMove(p)
	}
	return out
}

// History returns the half-moves grouped into move pairs.
func (g *Game) History() []MovePair {
	var pairs []MovePair
	for _, p := range g.plies {
		hm := copyHalfMove(p)
		if hm.Colour == chess.White || len(pairs) == 0 {
			pairs = append(pairs, MovePair{})
		}
		last := &pairs[len(pairs)-1]
		if hm.Colour == chess.White {
			last.White = &hm
		} else {
			last.Black = &hm
		}
	}
	return pairs
}

func copyHalfMove(h HalfMove) HalfMove {
	if h.Elapsed != nil {
		e := *h.Elapsed
		h.Elapsed = &e
	}
	return h
}

// PositionKeys returns the repetition key of the starting position followed
// by the key after every ply.
func (g *Game) PositionKeys() []string {
	keys := make([]string, 0, len(g.plies)+1)
	keys = append(keys, engine.PositionKey(g.initial))
	for _, p := range g.plies {
		keys = append(keys, engine.FENPositionKey(p.FEN))
	}
	return keys
}

// PGN returns the movetext of the game without a result token, e.g.
// "1. e4 e5 2. Nf3". A game starting with black opens with "1...".
func (g *Game) PGN() string {
	var sb strings.Builder
	for i, p := range g.plies {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case p.Colour == chess.White:
			sb.WriteString(strconv.Itoa(p.Number))
			sb.WriteString(". ")
		case i == 0:
			sb.WriteString(strconv.Itoa(p.Number))
			sb.WriteString("... ")
		}
		sb.WriteString(p.SAN)
	}
	return sb.String()
}
