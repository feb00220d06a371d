package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/game"
)

// OutcomeMatcher selects games that ended in one of a set of ways.
type OutcomeMatcher struct {
	methods map[chess.Method]bool
}

// NewOutcomeMatcher returns a matcher for the named methods, e.g.
// "checkmate" or "repetition".
func NewOutcomeMatcher(methods ...string) (*OutcomeMatcher, error) {
	om := &OutcomeMatcher{methods: make(map[chess.Method]bool, len(methods))}
	for _, name := range methods {
		m := chess.Method(strings.ToLower(strings.TrimSpace(name)))
		switch m {
		case chess.Checkmate, chess.Stalemate, chess.Repetition, chess.FiftyMoveRule,
			chess.InsufficientMaterial, chess.Resignation, chess.Timeout, chess.Agreement:
			om.methods[m] = true
		default:
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown outcome %q", name)
		}
	}
	return om, nil
}

// Match implements GameMatcher.
func (om *OutcomeMatcher) Match(g *game.Game, _ map[string]string) bool {
	o := g.Outcome()
	return o != nil && om.methods[o.By]
}

// Name implements GameMatcher.
func (om *OutcomeMatcher) Name() string {
	return "outcome"
}

// PlyMatcher selects games by their number of half-moves. A bound of zero
// or less is open.
type PlyMatcher struct {
	Min int
	Max int
}

// Match implements GameMatcher.
func (pm PlyMatcher) Match(g *game.Game, _ map[string]string) bool {
	n := g.Ply()
	if pm.Min > 0 && n < pm.Min {
		return false
	}
	return pm.Max <= 0 || n <= pm.Max
}

// Name implements GameMatcher.
func (pm PlyMatcher) Name() string {
	return fmt.Sprintf("plies(%d..%d)", pm.Min, pm.Max)
}

// PositionMatcher selects games that pass through a position. Positions
// are compared by piece placement and side to move.
type PositionMatcher struct {
	key string
}

// NewPositionMatcher returns a matcher for the position of fen.
func NewPositionMatcher(fen string) (*PositionMatcher, error) {
	state, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &PositionMatcher{key: placementKey(engine.PositionKey(state))}, nil
}

// Match implements GameMatcher.
func (pm *PositionMatcher) Match(g *game.Game, _ map[string]string) bool {
	for _, key := range g.PositionKeys() {
		if placementKey(key) == pm.key {
			return true
		}
	}
	return false
}

// Name implements GameMatcher.
func (pm *PositionMatcher) Name() string {
	return "position"
}

// placementKey keeps the board and active colour fields of a position key.
func placementKey(key string) string {
	fields := strings.Fields(key)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, " ")
}
