// Package matching selects replayed games by their tags, outcome, length
// or the positions they pass through.
package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/game"
)

// GameMatcher decides whether a game, with the tags it was read with,
// should be kept.
type GameMatcher interface {
	Match(g *game.Game, tags map[string]string) bool

	// Name describes the matcher for logging.
	Name() string
}

// MatchMode specifies how multiple matchers are combined.
type MatchMode int

const (
	// MatchAll requires all matchers to match (AND logic).
	MatchAll MatchMode = iota

	// MatchAny requires at least one matcher to match (OR logic).
	MatchAny
)

// CompositeMatcher combines multiple GameMatchers with AND or OR logic.
type CompositeMatcher struct {
	matchers []GameMatcher
	mode     MatchMode
}

// NewCompositeMatcher creates a new CompositeMatcher with the given mode and matchers.
func NewCompositeMatcher(mode MatchMode, matchers ...GameMatcher) *CompositeMatcher {
	return &CompositeMatcher{matchers: matchers, mode: mode}
}

// Match implements GameMatcher. An empty AND composite matches every game
// and an empty OR composite matches none.
func (c *CompositeMatcher) Match(g *game.Game, tags map[string]string) bool {
	want := c.mode == MatchAny
	for _, m := range c.matchers {
		if m.Match(g, tags) == want {
			return want
		}
	}
	return !want
}

// Name implements GameMatcher.
func (c *CompositeMatcher) Name() string {
	if len(c.matchers) == 0 {
		return "composite(empty)"
	}
	names := make([]string, len(c.matchers))
	for i, m := range c.matchers {
		names[i] = m.Name()
	}
	mode := "and"
	if c.mode == MatchAny {
		mode = "or"
	}
	return fmt.Sprintf("composite(%s: %s)", mode, strings.Join(names, ", "))
}

// Add adds a matcher to the composite.
func (c *CompositeMatcher) Add(m GameMatcher) {
	c.matchers = append(c.matchers, m)
}

// Len returns the number of matchers in the composite.
func (c *CompositeMatcher) Len() int {
	return len(c.matchers)
}
