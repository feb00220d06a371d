// Package eco provides ECO (Encyclopaedia of Chess Openings) classification.
package eco

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/game"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/parser"
)

// HalfMoveLimit is how far a game may be from the length of an ECO line
// and still match it by position.
const HalfMoveLimit = 6

// Entry is one ECO line.
type Entry struct {
	Code         string // e.g. "B33"
	Opening      string // e.g. "Sicilian"
	Variation    string // e.g. "Sveshnikov"
	SubVariation string

	hash       uint64 // Final position
	cumulative uint64 // XOR of every position along the line
	halfMoves  int
}

// Tags returns the PGN tags naming the entry. Empty fields are omitted.
func (e *Entry) Tags() map[string]string {
	tags := map[string]string{"ECO": e.Code}
	for name, value := range map[string]string{
		"Opening":      e.Opening,
		"Variation":    e.Variation,
		"SubVariation": e.SubVariation,
	} {
		if value != "" {
			tags[name] = value
		}
	}
	return tags
}

// Classifier matches games against a table of ECO lines. It is safe for
// concurrent use once loaded.
type Classifier struct {
	entries      map[uint64][]*Entry
	maxHalfMoves int
	loaded       int
	log          zerolog.Logger
}

// NewClassifier creates an empty classifier.
func NewClassifier(log zerolog.Logger) *Classifier {
	return &Classifier{
		entries:      make(map[uint64][]*Entry),
		maxHalfMoves: HalfMoveLimit,
		log:          log,
	}
}

// LoadFile loads ECO lines from a PGN file.
func (c *Classifier) LoadFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "open ECO file")
	}
	defer f.Close()
	return c.Load(f)
}

// Load reads ECO lines from PGN: each game carries an ECO tag and the
// moves of the line. Games without an ECO tag or moves are ignored; a line
// with an illegal move is kept up to that move.
func (c *Classifier) Load(r io.Reader) error {
	games, err := parser.NewParser(r, parser.WithLogger(c.log)).ParseAllGames()
	if err != nil {
		return errors.Wrap(err, "parse ECO file")
	}
	for _, pg := range games {
		code := pg.Tag("ECO")
		if code == "" {
			continue
		}
		g, err := parser.Replay(pg)
		if err != nil {
			c.log.Warn().Err(err).Str("eco", code).Msg("ECO line truncated")
		}
		if g == nil || g.Ply() == 0 {
			continue
		}
		c.add(&Entry{
			Code:         code,
			Opening:      pg.Tag("Opening"),
			Variation:    pg.Tag("Variation"),
			SubVariation: pg.Tag("SubVariation"),
		}, g)
	}
	c.log.Debug().Int("entries", c.loaded).Msg("ECO table loaded")
	return nil
}

func (c *Classifier) add(entry *Entry, g *game.Game) {
	walk(g, g.Ply(), func(hash, cumulative uint64, ply int) bool {
		entry.hash, entry.cumulative, entry.halfMoves = hash, cumulative, ply
		return true
	})

	for _, existing := range c.entries[entry.hash] {
		if existing.halfMoves == entry.halfMoves && existing.cumulative == entry.cumulative {
			return
		}
	}
	c.entries[entry.hash] = append(c.entries[entry.hash], entry)
	c.loaded++
	if entry.halfMoves+HalfMoveLimit > c.maxHalfMoves {
		c.maxHalfMoves = entry.halfMoves + HalfMoveLimit
	}
}

// walk replays g from its initial state, calling fn with the hash of each
// position reached, the running XOR of those hashes and the ply number,
// for at most limit plies or until fn returns false.
func walk(g *game.Game, limit int, fn func(hash, cumulative uint64, ply int) bool) {
	state := g.InitialState()
	var cumulative uint64
	for i, hm := range g.Plies() {
		if i >= limit {
			return
		}
		state, _ = engine.ExecuteMove(state, hm.Move)
		hash := hashing.Hash(state)
		cumulative ^= hash
		if !fn(hash, cumulative, i+1) {
			return
		}
	}
}

// Classify returns the deepest ECO line the game follows, or reaches by
// transposition within HalfMoveLimit plies of the line's length, or nil.
func (c *Classifier) Classify(g *game.Game) *Entry {
	if c.loaded == 0 {
		return nil
	}
	var best *Entry
	walk(g, c.maxHalfMoves, func(hash, cumulative uint64, ply int) bool {
		if match := c.find(hash, cumulative, ply); match != nil {
			best = match
		}
		return true
	})
	return best
}

func (c *Classifier) find(hash, cumulative uint64, halfMoves int) *Entry {
	var possible *Entry
	for _, entry := range c.entries[hash] {
		if entry.halfMoves == halfMoves && entry.cumulative == cumulative {
			return entry
		}
		if abs(halfMoves-entry.halfMoves) <= HalfMoveLimit {
			possible = entry
		}
	}
	return possible
}

// AddTags classifies g and copies the ECO tags of the match into tags,
// replacing any already there. It reports whether there was a match.
func (c *Classifier) AddTags(g *game.Game, tags map[string]string) bool {
	match := c.Classify(g)
	if match == nil {
		return false
	}
	for name, value := range match.Tags() {
		tags[name] = value
	}
	return true
}

// Len returns the number of ECO lines loaded.
func (c *Classifier) Len() int {
	return c.loaded
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
