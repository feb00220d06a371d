package parser

import (
	"regexp"
	"strconv"

	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/game"
	"github.com/lgbarn/chesscore-go/internal/tree"
)

// elapsedAnnotationRegex matches elapsed move time comments like
// [%emt 0:00:05] or [%emt 0:01:02.5].
var elapsedAnnotationRegex = regexp.MustCompile(`\[%emt\s+(\d+):(\d{2}):(\d{2}(?:\.\d+)?)\]`)

// StartConfig returns the game configuration described by the FEN tag,
// or the standard start when there is none.
func StartConfig(pg *Game) game.Config {
	return game.Config{StartPosition: pg.Tag("FEN")}
}

// Replay plays the main line of pg through the rules engine. An illegal or
// unreadable move is reported as a *errors.MoveError carrying the ply and
// the move text, together with the game as it stood before that move.
func Replay(pg *Game) (*game.Game, error) {
	g, err := game.New(StartConfig(pg))
	if err != nil {
		return nil, errors.Wrap(err, "FEN tag")
	}
	for _, m := range pg.Moves {
		next, err := g.MoveSAN(m.SAN, moveOptions(m)...)
		if err != nil {
			return g, err
		}
		g = next
	}
	return g, nil
}

// BuildTree loads the main line and every variation of pg into a tree.
// Comments and NAGs are attached to the node of the move they follow.
func BuildTree(pg *Game) (*tree.Tree, error) {
	g, err := game.New(StartConfig(pg))
	if err != nil {
		return nil, errors.Wrap(err, "FEN tag")
	}
	t := tree.New(g)
	if err := addLine(t, tree.Root, pg.Moves); err != nil {
		return nil, err
	}
	return t, nil
}

// addLine adds moves starting from parent. A variation attached to a move
// is an alternative to that move, so it branches from the same parent.
func addLine(t *tree.Tree, parent int, moves []*Move) error {
	for _, m := range moves {
		id, err := t.AddSAN(parent, m.SAN)
		if err != nil {
			return err
		}
		if m.Comment != "" || len(m.NAGs) > 0 {
			if err := t.Annotate(id, m.Comment, m.NAGs...); err != nil {
				return err
			}
		}
		for _, variation := range m.Variations {
			if err := addLine(t, parent, variation); err != nil {
				return err
			}
		}
		parent = id
	}
	return nil
}

func moveOptions(m *Move) []game.MoveOption {
	if seconds, ok := ElapsedSeconds(m.Comment); ok {
		return []game.MoveOption{game.WithElapsed(seconds)}
	}
	return nil
}

// ElapsedSeconds extracts the elapsed move time from a comment containing
// a [%emt H:MM:SS] annotation.
func ElapsedSeconds(comment string) (float64, bool) {
	m := elapsedAnnotationRegex.FindStringSubmatch(comment)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	return float64(hours*3600+minutes*60) + seconds, true
}
