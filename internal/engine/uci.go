package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

var uciMovePattern = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([nbrqNBRQ]?)$`)

// UCIMove is a move in engine coordinate notation: start and end squares
// plus an optional promotion piece.
type UCIMove struct {
	Start     chess.Square
	End       chess.Square
	Promotion chess.PieceType
}

// String returns the move in UCI notation.
func (m UCIMove) String() string {
	s := m.Start.String() + m.End.String()
	if m.Promotion != chess.NoPieceType {
		s += string(m.Promotion.Letter())
	}
	return s
}

// ParseUCI parses a 4 or 5 character UCI move string such as "e2e4" or
// "e7e8q".
func ParseUCI(s string) (UCIMove, error) {
	m := uciMovePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return UCIMove{}, errors.Wrapf(errors.ErrInvalidUCI, "%q", s)
	}
	move := UCIMove{
		Start: chess.MustParseSquare(m[1]),
		End:   chess.MustParseSquare(m[2]),
	}
	if m[3] != "" {
		move.Promotion = chess.PieceTypeFromLetter(m[3][0])
	}
	return move, nil
}

// MatchUCI returns the legal move with the start, end and promotion given
// by the UCI string s.
func MatchUCI(legal []chess.Move, s string) (chess.Move, error) {
	u, err := ParseUCI(s)
	if err != nil {
		return chess.Move{}, err
	}
	for _, m := range legal {
		if m.Start == u.Start && m.End == u.End && m.Promotion == u.Promotion {
			return m, nil
		}
	}
	return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "%s", u)
}

// Evaluation is an engine's assessment of a position at a given depth.
// Score is in centipawns from the point of view of the side to move.
type Evaluation struct {
	Depth    int
	Score    int
	IsMate   bool
	MateIn   int
	PV       []string
	BestMove string
}

// FormatEvaluation renders an evaluation as "+1.23" for a centipawn score
// or "+M3" / "-M5" for a forced mate.
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	return fmt.Sprintf("%+.2f", float64(eval.Score)/100)
}
