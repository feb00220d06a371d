package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// Rule is one movement rule of a piece: a direction, how far the piece may
// travel along it, and whether it may or must capture.
type Rule struct {
	DFile       int
	DRank       int
	CanCapture  bool
	CaptureOnly bool
	Range       int
}

// unlimited is the longest distance a sliding piece can travel.
const unlimited = chess.BoardSize - 1

func leapers(offsets [8][2]int) []Rule {
	rules := make([]Rule, 0, len(offsets))
	for _, o := range offsets {
		rules = append(rules, Rule{DFile: o[0], DRank: o[1], CanCapture: true, Range: 1})
	}
	return rules
}

func sliders(offsets ...[2]int) []Rule {
	rules := make([]Rule, 0, len(offsets))
	for _, o := range offsets {
		rules = append(rules, Rule{DFile: o[0], DRank: o[1], CanCapture: true, Range: unlimited})
	}
	return rules
}

var (
	diagonals  = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonal = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

	knightRules = leapers([8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}})
	kingRules   = leapers([8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}})
	bishopRules = sliders(diagonals...)
	rookRules   = sliders(orthogonal...)
	queenRules  = sliders(append(append([][2]int{}, orthogonal...), diagonals...)...)

	// pawnRules is indexed by colour, then by whether the pawn stands on
	// its home rank.
	pawnRules = [2][2][]Rule{
		chess.White: {pawnRuleSet(1, 1), pawnRuleSet(1, 2)},
		chess.Black: {pawnRuleSet(-1, 1), pawnRuleSet(-1, 2)},
	}
)

func pawnRuleSet(forward, pushRange int) []Rule {
	return []Rule{
		{DFile: 0, DRank: forward, Range: pushRange},
		{DFile: -1, DRank: forward, CanCapture: true, CaptureOnly: true, Range: 1},
		{DFile: 1, DRank: forward, CanCapture: true, CaptureOnly: true, Range: 1},
	}
}

// pawnHomeRank returns the 0-based rank pawns of colour start on.
func pawnHomeRank(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return chess.BoardSize - 2
}

// backRank returns the 0-based rank on which pawns of colour promote.
func backRank(colour chess.Colour) int {
	if colour == chess.White {
		return chess.BoardSize - 1
	}
	return 0
}

// RulesFor returns the movement rules of piece standing on sq.
// The returned slice is shared and must not be modified.
func RulesFor(piece chess.Piece, sq chess.Square) []Rule {
	switch piece.Type {
	case chess.King:
		return kingRules
	case chess.Queen:
		return queenRules
	case chess.Rook:
		return rookRules
	case chess.Bishop:
		return bishopRules
	case chess.Knight:
		return knightRules
	case chess.Pawn:
		home := 0
		if sq.Rank() == pawnHomeRank(piece.Colour) {
			home = 1
		}
		return pawnRules[piece.Colour][home]
	default:
		return nil
	}
}

// walk evaluates one rule for the piece on from. For every move the rule
// yields it calls emit (if non-nil) with the destination and the capture
// square (chess.NoSquare for quiet moves). Squares the rule attacks are
// marked in controlled (if non-nil). The return value reports whether the
// rule reaches the enemy king, i.e. whether it gives check.
func walk(state *chess.GameState, from chess.Square, piece chess.Piece, rule Rule,
	emit func(end, capture chess.Square), controlled *[chess.NumSquares]bool) bool {
	pos := &state.Position
	sq := from
	for step := 0; step < rule.Range; step++ {
		sq = sq.Offset(rule.DFile, rule.DRank)
		if sq == chess.NoSquare {
			return false
		}
		if rule.CanCapture && controlled != nil {
			controlled[sq] = true
		}

		target := pos[sq]
		if target.IsEmpty() {
			if rule.CaptureOnly {
				if piece.Type == chess.Pawn && sq == state.EnPassantTarget && emit != nil {
					passed := sq.Offset(0, -rule.DRank)
					if p := pos[passed]; p.Type == chess.Pawn && p.Colour != piece.Colour {
						emit(sq, passed)
					}
				}
				return false
			}
			if emit != nil {
				emit(sq, chess.NoSquare)
			}
			continue
		}

		if target.Colour == piece.Colour || !rule.CanCapture {
			return false
		}
		if emit != nil {
			emit(sq, sq)
		}
		return target.Type == chess.King
	}
	return false
}
