package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// repetitionLimit is the number of earlier occurrences of a position that
// makes the next occurrence a draw.
const repetitionLimit = 2

// fiftyMoveLimit is the half-move clock value that draws the game.
const fiftyMoveLimit = 100

// EvaluateOutcome decides whether the game has ended in state, which was
// reached by lastMove and has the given legal moves. history holds the FEN
// strings recorded after each earlier half-move. It returns nil while the
// game continues.
func EvaluateOutcome(state chess.GameState, legalMoves []chess.Move, lastMove chess.Move, history []string) *chess.Outcome {
	if len(legalMoves) == 0 {
		if lastMove.IsCheck {
			return &chess.Outcome{Result: chess.WinnerResult(state.ActiveColour.Opposite()), By: chess.Checkmate}
		}
		return &chess.Outcome{Result: chess.Draw, By: chess.Stalemate}
	}

	if IsRepetition(state, history) {
		return &chess.Outcome{Result: chess.Draw, By: chess.Repetition}
	}

	if state.HalfMoveCount >= fiftyMoveLimit {
		return &chess.Outcome{Result: chess.Draw, By: chess.FiftyMoveRule}
	}

	if HasInsufficientMaterial(state.Position) {
		return &chess.Outcome{Result: chess.Draw, By: chess.InsufficientMaterial}
	}

	return nil
}

// IsRepetition reports whether state's position already occurs at least
// twice in history, ignoring the move counters.
func IsRepetition(state chess.GameState, history []string) bool {
	key := PositionKey(state)
	seen := 0
	for _, fen := range history {
		if FENPositionKey(fen) == key {
			seen++
			if seen >= repetitionLimit {
				return true
			}
		}
	}
	return false
}
