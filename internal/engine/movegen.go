package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// LegalMoves returns every legal move for the side to move, annotated with
// IsCheck and IsCheckMate.
func LegalMoves(state chess.GameState) []chess.Move {
	return legalMoves(&state, true)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(state chess.GameState) bool {
	return hasLegalMoves(&state)
}

// legalMoves generates pseudo-legal moves, drops those that leave the
// mover's king attacked and, when annotate is set, flags checks and mates.
func legalMoves(state *chess.GameState, annotate bool) []chess.Move {
	candidates := pseudoLegalMoves(state, make([]chess.Move, 0, 48))
	mover := state.ActiveColour

	legal := candidates[:0]
	for _, m := range candidates {
		next, _ := ExecuteMove(*state, m)
		if attacksKing(&next, mover.Opposite()) {
			continue
		}
		if annotate && attacksKing(&next, mover) {
			m.IsCheck = true
			m.IsCheckMate = !hasLegalMoves(&next)
		}
		legal = append(legal, m)
	}
	return legal
}

func hasLegalMoves(state *chess.GameState) bool {
	mover := state.ActiveColour
	for _, m := range pseudoLegalMoves(state, make([]chess.Move, 0, 48)) {
		next, _ := ExecuteMove(*state, m)
		if !attacksKing(&next, mover.Opposite()) {
			return true
		}
	}
	return false
}

// pseudoLegalMoves appends to moves every move the side to move could make
// if its own king's safety were ignored.
func pseudoLegalMoves(state *chess.GameState, moves []chess.Move) []chess.Move {
	colour := state.ActiveColour
	pos := &state.Position

	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := pos[sq]
		if piece.IsEmpty() || piece.Colour != colour {
			continue
		}
		start := sq
		promotes := piece.Type == chess.Pawn
		emit := func(end, capture chess.Square) {
			if promotes && end.Rank() == backRank(colour) {
				for _, promo := range chess.PromotionTypes {
					moves = append(moves, chess.Move{Start: start, End: end, Capture: capture, Promotion: promo})
				}
				return
			}
			moves = append(moves, chess.Move{Start: start, End: end, Capture: capture})
		}
		for _, rule := range RulesFor(piece, sq) {
			walk(state, sq, piece, rule, emit, nil)
		}
	}

	return castlingMoves(state, moves)
}
