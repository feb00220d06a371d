package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// attacksKing reports whether any piece of colour attacks the opposing king.
func attacksKing(state *chess.GameState, colour chess.Colour) bool {
	pos := &state.Position
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := pos[sq]
		if piece.IsEmpty() || piece.Colour != colour {
			continue
		}
		for _, rule := range RulesFor(piece, sq) {
			if walk(state, sq, piece, rule, nil, nil) {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether colour's king is attacked in state.
func InCheck(state chess.GameState, colour chess.Colour) bool {
	return attacksKing(&state, colour.Opposite())
}

// ControlledSquares returns the squares attacked by colour's pieces,
// evaluated without regard to whose turn it is.
func ControlledSquares(state chess.GameState, colour chess.Colour) [chess.NumSquares]bool {
	var controlled [chess.NumSquares]bool
	pos := &state.Position
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := pos[sq]
		if piece.IsEmpty() || piece.Colour != colour {
			continue
		}
		for _, rule := range RulesFor(piece, sq) {
			walk(&state, sq, piece, rule, nil, &controlled)
		}
	}
	return controlled
}
