package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree of the given depth.
func Perft(state chess.GameState, depth int) uint64 {
	return perft(&state, depth)
}

func perft(state *chess.GameState, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := legalMoves(state, false)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next, _ := ExecuteMove(*state, m)
		nodes += perft(&next, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each legal root move, keyed by the
// move's UCI string.
func Divide(state chess.GameState, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range legalMoves(&state, false) {
		next, _ := ExecuteMove(state, m)
		result[m.UCI()] = perft(&next, depth-1)
	}
	return result
}
