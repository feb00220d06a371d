package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// castle describes one castling option.
type castle struct {
	colour   chess.Colour
	kingSide bool
	king     chess.Square   // king's home square
	end      chess.Square   // king's destination
	rookFrom chess.Square   // rook's home square
	rookTo   chess.Square   // rook's destination
	empty    []chess.Square // squares between king and rook
	safe     []chess.Square // squares the king stands on or crosses
}

var castles = []castle{
	{chess.White, true, chess.E1, chess.G1, chess.H1, chess.F1,
		[]chess.Square{chess.F1, chess.G1}, []chess.Square{chess.E1, chess.F1, chess.G1}},
	{chess.White, false, chess.E1, chess.C1, chess.A1, chess.D1,
		[]chess.Square{chess.B1, chess.C1, chess.D1}, []chess.Square{chess.E1, chess.D1, chess.C1}},
	{chess.Black, true, chess.E8, chess.G8, chess.H8, chess.F8,
		[]chess.Square{chess.F8, chess.G8}, []chess.Square{chess.E8, chess.F8, chess.G8}},
	{chess.Black, false, chess.E8, chess.C8, chess.A8, chess.D8,
		[]chess.Square{chess.B8, chess.C8, chess.D8}, []chess.Square{chess.E8, chess.D8, chess.C8}},
}

// castleByEnd returns the castling option whose king lands on end.
func castleByEnd(end chess.Square) (castle, bool) {
	for _, c := range castles {
		if c.end == end {
			return c, true
		}
	}
	return castle{}, false
}

// castlingMoves appends the castling moves available to the side to move.
func castlingMoves(state *chess.GameState, moves []chess.Move) []chess.Move {
	colour := state.ActiveColour
	rights := state.CastleRights.For(colour)
	if !rights.Any() {
		return moves
	}

	var controlled [chess.NumSquares]bool
	computed := false

	for _, c := range castles {
		if c.colour != colour {
			continue
		}
		if (c.kingSide && !rights.KingSide) || (!c.kingSide && !rights.QueenSide) {
			continue
		}
		if !castlePiecesInPlace(&state.Position, c) || !castlePathClear(&state.Position, c) {
			continue
		}
		if !computed {
			controlled = ControlledSquares(*state, colour.Opposite())
			computed = true
		}
		if !castlePathSafe(&controlled, c) {
			continue
		}
		moves = append(moves, chess.Move{Start: c.king, End: c.end, Capture: chess.NoSquare, IsCastle: true})
	}
	return moves
}

func castlePiecesInPlace(pos *chess.Position, c castle) bool {
	return pos[c.king] == chess.Piece{Colour: c.colour, Type: chess.King} &&
		pos[c.rookFrom] == chess.Piece{Colour: c.colour, Type: chess.Rook}
}

func castlePathClear(pos *chess.Position, c castle) bool {
	for _, sq := range c.empty {
		if !pos[sq].IsEmpty() {
			return false
		}
	}
	return true
}

func castlePathSafe(controlled *[chess.NumSquares]bool, c castle) bool {
	for _, sq := range c.safe {
		if controlled[sq] {
			return false
		}
	}
	return true
}

// revokeCastleRights clears the rights lost when a piece leaves or is
// captured on sq.
func revokeCastleRights(rights chess.CastleRights, sq chess.Square) chess.CastleRights {
	for _, c := range castles {
		if c.rookFrom != sq {
			continue
		}
		side := rights.For(c.colour)
		if c.kingSide && side.KingSide {
			side.KingSide = false
			rights = rights.With(c.colour, side)
		} else if !c.kingSide && side.QueenSide {
			side.QueenSide = false
			rights = rights.With(c.colour, side)
		}
	}
	return rights
}
