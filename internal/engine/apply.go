package engine

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// ExecuteMove applies move to state and returns the resulting state and the
// captured piece (chess.NoPiece when nothing was taken). The input state is
// not modified.
//
// The move is not validated; it must come from LegalMoves for state.
// ExecuteMove panics if the start square is empty.
func ExecuteMove(state chess.GameState, move chess.Move) (chess.GameState, chess.Piece) {
	next := state
	pos := &next.Position

	mover := pos[move.Start]
	if mover.IsEmpty() {
		panic(fmt.Sprintf("engine: ExecuteMove %s: no piece on %s", move.UCI(), move.Start))
	}

	captured := chess.NoPiece
	if move.Capture != chess.NoSquare {
		captured = pos[move.Capture]
		pos.Clear(move.Capture)
	}

	placed := mover
	if move.Promotion != chess.NoPieceType {
		placed.Type = move.Promotion
	}
	pos.Clear(move.Start)
	pos.Set(move.End, placed)

	if move.IsCastle {
		if c, ok := castleByEnd(move.End); ok {
			pos.Set(c.rookTo, pos[c.rookFrom])
			pos.Clear(c.rookFrom)
		}
	}

	next.CastleRights = updateCastleRights(next.CastleRights, mover, move)

	next.EnPassantTarget = chess.NoSquare
	if mover.Type == chess.Pawn && abs(move.End.Rank()-move.Start.Rank()) == 2 {
		next.EnPassantTarget = chess.SquareAt(move.Start.File(), (move.Start.Rank()+move.End.Rank())/2)
	}

	if mover.Type == chess.Pawn || move.IsCapture() {
		next.HalfMoveCount = 0
	} else {
		next.HalfMoveCount++
	}
	if state.ActiveColour == chess.Black {
		next.FullMoveCount++
	}
	next.ActiveColour = state.ActiveColour.Opposite()

	return next, captured
}

// updateCastleRights clears the rights lost by move: both of the mover's
// rights when the king moves, and one side's right when a rook leaves or is
// captured on its home square.
func updateCastleRights(rights chess.CastleRights, mover chess.Piece, move chess.Move) chess.CastleRights {
	if mover.Type == chess.King && rights.For(mover.Colour).Any() {
		rights = rights.With(mover.Colour, chess.CastleSide{})
	}
	if mover.Type == chess.Rook {
		rights = revokeCastleRights(rights, move.Start)
	}
	if move.IsCapture() {
		rights = revokeCastleRights(rights, move.Capture)
	}
	return rights
}
