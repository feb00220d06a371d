package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (bishops on the same colour squares)
func HasInsufficientMaterial(pos chess.Position) bool {
	var minors [2][]chess.PieceType
	var bishopOnLight [2]bool

	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := pos[sq]
		switch piece.Type {
		case chess.NoPieceType, chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		case chess.Bishop:
			bishopOnLight[piece.Colour] = sq.IsLight()
		}
		minors[piece.Colour] = append(minors[piece.Colour], piece.Type)
	}

	white, black := minors[chess.White], minors[chess.Black]
	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 0 && len(black) == 1:
		return true
	case len(black) == 0 && len(white) == 1:
		return true
	case len(white) == 1 && len(black) == 1:
		return white[0] == chess.Bishop && black[0] == chess.Bishop &&
			bishopOnLight[chess.White] == bishopOnLight[chess.Black]
	}
	return false
}
