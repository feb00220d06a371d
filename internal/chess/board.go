package chess

import "strings"

// Position maps each of the 64 squares to the piece standing on it.
// It is a value type: assigning a Position copies it, so every state
// transition works on its own copy and earlier states are never disturbed.
type Position [NumSquares]Piece

// Get returns the piece on sq and whether the square is occupied.
func (p Position) Get(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return NoPiece, false
	}
	piece := p[sq]
	return piece, !piece.IsEmpty()
}

// Set places a piece on sq.
func (p *Position) Set(sq Square, piece Piece) {
	p[sq] = piece
}

// Clear empties sq.
func (p *Position) Clear(sq Square) {
	p[sq] = NoPiece
}

// Find returns the first square holding the given piece, or NoSquare.
func (p Position) Find(piece Piece) Square {
	for sq := A1; sq <= H8; sq++ {
		if p[sq] == piece {
			return sq
		}
	}
	return NoSquare
}

// Count returns how many squares hold the given piece.
func (p Position) Count(piece Piece) int {
	n := 0
	for _, pc := range p {
		if pc == piece {
			n++
		}
	}
	return n
}

// Draw renders the position as an 8x8 diagram, rank 8 at the top.
func (p Position) Draw() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte(RankBase + rank))
		sb.WriteByte(' ')
		for file := 0; file < BoardSize; file++ {
			sb.WriteString(p[SquareAt(file, rank)].String())
			if file < BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// CastleSide holds the castling rights of one colour.
type CastleSide struct {
	KingSide  bool
	QueenSide bool
}

// Any reports whether either right is still held.
func (c CastleSide) Any() bool {
	return c.KingSide || c.QueenSide
}

// CastleRights holds the castling rights of both colours.
type CastleRights struct {
	White CastleSide
	Black CastleSide
}

// For returns the rights of the given colour.
func (c CastleRights) For(colour Colour) CastleSide {
	if colour == White {
		return c.White
	}
	return c.Black
}

// With returns a copy of c with the given colour's rights replaced.
func (c CastleRights) With(colour Colour, side CastleSide) CastleRights {
	if colour == White {
		c.White = side
	} else {
		c.Black = side
	}
	return c
}

// String returns the FEN castling field in canonical KQkq order, or "-".
func (c CastleRights) String() string {
	var sb strings.Builder
	if c.White.KingSide {
		sb.WriteByte('K')
	}
	if c.White.QueenSide {
		sb.WriteByte('Q')
	}
	if c.Black.KingSide {
		sb.WriteByte('k')
	}
	if c.Black.QueenSide {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// GameState is the minimal state needed to resume play: exactly what a FEN
// string encodes.
type GameState struct {
	Position        Position
	ActiveColour    Colour
	EnPassantTarget Square
	CastleRights    CastleRights
	HalfMoveCount   int
	FullMoveCount   int
}

// King returns the square of the given colour's king, or NoSquare.
func (s GameState) King(colour Colour) Square {
	return s.Position.Find(Piece{Colour: colour, Type: King})
}
