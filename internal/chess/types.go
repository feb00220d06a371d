// Package chess provides the core chess value types shared by every other
// package: colours, pieces, squares, positions, game states and moves.
package chess

import "unicode"

// Colour represents the colour of a piece or player.
type Colour int8

const (
	White Colour = iota
	Black
)

// String returns the FEN letter of a colour ("w" or "b").
func (c Colour) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Name returns the long name of a colour.
func (c Colour) Name() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour converts "w" or "b" to a Colour.
func ParseColour(s string) (Colour, bool) {
	switch s {
	case "w":
		return White, true
	case "b":
		return Black, true
	}
	return White, false
}

// PieceType represents a chess piece kind without colour.
type PieceType int8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// String returns the name of a piece type.
func (p PieceType) String() string {
	names := []string{"None", "King", "Queen", "Rook", "Bishop", "Knight", "Pawn"}
	if int(p) >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the lowercase letter of a piece type ('k', 'q', ...).
// NoPieceType has no letter and returns 0.
func (p PieceType) Letter() byte {
	letters := []byte{0, 'k', 'q', 'r', 'b', 'n', 'p'}
	if int(p) >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return 0
}

// PieceTypeFromLetter converts a piece letter in either case to a piece type.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return NoPieceType
	}
}

// PromotionTypes lists the piece types a pawn may promote to, in the order
// promotion moves are generated.
var PromotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// Piece is a coloured piece. The zero value is the empty square.
type Piece struct {
	Colour Colour
	Type   PieceType
}

// NoPiece is the empty square.
var NoPiece = Piece{}

// IsEmpty reports whether p is the empty square.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// FENLetter returns the FEN letter of a piece: uppercase for white,
// lowercase for black.
func (p Piece) FENLetter() byte {
	letter := p.Type.Letter()
	if p.Colour == White {
		return byte(unicode.ToUpper(rune(letter)))
	}
	return letter
}

// String returns the FEN letter of the piece, or "." for an empty square.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	return string(p.FENLetter())
}

// PieceFromFENLetter converts a FEN piece letter to a Piece.
func PieceFromFENLetter(c byte) (Piece, bool) {
	t := PieceTypeFromLetter(c)
	if t == NoPieceType {
		return NoPiece, false
	}
	colour := White
	if unicode.IsLower(rune(c)) {
		colour = Black
	}
	return Piece{Colour: colour, Type: t}, true
}
