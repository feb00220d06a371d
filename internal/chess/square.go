package chess

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FileBase = 'a'
	RankBase = '1'
)

// Square is a board square indexed rank*8+file, so a1 = 0 and h8 = 63.
type Square int8

// NoSquare marks the absence of a square (no en passant target, no capture).
const NoSquare Square = -1

// Named squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// onBoard reports whether file and rank are both in 0..7.
func onBoard(file, rank int) bool {
	return file >= 0 && file < BoardSize && rank >= 0 && rank < BoardSize
}

// ToSquare converts 0-based file and rank coordinates to a square.
func ToSquare(file, rank int) (Square, error) {
	if !onBoard(file, rank) {
		return NoSquare, fmt.Errorf("coordinates (%d, %d): %w", file, rank, errors.ErrInvalidSquare)
	}
	return Square(rank*BoardSize + file), nil
}

// SquareAt converts coordinates to a square, returning NoSquare when they
// fall off the board. It is the non-failing variant used by board walks.
func SquareAt(file, rank int) Square {
	if !onBoard(file, rank) {
		return NoSquare
	}
	return Square(rank*BoardSize + file)
}

// SquareToCoordinates returns the 0-based file and rank of a square.
func SquareToCoordinates(sq Square) (file, rank int) {
	return sq.File(), sq.Rank()
}

// ParseSquare parses algebraic square notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("square %q: %w", s, errors.ErrInvalidSquare)
	}
	sq, err := ToSquare(int(s[0])-FileBase, int(s[1])-RankBase)
	if err != nil {
		return NoSquare, fmt.Errorf("square %q: %w", s, errors.ErrInvalidSquare)
	}
	return sq, nil
}

// MustParseSquare is ParseSquare for literals known to be valid.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// File returns the 0-based file (a = 0).
func (sq Square) File() int {
	return int(sq) % BoardSize
}

// Rank returns the 0-based rank (rank 1 = 0).
func (sq Square) Rank() int {
	return int(sq) / BoardSize
}

// Valid reports whether sq is one of the 64 board squares.
func (sq Square) Valid() bool {
	return sq >= A1 && sq <= H8
}

// FileLetter returns the file letter 'a'..'h'.
func (sq Square) FileLetter() byte {
	return byte(FileBase + sq.File())
}

// RankDigit returns the rank digit '1'..'8'.
func (sq Square) RankDigit() byte {
	return byte(RankBase + sq.Rank())
}

// String returns algebraic notation, or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{sq.FileLetter(), sq.RankDigit()})
}

// Offset returns the square df files and dr ranks away, or NoSquare.
func (sq Square) Offset(df, dr int) Square {
	return SquareAt(sq.File()+df, sq.Rank()+dr)
}

// IsLight reports whether sq is a light square.
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 1
}
