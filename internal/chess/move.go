package chess

// Move is a fully described legal move as produced by the move generator.
// Callers select moves from the generated set rather than building them.
// Moves are comparable values; two moves are the same move when they are ==.
type Move struct {
	// Start and End squares of the moving piece. For castling these are the
	// king's squares.
	Start Square
	End   Square

	// Capture is the square of the captured piece: End for ordinary captures,
	// the passed pawn's square for en passant, NoSquare for quiet moves.
	Capture Square

	// Promotion is the piece a pawn turns into, or NoPieceType.
	Promotion PieceType

	IsCastle    bool
	IsCheck     bool
	IsCheckMate bool
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Capture != NoSquare
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// IsEnPassant returns true if the captured piece is not on the destination.
func (m Move) IsEnPassant() bool {
	return m.IsCapture() && m.Capture != m.End
}

// UCI returns the move in UCI coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	b := make([]byte, 0, 5)
	b = append(b, m.Start.String()...)
	b = append(b, m.End.String()...)
	if m.Promotion != NoPieceType {
		b = append(b, m.Promotion.Letter())
	}
	return string(b)
}

// String returns the UCI form of the move.
func (m Move) String() string {
	return m.UCI()
}
