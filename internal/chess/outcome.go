package chess

// Result is the result of a concluded game.
type Result string

const (
	WhiteWins Result = "w"
	BlackWins Result = "b"
	Draw      Result = "d"
)

// PGN returns the PGN result token of r, e.g. "1-0".
func (r Result) PGN() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// WinnerResult returns the result in which colour wins.
func WinnerResult(colour Colour) Result {
	if colour == White {
		return WhiteWins
	}
	return BlackWins
}

// Method is the way a game ended.
type Method string

const (
	Checkmate            Method = "checkmate"
	Stalemate            Method = "stalemate"
	Repetition           Method = "repetition"
	FiftyMoveRule        Method = "50-move-rule"
	InsufficientMaterial Method = "insufficient"
	Resignation          Method = "resignation"
	Timeout              Method = "timeout"
	Agreement            Method = "agreement"
)

// IsAutomatic reports whether the rules end the game by themselves, as
// opposed to a player's decision or the clock.
func (m Method) IsAutomatic() bool {
	switch m {
	case Checkmate, Stalemate, Repetition, FiftyMoveRule, InsufficientMaterial:
		return true
	}
	return false
}

// Outcome is the terminal result of a game.
type Outcome struct {
	Result Result
	By     Method
}

// String returns a short description such as "1-0 (checkmate)".
func (o Outcome) String() string {
	return o.Result.PGN() + " (" + string(o.By) + ")"
}
