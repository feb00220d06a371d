package engine

import (
	"regexp"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// SAN piece letters (always English).
var sanPieceLetters = map[chess.PieceType]byte{
	chess.King:   'K',
	chess.Queen:  'Q',
	chess.Rook:   'R',
	chess.Bishop: 'B',
	chess.Knight: 'N',
}

// MoveToSAN returns the standard algebraic notation of move, which must be
// one of legalMoves in state.
func MoveToSAN(move chess.Move, state chess.GameState, legalMoves []chess.Move) string {
	var sb strings.Builder
	sb.Grow(8)

	piece := state.Position[move.Start]

	switch {
	case move.IsCastle:
		if move.End.File() == chess.G1.File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}

	case piece.Type == chess.Pawn:
		if move.IsCapture() {
			sb.WriteByte(move.Start.FileLetter())
			sb.WriteByte('x')
		}
		sb.WriteString(move.End.String())
		if move.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(sanPieceLetters[move.Promotion])
		}

	default:
		sb.WriteByte(sanPieceLetters[piece.Type])
		sb.WriteString(disambiguate(move, piece, &state.Position, legalMoves))
		if move.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(move.End.String())
	}

	if move.IsCheckMate {
		sb.WriteByte('#')
	} else if move.IsCheck {
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguate returns the source file, rank or square needed to tell move
// apart from other legal moves of the same piece type to the same square.
func disambiguate(move chess.Move, piece chess.Piece, pos *chess.Position, legalMoves []chess.Move) string {
	ambiguous := false
	sameFile, sameRank := false, false
	for _, other := range legalMoves {
		if other.End != move.End || other.Start == move.Start || pos[other.Start] != piece {
			continue
		}
		ambiguous = true
		if other.Start.File() == move.Start.File() {
			sameFile = true
		}
		if other.Start.Rank() == move.Start.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(move.Start.FileLetter())
	case !sameRank:
		return string(move.Start.RankDigit())
	default:
		return move.Start.String()
	}
}

var sanPattern = regexp.MustCompile(`^(?:([KQRBN]?)([a-h]?)([1-8]?)(x?)([a-h][1-8])(?:=?([QRBN]))?|(O-O(?:-O)?))$`)

// ParseSAN finds the legal move described by san. Check, mate and
// annotation suffixes are ignored, as are "e.p." markers and castling
// written with zeros.
func ParseSAN(state chess.GameState, legalMoves []chess.Move, san string) (chess.Move, error) {
	text := cleanSAN(san)
	m := sanPattern.FindStringSubmatch(text)
	if m == nil {
		return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q", san)
	}

	if m[7] != "" {
		end := chess.G1
		if m[7] == "O-O-O" {
			end = chess.C1
		}
		if state.ActiveColour == chess.Black {
			end = end.Offset(0, chess.BoardSize-1)
		}
		for _, lm := range legalMoves {
			if lm.IsCastle && lm.End == end {
				return lm, nil
			}
		}
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "%q", san)
	}

	pieceType := chess.Pawn
	if m[1] != "" {
		pieceType = chess.PieceTypeFromLetter(m[1][0])
	}
	end := chess.MustParseSquare(m[5])
	promotion := chess.NoPieceType
	if m[6] != "" {
		promotion = chess.PieceTypeFromLetter(m[6][0])
	}

	var found []chess.Move
	for _, lm := range legalMoves {
		if lm.End != end || lm.IsCastle || lm.Promotion != promotion {
			continue
		}
		if state.Position[lm.Start].Type != pieceType {
			continue
		}
		if m[2] != "" && lm.Start.FileLetter() != m[2][0] {
			continue
		}
		if m[3] != "" && lm.Start.RankDigit() != m[3][0] {
			continue
		}
		found = append(found, lm)
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "%q", san)
	default:
		return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q is ambiguous", san)
	}
}

// cleanSAN strips suffixes and normalises castling notation.
func cleanSAN(san string) string {
	text := strings.TrimSpace(san)
	text = strings.TrimSuffix(text, "e.p.")
	text = strings.TrimRight(text, "+#!? ")
	text = strings.ReplaceAll(text, "0", "O")
	return text
}
