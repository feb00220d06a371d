// Package engine implements the chess rules: FEN encoding, legal move
// generation, move execution, outcome detection and move notation.
package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenFieldCount is the number of whitespace-separated FEN fields.
const fenFieldCount = 6

var castleRightsPattern = regexp.MustCompile(`^[KkQq]{0,4}$`)

// ParseFEN converts a FEN string into a game state. Fields are validated in
// order (field count, active colour, castling, en passant, clocks, board)
// and the first failure is returned as a *errors.FENError.
func ParseFEN(fen string) (chess.GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) != fenFieldCount {
		return chess.GameState{}, &errors.FENError{
			Field:  "fields",
			Value:  fen,
			Reason: "expected " + strconv.Itoa(fenFieldCount) + " fields, got " + strconv.Itoa(len(parts)),
		}
	}

	var state chess.GameState

	colour, ok := chess.ParseColour(parts[1])
	if !ok {
		return chess.GameState{}, &errors.FENError{Field: "active colour", Value: parts[1], Reason: "must be w or b"}
	}
	state.ActiveColour = colour

	rights, err := parseCastleRights(parts[2])
	if err != nil {
		return chess.GameState{}, err
	}
	state.CastleRights = rights

	state.EnPassantTarget = chess.NoSquare
	if parts[3] != "-" {
		sq, err := chess.ParseSquare(parts[3])
		if err != nil {
			return chess.GameState{}, &errors.FENError{Field: "en passant", Value: parts[3], Reason: "not a square"}
		}
		state.EnPassantTarget = sq
	}

	if state.HalfMoveCount, err = parseCounter("half-move clock", parts[4]); err != nil {
		return chess.GameState{}, err
	}
	if state.FullMoveCount, err = parseCounter("full-move number", parts[5]); err != nil {
		return chess.GameState{}, err
	}

	if err := parsePiecePlacement(&state.Position, parts[0]); err != nil {
		return chess.GameState{}, err
	}

	return state, nil
}

// parseCastleRights parses the castling availability field.
func parseCastleRights(field string) (chess.CastleRights, error) {
	var rights chess.CastleRights
	if field == "-" {
		return rights, nil
	}
	if field == "" || !castleRightsPattern.MatchString(field) {
		return rights, &errors.FENError{Field: "castling", Value: field, Reason: "must be - or letters from KQkq"}
	}
	for _, c := range field {
		switch c {
		case 'K':
			rights.White.KingSide = true
		case 'Q':
			rights.White.QueenSide = true
		case 'k':
			rights.Black.KingSide = true
		case 'q':
			rights.Black.QueenSide = true
		}
	}
	return rights, nil
}

// parseCounter parses a non-negative move counter.
func parseCounter(name, field string) (int, error) {
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, &errors.FENError{Field: name, Value: field, Reason: "must be a non-negative integer"}
		}
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, &errors.FENError{Field: name, Value: field, Reason: err.Error()}
	}
	return n, nil
}

// parsePiecePlacement parses the board field, rank 8 first, files a to h.
func parsePiecePlacement(pos *chess.Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != chess.BoardSize {
		return &errors.FENError{
			Field:  "board",
			Value:  field,
			Reason: "expected 8 ranks, got " + strconv.Itoa(len(ranks)),
		}
	}

	for i, text := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(text); j++ {
			c := text[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromFENLetter(c)
			if !ok {
				return &errors.FENError{Field: "board", Value: text, Reason: "unexpected character " + strconv.QuoteRune(rune(c))}
			}
			if file >= chess.BoardSize {
				return &errors.FENError{Field: "board", Value: text, Reason: "rank does not describe exactly 8 squares"}
			}
			pos.Set(chess.SquareAt(file, rank), piece)
			file++
		}
		if file != chess.BoardSize {
			return &errors.FENError{Field: "board", Value: text, Reason: "rank does not describe exactly 8 squares"}
		}
	}
	return nil
}

// ValidateFEN reports whether fen is a well-formed FEN string.
func ValidateFEN(fen string) error {
	_, err := ParseFEN(fen)
	return err
}

// FormatFEN converts a game state to a FEN string.
func FormatFEN(state chess.GameState) string {
	var sb strings.Builder
	writePositionKey(&sb, state)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(state.HalfMoveCount))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(state.FullMoveCount))
	return sb.String()
}

// PositionKey returns the first four FEN fields of state: board, active
// colour, castling rights and en passant target. Two states with equal keys
// are the same position for repetition purposes.
func PositionKey(state chess.GameState) string {
	var sb strings.Builder
	writePositionKey(&sb, state)
	return sb.String()
}

// FENPositionKey returns the first four fields of a FEN string.
func FENPositionKey(fen string) string {
	parts := strings.Fields(fen)
	if len(parts) > 4 {
		parts = parts[:4]
	}
	return strings.Join(parts, " ")
}

func writePositionKey(sb *strings.Builder, state chess.GameState) {
	writePiecePlacement(sb, &state.Position)
	sb.WriteByte(' ')
	sb.WriteString(state.ActiveColour.String())
	sb.WriteByte(' ')
	sb.WriteString(state.CastleRights.String())
	sb.WriteByte(' ')
	sb.WriteString(state.EnPassantTarget.String())
}

// writePiecePlacement writes the board field to the builder.
func writePiecePlacement(sb *strings.Builder, pos *chess.Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := pos[chess.SquareAt(file, rank)]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// InitialState returns the standard starting position.
func InitialState() chess.GameState {
	state, err := ParseFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return state
}
