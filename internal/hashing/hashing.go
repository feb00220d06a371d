// Package hashing provides Zobrist position hashing, duplicate game
// detection and a transposition cache.
package hashing

import (
	"math/rand/v2"
	"sync"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/game"
)

// Fixed seeds keep hashes stable between runs.
const (
	zobristSeed1 = 0x9d39247e33776d41
	zobristSeed2 = 0x2af7398005aaa5c7
)

// pieceIndex maps a piece to its row in the piece table: 0..5 white
// king..pawn, 6..11 black.
func pieceIndex(p chess.Piece) int {
	return int(p.Colour)*6 + int(p.Type) - 1
}

var zobrist = newZobristTable()

type zobristTable struct {
	pieces    [12][chess.NumSquares]uint64
	blackMove uint64
	castling  [4]uint64 // K, Q, k, q
	enPassant [chess.BoardSize]uint64
}

func newZobristTable() *zobristTable {
	rng := rand.New(rand.NewPCG(zobristSeed1, zobristSeed2))
	t := &zobristTable{}
	for p := range t.pieces {
		for sq := range t.pieces[p] {
			t.pieces[p][sq] = rng.Uint64()
		}
	}
	t.blackMove = rng.Uint64()
	for i := range t.castling {
		t.castling[i] = rng.Uint64()
	}
	for i := range t.enPassant {
		t.enPassant[i] = rng.Uint64()
	}
	return t
}

// Hash returns the Zobrist hash of a state. It covers piece placement, the
// side to move, castling rights and the en passant file, which is what
// decides the legal moves. The move clocks are not included.
func Hash(state chess.GameState) uint64 {
	var h uint64
	for sq, p := range state.Position {
		if !p.IsEmpty() {
			h ^= zobrist.pieces[pieceIndex(p)][sq]
		}
	}
	if state.ActiveColour == chess.Black {
		h ^= zobrist.blackMove
	}
	rights := state.CastleRights
	for i, held := range []bool{rights.White.KingSide, rights.White.QueenSide, rights.Black.KingSide, rights.Black.QueenSide} {
		if held {
			h ^= zobrist.castling[i]
		}
	}
	if state.EnPassantTarget != chess.NoSquare {
		h ^= zobrist.enPassant[state.EnPassantTarget.File()]
	}
	return h
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// Plies is the number of half-moves in the game
	Plies int
}

// Signature returns the signature of g's final position.
func Signature(g *game.Game) GameSignature {
	return GameSignature{Hash: Hash(g.State()), Plies: g.Ply()}
}

// DuplicateDetector tracks the final positions of games seen so far. It is
// safe for concurrent use.
type DuplicateDetector struct {
	mu sync.RWMutex
	// seen stores signatures by final position hash
	seen map[uint64][]GameSignature
	// exactMatch also requires the same number of plies
	exactMatch     bool
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector. With exactMatch,
// games reaching the same position by a different number of moves are
// not duplicates.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		seen:       make(map[uint64][]GameSignature),
		exactMatch: exactMatch,
	}
}

// CheckAndAdd reports whether a game with the same final position was seen
// before, and records g if not.
func (d *DuplicateDetector) CheckAndAdd(g *game.Game) bool {
	sig := Signature(g)

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.seen[sig.Hash] {
		if !d.exactMatch || existing.Plies == sig.Plies {
			d.duplicateCount++
			return true
		}
	}
	d.seen[sig.Hash] = append(d.seen[sig.Hash], sig)
	return false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.duplicateCount
}

// UniqueCount returns the number of unique games.
func (d *DuplicateDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	count := 0
	for _, sigs := range d.seen {
		count += len(sigs)
	}
	return count
}

// Reset forgets every game seen.
func (d *DuplicateDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
}
