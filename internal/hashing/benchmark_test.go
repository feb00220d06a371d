package hashing

import (
	"testing"

	"github.com/lgbarn/chesscore-go/internal/game"
)

var benchFENPositions = map[string]string{
	"Initial":   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex":   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
}

func BenchmarkHash(b *testing.B) {
	for name, fen := range benchFENPositions {
		b.Run(name, func(b *testing.B) {
			state := mustState(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Hash(state)
			}
		})
	}
}

func BenchmarkDuplicateDetector_CheckAndAdd(b *testing.B) {
	games := make([]*game.Game, 0, len(benchFENPositions))
	for _, fen := range benchFENPositions {
		g, err := game.New(game.Config{StartPosition: fen})
		if err != nil {
			b.Fatal(err)
		}
		games = append(games, g)
	}

	b.Run("Unique", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dd := NewDuplicateDetector(false)
			for _, g := range games {
				dd.CheckAndAdd(g)
			}
		}
	})

	b.Run("Duplicates", func(b *testing.B) {
		dd := NewDuplicateDetector(false)
		dd.CheckAndAdd(games[0])
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			dd.CheckAndAdd(games[0])
		}
	})
}

func BenchmarkCache(b *testing.B) {
	cache, err := NewCache(1024, nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := uint64(i % 2048)
		if _, ok := cache.Get(h, 3); !ok {
			cache.Add(h, 3, h)
		}
	}
}
