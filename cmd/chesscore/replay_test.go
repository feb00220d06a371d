package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chesscore-go/internal/output"
)

const replayPGN = `[Event "One"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0

[Event "Broken"]
[Result "*"]

1. e4 e5 2. Ke3 *

[Event "Again"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0
`

func TestReplayCmd_Report(t *testing.T) {
	path := writeFile(t, "games.pgn", replayPGN)

	res := execute(t, "", "replay", "--workers", "2", path)
	require.NoError(t, res.err)
	got := lines(res.stdout)
	require.Len(t, got, 3)
	assert.Equal(t, "1: 1-0 (checkmate) "+scholarsMateFEN, got[0])
	assert.True(t, strings.HasPrefix(got[1], "2: error:"), got[1])
	assert.Contains(t, got[1], "Ke3")
	assert.Equal(t, "3: 1-0 (checkmate) "+scholarsMateFEN, got[2])
	assert.Contains(t, res.stderr, "replay finished")
}

func TestReplayCmd_Dedupe(t *testing.T) {
	path := writeFile(t, "games.pgn", replayPGN)

	res := execute(t, "", "replay", "--dedupe", path)
	require.NoError(t, res.err)
	got := lines(res.stdout)
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0], "1: "))
	assert.True(t, strings.HasPrefix(got[1], "2: error:"))

	// The repeat transposes into the same position in as many moves, so
	// exact matching drops it too.
	res = execute(t, "", "replay", "--dedupe", "--exact", path)
	require.NoError(t, res.err)
	assert.Len(t, lines(res.stdout), 2)
}

func TestReplayCmd_Stdin(t *testing.T) {
	res := execute(t, replayPGN, "replay", "-")
	require.NoError(t, res.err)
	assert.Len(t, lines(res.stdout), 3)
}

func TestReplayCmd_ExportPGN(t *testing.T) {
	path := writeFile(t, "games.pgn", replayPGN)

	res := execute(t, "", "replay", "--format", "pgn", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `[Event "One"]`)
	assert.Contains(t, res.stdout, `[Event "Again"]`)
	assert.NotContains(t, res.stdout, `[Event "Broken"]`)
	assert.Contains(t, res.stdout, "1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0")
}

func TestReplayCmd_ExportJSON(t *testing.T) {
	path := writeFile(t, "games.pgn", replayPGN)

	res := execute(t, "", "replay", "--format", "json", "--dedupe", path)
	require.NoError(t, res.err)

	var doc output.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	require.Len(t, doc.Games, 1)
	assert.Equal(t, "One", doc.Games[0].Tags["Event"])
	assert.Equal(t, 7, doc.Games[0].PlyCount)
	assert.Equal(t, scholarsMateFEN, doc.Games[0].FinalFEN)
}

func TestReplayCmd_ExportFromConfig(t *testing.T) {
	cfg := writeFile(t, "chesscore.yaml", "output:\n  format: jsonl\n")
	path := writeFile(t, "games.pgn", replayPGN)

	res := execute(t, "", "--config", cfg, "replay", "--export", path)
	require.NoError(t, res.err)
	assert.Len(t, lines(res.stdout), 2)
}

func TestReplayCmd_Errors(t *testing.T) {
	res := execute(t, "", "replay", "/nonexistent/games.pgn")
	assert.Error(t, res.err)

	path := writeFile(t, "games.pgn", replayPGN)
	res = execute(t, "", "replay", "--format", "csv", path)
	assert.Error(t, res.err)

	res = execute(t, "", "replay")
	assert.Error(t, res.err)
}

func TestReplayCmd_ECO(t *testing.T) {
	ecoFile := writeFile(t, "eco.pgn", `[ECO "C20"]
[Opening "King's Pawn Game"]

1. e4 e5 *

[ECO "C23"]
[Opening "Bishop's Opening"]

1. e4 e5 2. Bc4 *
`)
	path := writeFile(t, "games.pgn", replayPGN)

	res := execute(t, "", "replay", "--eco", ecoFile, path)
	require.NoError(t, res.err)
	got := lines(res.stdout)
	require.Len(t, got, 3)
	assert.True(t, strings.HasSuffix(got[0], " C20"), got[0])
	assert.True(t, strings.HasSuffix(got[2], " C23"), got[2])

	res = execute(t, "", "replay", "--eco", ecoFile, "--format", "pgn", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `[ECO "C23"]`)
	assert.Contains(t, res.stdout, `[Opening "Bishop's Opening"]`)

	res = execute(t, "", "replay", "--eco", "/nonexistent/eco.pgn", path)
	assert.Error(t, res.err)
}

func TestReplayCmd_Filter(t *testing.T) {
	path := writeFile(t, "games.pgn", replayPGN)
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"player", []string{"--player", "a"}, []string{"1:", "2: error:"}},
		{"tag criterion", []string{"--match", `Event "Again"`}, []string{"2: error:", "3:"}},
		{"any criterion", []string{"--any", "--match", `Event "Again"`, "--match", `White "A"`}, []string{"1:", "2: error:", "3:"}},
		{"outcome", []string{"--ended-by", "stalemate,repetition"}, []string{"2: error:"}},
		{"plies", []string{"--min-plies", "8"}, []string{"2: error:"}},
		{"position", []string{"--position", "rnbqkbnr/pppp1ppp/8/4p3/2B1P3/8/PPPP1PPP/RNBQK1NR b KQkq - 1 2"}, []string{"2: error:", "3:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"replay"}, tt.args...)
			res := execute(t, "", append(args, path)...)
			require.NoError(t, res.err)
			got := lines(res.stdout)
			require.Len(t, got, len(tt.want), res.stdout)
			for i, prefix := range tt.want {
				assert.True(t, strings.HasPrefix(got[i], prefix), got[i])
			}
		})
	}
}

func TestReplayCmd_FilterErrors(t *testing.T) {
	path := writeFile(t, "games.pgn", replayPGN)
	for _, args := range [][]string{
		{"--match", `Event ~ "[bad"`},
		{"--ended-by", "flag"},
		{"--min-plies", "9", "--max-plies", "3"},
		{"--position", "8/8/8"},
	} {
		res := execute(t, "", append(append([]string{"replay"}, args...), path)...)
		assert.Error(t, res.err, args)
	}
}
