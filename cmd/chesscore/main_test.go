package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chesscore-go/internal/engine"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
)

const scholarsMateFEN = "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4"

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the CLI with args and no configuration file in reach.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFENCmd(t *testing.T) {
	res := execute(t, "", "fen", engine.InitialFEN)
	require.NoError(t, res.err)
	assert.Equal(t, engine.InitialFEN+"\n", res.stdout)

	res = execute(t, "", "fen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidFEN)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Error:")
}

func TestMovesCmd(t *testing.T) {
	res := execute(t, "", "moves")
	require.NoError(t, res.err)
	got := lines(res.stdout)
	assert.Len(t, got, 20)
	assert.Contains(t, got, "Nf3")
	assert.Contains(t, got, "e4")

	res = execute(t, "", "moves", "--uci")
	require.NoError(t, res.err)
	got = lines(res.stdout)
	assert.Len(t, got, 20)
	assert.Equal(t, "a2a3", got[0])
	assert.Contains(t, got, "g1f3")

	res = execute(t, "", "moves", "--fen", scholarsMateFEN)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	res = execute(t, "", "moves", "--fen", "garbage")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidConfig)
}

func TestPlayCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "scholar's mate in SAN",
			args: []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6", "Qxf7#"},
			want: []string{
				"FEN: " + scholarsMateFEN,
				"PGN: 1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7#",
				"Outcome: 1-0 (checkmate)",
			},
		},
		{
			name: "mixed UCI and SAN",
			args: []string{"e2e4", "e5", "g1f3"},
			want: []string{
				"FEN: rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
				"PGN: 1. e4 e5 2. Nf3",
				"Outcome: in progress, black to move",
			},
		},
		{
			name: "resignation",
			args: []string{"--resign", "white", "d4"},
			want: []string{
				"FEN: rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1",
				"PGN: 1. d4",
				"Outcome: 0-1 (resignation)",
			},
		},
		{
			name: "no moves from a position",
			args: []string{"--fen", "4k3/8/8/8/8/8/8/4K3 b - - 0 1"},
			want: []string{
				"FEN: 4k3/8/8/8/8/8/8/4K3 b - - 0 1",
				"PGN: ",
				"Outcome: in progress, black to move",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", append([]string{"play"}, tt.args...)...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, lines(res.stdout))
		})
	}
}

func TestPlayCmd_Errors(t *testing.T) {
	res := execute(t, "", "play", "e4", "e4")
	var moveErr *chesserrors.MoveError
	require.ErrorAs(t, res.err, &moveErr)
	assert.Equal(t, 2, moveErr.Ply)
	assert.Equal(t, "e4", moveErr.MoveText)

	res = execute(t, "", "play", "f3", "e5", "g4", "Qh4#", "a3")
	assert.ErrorIs(t, res.err, chesserrors.ErrGameOver)

	res = execute(t, "", "play", "--resign", "nobody", "e4")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidConfig)
}

func TestPlayCmd_Export(t *testing.T) {
	res := execute(t, "", "play", "--json", "--elapsed", "3.5", "e4")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"san": "e4"`)
	assert.Contains(t, res.stdout, `"elapsed": 3.5`)
	assert.Contains(t, res.stdout, `"piece": "pawn"`)

	res = execute(t, "", "play", "--pgn", "e4", "e5")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `[Event "?"]`)
	assert.Contains(t, res.stdout, "1. e4 e5 *")

	res = execute(t, "", "play", "--pgn", "--json", "e4")
	assert.Error(t, res.err)
}

func TestPerftCmd(t *testing.T) {
	res := execute(t, "", "perft", "3")
	require.NoError(t, res.err)
	assert.Equal(t, "Nodes searched: 8902\n", res.stdout)

	res = execute(t, "", "perft", "2", "--divide", "--workers", "2", "--cache-size", "0")
	require.NoError(t, res.err)
	got := lines(res.stdout)
	require.Len(t, got, 22)
	assert.Equal(t, "a2a3: 20", got[0])
	assert.Contains(t, got, "g1f3: 20")
	assert.Equal(t, "", got[20])
	assert.Equal(t, "Nodes searched: 400", got[21])

	res = execute(t, "", "perft", "1", "--fen", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, res.err)
	assert.Equal(t, "Nodes searched: 48\n", res.stdout)
}

func TestPerftCmd_Errors(t *testing.T) {
	res := execute(t, "", "perft", "deep")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidConfig)

	res = execute(t, "", "perft", "1", "--fen", "8/8/8 w - - 0 1")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidFEN)

	res = execute(t, "", "perft")
	assert.Error(t, res.err)
}

func TestRootCmd_ConfigFile(t *testing.T) {
	path := writeFile(t, "chesscore.yaml", `
log:
  level: debug
  format: json
perft:
  workers: 2
  cache_size: 0
metrics:
  backend: log
`)
	res := execute(t, "", "--config", path, "perft", "1")
	require.NoError(t, res.err)
	assert.Equal(t, "Nodes searched: 20\n", res.stdout)
	assert.Contains(t, res.stderr, `"metric":"chesscore_perft_nodes_total"`)
	assert.Contains(t, res.stderr, `"delta":20`)
	assert.Contains(t, res.stderr, `"workers":2`)
}

func TestRootCmd_PrometheusMetricsFile(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "metrics.prom")
	res := execute(t, "", "--metrics", "prometheus", "--metrics-file", metrics, "perft", "2")
	require.NoError(t, res.err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chesscore_perft_nodes_total 400")
	assert.Contains(t, string(data), "chesscore_perft_runs_total 1")
}

func TestRootCmd_PrometheusMetricsLogged(t *testing.T) {
	res := execute(t, "", "--metrics", "prometheus", "perft", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "chesscore_perft_runs_total")
}

func TestRootCmd_InvalidOverrides(t *testing.T) {
	res := execute(t, "", "--log-level", "loud", "moves")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidConfig)

	res = execute(t, "", "--metrics", "statsd", "moves")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidConfig)

	res = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "moves")
	assert.ErrorIs(t, res.err, chesserrors.ErrInvalidConfig)
}
