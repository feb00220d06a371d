// Package perft counts move-tree nodes in parallel, splitting the root
// moves over a worker pool and sharing a transposition cache.
package perft

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/stats"
	"github.com/lgbarn/chesscore-go/internal/worker"
)

// MoveCount is the node count below one root move.
type MoveCount struct {
	Move  string // UCI notation
	Nodes uint64
}

// Result is the outcome of a perft run.
type Result struct {
	Depth    int
	Nodes    uint64
	Divide   []MoveCount // Sorted by move
	Duration time.Duration
}

// Runner performs perft searches.
type Runner struct {
	workers   int
	cache     *hashing.Cache
	collector stats.Collector
	log       zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the number of goroutines searching root moves.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// WithCache shares a transposition cache between searches.
func WithCache(c *hashing.Cache) Option {
	return func(r *Runner) {
		r.cache = c
	}
}

// WithCollector sets the metrics collector.
func WithCollector(c stats.Collector) Option {
	return func(r *Runner) {
		if c != nil {
			r.collector = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// NewRunner creates a runner. Without options it uses one worker per CPU
// and no cache.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers:   worker.DefaultWorkers(),
		collector: stats.NewNoop(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run counts the leaf nodes depth plies below state. Cancelling ctx stops
// the search and returns the context's error.
func (r *Runner) Run(ctx context.Context, state chess.GameState, depth int) (Result, error) {
	if depth < 0 {
		return Result{}, errors.Wrapf(errors.ErrInvalidConfig, "perft depth %d must not be negative", depth)
	}
	start := time.Now()
	result := Result{Depth: depth}
	if depth == 0 {
		result.Nodes = 1
		return result, nil
	}

	process := func(item worker.WorkItem[chess.Move]) worker.ProcessResult[uint64] {
		next, _ := engine.ExecuteMove(state, item.Payload)
		nodes, err := r.count(ctx, next, depth-1)
		return worker.ProcessResult[uint64]{Value: nodes, Index: item.Index, Error: err}
	}
	moves := engine.LegalMoves(state)
	results := worker.Run(moves, process, worker.WithWorkers(r.workers), worker.WithBufferSize(len(moves)+1))

	for i, res := range results {
		if res.Error != nil {
			return Result{}, res.Error
		}
		result.Nodes += res.Value
		result.Divide = append(result.Divide, MoveCount{Move: moves[i].UCI(), Nodes: res.Value})
	}
	sort.Slice(result.Divide, func(i, j int) bool { return result.Divide[i].Move < result.Divide[j].Move })
	result.Duration = time.Since(start)

	r.report(result)
	return result, nil
}

// count is a sequential perft that consults the cache above depth 1.
func (r *Runner) count(ctx context.Context, state chess.GameState, depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	moves := engine.LegalMoves(state)
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var key uint64
	if r.cache != nil {
		key = hashing.Hash(state)
		if nodes, ok := r.cache.Get(key, depth); ok {
			return nodes, nil
		}
	}

	var nodes uint64
	for _, m := range moves {
		next, _ := engine.ExecuteMove(state, m)
		n, err := r.count(ctx, next, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if r.cache != nil {
		r.cache.Add(key, depth, nodes)
	}
	return nodes, nil
}

func (r *Runner) report(result Result) {
	r.collector.IncCounter(stats.MetricPerftRuns, 1)
	r.collector.IncCounter(stats.MetricPerftNodes, int64(result.Nodes))
	r.collector.ObserveHistogram(stats.MetricPerftDuration, result.Duration.Seconds())
	r.collector.SetGauge(stats.MetricPerftWorkers, int64(r.workers))
	if r.cache != nil {
		r.cache.Report()
	}

	r.log.Debug().
		Int("depth", result.Depth).
		Uint64("nodes", result.Nodes).
		Dur("duration", result.Duration).
		Int("workers", r.workers).
		Msg("perft complete")
}
