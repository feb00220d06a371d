// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used by chesscore.
const (
	// Perft metrics.
	MetricPerftRuns     = "chesscore_perft_runs_total"
	MetricPerftNodes    = "chesscore_perft_nodes_total"
	MetricPerftDuration = "chesscore_perft_duration_seconds"
	MetricPerftWorkers  = "chesscore_perft_workers"

	// Transposition cache metrics.
	MetricCacheHits   = "chesscore_cache_hits_total"
	MetricCacheMisses = "chesscore_cache_misses_total"
	MetricCacheSize   = "chesscore_cache_size"

	// Replay metrics.
	MetricGamesReplayed = "chesscore_games_replayed_total"
	MetricReplayErrors  = "chesscore_replay_errors_total"
	MetricPliesReplayed = "chesscore_plies_replayed_total"
	MetricGamesFiltered = "chesscore_games_filtered_total"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
