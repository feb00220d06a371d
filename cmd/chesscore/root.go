package main

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/stats"
	statslogger "github.com/lgbarn/chesscore-go/internal/stats/logger"
	statsprom "github.com/lgbarn/chesscore-go/internal/stats/prometheus"
)

// app carries the state shared by every subcommand once the root command
// has loaded the configuration.
type app struct {
	// Global flags.
	configPath  string
	logLevel    string
	metrics     string
	metricsFile string

	cfg       *config.Config
	log       zerolog.Logger
	collector stats.Collector
	registry  *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "chesscore",
		Short: "Chess rules engine and game tools",
		Long: `chesscore validates positions, lists legal moves, replays and exports
PGN games, counts perft nodes and streams analysis from a UCI engine.

Examples:
  # Normalize a FEN
  chesscore fen "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

  # Play moves from the start and print the result
  chesscore play e4 e5 Qh5 Nc6 Bc4 Nf6 Qxf7#

  # Count nodes five plies deep using four workers
  chesscore perft 5 --workers 4`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	pf.StringVar(&a.metrics, "metrics", "", "metrics backend: none, log or prometheus")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write prometheus metrics to this file on exit")

	root.AddCommand(
		newFENCmd(a),
		newMovesCmd(a),
		newPlayCmd(a),
		newPerftCmd(a),
		newReplayCmd(a),
		newAnalyseCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and metrics collector.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.metrics != "" {
		cfg.Metrics.Backend = a.metrics
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cmd.ErrOrStderr(), cfg.Log)

	switch cfg.Metrics.Backend {
	case config.MetricsLog:
		a.collector = statslogger.New(a.log)
	case config.MetricsPrometheus:
		a.registry = prometheus.NewRegistry()
		a.collector = statsprom.New(a.registry)
	default:
		a.collector = stats.NewNoop()
	}
	a.log.Debug().Str("command", cmd.Name()).Str("metrics", cfg.Metrics.Backend).Msg("configured")
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	level, err := cfg.ParseLevel()
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// finish exports collected prometheus metrics.
func (a *app) finish() error {
	if a.registry == nil {
		return nil
	}
	if a.metricsFile != "" {
		return prometheus.WriteToTextfile(a.metricsFile, a.registry)
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			ev := a.log.Info().Str("metric", mf.GetName())
			switch {
			case m.GetCounter() != nil:
				ev = ev.Float64("value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				ev = ev.Float64("value", m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				ev = ev.Uint64("count", m.GetHistogram().GetSampleCount()).Float64("sum", m.GetHistogram().GetSampleSum())
			}
			ev.Msg("metric")
		}
	}
	return nil
}
