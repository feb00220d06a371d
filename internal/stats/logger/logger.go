// Package logger provides a stats collector that writes metrics to a
// zerolog logger.
package logger

import (
	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/stats"
)

// Collector implements stats.Collector by logging each update at debug
// level.
type Collector struct {
	log zerolog.Logger
}

var _ stats.Collector = (*Collector)(nil)

// New creates a collector logging to log.
func New(log zerolog.Logger) *Collector {
	return &Collector{log: log}
}

// IncCounter logs a counter increment.
func (c *Collector) IncCounter(name string, delta int64) {
	c.log.Debug().Str("metric", name).Int64("delta", delta).Msg("counter")
}

// SetGauge logs a gauge value.
func (c *Collector) SetGauge(name string, value int64) {
	c.log.Debug().Str("metric", name).Int64("value", value).Msg("gauge")
}

// ObserveHistogram logs a histogram observation.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.log.Debug().Str("metric", name).Float64("value", value).Msg("histogram")
}
