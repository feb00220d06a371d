package config

// ConfigBuilder provides a fluent API for constructing Config objects.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder starting from the defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: NewConfig()}
}

// Build returns the configured Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithJSONLogs switches logging to JSON lines.
func (b *ConfigBuilder) WithJSONLogs(enabled bool) *ConfigBuilder {
	if enabled {
		b.cfg.Log.Format = "json"
	} else {
		b.cfg.Log.Format = "console"
	}
	return b
}

// WithPerftWorkers sets the number of perft goroutines.
func (b *ConfigBuilder) WithPerftWorkers(n int) *ConfigBuilder {
	b.cfg.Perft.Workers = n
	return b
}

// WithCacheSize sets the perft transposition cache size.
func (b *ConfigBuilder) WithCacheSize(n int) *ConfigBuilder {
	b.cfg.Perft.CacheSize = n
	return b
}

// WithOutputFormat sets the output format (pgn, json or jsonl).
func (b *ConfigBuilder) WithOutputFormat(format string) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithNotation sets the move notation (san or uci).
func (b *ConfigBuilder) WithNotation(notation string) *ConfigBuilder {
	b.cfg.Output.Notation = notation
	return b
}

// WithMaxLineLength sets the PGN line width.
func (b *ConfigBuilder) WithMaxLineLength(n int) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = n
	return b
}

// WithEngine sets the external engine command.
func (b *ConfigBuilder) WithEngine(path string, args ...string) *ConfigBuilder {
	b.cfg.Engine.Path = path
	b.cfg.Engine.Args = args
	return b
}

// WithEngineDepth sets the default analysis depth.
func (b *ConfigBuilder) WithEngineDepth(depth int) *ConfigBuilder {
	b.cfg.Engine.Depth = depth
	return b
}

// WithMetrics sets the metrics backend.
func (b *ConfigBuilder) WithMetrics(backend string) *ConfigBuilder {
	b.cfg.Metrics.Backend = backend
	return b
}

// WithDuplicateSuppression enables duplicate detection during replay.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled, exactMatch bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	b.cfg.Duplicate.ExactMatch = exactMatch
	return b
}

// KeepComments controls whether comments are kept.
func (b *ConfigBuilder) KeepComments(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepComments = keep
	return b
}

// KeepVariations controls whether variations are kept.
func (b *ConfigBuilder) KeepVariations(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepVariations = keep
	return b
}

// KeepNAGs controls whether NAGs are kept.
func (b *ConfigBuilder) KeepNAGs(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepNAGs = keep
	return b
}
