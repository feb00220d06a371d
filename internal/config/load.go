package config

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// EnvPrefix prefixes environment overrides, e.g. CHESSCORE_PERFT_WORKERS.
const EnvPrefix = "CHESSCORE"

// Load reads configuration from the YAML file at path, the environment and
// the defaults, in that order of precedence (environment first). With an
// empty path it looks for chesscore.yaml in the working directory and in
// $HOME/.config/chesscore, and uses the defaults if neither exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("chesscore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/chesscore")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, NewConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "read config: %v", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "decode config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so that environment overrides are seen
// by Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("perft.workers", d.Perft.Workers)
	v.SetDefault("perft.cache_size", d.Perft.CacheSize)

	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.notation", d.Output.Notation)
	v.SetDefault("output.max_line_length", d.Output.MaxLineLength)
	v.SetDefault("output.tags", d.Output.Tags)
	v.SetDefault("output.keep_move_numbers", d.Output.KeepMoveNumbers)
	v.SetDefault("output.keep_results", d.Output.KeepResults)
	v.SetDefault("output.keep_nags", d.Output.KeepNAGs)
	v.SetDefault("output.keep_comments", d.Output.KeepComments)
	v.SetDefault("output.keep_variations", d.Output.KeepVariations)
	v.SetDefault("output.keep_elapsed", d.Output.KeepElapsed)
	v.SetDefault("output.eco_file", d.Output.ECOFile)

	v.SetDefault("engine.path", d.Engine.Path)
	v.SetDefault("engine.args", d.Engine.Args)
	v.SetDefault("engine.depth", d.Engine.Depth)

	v.SetDefault("metrics.backend", d.Metrics.Backend)

	v.SetDefault("duplicate.suppress", d.Duplicate.Suppress)
	v.SetDefault("duplicate.exact_match", d.Duplicate.ExactMatch)
}
