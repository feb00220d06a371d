package config

import (
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/output"
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format is pgn, json (one array) or jsonl (one document per game)
	Format string `mapstructure:"format"`

	// Notation is san or uci
	Notation string `mapstructure:"notation"`

	// MaxLineLength is the maximum line length for PGN output
	MaxLineLength int `mapstructure:"max_line_length"`

	// Tags is all, roster (the seven tag roster) or none
	Tags string `mapstructure:"tags"`

	KeepMoveNumbers bool `mapstructure:"keep_move_numbers"`
	KeepResults     bool `mapstructure:"keep_results"`
	KeepNAGs        bool `mapstructure:"keep_nags"`
	KeepComments    bool `mapstructure:"keep_comments"`
	KeepVariations  bool `mapstructure:"keep_variations"`

	// KeepElapsed writes recorded move times as %emt comments
	KeepElapsed bool `mapstructure:"keep_elapsed"`

	// ECOFile is a PGN file of ECO lines used to add ECO, Opening and
	// Variation tags during replay; empty disables classification
	ECOFile string `mapstructure:"eco_file"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:          "pgn",
		Notation:        "san",
		MaxLineLength:   80,
		Tags:            "all",
		KeepMoveNumbers: true,
		KeepResults:     true,
		KeepNAGs:        true,
		KeepComments:    true,
		KeepVariations:  true,
		KeepElapsed:     true,
	}
}

var tagFormats = map[string]output.TagFormat{
	"all":    output.AllTags,
	"roster": output.SevenTagRosterOnly,
	"none":   output.NoTags,
}

var notations = map[string]output.Notation{
	"san": output.SAN,
	"uci": output.UCI,
}

// Validate reports an unknown format, notation or tag selection.
func (o OutputConfig) Validate() error {
	switch o.Format {
	case "pgn", "json", "jsonl":
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "output.format %q must be pgn, json or jsonl", o.Format)
	}
	if _, ok := notations[o.Notation]; !ok {
		return errors.Wrapf(errors.ErrInvalidConfig, "output.notation %q must be san or uci", o.Notation)
	}
	if _, ok := tagFormats[o.Tags]; !ok {
		return errors.Wrapf(errors.ErrInvalidConfig, "output.tags %q must be all, roster or none", o.Tags)
	}
	if o.MaxLineLength < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "output.max_line_length %d must not be negative", o.MaxLineLength)
	}
	return nil
}

// Options converts the configuration to PGN writer options. Unknown
// values fall back to the defaults.
func (o OutputConfig) Options() output.Options {
	return output.Options{
		Notation:        notations[o.Notation],
		MaxLineLength:   o.MaxLineLength,
		TagFormat:       tagFormats[o.Tags],
		KeepMoveNumbers: o.KeepMoveNumbers,
		KeepResults:     o.KeepResults,
		KeepNAGs:        o.KeepNAGs,
		KeepComments:    o.KeepComments,
		KeepVariations:  o.KeepVariations,
		KeepElapsed:     o.KeepElapsed,
	}
}
