package config

// DuplicateConfig holds settings for duplicate game detection during
// replay.
type DuplicateConfig struct {
	// Suppress skips games whose final position was already seen
	Suppress bool `mapstructure:"suppress"`

	// ExactMatch also requires the same number of moves
	ExactMatch bool `mapstructure:"exact_match"`
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}
