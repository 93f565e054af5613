package netgen

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default exploration limits.
const (
	DefaultMaxSpecies    = 10000
	DefaultMaxReactions  = 100000
	DefaultMaxIterations = 10000
	DefaultMaxAgg        = 500
	DefaultMaxStoich     = 500
	DefaultCheckInterval = 500
	DefaultMemoryLimit   = 1 << 30
)

// Config bounds the exploration of a possibly infinite network.
type Config struct {
	// MaxSpecies stops the run when one more species would be added.
	MaxSpecies int `toml:"max_species" validate:"gte=1"`

	// MaxReactions stops the run when one more reaction would be added.
	MaxReactions int `toml:"max_reactions" validate:"gte=1"`

	// MaxIterations bounds the number of dequeued species; reaching it ends
	// the run normally.
	MaxIterations int `toml:"max_iterations" validate:"gte=1"`

	// MaxAgg is the largest allowed complex, in molecules.
	MaxAgg int `toml:"max_agg" validate:"gte=1"`

	// MaxStoich is the largest allowed count of one molecule type per complex.
	MaxStoich int `toml:"max_stoich" validate:"gte=1"`

	// CheckInterval is the number of logical steps between memory checks,
	// cancellation checks and yields.
	CheckInterval int `toml:"check_interval" validate:"gte=1"`

	// MemoryLimit is the heap ceiling in bytes; 0 disables the check.
	MemoryLimit uint64 `toml:"-"`
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{
		MaxSpecies:    DefaultMaxSpecies,
		MaxReactions:  DefaultMaxReactions,
		MaxIterations: DefaultMaxIterations,
		MaxAgg:        DefaultMaxAgg,
		MaxStoich:     DefaultMaxStoich,
		CheckInterval: DefaultCheckInterval,
		MemoryLimit:   DefaultMemoryLimit,
	}
}

var validate = validator.New()

// Validate checks that every limit is positive.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}
