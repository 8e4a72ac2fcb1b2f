package pipeline

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/seed"
)

// Colour count limits.
const (
	MinColours = 2
	MaxColours = 10
)

// Config holds the parameters for one palette extraction.
type Config struct {
	// NumColours is the palette size, between MinColours and MaxColours.
	NumColours int

	// Partitions sets the sampling grid to Partitions×Partitions pixels.
	Partitions int

	// UseHSV clusters in HSV instead of RGB.
	UseHSV bool

	// SelectDiverse over-clusters to 2·NumColours candidates and keeps the
	// NumColours chosen by Strategy.
	SelectDiverse bool
	Strategy      colour.Strategy

	// Algorithm picks the k-means backend.
	Algorithm     colour.Algorithm
	MaxIterations int
	Restarts      int

	// Seed controls k-means initialisation.
	Seed seed.Config

	// SwatchLevels is the colour map lookup table size. Zero renders one
	// flat block per colour; render.SmoothLevels gives a gradient.
	SwatchLevels int

	// Limits caps the input file size and pixel count.
	Limits security.Limits

	// Strict fails with ErrDegeneratePalette when the palette contains
	// duplicate colours instead of only logging a warning.
	Strict bool

	// Logger receives progress messages. Nil discards them.
	Logger hclog.Logger
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		NumColours:    4,
		Partitions:    100,
		UseHSV:        true,
		SelectDiverse: true,
		Strategy:      colour.StrategyScore,
		Algorithm:     colour.AlgorithmKMeans,
		MaxIterations: colour.DefaultMaxIterations,
		Restarts:      colour.DefaultRestarts,
		Seed:          seed.DefaultConfig(),
		Limits:        security.DefaultLimits(),
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.NumColours < MinColours || c.NumColours > MaxColours {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidColourCount, c.NumColours, MinColours, MaxColours)
	}
	if c.Partitions < 1 {
		return fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidPartitions, c.Partitions)
	}
	if !colour.IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid: %v)", c.Algorithm, colour.ValidAlgorithms())
	}
	if c.SelectDiverse && !slices.Contains(colour.ValidStrategies(), c.Strategy) {
		return fmt.Errorf("invalid selection strategy: %s (valid: %v)", c.Strategy, colour.ValidStrategies())
	}
	if c.Seed.Mode != "" {
		if _, err := seed.ParseMode(string(c.Seed.Mode)); err != nil {
			return err
		}
	}
	if c.Seed.Mode == seed.ModeManual && c.Seed.Value == nil {
		return fmt.Errorf("seed value is required for manual seed mode")
	}
	if c.Limits.MaxBytes < 0 || c.Limits.MaxPixels < 0 {
		return fmt.Errorf("input limits must not be negative")
	}
	if c.SwatchLevels < 0 {
		return fmt.Errorf("swatch levels must not be negative, got %d", c.SwatchLevels)
	}
	return nil
}

// CandidateCount returns the number of clusters computed before selection.
func (c Config) CandidateCount() int {
	if c.SelectDiverse {
		return 2 * c.NumColours
	}
	return c.NumColours
}

// Space returns the colour space clustering runs in.
func (c Config) Space() colour.Space {
	if c.UseHSV {
		return colour.SpaceHSV
	}
	return colour.SpaceRGB
}
