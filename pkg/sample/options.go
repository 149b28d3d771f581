package sample

import "fmt"

// Default engine tunables. The attempt multiplier and the coverage buffer
// fraction come straight from the original workflow; their values are
// deliberate but not derived, so they stay configurable rather than
// hard-coded.
const (
	// DefaultAttemptMultiplier bounds a region's rejection-sampling budget
	// at target * multiplier draws.
	DefaultAttemptMultiplier = 2000

	// DefaultCoverageBufferFraction is the outward buffer applied to the
	// combined sampling area before sizing the circular grid coverage, as
	// a fraction of the larger bounding-box extent.
	DefaultCoverageBufferFraction = 0.2

	// DefaultBufferSegments is the arc resolution (per quarter circle) of
	// coverage buffers and the coverage circle.
	DefaultBufferSegments = 50
)

// Options are the engine tunables. The zero value is usable: every field
// has a working default applied by ValidateAndSetDefaults.
type Options struct {
	// AttemptMultiplier scales a region's target into its rejection
	// sampling attempt budget. Default 2000.
	AttemptMultiplier int

	// CoverageBufferFraction sizes the grid over-coverage buffer as a
	// fraction of the larger combined-extent dimension. Default 0.2.
	CoverageBufferFraction float64

	// BufferSegments is the arc resolution of coverage geometry. Default 50.
	BufferSegments int

	// Seed seeds the candidate generator for reproducible runs; 0 draws a
	// time-based seed.
	Seed uint64

	// LabelRoot prefixes every sample label ("S" -> "S1", "S2", ...).
	// May be empty, in which case labels are bare order numbers.
	LabelRoot string
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// negative values.
func (o *Options) ValidateAndSetDefaults() error {
	if o.AttemptMultiplier < 0 {
		return fmt.Errorf("attempt multiplier must not be negative, got %d", o.AttemptMultiplier)
	}
	if o.AttemptMultiplier == 0 {
		o.AttemptMultiplier = DefaultAttemptMultiplier
	}
	if o.CoverageBufferFraction < 0 {
		return fmt.Errorf("coverage buffer fraction must not be negative, got %g", o.CoverageBufferFraction)
	}
	if o.CoverageBufferFraction == 0 {
		o.CoverageBufferFraction = DefaultCoverageBufferFraction
	}
	if o.BufferSegments < 0 {
		return fmt.Errorf("buffer segments must not be negative, got %d", o.BufferSegments)
	}
	if o.BufferSegments == 0 {
		o.BufferSegments = DefaultBufferSegments
	}
	return nil
}
