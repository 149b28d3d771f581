package sample

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when a run or allocation is requested
	// before Configure has supplied regions and constraints.
	ErrNotConfigured = errors.New("sample: engine is not configured")

	// ErrNoRegions is returned by Configure and Allocate when no sampling
	// regions are supplied.
	ErrNoRegions = errors.New("sample: at least one region is required")

	// ErrRunInProgress is returned when a new run, a manual edit, or a grid
	// operation is attempted while a background sampling run is active.
	ErrRunInProgress = errors.New("sample: a sampling run is already in progress")

	// ErrSamplesExist is returned when a new run is started while the
	// registry still holds points from a prior run; Reset must be called
	// first.
	ErrSamplesExist = errors.New("sample: samples from a previous run exist, reset first")

	// ErrNoGrid is returned by TranslateGrid and FinalizeGrid when no
	// unfiltered lattice is being positioned.
	ErrNoGrid = errors.New("sample: no grid has been generated")

	// ErrInvalidState is returned for operations that are not legal in the
	// engine's current workflow state.
	ErrInvalidState = errors.New("sample: operation not allowed in current state")

	// ErrEmptyGeometry is returned when the sampling area yields no usable
	// geometry (empty union, degenerate centroid, collapsed bounding box).
	ErrEmptyGeometry = errors.New("sample: sampling area has no usable geometry")

	// ErrInvalidSpacing is returned by grid generation for non-positive
	// spacing values.
	ErrInvalidSpacing = errors.New("sample: grid spacing must be positive")

	// ErrInvalidTarget is returned for non-positive requested sample counts.
	ErrInvalidTarget = errors.New("sample: requested sample count must be positive")

	// ErrCancelled is reported by a run that observed cooperative
	// cancellation; all in-flight points are discarded.
	ErrCancelled = errors.New("sample: sampling run cancelled")
)

// RejectionReason is the machine-readable code attached to an expected
// validator rejection.
type RejectionReason string

// Rejection reasons, in the order the validator applies its rules.
const (
	OutsideRegion       RejectionReason = "outside_region"
	InExclusionZone     RejectionReason = "in_exclusion_zone"
	TooCloseToExclusion RejectionReason = "too_close_to_exclusion"
	TooCloseToPerimeter RejectionReason = "too_close_to_perimeter"
	TooCloseToSample    RejectionReason = "too_close_to_sample"
)

// RejectionError is the expected outcome of a failed constraint check. It
// is a value-like condition rather than a fault: generated candidates are
// rejected by the thousands during normal operation, and callers decide
// whether a rejection is worth surfacing.
type RejectionError struct {
	Reason RejectionReason

	// Distance and Limit describe the violated distance rule where one
	// applies; both are zero for pure containment rejections.
	Distance float64
	Limit    float64
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	switch e.Reason {
	case OutsideRegion:
		return "sample: point is outside the sampling area"
	case InExclusionZone:
		return "sample: point is inside an exclusion zone"
	case TooCloseToExclusion, TooCloseToPerimeter, TooCloseToSample:
		return fmt.Sprintf("sample: %s (%.3f < %.3f)",
			string(e.Reason), e.Distance, e.Limit)
	}
	return fmt.Sprintf("sample: rejected (%s)", string(e.Reason))
}

// AsRejection unwraps err into a RejectionError, reporting whether err is
// one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
