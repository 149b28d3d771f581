package sample

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/plotsample/plotsample/pkg/geom"
)

// RegionKey identifies a sampling region. Real regions use keys >= 1;
// the zero value is the Outside sentinel for points accepted beyond every
// region when outside sampling is allowed.
type RegionKey int

// Outside is the sentinel key owning points that lie in no region.
const Outside RegionKey = 0

// String returns "outside" for the sentinel and the numeric key otherwise.
func (k RegionKey) String() string {
	if k == Outside {
		return "outside"
	}
	return fmt.Sprintf("%d", int(k))
}

// Role describes what a region represents in the experimental design.
type Role int

// Region roles.
const (
	// RoleGlobal marks the single whole sampling area of an unpartitioned
	// design.
	RoleGlobal Role = iota
	// RoleStratum marks one stratum of a stratified design.
	RoleStratum
	// RoleCluster marks one cluster of a clustered design.
	RoleCluster
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleStratum:
		return "stratum"
	case RoleCluster:
		return "cluster"
	default:
		return "global"
	}
}

// Region is a delineated sampling area: a cluster, a stratum, or the whole
// area. Regions are immutable once a run is configured.
type Region struct {
	Key      RegionKey
	Role     Role
	Geometry geom.MultiPolygon
}

// ExclusionZone is a polygon no sample may fall into, optionally grown by
// a safety buffer before containment tests.
type ExclusionZone struct {
	Geometry geom.MultiPolygon
	Buffer   float64 // outward safety buffer, 0 = none
}

// Constraints are the distance and placement rules applied to every
// candidate point. A zero distance disables the corresponding rule.
type Constraints struct {
	// MinDistanceSamples is the minimum spacing between accepted points of
	// the same region.
	MinDistanceSamples float64
	// MinDistancePerimeter is the minimum distance from any ring of the
	// owning region.
	MinDistancePerimeter float64
	// MinDistanceExclusion is the minimum distance from any exclusion zone.
	MinDistanceExclusion float64
	// AllowOutsideSampling permits manually placed points beyond the
	// sampling area; generated points are always confined to it.
	AllowOutsideSampling bool
	// AdjustByArea scales per-region allocations by relative area.
	AdjustByArea bool
}

// GridSpec describes a systematic-grid design.
type GridSpec struct {
	SpacingX float64 // column spacing, > 0
	SpacingY float64 // row spacing, > 0
	// RotationDegrees is a compass-style azimuth: the grid is rotated by
	// (90 - RotationDegrees) mod 180 in mathematical convention, so 0 runs
	// the rows along the area's east-west baseline.
	RotationDegrees float64
	// Zigzag shifts odd-indexed rows right by half the column spacing.
	Zigzag bool

	// PerimeterBufferSampleArea shrinks each region inward before the
	// finalize filter; lattice points inside the margin are dropped.
	PerimeterBufferSampleArea float64
	// PerimeterBufferExclusionArea grows each exclusion zone outward
	// before the finalize filter.
	PerimeterBufferExclusionArea float64
}

// SamplePoint is one accepted sampling location.
type SamplePoint struct {
	X, Y   float64
	Region RegionKey
	// Order is the 1-based position in the run-wide numbering; orders are
	// contiguous 1..N after every registry mutation.
	Order int
	// Label is the export label, LabelRoot followed by Order.
	Label string
}

// Coord returns the point's coordinates.
func (p SamplePoint) Coord() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

// Shortfall reports a region that exhausted its attempt budget before
// reaching its target. Partial results are kept; a shortfall is a normal
// outcome of tightly constrained sampling, not an error.
type Shortfall struct {
	Requested int
	Generated int
	Attempts  int
}

// RegionSample is the outcome of rejection sampling one region.
type RegionSample struct {
	Points   []geom.Point
	Attempts int
	// Shortfall is true when the attempt budget ran out before the target
	// was reached.
	Shortfall bool
}

// RunResult is the one-shot final outcome of a sampling run.
type RunResult struct {
	ID uuid.UUID
	// Points is the renumbered snapshot of every accepted point.
	Points []SamplePoint
	// Shortfalls lists the regions that fell short of their target, keyed
	// by region.
	Shortfalls map[RegionKey]Shortfall
	// Attempts is the total number of candidate draws across all regions.
	// It is zero for grid runs, which draw no candidates.
	Attempts int
}

// ProgressUpdate is a lossy progress notification published while a run is
// generating points.
type ProgressUpdate struct {
	Region    RegionKey
	Generated int // points accepted so far, run-wide
	Target    int // total requested, run-wide
}
