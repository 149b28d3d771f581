package sample

import "github.com/plotsample/plotsample/pkg/geom"

// Mode distinguishes how a candidate point came to be.
type Mode int

const (
	// ModeGenerated marks points drawn by the engine; they must lie inside
	// their region.
	ModeGenerated Mode = iota
	// ModeManual marks user-placed points; they may lie outside the region
	// when the constraints allow outside sampling.
	ModeManual
)

// Validate checks a candidate point against every placement rule and
// returns nil on acceptance or a *RejectionError naming the first violated
// rule. The checks run in a fixed order: containment, exclusion zones,
// perimeter distance, inter-sample distance.
//
// existing are the points already accepted for the same region; the
// inter-sample rule only looks at those. Validate is a pure predicate: it
// never mutates its inputs and is safe for concurrent use.
func Validate(p geom.Point, region Region, zones []ExclusionZone, existing []geom.Point, c Constraints, mode Mode) error {
	inside := region.Geometry.Contains(p)

	if mode == ModeGenerated || !c.AllowOutsideSampling {
		if !inside {
			return &RejectionError{Reason: OutsideRegion}
		}
	}

	for _, zone := range zones {
		if zone.Geometry.ContainsDilated(p, zone.Buffer) {
			return &RejectionError{Reason: InExclusionZone}
		}
		if c.MinDistanceExclusion > 0 {
			if d := zone.Geometry.Distance(p); d < c.MinDistanceExclusion {
				return &RejectionError{
					Reason:   TooCloseToExclusion,
					Distance: d,
					Limit:    c.MinDistanceExclusion,
				}
			}
		}
	}

	// The perimeter rule keeps points away from every ring of the owning
	// region; it only applies to points the region actually contains, so a
	// permitted outside point is not measured against a boundary it is not
	// within.
	if c.MinDistancePerimeter > 0 && inside {
		if d := region.Geometry.BoundaryDistance(p); d < c.MinDistancePerimeter {
			return &RejectionError{
				Reason:   TooCloseToPerimeter,
				Distance: d,
				Limit:    c.MinDistancePerimeter,
			}
		}
	}

	if c.MinDistanceSamples > 0 {
		for _, q := range existing {
			if d := p.DistanceTo(q); d < c.MinDistanceSamples {
				return &RejectionError{
					Reason:   TooCloseToSample,
					Distance: d,
					Limit:    c.MinDistanceSamples,
				}
			}
		}
	}

	return nil
}
