package sample

import (
	"context"
	"math/rand/v2"

	"github.com/plotsample/plotsample/pkg/geom"
)

// SampleRegion rejection-samples one region: it repeatedly draws uniform
// candidates inside the region's bounding box, accepts the ones that pass
// [Validate] in generated mode against the points accepted so far in this
// call, and stops when the target is reached or the attempt budget
// (target * multiplier) is exhausted. Exhausting the budget is not an
// error: the partial result is returned with Shortfall set.
//
// Cancellation is cooperative: ctx is polled once per attempt, so reaction
// time is bounded by the cost of one candidate test. On cancellation the
// partial result is discarded and ErrCancelled returned.
//
// onAccept, when non-nil, is invoked with the running accepted count after
// every acceptance.
func SampleRegion(ctx context.Context, rng *rand.Rand, region Region, target int, zones []ExclusionZone, c Constraints, multiplier int, onAccept func(accepted int)) (RegionSample, error) {
	if target <= 0 {
		return RegionSample{}, ErrInvalidTarget
	}
	bounds := region.Geometry.Bounds()
	if bounds.IsEmpty() || bounds.Width() <= 0 || bounds.Height() <= 0 {
		return RegionSample{}, ErrEmptyGeometry
	}

	maxAttempts := target * multiplier
	points := make([]geom.Point, 0, target)
	attempts := 0

	for len(points) < target && attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return RegionSample{}, ErrCancelled
		}
		attempts++

		p := geom.Point{
			X: bounds.MinX + rng.Float64()*bounds.Width(),
			Y: bounds.MinY + rng.Float64()*bounds.Height(),
		}
		if Validate(p, region, zones, points, c, ModeGenerated) != nil {
			continue
		}
		points = append(points, p)
		if onAccept != nil {
			onAccept(len(points))
		}
	}

	return RegionSample{
		Points:    points,
		Attempts:  attempts,
		Shortfall: len(points) < target,
	}, nil
}
