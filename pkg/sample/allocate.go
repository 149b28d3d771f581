package sample

import "math"

// Allocate turns a requested-samples-per-region scalar into per-region
// integer targets.
//
// In uniform mode every region receives exactly requestedMin. In
// area-proportional mode each region receives
// round(requestedMin * area / minArea), rounded half away from zero and
// floored at requestedMin, so allocation grows monotonically with area and
// no region ever receives fewer points than the base request.
func Allocate(regions []Region, requestedMin int, adjustByArea bool) (map[RegionKey]int, error) {
	if requestedMin <= 0 {
		return nil, ErrInvalidTarget
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	targets := make(map[RegionKey]int, len(regions))
	if !adjustByArea {
		for _, r := range regions {
			targets[r.Key] = requestedMin
		}
		return targets, nil
	}

	areas := make(map[RegionKey]float64, len(regions))
	minArea := math.Inf(1)
	for _, r := range regions {
		a := r.Geometry.Area()
		areas[r.Key] = a
		if a < minArea {
			minArea = a
		}
	}
	if minArea <= 0 {
		return nil, ErrEmptyGeometry
	}

	for _, r := range regions {
		n := int(math.Round(float64(requestedMin) * areas[r.Key] / minArea))
		if n < requestedMin {
			n = requestedMin
		}
		targets[r.Key] = n
	}
	return targets, nil
}
