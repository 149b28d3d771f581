package sample

import (
	"fmt"
	"math"

	"github.com/plotsample/plotsample/pkg/geom"
)

// GenerateLattice builds the unfiltered, region-agnostic systematic grid
// for the combined sampling area.
//
// The lattice covers a circle sized to survive any rotation: the combined
// geometry is buffered outward by CoverageBufferFraction of its larger
// bounding-box extent, and the circle radius is the maximum distance from
// the buffered geometry's centroid to any of its vertices. Rows are
// emitted from the top down; with Zigzag set, odd-indexed rows shift right
// by half the column spacing. Only lattice points inside the coverage
// circle are kept, then every point is rotated about the combined
// geometry's own centroid by the spec's azimuth convention,
// (90 - RotationDegrees) mod 180.
//
// The result still needs [FilterIntoRegions] before it means anything; the
// caller may translate it freely first.
func GenerateLattice(regions []Region, spec GridSpec, opts Options) ([]geom.Point, error) {
	if spec.SpacingX <= 0 || spec.SpacingY <= 0 {
		return nil, ErrInvalidSpacing
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	combined := combinedGeometry(regions)
	extent := combined.Bounds()
	if extent.IsEmpty() {
		return nil, ErrEmptyGeometry
	}

	bufferDist := opts.CoverageBufferFraction * math.Max(extent.Width(), extent.Height())
	buffered, err := combined.Buffer(bufferDist, opts.BufferSegments)
	if err != nil {
		return nil, fmt.Errorf("%w: coverage buffer: %v", ErrEmptyGeometry, err)
	}

	center, err := buffered.Centroid()
	if err != nil {
		return nil, fmt.Errorf("%w: coverage centroid: %v", ErrEmptyGeometry, err)
	}

	var radius float64
	for _, v := range buffered.Vertices() {
		if d := center.DistanceTo(v); d > radius {
			radius = d
		}
	}
	if radius <= 0 {
		return nil, ErrEmptyGeometry
	}

	coverage := geom.MultiPolygon{geom.Circle(center, radius, opts.BufferSegments)}
	grid := coverage.Bounds()

	var points []geom.Point
	row := 0
	for y := grid.MaxY; y >= grid.MinY; y -= spec.SpacingY {
		var offset float64
		if spec.Zigzag && row%2 != 0 {
			offset = spec.SpacingX / 2
		}
		for x := grid.MinX; x <= grid.MaxX; x += spec.SpacingX {
			p := geom.Point{X: x + offset, Y: y}
			if coverage.Contains(p) {
				points = append(points, p)
			}
		}
		row++
	}

	// Rotation pivots on the combined geometry's centroid, not the
	// buffered one, so the grid stays anchored to the area itself.
	pivot, err := combined.Centroid()
	if err != nil {
		return nil, fmt.Errorf("%w: rotation centroid: %v", ErrEmptyGeometry, err)
	}
	angle := effectiveAngle(spec.RotationDegrees)
	for i, p := range points {
		points[i] = geom.Rotate(p, pivot, angle)
	}

	return points, nil
}

// effectiveAngle maps the compass-style azimuth of a GridSpec onto the
// mathematical rotation actually applied: (90 - azimuth) mod 180. The
// convention is preserved exactly for compatibility with existing field
// workflows.
func effectiveAngle(azimuthDegrees float64) float64 {
	a := math.Mod(90-azimuthDegrees, 180)
	if a < 0 {
		a += 180
	}
	return a
}

// Translate shifts every lattice point by (dx, dy) in place. It is the
// grid positioning primitive: no filtering happens until the position is
// finalized.
func Translate(points []geom.Point, dx, dy float64) {
	for i, p := range points {
		points[i] = p.Translate(dx, dy)
	}
}

// FilterIntoRegions assigns finalized lattice points to regions and drops
// the invalid ones. A point must clear every exclusion zone, grown outward
// by the zone's own safety buffer plus the spec's exclusion margin. It is
// then assigned to the first region containing it, after shrinking the
// region inward by the spec's perimeter margin; a point inside no region
// is kept under the Outside key only when outside sampling is allowed.
//
// The returned registry is renumbered and ready for manual editing.
func FilterIntoRegions(points []geom.Point, regions []Region, zones []ExclusionZone, spec GridSpec, c Constraints, labelRoot string) *Registry {
	reg := NewRegistry(labelRoot)

	for _, p := range points {
		if excluded(p, zones, spec.PerimeterBufferExclusionArea) {
			continue
		}

		assigned := false
		for _, r := range regions {
			if r.Geometry.ContainsEroded(p, spec.PerimeterBufferSampleArea) {
				reg.Add(p, r.Key)
				assigned = true
				break
			}
		}
		if !assigned && c.AllowOutsideSampling {
			reg.Add(p, Outside)
		}
	}

	reg.Renumber()
	return reg
}

// excluded reports whether p falls inside any exclusion zone after growing
// the zone by its safety buffer plus the extra margin.
func excluded(p geom.Point, zones []ExclusionZone, margin float64) bool {
	for _, zone := range zones {
		if zone.Geometry.ContainsDilated(p, zone.Buffer+margin) {
			return true
		}
	}
	return false
}

// combinedGeometry unions all region geometries of a run.
func combinedGeometry(regions []Region) geom.MultiPolygon {
	parts := make([]geom.MultiPolygon, 0, len(regions))
	for _, r := range regions {
		parts = append(parts, r.Geometry)
	}
	return geom.Union(parts...)
}
