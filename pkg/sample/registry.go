package sample

import (
	"strconv"

	"github.com/plotsample/plotsample/pkg/geom"
)

// Registry is the ordered, keyed collection of accepted sample points.
// Points are grouped by region key; regions keep their first-insertion
// relative order and points within a region keep insertion order. Order
// values are globally unique and contiguous 1..N after every Renumber.
//
// Registry is a plain container: constraint checking happens before a
// point reaches it. It is not safe for concurrent use; the engine
// serializes access.
type Registry struct {
	labelRoot string
	keys      []RegionKey
	points    map[RegionKey][]SamplePoint
	total     int
}

// NewRegistry creates an empty registry whose labels are labelRoot
// followed by the point's order number.
func NewRegistry(labelRoot string) *Registry {
	return &Registry{
		labelRoot: labelRoot,
		points:    make(map[RegionKey][]SamplePoint),
	}
}

// Len returns the number of points across all regions.
func (r *Registry) Len() int { return r.total }

// Keys returns the region keys in their first-insertion order. The
// Outside key appears like any other when it owns points.
func (r *Registry) Keys() []RegionKey {
	out := make([]RegionKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// Points returns the points of one region in insertion order.
func (r *Registry) Points(key RegionKey) []SamplePoint {
	pts := r.points[key]
	out := make([]SamplePoint, len(pts))
	copy(out, pts)
	return out
}

// Add appends a point to the given region's sequence and assigns it the
// next global order number. Callers mutating interactively should follow
// up with Renumber; bulk loaders may renumber once at the end.
func (r *Registry) Add(p geom.Point, key RegionKey) SamplePoint {
	if _, ok := r.points[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.total++
	sp := SamplePoint{
		X:      p.X,
		Y:      p.Y,
		Region: key,
		Order:  r.total,
		Label:  r.label(r.total),
	}
	r.points[key] = append(r.points[key], sp)
	return sp
}

// RemoveNearest removes and returns the point closest to q, scanning all
// regions. Ties are broken deterministically in favor of the lowest order
// number. When maxTolerance is positive, the nearest point is only removed
// if it lies within that distance; a non-positive tolerance removes
// unconditionally. The second return is false when nothing was removed.
func (r *Registry) RemoveNearest(q geom.Point, maxTolerance float64) (SamplePoint, bool) {
	var (
		bestKey  RegionKey
		bestIdx  = -1
		bestDist float64
		best     SamplePoint
	)
	// Iteration follows region insertion order and point insertion order,
	// which after Renumber is exactly ascending order number, so the
	// strict comparison keeps the lowest order on ties.
	for _, key := range r.keys {
		for i, sp := range r.points[key] {
			d := q.DistanceTo(sp.Coord())
			if bestIdx == -1 || d < bestDist {
				bestKey, bestIdx, bestDist, best = key, i, d, sp
			}
		}
	}
	if bestIdx == -1 {
		return SamplePoint{}, false
	}
	if maxTolerance > 0 && bestDist > maxTolerance {
		return SamplePoint{}, false
	}

	pts := r.points[bestKey]
	r.points[bestKey] = append(pts[:bestIdx], pts[bestIdx+1:]...)
	r.total--
	return best, true
}

// Renumber reassigns order numbers 1..N, traversing regions in their
// existing relative order and points within a region in insertion order,
// and rewrites the derived labels. Exported output is therefore always
// contiguously numbered.
func (r *Registry) Renumber() {
	order := 0
	for _, key := range r.keys {
		pts := r.points[key]
		for i := range pts {
			order++
			pts[i].Order = order
			pts[i].Label = r.label(order)
		}
	}
	r.total = order
}

// Snapshot returns every point in order-number sequence. The caller owns
// the slice.
func (r *Registry) Snapshot() []SamplePoint {
	out := make([]SamplePoint, 0, r.total)
	for _, key := range r.keys {
		out = append(out, r.points[key]...)
	}
	return out
}

func (r *Registry) label(order int) string {
	return r.labelRoot + strconv.Itoa(order)
}
