// Package geom provides the planar geometry operations the sampling engine
// consumes: containment, distances, areas, centroids, bounding boxes,
// unions, buffers, and rigid rotation.
//
// # Geometry Variants
//
// The package works with a small closed set of variants:
//
//   - [Point]: a single coordinate pair
//   - [Line]: an open polyline
//   - [Ring]: a closed linear ring (implicit closure, last vertex connects
//     back to the first)
//   - [Polygon]: one exterior ring plus optional hole rings
//   - [MultiPolygon]: a collection of polygons, possibly multi-part
//
// All coordinates are already-projected planar values; the package performs
// no coordinate-reference-system handling.
//
// # Containment Semantics
//
// Containment is closed: a point on a ring boundary counts as inside, both
// for exterior rings and for holes. On-boundary tests use the package
// [Epsilon] tolerance.
//
// # Buffers
//
// [MultiPolygon.Buffer] produces an explicit dilation with arc-sampled round
// joins and is intended for coverage sizing, where slight over-coverage is
// harmless. Exact buffered-containment questions are answered by the
// morphological predicates [MultiPolygon.ContainsDilated] and
// [MultiPolygon.ContainsEroded], which reduce to containment plus boundary
// distance and involve no approximate offset geometry.
package geom
