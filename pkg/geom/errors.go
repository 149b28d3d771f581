package geom

import "errors"

var (
	// ErrDegenerateGeometry is returned when an operation needs a non-empty,
	// non-degenerate geometry (e.g. the centroid of a zero-area polygon).
	ErrDegenerateGeometry = errors.New("geom: degenerate or empty geometry")

	// ErrNegativeBuffer is returned by [MultiPolygon.Buffer] for negative
	// distances. Erosion questions are answered by
	// [MultiPolygon.ContainsEroded] instead of materialized geometry.
	ErrNegativeBuffer = errors.New("geom: buffer distance must not be negative")
)
