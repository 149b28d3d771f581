package geom

import "math"

// Union combines geometries into a single MultiPolygon. The inputs of one
// sampling run are disjoint regions, so the combination is a plain
// collection of all parts; overlapping inputs are kept as-is rather than
// dissolved.
func Union(parts ...MultiPolygon) MultiPolygon {
	var out MultiPolygon
	for _, mp := range parts {
		out = append(out, mp...)
	}
	return out
}

// Circle approximates a disc of the given radius around center as a single
// polygon. segments is the arc resolution per quarter circle, matching the
// segments parameter of Buffer.
func Circle(center Point, radius float64, segments int) Polygon {
	n := 4 * segments
	if n < 8 {
		n = 8
	}
	ring := make(Ring, 0, n)
	for i := 0; i < n; i++ {
		ang := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, Point{
			X: center.X + radius*math.Cos(ang),
			Y: center.Y + radius*math.Sin(ang),
		})
	}
	return Polygon{Exterior: ring}
}

// Buffer returns a dilation of the geometry by dist with round joins,
// sampled with segments arc points per quarter circle. Holes are omitted
// from the result, so it covers the true dilation; that is sufficient for
// coverage sizing, which only consumes the centroid and the vertex extent.
// Exact buffered-containment tests belong to ContainsDilated instead.
//
// dist must be non-negative; a zero dist returns the input parts unchanged.
func (mp MultiPolygon) Buffer(dist float64, segments int) (MultiPolygon, error) {
	if dist < 0 {
		return nil, ErrNegativeBuffer
	}
	if segments < 1 {
		segments = 1
	}
	out := make(MultiPolygon, 0, len(mp))
	for _, pg := range mp {
		if len(pg.Exterior) < 3 {
			continue
		}
		if dist == 0 {
			out = append(out, Polygon{Exterior: pg.Exterior})
			continue
		}
		ext := pg.Exterior
		if !ext.isCCW() {
			ext = ext.reversed()
		}
		out = append(out, Polygon{Exterior: offsetRing(ext, dist, segments)})
	}
	if len(out) == 0 {
		return nil, ErrDegenerateGeometry
	}
	return out, nil
}

// offsetRing offsets a counter-clockwise ring outward by dist, inserting
// arc-sampled round joins at each vertex. Reflex vertices produce small
// inward loops that are tolerated by the even-odd consumers of the result.
func offsetRing(r Ring, dist float64, segments int) Ring {
	n := len(r)
	out := make(Ring, 0, 2*n)
	for i := 0; i < n; i++ {
		a := r[i]
		b := r[(i+1)%n]
		c := r[(i+2)%n]
		n1, ok1 := outwardNormal(a, b)
		n2, ok2 := outwardNormal(b, c)
		if !ok1 {
			continue
		}
		out = append(out,
			Point{X: a.X + n1.X*dist, Y: a.Y + n1.Y*dist},
			Point{X: b.X + n1.X*dist, Y: b.Y + n1.Y*dist},
		)
		if !ok2 {
			continue
		}
		a1 := math.Atan2(n1.Y, n1.X)
		a2 := math.Atan2(n2.Y, n2.X)
		delta := normalizeAngle(a2 - a1)
		steps := int(math.Ceil(math.Abs(delta) / (math.Pi / 2) * float64(segments)))
		for s := 1; s < steps; s++ {
			ang := a1 + delta*float64(s)/float64(steps)
			out = append(out, Point{
				X: b.X + dist*math.Cos(ang),
				Y: b.Y + dist*math.Sin(ang),
			})
		}
	}
	return out
}

// outwardNormal returns the unit normal of segment a->b pointing away from
// the interior of a counter-clockwise ring. ok is false for zero-length
// segments.
func outwardNormal(a, b Point) (Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < Epsilon {
		return Point{}, false
	}
	return Point{X: dy / l, Y: -dx / l}, true
}

// normalizeAngle maps an angle difference into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
