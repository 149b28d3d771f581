package geom

import "math"

// Epsilon is the tolerance used for on-boundary and degeneracy tests.
const Epsilon = 1e-9

// =============================================================================
// Point
// =============================================================================

// Point is a planar coordinate pair.
type Point struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Translate returns p shifted by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rotate rotates p about center by the given angle in degrees,
// counter-clockwise in the mathematical convention.
func Rotate(p, center Point, degrees float64) Point {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: dx*cos - dy*sin + center.X,
		Y: dx*sin + dy*cos + center.Y,
	}
}

// =============================================================================
// Rect
// =============================================================================

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// emptyRect is the identity for Extend: any point or rect added to it
// becomes the new bounds.
func emptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether p lies inside r (boundary inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Extend returns the smallest rect covering both r and other.
func (r Rect) Extend(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

func (r Rect) extendPoint(p Point) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// =============================================================================
// Line
// =============================================================================

// Line is an open polyline.
type Line []Point

// Bounds returns the bounding box of the line.
func (l Line) Bounds() Rect {
	b := emptyRect()
	for _, p := range l {
		b = b.extendPoint(p)
	}
	return b
}

// Vertices returns the line's vertices.
func (l Line) Vertices() []Point { return []Point(l) }

// Distance returns the minimum distance from p to any segment of the line.
func (l Line) Distance(p Point) float64 {
	if len(l) == 0 {
		return math.Inf(1)
	}
	if len(l) == 1 {
		return p.DistanceTo(l[0])
	}
	min := math.Inf(1)
	for i := 0; i < len(l)-1; i++ {
		if d := segmentDistance(p, l[i], l[i+1]); d < min {
			min = d
		}
	}
	return min
}

// =============================================================================
// Ring
// =============================================================================

// Ring is a closed linear ring. The closure is implicit: the last vertex
// connects back to the first.
type Ring []Point

// Bounds returns the bounding box of the ring.
func (r Ring) Bounds() Rect {
	b := emptyRect()
	for _, p := range r {
		b = b.extendPoint(p)
	}
	return b
}

// SignedArea returns the shoelace area of the ring: positive for
// counter-clockwise orientation, negative for clockwise.
func (r Ring) SignedArea() float64 {
	var sum float64
	j := len(r) - 1
	for i := range r {
		sum += r[j].X*r[i].Y - r[i].X*r[j].Y
		j = i
	}
	return sum / 2
}

// Area returns the absolute area enclosed by the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Distance returns the minimum distance from p to the ring's boundary.
func (r Ring) Distance(p Point) float64 {
	if len(r) == 0 {
		return math.Inf(1)
	}
	min := math.Inf(1)
	j := len(r) - 1
	for i := range r {
		if d := segmentDistance(p, r[j], r[i]); d < min {
			min = d
		}
		j = i
	}
	return min
}

// OnBoundary reports whether p lies within tol of the ring's boundary.
func (r Ring) OnBoundary(p Point, tol float64) bool {
	return r.Distance(p) <= tol
}

// rayCast runs an even-odd crossing test. Points exactly on the boundary
// give arbitrary results; callers combine it with OnBoundary for closed
// containment.
func (r Ring) rayCast(p Point) bool {
	inside := false
	j := len(r) - 1
	for i := range r {
		a, b := r[i], r[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Contains reports whether p lies inside the ring (boundary inclusive).
func (r Ring) Contains(p Point) bool {
	if len(r) < 3 {
		return false
	}
	if !r.Bounds().Contains(p) && !r.OnBoundary(p, Epsilon) {
		return false
	}
	return r.OnBoundary(p, Epsilon) || r.rayCast(p)
}

// regionCentroid returns the centroid of the region enclosed by the ring,
// independent of orientation. Degenerate rings fall back to the vertex mean.
func (r Ring) regionCentroid() Point {
	var a, cx, cy float64
	j := len(r) - 1
	for i := range r {
		cross := r[j].X*r[i].Y - r[i].X*r[j].Y
		a += cross
		cx += (r[j].X + r[i].X) * cross
		cy += (r[j].Y + r[i].Y) * cross
		j = i
	}
	if math.Abs(a) < Epsilon {
		var sx, sy float64
		for _, p := range r {
			sx += p.X
			sy += p.Y
		}
		n := float64(len(r))
		return Point{X: sx / n, Y: sy / n}
	}
	return Point{X: cx / (3 * a), Y: cy / (3 * a)}
}

// isCCW reports whether the ring winds counter-clockwise.
func (r Ring) isCCW() bool { return r.SignedArea() > 0 }

// reversed returns a copy of the ring with opposite winding.
func (r Ring) reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// =============================================================================
// Polygon
// =============================================================================

// Polygon is a single polygon: one exterior ring plus optional holes.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

// Rings returns the exterior ring followed by all hole rings.
func (pg Polygon) Rings() []Ring {
	out := make([]Ring, 0, 1+len(pg.Holes))
	out = append(out, pg.Exterior)
	out = append(out, pg.Holes...)
	return out
}

// Bounds returns the bounding box of the polygon.
func (pg Polygon) Bounds() Rect { return pg.Exterior.Bounds() }

// Area returns the polygon area with holes subtracted.
func (pg Polygon) Area() float64 {
	a := pg.Exterior.Area()
	for _, h := range pg.Holes {
		a -= h.Area()
	}
	if a < 0 {
		return 0
	}
	return a
}

// Contains reports whether p lies inside the polygon. Containment is
// closed: boundaries of the exterior ring and of holes both count as
// inside.
func (pg Polygon) Contains(p Point) bool {
	if len(pg.Exterior) < 3 {
		return false
	}
	if pg.Exterior.OnBoundary(p, Epsilon) {
		return true
	}
	if !pg.Exterior.Contains(p) {
		return false
	}
	for _, h := range pg.Holes {
		if h.OnBoundary(p, Epsilon) {
			return true
		}
		if h.rayCast(p) {
			return false
		}
	}
	return true
}

// BoundaryDistance returns the minimum distance from p to any ring of the
// polygon, holes included.
func (pg Polygon) BoundaryDistance(p Point) float64 {
	min := pg.Exterior.Distance(p)
	for _, h := range pg.Holes {
		if d := h.Distance(p); d < min {
			min = d
		}
	}
	return min
}

// =============================================================================
// MultiPolygon
// =============================================================================

// MultiPolygon is a possibly multi-part polygon geometry.
type MultiPolygon []Polygon

// Bounds returns the bounding box of all parts.
func (mp MultiPolygon) Bounds() Rect {
	b := emptyRect()
	for _, pg := range mp {
		b = b.Extend(pg.Bounds())
	}
	return b
}

// Area returns the summed area of all parts.
func (mp MultiPolygon) Area() float64 {
	var a float64
	for _, pg := range mp {
		a += pg.Area()
	}
	return a
}

// Rings returns all rings of all parts.
func (mp MultiPolygon) Rings() []Ring {
	var out []Ring
	for _, pg := range mp {
		out = append(out, pg.Rings()...)
	}
	return out
}

// Vertices returns all ring vertices of all parts.
func (mp MultiPolygon) Vertices() []Point {
	var out []Point
	for _, r := range mp.Rings() {
		out = append(out, r...)
	}
	return out
}

// Contains reports whether p lies inside any part (boundary inclusive).
func (mp MultiPolygon) Contains(p Point) bool {
	for _, pg := range mp {
		if pg.Contains(p) {
			return true
		}
	}
	return false
}

// BoundaryDistance returns the minimum distance from p to any ring of any
// part.
func (mp MultiPolygon) BoundaryDistance(p Point) float64 {
	min := math.Inf(1)
	for _, pg := range mp {
		if d := pg.BoundaryDistance(p); d < min {
			min = d
		}
	}
	return min
}

// Distance returns the distance from p to the geometry: zero when p is
// inside, otherwise the distance to the nearest boundary.
func (mp MultiPolygon) Distance(p Point) float64 {
	if mp.Contains(p) {
		return 0
	}
	return mp.BoundaryDistance(p)
}

// ContainsEroded reports whether p lies inside the geometry shrunk inward
// by dist: inside, and at least dist from every boundary ring. A
// non-positive dist degrades to plain containment.
func (mp MultiPolygon) ContainsEroded(p Point, dist float64) bool {
	if !mp.Contains(p) {
		return false
	}
	if dist <= 0 {
		return true
	}
	return mp.BoundaryDistance(p) >= dist
}

// ContainsDilated reports whether p lies inside the geometry grown outward
// by dist: inside, or within dist of a boundary. A non-positive dist
// degrades to plain containment.
func (mp MultiPolygon) ContainsDilated(p Point, dist float64) bool {
	if mp.Contains(p) {
		return true
	}
	if dist <= 0 {
		return false
	}
	return mp.BoundaryDistance(p) <= dist
}

// Centroid returns the area-weighted centroid of the geometry, with holes
// contributing negatively. It returns ErrDegenerateGeometry when the total
// area vanishes.
func (mp MultiPolygon) Centroid() (Point, error) {
	var areaSum, cx, cy float64
	for _, pg := range mp {
		for ri, r := range pg.Rings() {
			mag := r.Area()
			if ri > 0 {
				mag = -mag
			}
			c := r.regionCentroid()
			areaSum += mag
			cx += c.X * mag
			cy += c.Y * mag
		}
	}
	if math.Abs(areaSum) < Epsilon {
		return Point{}, ErrDegenerateGeometry
	}
	return Point{X: cx / areaSum, Y: cy / areaSum}, nil
}

// =============================================================================
// Shared helpers
// =============================================================================

// segmentDistance returns the distance from p to the segment a-b.
func segmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.DistanceTo(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.DistanceTo(Point{X: a.X + t*dx, Y: a.Y + t*dy})
}
