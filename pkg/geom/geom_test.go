package geom

import (
	"math"
	"testing"
)

func square(minX, minY, size float64) Ring {
	return Ring{
		{X: minX, Y: minY},
		{X: minX + size, Y: minY},
		{X: minX + size, Y: minY + size},
		{X: minX, Y: minY + size},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPoint_DistanceTo(t *testing.T) {
	p := Point{X: 0, Y: 0}
	q := Point{X: 3, Y: 4}
	if d := p.DistanceTo(q); !almostEqual(d, 5) {
		t.Errorf("DistanceTo() = %v, want 5", d)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name    string
		p       Point
		center  Point
		degrees float64
		want    Point
	}{
		{"quarter turn about origin", Point{X: 1, Y: 0}, Point{}, 90, Point{X: 0, Y: 1}},
		{"half turn about origin", Point{X: 1, Y: 0}, Point{}, 180, Point{X: -1, Y: 0}},
		{"quarter turn about offset center", Point{X: 2, Y: 1}, Point{X: 1, Y: 1}, 90, Point{X: 1, Y: 2}},
		{"zero rotation is identity", Point{X: 3, Y: 4}, Point{X: 1, Y: 1}, 0, Point{X: 3, Y: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.p, tt.center, tt.degrees)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("Rotate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotate_PreservesDistance(t *testing.T) {
	center := Point{X: 5, Y: -2}
	p := Point{X: 12.5, Y: 3.25}
	before := center.DistanceTo(p)
	for _, deg := range []float64{15, 45, 90, 123.4, 270} {
		after := center.DistanceTo(Rotate(p, center, deg))
		if !almostEqual(before, after) {
			t.Errorf("rotation by %v changed distance: %v -> %v", deg, before, after)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	if !r.Contains(Point{X: 5, Y: 2}) {
		t.Error("Contains() = false for interior point")
	}
	if !r.Contains(Point{X: 10, Y: 5}) {
		t.Error("Contains() = false for corner point")
	}
	if r.Contains(Point{X: 10.01, Y: 2}) {
		t.Error("Contains() = true for outside point")
	}
}

func TestRect_Extend(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := Rect{MinX: 5, MinY: -2, MaxX: 6, MaxY: 3}
	got := a.Extend(b)
	want := Rect{MinX: 0, MinY: -2, MaxX: 6, MaxY: 3}
	if got != want {
		t.Errorf("Extend() = %v, want %v", got, want)
	}
	if got := a.Extend(emptyRect()); got != a {
		t.Errorf("Extend(empty) = %v, want %v", got, a)
	}
}

func TestRing_SignedArea(t *testing.T) {
	ccw := square(0, 0, 10)
	if a := ccw.SignedArea(); !almostEqual(a, 100) {
		t.Errorf("SignedArea() = %v, want 100", a)
	}
	cw := ccw.reversed()
	if a := cw.SignedArea(); !almostEqual(a, -100) {
		t.Errorf("SignedArea() of reversed ring = %v, want -100", a)
	}
}

func TestRing_Contains(t *testing.T) {
	r := square(0, 0, 10)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"interior", Point{X: 5, Y: 5}, true},
		{"edge midpoint", Point{X: 5, Y: 0}, true},
		{"vertex", Point{X: 0, Y: 0}, true},
		{"just outside", Point{X: 10.001, Y: 5}, false},
		{"far outside", Point{X: 100, Y: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRing_Distance(t *testing.T) {
	r := square(0, 0, 10)
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"center", Point{X: 5, Y: 5}, 5},
		{"near left edge", Point{X: 1, Y: 5}, 1},
		{"outside right", Point{X: 13, Y: 5}, 3},
		{"outside corner", Point{X: 13, Y: 14}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Distance(tt.p); !almostEqual(got, tt.want) {
				t.Errorf("Distance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPolygon_Contains_Holes(t *testing.T) {
	pg := Polygon{
		Exterior: square(0, 0, 10),
		Holes:    []Ring{square(4, 4, 2)},
	}
	if !pg.Contains(Point{X: 1, Y: 1}) {
		t.Error("Contains() = false for point between exterior and hole")
	}
	if pg.Contains(Point{X: 5, Y: 5}) {
		t.Error("Contains() = true for point inside hole")
	}
	// Hole boundaries count as inside.
	if !pg.Contains(Point{X: 4, Y: 5}) {
		t.Error("Contains() = false for point on hole boundary")
	}
}

func TestPolygon_Area_Holes(t *testing.T) {
	pg := Polygon{
		Exterior: square(0, 0, 10),
		Holes:    []Ring{square(4, 4, 2)},
	}
	if a := pg.Area(); !almostEqual(a, 96) {
		t.Errorf("Area() = %v, want 96", a)
	}
}

func TestPolygon_BoundaryDistance_IncludesHoles(t *testing.T) {
	pg := Polygon{
		Exterior: square(0, 0, 10),
		Holes:    []Ring{square(4, 4, 2)},
	}
	// (3.5, 5) is 0.5 from the hole but 3.5 from the exterior.
	if d := pg.BoundaryDistance(Point{X: 3.5, Y: 5}); !almostEqual(d, 0.5) {
		t.Errorf("BoundaryDistance() = %v, want 0.5", d)
	}
}

func TestMultiPolygon_Contains(t *testing.T) {
	mp := MultiPolygon{
		{Exterior: square(0, 0, 10)},
		{Exterior: square(20, 0, 5)},
	}
	if !mp.Contains(Point{X: 22, Y: 2}) {
		t.Error("Contains() = false for point in second part")
	}
	if mp.Contains(Point{X: 15, Y: 2}) {
		t.Error("Contains() = true for point between parts")
	}
}

func TestMultiPolygon_Distance(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	if d := mp.Distance(Point{X: 5, Y: 5}); d != 0 {
		t.Errorf("Distance() = %v for interior point, want 0", d)
	}
	if d := mp.Distance(Point{X: 15, Y: 5}); !almostEqual(d, 5) {
		t.Errorf("Distance() = %v, want 5", d)
	}
}

func TestMultiPolygon_ContainsEroded(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	tests := []struct {
		name string
		p    Point
		dist float64
		want bool
	}{
		{"deep interior", Point{X: 5, Y: 5}, 2, true},
		{"inside margin", Point{X: 1, Y: 5}, 2, false},
		{"outside", Point{X: 11, Y: 5}, 2, false},
		{"zero dist is plain containment", Point{X: 0.1, Y: 5}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mp.ContainsEroded(tt.p, tt.dist); got != tt.want {
				t.Errorf("ContainsEroded(%v, %v) = %v, want %v", tt.p, tt.dist, got, tt.want)
			}
		})
	}
}

func TestMultiPolygon_ContainsDilated(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	tests := []struct {
		name string
		p    Point
		dist float64
		want bool
	}{
		{"interior", Point{X: 5, Y: 5}, 2, true},
		{"within the grown margin", Point{X: 11, Y: 5}, 2, true},
		{"beyond the grown margin", Point{X: 13, Y: 5}, 2, false},
		{"zero dist is plain containment", Point{X: 10.5, Y: 5}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mp.ContainsDilated(tt.p, tt.dist); got != tt.want {
				t.Errorf("ContainsDilated(%v, %v) = %v, want %v", tt.p, tt.dist, got, tt.want)
			}
		})
	}
}

func TestMultiPolygon_Centroid(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	c, err := mp.Centroid()
	if err != nil {
		t.Fatalf("Centroid() error = %v", err)
	}
	if !almostEqual(c.X, 5) || !almostEqual(c.Y, 5) {
		t.Errorf("Centroid() = %v, want (5, 5)", c)
	}
}

func TestMultiPolygon_Centroid_Degenerate(t *testing.T) {
	mp := MultiPolygon{{Exterior: Ring{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}}
	if _, err := mp.Centroid(); err == nil {
		t.Error("Centroid() error = nil for collinear ring, want ErrDegenerateGeometry")
	}
}

func TestMultiPolygon_Centroid_AreaWeighted(t *testing.T) {
	// A 10x10 square at the origin dominates a 2x2 square far away, so the
	// combined centroid stays near the big part.
	mp := MultiPolygon{
		{Exterior: square(0, 0, 10)},
		{Exterior: square(100, 0, 2)},
	}
	c, err := mp.Centroid()
	if err != nil {
		t.Fatalf("Centroid() error = %v", err)
	}
	want := (5.0*100 + 101.0*4) / 104
	if !almostEqual(c.X, want) {
		t.Errorf("Centroid().X = %v, want %v", c.X, want)
	}
}

func TestSegmentDistance(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"perpendicular foot inside", Point{X: 5, Y: 3}, 3},
		{"beyond segment start", Point{X: -3, Y: 4}, 5},
		{"beyond segment end", Point{X: 13, Y: 4}, 5},
		{"on segment", Point{X: 7, Y: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentDistance(tt.p, a, b); !almostEqual(got, tt.want) {
				t.Errorf("segmentDistance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestLine_Distance(t *testing.T) {
	l := Line{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if d := l.Distance(Point{X: 12, Y: 5}); !almostEqual(d, 2) {
		t.Errorf("Distance() = %v, want 2", d)
	}
	if d := (Line{}).Distance(Point{}); !math.IsInf(d, 1) {
		t.Errorf("Distance() on empty line = %v, want +Inf", d)
	}
}
