package geom

import (
	"errors"
	"math"
	"testing"
)

func TestUnion(t *testing.T) {
	a := MultiPolygon{{Exterior: square(0, 0, 10)}}
	b := MultiPolygon{{Exterior: square(20, 0, 5)}, {Exterior: square(30, 0, 5)}}
	got := Union(a, b)
	if len(got) != 3 {
		t.Fatalf("Union() has %d parts, want 3", len(got))
	}
	if !almostEqual(got.Area(), 150) {
		t.Errorf("Union().Area() = %v, want 150", got.Area())
	}
}

func TestCircle(t *testing.T) {
	center := Point{X: 3, Y: -2}
	c := Circle(center, 5, 16)
	if len(c.Exterior) != 64 {
		t.Fatalf("Circle() has %d vertices, want 64", len(c.Exterior))
	}
	for _, v := range c.Exterior {
		if d := center.DistanceTo(v); !almostEqual(d, 5) {
			t.Fatalf("vertex %v at distance %v from center, want 5", v, d)
		}
	}
	if !c.Contains(center) {
		t.Error("Contains(center) = false")
	}
	// Polygon area converges to the disc area from below.
	want := math.Pi * 25
	if a := Ring(c.Exterior).Area(); a > want || a < want*0.98 {
		t.Errorf("Circle area = %v, want slightly below %v", a, want)
	}
}

func TestCircle_MinimumResolution(t *testing.T) {
	c := Circle(Point{}, 1, 0)
	if len(c.Exterior) != 8 {
		t.Errorf("Circle() with zero segments has %d vertices, want 8", len(c.Exterior))
	}
}

func TestBuffer_Square(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	buffered, err := mp.Buffer(2, 8)
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}

	// The buffered geometry must cover everything within 2 of the square
	// and nothing beyond ~2 of it.
	inside := []Point{
		{X: 5, Y: 5},
		{X: -1.9, Y: 5},
		{X: 11.9, Y: 5},
		{X: 5, Y: -1.9},
		{X: 11.3, Y: 11.3}, // corner diagonal, within the round join
	}
	for _, p := range inside {
		if !buffered.Contains(p) {
			t.Errorf("buffered geometry does not contain %v", p)
		}
	}
	outside := []Point{
		{X: -2.5, Y: 5},
		{X: 12.5, Y: 5},
		{X: 11.8, Y: 11.8}, // beyond the corner arc
	}
	for _, p := range outside {
		if buffered.Contains(p) {
			t.Errorf("buffered geometry contains %v", p)
		}
	}
}

func TestBuffer_Negative(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	if _, err := mp.Buffer(-1, 8); !errors.Is(err, ErrNegativeBuffer) {
		t.Errorf("Buffer(-1) error = %v, want ErrNegativeBuffer", err)
	}
}

func TestBuffer_Zero(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	got, err := mp.Buffer(0, 8)
	if err != nil {
		t.Fatalf("Buffer(0) error = %v", err)
	}
	if !almostEqual(got.Area(), 100) {
		t.Errorf("Buffer(0).Area() = %v, want 100", got.Area())
	}
}

func TestBuffer_Degenerate(t *testing.T) {
	mp := MultiPolygon{{Exterior: Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}}}
	if _, err := mp.Buffer(1, 8); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("Buffer() error = %v, want ErrDegenerateGeometry", err)
	}
}

func TestBuffer_ClockwiseInput(t *testing.T) {
	// Winding of the input must not matter.
	cw := MultiPolygon{{Exterior: square(0, 0, 10).reversed()}}
	buffered, err := cw.Buffer(2, 8)
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}
	if !buffered.Contains(Point{X: -1.5, Y: 5}) {
		t.Error("buffered clockwise ring does not cover its margin")
	}
}

func TestBuffer_DropsHoles(t *testing.T) {
	mp := MultiPolygon{{
		Exterior: square(0, 0, 10),
		Holes:    []Ring{square(4, 4, 2)},
	}}
	buffered, err := mp.Buffer(1, 8)
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}
	if !buffered.Contains(Point{X: 5, Y: 5}) {
		t.Error("buffered geometry excludes the filled hole region")
	}
}

func TestBuffer_GrowsBounds(t *testing.T) {
	mp := MultiPolygon{{Exterior: square(0, 0, 10)}}
	buffered, err := mp.Buffer(3, 8)
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}
	b := buffered.Bounds()
	if !almostEqual(b.MinX, -3) || !almostEqual(b.MaxX, 13) {
		t.Errorf("buffered bounds X = [%v, %v], want [-3, 13]", b.MinX, b.MaxX)
	}
	if !almostEqual(b.MinY, -3) || !almostEqual(b.MaxY, 13) {
		t.Errorf("buffered bounds Y = [%v, %v], want [-3, 13]", b.MinY, b.MaxY)
	}
}
