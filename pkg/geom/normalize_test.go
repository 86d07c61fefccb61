package geom

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNormalizeClassification(t *testing.T) {
	outer := square(0, 0, 20, 20)
	hole := square(5, 5, 10, 10)
	inner := square(6, 6, 9, 9) // island inside the hole

	ps, dropped, err := Normalize([]Ring{outer, hole, inner}, DefaultConfig())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(dropped) != 0 {
		t.Errorf("dropped = %v, want none", dropped)
	}
	if len(ps.Outers) != 2 {
		t.Fatalf("got %d outers, want 2", len(ps.Outers))
	}
	if len(ps.Holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(ps.Holes))
	}
	if ps.Holes[0].Owner != 0 {
		t.Errorf("hole owner = %d, want 0", ps.Holes[0].Owner)
	}
	for i, o := range ps.Outers {
		if o.Orientation() != CCW {
			t.Errorf("outer %d wound %v, want CCW", i, o.Orientation())
		}
	}
	if ps.Holes[0].Ring.Orientation() != CW {
		t.Errorf("hole wound %v, want CW", ps.Holes[0].Ring.Orientation())
	}
}

// Classification must depend only on containment, never on the winding
// direction the caller happened to use.
func TestNormalizeWindingInvariance(t *testing.T) {
	outer := square(0, 0, 20, 20)
	hole := square(5, 5, 10, 10)

	variants := []struct {
		name  string
		rings []Ring
	}{
		{"both ccw", []Ring{outer, hole}},
		{"both cw", []Ring{outer.Reversed(), hole.Reversed()}},
		{"outer cw hole ccw", []Ring{outer.Reversed(), hole}},
		{"outer ccw hole cw", []Ring{outer, hole.Reversed()}},
	}

	var want PolygonSet
	for i, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			ps, _, err := Normalize(v.rings, DefaultConfig())
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if i == 0 {
				want = ps
				return
			}
			if !reflect.DeepEqual(ps, want) {
				t.Errorf("result differs from ccw/ccw baseline:\n got %+v\nwant %+v", ps, want)
			}
		})
	}
}

func TestNormalizeDropsDegenerateRings(t *testing.T) {
	rings := []Ring{
		square(0, 0, 10, 10),
		{{3, 3}, {4, 4}},                         // too few points
		{{5, 5}, {5.0000001, 5}, {5, 5.0000001}}, // area below threshold
	}
	ps, dropped, err := Normalize(rings, DefaultConfig())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(dropped, want) {
		t.Errorf("dropped = %v, want %v", dropped, want)
	}
	if len(ps.Outers) != 1 || len(ps.Holes) != 0 {
		t.Errorf("got %d outers %d holes, want 1 and 0", len(ps.Outers), len(ps.Holes))
	}
}

func TestNormalizeAllDegenerate(t *testing.T) {
	_, _, err := Normalize([]Ring{{{0, 0}, {1, 1}}}, DefaultConfig())
	var merr *MalformedGeometryError
	if !errors.As(err, &merr) {
		t.Fatalf("error = %v, want *MalformedGeometryError", err)
	}
}

func TestNormalizeCrossingRings(t *testing.T) {
	a := square(0, 0, 10, 10)
	b := square(5, 5, 15, 15)
	_, _, err := Normalize([]Ring{a, b}, DefaultConfig())
	var merr *MalformedGeometryError
	if !errors.As(err, &merr) {
		t.Fatalf("error = %v, want *MalformedGeometryError", err)
	}
}

func TestPolygonSetContains(t *testing.T) {
	ps, _, err := Normalize([]Ring{square(0, 0, 20, 20), square(5, 5, 10, 10)}, DefaultConfig())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"in material", Vec2{2, 2}, true},
		{"in hole", Vec2{7, 7}, false},
		{"outside", Vec2{-1, -1}, false},
		{"on hole boundary", Vec2{5, 7}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ps.Contains(tt.p, 1e-9); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPolygonSetArea(t *testing.T) {
	ps, _, err := Normalize([]Ring{square(0, 0, 20, 20), square(5, 5, 10, 10)}, DefaultConfig())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if got, want := ps.Area(), 400.0-25.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Area() = %v, want %v", got, want)
	}
}
