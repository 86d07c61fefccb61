package geom

import (
	"math"
	"testing"
)

func square(x0, y0, x1, y1 float64) Ring {
	return Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestRingArea(t *testing.T) {
	tests := []struct {
		name string
		ring Ring
		want float64
	}{
		{"unit square ccw", square(0, 0, 1, 1), 1},
		{"unit square cw", square(0, 0, 1, 1).Reversed(), -1},
		{"triangle", Ring{{0, 0}, {4, 0}, {0, 3}}, 6},
		{"degenerate", Ring{{0, 0}, {1, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ring.Area(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRingOrientation(t *testing.T) {
	ccw := square(0, 0, 2, 2)
	if got := ccw.Orientation(); got != CCW {
		t.Errorf("Orientation() = %v, want CCW", got)
	}
	if got := ccw.Reversed().Orientation(); got != CW {
		t.Errorf("reversed Orientation() = %v, want CW", got)
	}
}

func TestRingRewound(t *testing.T) {
	r := square(0, 0, 2, 2)
	for _, o := range []Orientation{CW, CCW} {
		got := r.Rewound(o)
		if got.Orientation() != o {
			t.Errorf("Rewound(%v).Orientation() = %v", o, got.Orientation())
		}
		if math.Abs(math.Abs(got.Area())-4) > 1e-12 {
			t.Errorf("Rewound(%v) changed area: %v", o, got.Area())
		}
	}
}

func TestRingContains(t *testing.T) {
	r := square(0, 0, 10, 10)
	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"center", Vec2{5, 5}, true},
		{"outside", Vec2{11, 5}, false},
		{"on edge", Vec2{0, 5}, true},
		{"on vertex", Vec2{10, 10}, true},
		{"just outside", Vec2{10.001, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p, 1e-9); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRingIsSimple(t *testing.T) {
	simple := square(0, 0, 4, 4)
	if !simple.IsSimple(1e-9) {
		t.Error("square reported as self-intersecting")
	}
	// Bowtie: edges (0,0)-(4,4) and (4,0)-(0,4) cross at (2,2).
	bowtie := Ring{{0, 0}, {4, 4}, {4, 0}, {0, 4}}
	if bowtie.IsSimple(1e-9) {
		t.Error("bowtie reported as simple")
	}
}

func TestRingDistanceTo(t *testing.T) {
	r := square(0, 0, 10, 10)
	tests := []struct {
		name string
		p    Vec2
		want float64
	}{
		{"inside mid-edge", Vec2{5, 3}, 3},
		{"outside edge", Vec2{15, 5}, 5},
		{"outside corner", Vec2{13, 14}, 5},
		{"on boundary", Vec2{10, 4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.DistanceTo(tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceTo(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSegmentIntersection(t *testing.T) {
	tt, u, ok := SegmentIntersection(Vec2{0, 0}, Vec2{4, 4}, Vec2{4, 0}, Vec2{0, 4}, 1e-9)
	if !ok {
		t.Fatal("crossing segments reported as disjoint")
	}
	if math.Abs(tt-0.5) > 1e-9 || math.Abs(u-0.5) > 1e-9 {
		t.Errorf("params = (%v, %v), want (0.5, 0.5)", tt, u)
	}

	if _, _, ok := SegmentIntersection(Vec2{0, 0}, Vec2{1, 0}, Vec2{0, 1}, Vec2{1, 1}, 1e-9); ok {
		t.Error("parallel segments reported as crossing")
	}
}
