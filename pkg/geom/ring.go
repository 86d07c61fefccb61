package geom

import "math"

// Orientation is the winding direction of a ring.
type Orientation int

const (
	CW  Orientation = iota // clockwise, negative signed area
	CCW                    // counter-clockwise, positive signed area
)

func (o Orientation) String() string {
	if o == CCW {
		return "ccw"
	}
	return "cw"
}

// Ring is an ordered sequence of planar points forming one closed
// polygon boundary. The closing edge from the last point back to the
// first is implicit. A valid ring has at least 3 distinct points and no
// repeated consecutive points.
type Ring []Vec2

// Area returns the signed area of the ring (shoelace formula).
// Counter-clockwise rings have positive area.
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += p.Cross(q)
	}
	return sum / 2
}

// Orientation returns the winding direction of the ring.
func (r Ring) Orientation() Orientation {
	if r.Area() > 0 {
		return CCW
	}
	return CW
}

// Clone returns a deep copy of the ring.
func (r Ring) Clone() Ring {
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// Reversed returns a copy of the ring with opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Rewound returns a copy of the ring wound in the requested direction.
func (r Ring) Rewound(o Orientation) Ring {
	if r.Orientation() == o {
		return r.Clone()
	}
	return r.Reversed()
}

// BoundingBox returns the axis-aligned bounding box of the ring.
func (r Ring) BoundingBox() (min, max Vec2) {
	if len(r) == 0 {
		return Vec2{}, Vec2{}
	}
	min, max = r[0], r[0]
	for _, p := range r[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Contains reports whether p lies inside the ring or within eps of its
// boundary. The boundary check runs first so containment answers do not
// depend on which side of an edge a nearly-on-edge point falls.
func (r Ring) Contains(p Vec2, eps float64) bool {
	if len(r) < 3 {
		return false
	}
	if r.DistanceTo(p) <= eps {
		return true
	}
	// Even-odd ray cast toward +X.
	inside := false
	for i, a := range r {
		b := r[(i+1)%len(r)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if x > p.X {
				inside = !inside
			}
		}
	}
	return inside
}

// DistanceTo returns the minimum distance from p to the ring boundary.
func (r Ring) DistanceTo(p Vec2) float64 {
	best := math.Inf(1)
	for i, a := range r {
		b := r[(i+1)%len(r)]
		if d := PointSegmentDistance(p, a, b); d < best {
			best = d
		}
	}
	return best
}

// IsSimple reports whether no two non-adjacent edges of the ring cross.
// Shared endpoints between adjacent edges are not crossings.
func (r Ring) IsSimple(eps float64) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a0, a1 := r[i], r[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip the edge itself and the two neighbors.
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b0, b1 := r[j], r[(j+1)%n]
			t, u, ok := SegmentIntersection(a0, a1, b0, b1, eps)
			if !ok {
				continue
			}
			// A crossing strictly interior to both segments means the
			// ring is self-intersecting.
			if t > eps && t < 1-eps && u > eps && u < 1-eps {
				return false
			}
		}
	}
	return true
}

// dedupe returns the ring with consecutive points closer than eps
// collapsed, including a duplicated closing point.
func (r Ring) dedupe(eps float64) Ring {
	out := make(Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1].Coincident(p, eps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].Coincident(out[0], eps) {
		out = out[:len(out)-1]
	}
	return out
}

// PointSegmentDistance returns the distance from p to segment [a, b].
func PointSegmentDistance(p, a, b Vec2) float64 {
	_, d := PointSegmentProjection(p, a, b)
	return d
}

// PointSegmentProjection returns the parameter t in [0, 1] of the point
// on segment [a, b] closest to p, and the distance from p to it.
func PointSegmentProjection(p, a, b Vec2) (t, dist float64) {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 == 0 {
		return 0, p.DistanceTo(a)
	}
	t = p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t, p.DistanceTo(a.Add(ab.Scale(t)))
}

// SegmentIntersection intersects segments [a0, a1] and [b0, b1]. It
// returns the parameters t (along a) and u (along b) of the crossing
// point. ok is false for parallel or disjoint segments. Endpoint
// touches within eps of either segment count as intersections.
func SegmentIntersection(a0, a1, b0, b1 Vec2, eps float64) (t, u float64, ok bool) {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	denom := da.Cross(db)
	if math.Abs(denom) < 1e-12 {
		return 0, 0, false
	}
	diff := b0.Sub(a0)
	t = diff.Cross(db) / denom
	u = diff.Cross(da) / denom

	// Allow eps of slack at the ends, scaled into parameter space.
	la, lb := da.Length(), db.Length()
	if la == 0 || lb == 0 {
		return 0, 0, false
	}
	slackT := eps / la
	slackU := eps / lb
	if t < -slackT || t > 1+slackT || u < -slackU || u > 1+slackU {
		return 0, 0, false
	}
	return clamp01(t), clamp01(u), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
