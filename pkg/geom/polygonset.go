package geom

import "math"

// Hole is a hole ring together with the index of its owning outer
// boundary within the same PolygonSet.
type Hole struct {
	Ring  Ring
	Owner int
}

// PolygonSet is a collection of rings partitioned into outer boundaries
// and holes. After normalization every outer is wound counter-clockwise,
// every hole clockwise, and every hole lies strictly inside its owner.
// Islands (disjoint outers) are independent entries.
type PolygonSet struct {
	Outers []Ring
	Holes  []Hole
}

// IsEmpty reports whether the set has no outer boundaries.
func (ps PolygonSet) IsEmpty() bool { return len(ps.Outers) == 0 }

// AllRings returns outers followed by holes, in stored order. The
// returned slice shares backing rings with the set; callers must not
// mutate them.
func (ps PolygonSet) AllRings() []Ring {
	rings := make([]Ring, 0, len(ps.Outers)+len(ps.Holes))
	rings = append(rings, ps.Outers...)
	for _, h := range ps.Holes {
		rings = append(rings, h.Ring)
	}
	return rings
}

// Contains reports whether p lies in material: inside an outer boundary
// (or within eps of it) and not strictly inside one of that outer's
// holes.
func (ps PolygonSet) Contains(p Vec2, eps float64) bool {
	for i, outer := range ps.Outers {
		if !outer.Contains(p, eps) {
			continue
		}
		inHole := false
		for _, h := range ps.Holes {
			if h.Owner != i {
				continue
			}
			// Points on the hole boundary itself still count as material.
			if h.Ring.Contains(p, eps) && h.Ring.DistanceTo(p) > eps {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

// BoundaryDistance returns the minimum distance from p to any ring of
// the set.
func (ps PolygonSet) BoundaryDistance(p Vec2) float64 {
	best := math.Inf(1)
	for _, r := range ps.AllRings() {
		if d := r.DistanceTo(p); d < best {
			best = d
		}
	}
	return best
}

// Area returns the total material area: outer areas minus hole areas.
func (ps PolygonSet) Area() float64 {
	sum := 0.0
	for _, r := range ps.Outers {
		sum += math.Abs(r.Area())
	}
	for _, h := range ps.Holes {
		sum -= math.Abs(h.Ring.Area())
	}
	return sum
}
