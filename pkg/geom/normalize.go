package geom

import (
	"fmt"
	"sort"
)

// Normalize canonicalizes raw sketch rings into a PolygonSet. Input
// winding order is ignored entirely: outer/hole classification comes
// from containment tests, outers are rewound counter-clockwise and
// holes clockwise. Degenerate rings (fewer than 3 distinct points, or
// absolute area below cfg.MinRingArea) are dropped; their indices into
// the input slice are returned so the caller can report them.
//
// Normalize fails with *MalformedGeometryError when rings partially
// overlap, when a hole is not contained in exactly one outer boundary,
// or when no valid ring survives filtering.
func Normalize(rings []Ring, cfg Config) (PolygonSet, []int, error) {
	type cleaned struct {
		src  int // index into the caller's slice
		ring Ring
	}

	var valid []cleaned
	var dropped []int
	for i, r := range rings {
		c := r.dedupe(cfg.Epsilon)
		if len(c) < 3 || abs(c.Area()) < cfg.MinRingArea {
			dropped = append(dropped, i)
			continue
		}
		valid = append(valid, cleaned{src: i, ring: c})
	}
	if len(valid) == 0 {
		return PolygonSet{}, dropped, &MalformedGeometryError{
			Rings:  dropped,
			Reason: "no valid rings remain after degenerate filtering",
		}
	}

	// Containment matrix: contains[j][i] means ring j encloses ring i.
	// Every vertex of the inner ring must be inside the outer one; a
	// mix of inside and outside vertices means the rings cross, which
	// no later stage can repair.
	n := len(valid)
	contains := make([][]bool, n)
	for j := range contains {
		contains[j] = make([]bool, n)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			in := 0
			for _, p := range valid[i].ring {
				if valid[j].ring.Contains(p, cfg.Epsilon) {
					in++
				}
			}
			switch {
			case in == len(valid[i].ring):
				contains[j][i] = true
			case in == 0:
				// disjoint, fine
			default:
				return PolygonSet{}, dropped, &MalformedGeometryError{
					Rings:  []int{valid[i].src, valid[j].src},
					Reason: "rings cross each other",
				}
			}
		}
	}

	depth := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j != i && contains[j][i] {
				depth[i]++
			}
		}
	}

	// Even containment depth means outer boundary, odd means hole.
	var ps PolygonSet
	outerIdx := make(map[int]int) // valid index -> ps.Outers index
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return valid[order[a]].src < valid[order[b]].src })

	for _, i := range order {
		if depth[i]%2 == 0 {
			outerIdx[i] = len(ps.Outers)
			ps.Outers = append(ps.Outers, valid[i].ring.Rewound(CCW))
		}
	}
	for _, i := range order {
		if depth[i]%2 == 0 {
			continue
		}
		// The owning outer is the even-depth ancestor immediately above
		// the hole. Anything other than exactly one is ambiguous.
		var owners []int
		for j := 0; j < n; j++ {
			if j != i && contains[j][i] && depth[j] == depth[i]-1 {
				owners = append(owners, j)
			}
		}
		if len(owners) != 1 {
			return PolygonSet{}, dropped, &MalformedGeometryError{
				Rings:  []int{valid[i].src},
				Reason: fmt.Sprintf("hole contained in %d outer boundaries, want exactly 1", len(owners)),
			}
		}
		ps.Holes = append(ps.Holes, Hole{
			Ring:  valid[i].ring.Rewound(CW),
			Owner: outerIdx[owners[0]],
		})
	}

	return ps, dropped, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
