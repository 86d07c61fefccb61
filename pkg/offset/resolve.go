package offset

import (
	"math"
	"sort"

	"github.com/chazu/kerf/pkg/geom"
)

// piece is a fragment of a raw segment after arrangement splitting.
type piece struct {
	rawSeg
	order int // deterministic identity: position in the split output
}

// loop is a stitched closed sequence of pieces.
type loop struct {
	pieces    []piece
	junctions []junction
}

// junction marks a point where a stitched loop switched source rings.
type junction struct {
	at    geom.Vec2
	ringA int
	ringB int
}

// splitSegments cuts every raw segment at each crossing with any other
// non-adjacent segment. The result order depends only on the input
// order, never on worker count.
func splitSegments(segs []rawSeg, contourLen []int, cfg Config) []piece {
	eps := cfg.Geom.Epsilon
	cuts := make([][]float64, len(segs))

	parallelFor(len(segs), cfg.workerCount(), func(i int) {
		si := segs[i]
		for j := range segs {
			if j == i {
				continue
			}
			sj := segs[j]
			if si.contour == sj.contour {
				// Adjacent segments of one contour share an endpoint,
				// which is not a crossing.
				n := contourLen[si.contour]
				d := (sj.pos - si.pos + n) % n
				if d == 1 || d == n-1 {
					continue
				}
			}
			t, _, ok := geom.SegmentIntersection(si.a, si.b, sj.a, sj.b, eps)
			if ok {
				cuts[i] = append(cuts[i], t)
			}
		}
	})

	var pieces []piece
	for i, s := range segs {
		ts := cuts[i]
		sort.Float64s(ts)
		length := s.a.DistanceTo(s.b)
		if length == 0 {
			continue
		}
		tEps := math.Max(eps/length, 1e-12)

		params := []float64{0}
		for _, t := range ts {
			if t > params[len(params)-1]+tEps && t < 1-tEps {
				params = append(params, t)
			}
		}
		params = append(params, 1)

		dir := s.b.Sub(s.a)
		for k := 0; k+1 < len(params); k++ {
			a := s.a.Add(dir.Scale(params[k]))
			b := s.a.Add(dir.Scale(params[k+1]))
			if a.Coincident(b, eps) {
				continue
			}
			ps := s
			ps.a, ps.b = a, b
			pieces = append(pieces, piece{rawSeg: ps, order: len(pieces)})
		}
	}
	return pieces
}

// prunePieces keeps only the fragments that lie on the true offset
// boundary: at the full offset distance from the source rings, on the
// correct side of the material. Trim spikes, collapsed holes, and the
// walls between merging islands all fail this test.
func prunePieces(pieces []piece, src geom.PolygonSet, d float64, cfg Config) []piece {
	eps := cfg.Geom.Epsilon
	radius := math.Abs(d)
	pruneTol := pruneTolerance(d, cfg)
	wantInside := d < 0

	keep := make([]bool, len(pieces))
	parallelFor(len(pieces), cfg.workerCount(), func(i int) {
		mid := pieces[i].a.Add(pieces[i].b).Scale(0.5)
		if src.BoundaryDistance(mid) < radius-pruneTol {
			return
		}
		keep[i] = src.Contains(mid, eps) == wantInside
	})

	kept := make([]piece, 0, len(pieces))
	for i, p := range pieces {
		if keep[i] {
			kept = append(kept, p)
		}
	}
	return kept
}

// pruneTolerance is the distance slack of the keep-or-drop test. It
// also bounds the size of the gaps pruning can leave in the boundary,
// which is what the stitcher's snap tolerance must eventually cover.
func pruneTolerance(d float64, cfg Config) float64 {
	radius := math.Abs(d)
	sagitta := radius * (1 - math.Cos(arcStep(radius, cfg.ArcTolerance)/2))
	return math.Max(cfg.ArcTolerance, sagitta) + 2*cfg.Geom.Epsilon
}

// stitchLoops walks the kept pieces into closed loops. At each step it
// prefers the continuation along the same contour; otherwise it takes
// the nearest unused piece starting within snapTol of the current
// endpoint (ties broken by piece order), recording a junction (a
// topology merge) when the source ring changes. Hopping to a nearby
// rather than coincident endpoint is what lets the walk cross the small
// gaps pruning leaves, e.g. where a collapsing fillet arc degenerates
// into a corner cluster. It fails if any piece cannot be placed on a
// closed loop.
func stitchLoops(pieces []piece, contourLen []int, snapTol float64) ([]loop, bool) {
	used := make([]bool, len(pieces))
	var loops []loop

	findNext := func(cur piece) int {
		best := -1
		bestDist := math.Inf(1)
		for i, cand := range pieces {
			if used[i] {
				continue
			}
			dist := cand.a.DistanceTo(cur.b)
			if dist > snapTol {
				continue
			}
			if cand.contour == cur.contour {
				n := contourLen[cur.contour]
				if cand.pos == cur.pos || (cand.pos-cur.pos+n)%n == 1 {
					return i // continuation wins outright
				}
			}
			if dist < bestDist || (dist == bestDist && cand.order < pieces[best].order) {
				best = i
				bestDist = dist
			}
		}
		return best
	}

	for start := range pieces {
		if used[start] {
			continue
		}
		lp := loop{}
		cur := pieces[start]
		used[start] = true
		lp.pieces = append(lp.pieces, cur)

		for {
			if len(lp.pieces) > 2 && cur.b.Coincident(pieces[start].a, snapTol) {
				if cur.contour != pieces[start].contour {
					lp.junctions = append(lp.junctions, junction{
						at:    pieces[start].a,
						ringA: cur.contour,
						ringB: pieces[start].contour,
					})
				}
				break // closed
			}
			next := findNext(cur)
			if next == -1 {
				return nil, false
			}
			if pieces[next].contour != cur.contour {
				lp.junctions = append(lp.junctions, junction{
					at:    pieces[next].a,
					ringA: cur.contour,
					ringB: pieces[next].contour,
				})
			}
			cur = pieces[next]
			used[next] = true
			lp.pieces = append(lp.pieces, cur)

			if len(lp.pieces) > len(pieces) {
				return nil, false // walk is not terminating
			}
		}
		loops = append(loops, lp)
	}
	return loops, true
}

// classifyLoops partitions simple disjoint loops into outers and holes
// by containment depth parity, preserving loop order. It returns the
// polygon set and, per loop, its index in the set's AllRings order
// (-1 for loops dropped as degenerate).
func classifyLoops(rings []geom.Ring, cfg Config) (geom.PolygonSet, []int) {
	eps := cfg.Geom.Epsilon
	n := len(rings)
	valid := make([]bool, n)
	for i, r := range rings {
		valid[i] = len(r) >= 3 && math.Abs(r.Area()) >= cfg.Geom.MinRingArea
	}

	strictlyInside := func(inner, outer geom.Ring) bool {
		for _, p := range inner {
			if outer.DistanceTo(p) > eps {
				return outer.Contains(p, eps)
			}
		}
		return false // fully on the boundary: tangent, not nested
	}

	depth := make([]int, n)
	contains := make([][]bool, n)
	for j := range contains {
		contains[j] = make([]bool, n)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i == j || !valid[i] || !valid[j] {
				continue
			}
			if strictlyInside(rings[i], rings[j]) {
				contains[j][i] = true
				depth[i]++
			}
		}
	}

	var ps geom.PolygonSet
	ringIdx := make([]int, n)
	outerOf := make(map[int]int)
	for i := 0; i < n; i++ {
		ringIdx[i] = -1
		if valid[i] && depth[i]%2 == 0 {
			outerOf[i] = len(ps.Outers)
			ringIdx[i] = len(ps.Outers)
			ps.Outers = append(ps.Outers, rings[i].Rewound(geom.CCW))
		}
	}
	for i := 0; i < n; i++ {
		if !valid[i] || depth[i]%2 == 0 {
			continue
		}
		owner := 0
		for j := 0; j < n; j++ {
			if contains[j][i] && depth[j] == depth[i]-1 {
				owner = outerOf[j]
				break
			}
		}
		ringIdx[i] = len(ps.Outers) + len(ps.Holes)
		ps.Holes = append(ps.Holes, geom.Hole{Ring: rings[i].Rewound(geom.CW), Owner: owner})
	}
	return ps, ringIdx
}
