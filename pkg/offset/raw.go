package offset

import (
	"math"

	"github.com/chazu/kerf/pkg/geom"
)

// rawSeg is one directed segment of a raw offset contour. Direction is
// inherited from the source ring, so material stays on the same side of
// every segment and stitched loops never need reversal.
type rawSeg struct {
	a, b    geom.Vec2
	contour int // source ring index (AllRings order of the input set)
	pos     int // segment position along the raw contour
	fillet  int // fillet id, -1 for straight segments
}

// filletArc is a corner fillet recorded while building a raw contour.
type filletArc struct {
	center geom.Vec2
	radius float64
}

// rawContour is the per-edge offset of a single ring before resolution.
type rawContour struct {
	segs    []rawSeg
	fillets []filletArc
}

// crossEps is the unit-vector cross product below which two edge
// directions are treated as parallel.
const crossEps = 1e-9

// buildRawContour offsets one canonically wound ring by the signed
// distance d. Corners where the offset edges separate get an arc fillet
// of radius |d| centered on the source vertex; corners where they
// overlap are trimmed at the offset-line intersection. The caller
// resolves any self-intersections that remain.
func buildRawContour(r geom.Ring, contourIdx int, d float64, arcTol float64) rawContour {
	n := len(r)
	var (
		pts     []geom.Vec2
		segFill []int // fillet id of the segment ending at pts[k]
		fillets []filletArc
	)
	eps := 1e-12

	appendPt := func(p geom.Vec2, fill int) {
		if len(pts) > 0 && p.Coincident(pts[len(pts)-1], eps) {
			return
		}
		pts = append(pts, p)
		segFill = append(segFill, fill)
	}

	maxStep := arcStep(math.Abs(d), arcTol)

	for i := 0; i < n; i++ {
		vPrev := r[(i-1+n)%n]
		v := r[i]
		vNext := r[(i+1)%n]

		dirPrev := v.Sub(vPrev).Unit()
		dirCur := vNext.Sub(v).Unit()
		nPrev := dirPrev.Perp()
		nCur := dirCur.Perp()
		cross := dirPrev.Cross(dirCur)

		endPrev := v.Add(nPrev.Scale(d)) // where the previous offset edge ends
		startCur := v.Add(nCur.Scale(d)) // where the next offset edge starts

		switch {
		case cross*d > crossEps:
			// The offset edges separate: bridge the gap with a fillet
			// arc of radius |d| around the source vertex.
			fid := len(fillets)
			fillets = append(fillets, filletArc{center: v, radius: math.Abs(d)})
			appendPt(endPrev, -1)
			s := endPrev.Sub(v)
			e := startCur.Sub(v)
			a0 := math.Atan2(s.Y, s.X)
			a1 := math.Atan2(e.Y, e.X)
			sigma := s.Cross(e)
			sweep := a1 - a0
			if sigma > 0 {
				for sweep < 0 {
					sweep += 2 * math.Pi
				}
			} else {
				for sweep > 0 {
					sweep -= 2 * math.Pi
				}
			}
			steps := int(math.Ceil(math.Abs(sweep) / maxStep))
			if steps < 1 {
				steps = 1
			}
			radius := math.Abs(d)
			for k := 1; k <= steps; k++ {
				ang := a0 + sweep*float64(k)/float64(steps)
				p := v.Add(geom.Vec2{X: math.Cos(ang), Y: math.Sin(ang)}.Scale(radius))
				appendPt(p, fid)
			}

		case math.Abs(cross) <= crossEps:
			// Nearly collinear edges: the offset points coincide.
			appendPt(startCur, -1)

		default:
			// The offset edges overlap: trim both at the intersection
			// of their carrier lines (standard miter join).
			denom := cross
			t := startCur.Sub(endPrev).Cross(dirCur) / denom
			x := endPrev.Add(dirPrev.Scale(t))
			if math.Abs(t) > 8*math.Abs(d)+1 {
				// Degenerate near-parallel overlap; fall back to a
				// direct connection and let resolution trim it.
				appendPt(endPrev, -1)
				appendPt(startCur, -1)
			} else {
				appendPt(x, -1)
			}
		}
	}

	// Close the contour: drop a final point that duplicates the first.
	for len(pts) > 1 && pts[len(pts)-1].Coincident(pts[0], eps) {
		pts = pts[:len(pts)-1]
		segFill = segFill[:len(segFill)-1]
	}
	if len(pts) < 3 {
		return rawContour{}
	}

	segs := make([]rawSeg, len(pts))
	for k := range pts {
		next := (k + 1) % len(pts)
		segs[k] = rawSeg{
			a:       pts[k],
			b:       pts[next],
			contour: contourIdx,
			pos:     k,
			fillet:  segFill[next],
		}
	}
	return rawContour{segs: segs, fillets: fillets}
}

// arcStep returns the angular step that keeps fillet chords within tol
// of the true arc (sagitta bound), clamped to a sane range.
func arcStep(radius, tol float64) float64 {
	if tol >= radius {
		return math.Pi / 4
	}
	step := 2 * math.Acos(1-tol/radius)
	if step < 0.01 {
		step = 0.01
	}
	if step > math.Pi/4 {
		step = math.Pi / 4
	}
	return step
}
