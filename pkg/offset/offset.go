package offset

import (
	"math"
	"sort"
	"sync"

	"github.com/chazu/kerf/pkg/geom"
)

// Fillet is a circular-arc corner introduced by the offset, reported so
// the carve composer can surface tool-radius fillets to the host.
type Fillet struct {
	Center geom.Vec2 // source corner the arc is centered on
	Radius float64
	Ring   int // index into Result.Polygons.AllRings()
}

// Merge is a topology junction where two source rings fused into one
// output boundary, e.g. islands closer together than twice the offset.
type Merge struct {
	Rings [2]int // indices into the input set's AllRings(), ascending
	At    geom.Vec2
}

// Result is the outcome of one offset pass: the new polygon set plus
// the metadata the carve composer needs for fillet and bridge reports.
type Result struct {
	Polygons geom.PolygonSet
	Fillets  []Fillet
	Merges   []Merge

	// Eliminated lists input rings (AllRings indices) that contributed
	// nothing to the output: holes that closed, boundaries that
	// collapsed below the offset width.
	Eliminated []int
}

// Offset grows (d > 0) or shrinks (d < 0) a normalized polygon set by
// the perpendicular distance |d|, producing the boundary of the
// Minkowski sum (or erosion) with a disc of that radius. The input is
// read-only; the result never aliases it. A fully collapsed result is
// returned as an empty set with every ring reported in Eliminated.
//
// Offset fails with *NumericDegeneracyError when d is zero within
// tolerance or when the raw offset cannot be resolved into simple
// closed loops within cfg.MaxIterations stitch refinements.
func Offset(ps geom.PolygonSet, d float64, cfg Config) (*Result, error) {
	eps := cfg.Geom.Epsilon
	if math.Abs(d) <= eps {
		return nil, &NumericDegeneracyError{Reason: "offset distance is zero within tolerance"}
	}

	// Defensive rewind: the engine's sign convention (positive grows
	// material) requires outers CCW and holes CW, which Normalize
	// guarantees but hand-built sets may not.
	src := geom.PolygonSet{Outers: make([]geom.Ring, len(ps.Outers)), Holes: make([]geom.Hole, len(ps.Holes))}
	for i, r := range ps.Outers {
		src.Outers[i] = r.Rewound(geom.CCW)
	}
	for i, h := range ps.Holes {
		src.Holes[i] = geom.Hole{Ring: h.Ring.Rewound(geom.CW), Owner: h.Owner}
	}
	rings := src.AllRings()

	// Raw per-ring offsets, in parallel, reassembled in ring order.
	contours := make([]rawContour, len(rings))
	parallelFor(len(rings), cfg.workerCount(), func(i int) {
		contours[i] = buildRawContour(rings[i], i, d, cfg.ArcTolerance)
	})

	var (
		segs       []rawSeg
		fillets    []filletArc
		filletBase = make([]int, len(rings))
		contourLen = make([]int, len(rings))
	)
	for i, c := range contours {
		filletBase[i] = len(fillets)
		contourLen[i] = len(c.segs)
		fillets = append(fillets, c.fillets...)
		for _, s := range c.segs {
			if s.fillet >= 0 {
				s.fillet += filletBase[i]
			}
			segs = append(segs, s)
		}
	}

	pieces := splitSegments(segs, contourLen, cfg)
	pieces = prunePieces(pieces, src, d, cfg)

	var (
		loops []loop
		ok    bool
	)
	// Snap tolerance escalates from the coincidence epsilon up to the
	// prune tolerance scale: pruning can remove fragments of roughly
	// that size from the boundary, so a closeable walk may need hops
	// that large and no larger.
	snapTol := math.Max(2*eps, 1e-9)
	maxSnap := 4 * pruneTolerance(d, cfg)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		loops, ok = stitchLoops(pieces, contourLen, snapTol)
		if ok {
			break
		}
		if snapTol >= maxSnap {
			break
		}
		snapTol = math.Min(snapTol*8, maxSnap)
	}
	if !ok {
		return nil, &NumericDegeneracyError{
			Reason: "offset boundary could not be stitched into closed loops within the iteration bound",
		}
	}

	// Loop geometry plus per-loop provenance.
	loopRings := make([]geom.Ring, len(loops))
	loopFillets := make([][]int, len(loops))
	survived := make(map[int]bool) // source rings present in the output
	for li, lp := range loops {
		ring := make(geom.Ring, 0, len(lp.pieces))
		seen := make(map[int]bool)
		for _, p := range lp.pieces {
			ring = append(ring, p.a)
			survived[p.contour] = true
			if p.fillet >= 0 && !seen[p.fillet] {
				seen[p.fillet] = true
				loopFillets[li] = append(loopFillets[li], p.fillet)
			}
		}
		loopRings[li] = ring
	}

	polygons, ringIdx := classifyLoops(loopRings, cfg)

	res := &Result{Polygons: polygons}
	for li := range loops {
		if ringIdx[li] < 0 {
			continue
		}
		sort.Ints(loopFillets[li])
		for _, fid := range loopFillets[li] {
			res.Fillets = append(res.Fillets, Fillet{
				Center: fillets[fid].center,
				Radius: fillets[fid].radius,
				Ring:   ringIdx[li],
			})
		}
		for _, j := range loops[li].junctions {
			lo, hi := j.ringA, j.ringB
			if lo > hi {
				lo, hi = hi, lo
			}
			res.Merges = append(res.Merges, Merge{Rings: [2]int{lo, hi}, At: j.at})
		}
	}
	sort.Slice(res.Merges, func(a, b int) bool {
		ma, mb := res.Merges[a], res.Merges[b]
		if ma.Rings != mb.Rings {
			return ma.Rings[0] < mb.Rings[0] ||
				(ma.Rings[0] == mb.Rings[0] && ma.Rings[1] < mb.Rings[1])
		}
		if ma.At.X != mb.At.X {
			return ma.At.X < mb.At.X
		}
		return ma.At.Y < mb.At.Y
	})

	for i := range rings {
		if !survived[i] {
			res.Eliminated = append(res.Eliminated, i)
		}
	}
	return res, nil
}

// parallelFor runs fn(i) for i in [0, n) across the given number of
// goroutines. Work items are distributed in contiguous blocks so that
// the call pattern, and therefore the output, is independent of worker
// count and scheduling.
func parallelFor(n, workers int, fn func(i int)) {
	if workers < 1 || workers > n {
		workers = n
	}
	if n == 0 {
		return
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
