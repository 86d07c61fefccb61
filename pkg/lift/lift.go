package lift

import (
	"math"
	"runtime"
	"sync"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/tool"
)

// Point is one lifted path sample: the tool bottom position and the
// unit normal of the surface point that sets its height.
type Point struct {
	Pos    geom.Vec3 `json:"pos"`
	Normal geom.Vec3 `json:"normal"`
}

// Path is a lifted contour. Ring is the index of the source contour in
// AllRings order. Closed paths end where they begin without repeating
// the first point.
type Path struct {
	Points []Point `json:"points"`
	Closed bool    `json:"closed"`
	Ring   int     `json:"ring"`
}

// ToFaces lifts every contour of ps onto the given faces, keeping the
// tool bottom on or above every surface point under its footprint. It
// returns one Path per contour, in AllRings order.
//
// It fails with *tool.UnsupportedShapeError for non-square tools and
// with *NoFaceUnderPathError when a sample's footprint overlaps no
// face.
func ToFaces(ps geom.PolygonSet, faces []Face, tp tool.Profile, cfg Config) ([]Path, error) {
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	if len(faces) == 0 && !ps.IsEmpty() {
		rings := ps.AllRings()
		return nil, &NoFaceUnderPathError{At: rings[0][0]}
	}

	pr, err := newProber(faces, tp.Radius(), cfg)
	if err != nil {
		return nil, err
	}

	rings := ps.AllRings()
	paths := make([]Path, len(rings))
	for i, r := range rings {
		pts, err := liftRing(r, pr, cfg)
		if err != nil {
			return nil, err
		}
		paths[i] = Path{Points: pts, Closed: true, Ring: i}
	}
	return paths, nil
}

func liftRing(r geom.Ring, pr *prober, cfg Config) ([]Point, error) {
	samples := planSamples(r, cfg.SampleDistance)

	base := make([]Point, len(samples))
	errs := make([]error, len(samples))
	parallelFor(len(samples), cfg.Workers, func(i int) {
		base[i], errs[i] = liftSample(samples[i], pr)
	})
	if err := firstError(errs); err != nil {
		return nil, err
	}

	// Refine each chord independently; segments do not share state, so
	// the result is the same for any worker count.
	refined := make([][]Point, len(samples))
	errs = make([]error, len(samples))
	parallelFor(len(samples), cfg.Workers, func(i int) {
		a := base[i]
		b := base[(i+1)%len(base)]
		pa := samples[i]
		pb := samples[(i+1)%len(samples)]
		refined[i], errs[i] = refineChord(pa, pb, a, b, pr, cfg, 0)
	})
	if err := firstError(errs); err != nil {
		return nil, err
	}

	var out []Point
	for i := range base {
		out = append(out, base[i])
		out = append(out, refined[i]...)
	}
	return out, nil
}

// planSamples walks the ring and subdivides each edge so no two
// consecutive samples are further apart than maxDist.
func planSamples(r geom.Ring, maxDist float64) []geom.Vec2 {
	var out []geom.Vec2
	for i := range r {
		a := r[i]
		b := r[(i+1)%len(r)]
		out = append(out, a)
		if maxDist <= 0 {
			continue
		}
		n := int(math.Ceil(a.DistanceTo(b) / maxDist))
		for k := 1; k < n; k++ {
			t := float64(k) / float64(n)
			out = append(out, a.Add(b.Sub(a).Scale(t)))
		}
	}
	return out
}

func liftSample(p geom.Vec2, pr *prober) (Point, error) {
	pos, normal, ok := pr.bottom(p.X, p.Y)
	if !ok {
		return Point{}, &NoFaceUnderPathError{At: p}
	}
	return Point{Pos: pos, Normal: normal}, nil
}

// refineChord inserts samples between a and b until the lifted surface
// stays within ChordTolerance of the straight chord, returning the
// interior points in path order.
func refineChord(pa, pb geom.Vec2, a, b Point, pr *prober, cfg Config, depth int) ([]Point, error) {
	if depth >= cfg.MaxRefine {
		return nil, nil
	}
	pm := pa.Add(pb.Sub(pa).Scale(0.5))
	if pm.Coincident(pa, cfg.Epsilon) || pm.Coincident(pb, cfg.Epsilon) {
		return nil, nil
	}
	m, err := liftSample(pm, pr)
	if err != nil {
		return nil, err
	}

	chordMid := a.Pos.Add(b.Pos.Sub(a.Pos).Scale(0.5))
	if m.Pos.DistanceTo(chordMid) <= cfg.ChordTolerance {
		return nil, nil
	}

	left, err := refineChord(pa, pm, a, m, pr, cfg, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := refineChord(pm, pb, m, b, pr, cfg, depth+1)
	if err != nil {
		return nil, err
	}

	out := append(left, m)
	return append(out, right...), nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// parallelFor runs fn over [0, n) on the given number of workers,
// each taking a contiguous block. fn(i) must only write state owned
// by index i.
func parallelFor(n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	block := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * block
		hi := lo + block
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
