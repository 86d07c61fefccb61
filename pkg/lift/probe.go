package lift

import (
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/kerf/pkg/geom"
)

// indexedFace carries a face through the R-tree along with its order
// in the input slice, which breaks height ties deterministically.
type indexedFace struct {
	face Face
	idx  int
	rect rtreego.Rect
}

func (f *indexedFace) Bounds() rtreego.Rect { return f.rect }

type probeHit struct {
	pos    geom.Vec3
	normal geom.Vec3
	ok     bool
}

// prober answers "where does a square tool of this radius bottom out
// at (x, y)" by taking the highest surface point over a sampled disc.
type prober struct {
	tree     *rtreego.Rtree
	radius   float64
	discStep float64
	grid     float64
	eps      float64

	mu    sync.Mutex
	cache map[[2]int64]probeHit
}

func newProber(faces []Face, radius float64, cfg Config) (*prober, error) {
	p := &prober{
		radius: radius,
		grid:   cfg.CacheGrid,
		eps:    cfg.Epsilon,
		tree:   rtreego.NewTree(2, 25, 50),
	}
	p.discStep = cfg.CacheGrid
	if p.discStep <= 0 {
		p.discStep = radius / 8
	}
	if p.discStep > radius {
		p.discStep = radius
	}
	if p.grid > 0 {
		p.cache = make(map[[2]int64]probeHit)
	}

	for i, f := range faces {
		lo, hi := f.Bounds()
		lengths := []float64{hi.X - lo.X, hi.Y - lo.Y}
		for k := range lengths {
			if lengths[k] < cfg.Epsilon {
				lengths[k] = cfg.Epsilon
			}
		}
		rect, err := rtreego.NewRect(rtreego.Point{lo.X, lo.Y}, lengths)
		if err != nil {
			return nil, err
		}
		p.tree.Insert(&indexedFace{face: f, idx: i, rect: rect})
	}
	return p, nil
}

// bottom returns the tool bottom position and the normal of the surface
// point that sets it. ok is false when no face lies under the footprint.
func (p *prober) bottom(x, y float64) (pos, normal geom.Vec3, ok bool) {
	best := probeHit{pos: geom.Vec3{Z: math.Inf(-1)}}

	consider := func(px, py float64) {
		hit := p.surfaceAt(px, py)
		if hit.ok && (!best.ok || hit.pos.Z > best.pos.Z) {
			best = hit
		}
	}

	consider(x, y)
	ringCount := int(math.Ceil(p.radius / p.discStep))
	for k := 1; k <= ringCount; k++ {
		r := p.radius * float64(k) / float64(ringCount)
		n := int(math.Ceil(2 * math.Pi * r / p.discStep))
		if n < 8 {
			n = 8
		}
		for j := 0; j < n; j++ {
			a := 2 * math.Pi * float64(j) / float64(n)
			consider(x+r*math.Cos(a), y+r*math.Sin(a))
		}
	}

	if !best.ok {
		return geom.Vec3{}, geom.Vec3{}, false
	}
	return geom.Vec3{X: x, Y: y, Z: best.pos.Z}, best.normal, true
}

// surfaceAt evaluates the highest face above a single point, going
// through the grid cache when enabled. A cached value is a function of
// the grid cell alone, so hits and misses agree regardless of which
// goroutine computed the entry first.
func (p *prober) surfaceAt(x, y float64) probeHit {
	if p.grid <= 0 {
		return p.evaluate(x, y)
	}
	cell := [2]int64{int64(math.Floor(x / p.grid)), int64(math.Floor(y / p.grid))}
	p.mu.Lock()
	hit, cached := p.cache[cell]
	p.mu.Unlock()
	if cached {
		return hit
	}

	cx := (float64(cell[0]) + 0.5) * p.grid
	cy := (float64(cell[1]) + 0.5) * p.grid
	hit = p.evaluate(cx, cy)

	p.mu.Lock()
	p.cache[cell] = hit
	p.mu.Unlock()
	return hit
}

func (p *prober) evaluate(x, y float64) probeHit {
	pt := rtreego.Point{x, y}
	candidates := p.tree.SearchIntersect(pt.ToRect(p.eps))

	best := probeHit{}
	bestIdx := -1
	for _, c := range candidates {
		f := c.(*indexedFace)
		pos, normal, ok := f.face.Evaluate(x, y)
		if !ok {
			continue
		}
		if !best.ok || pos.Z > best.pos.Z ||
			(pos.Z == best.pos.Z && f.idx < bestIdx) {
			best = probeHit{pos: pos, normal: normal, ok: true}
			bestIdx = f.idx
		}
	}
	return best
}
