// Package carve composes two offset passes into the boundary a square
// end mill leaves when machining a sketch: outward by the tool radius,
// then back inward by the same amount. Corners the tool cannot sharpen
// come back filleted at the tool radius, and islands closer together
// than the tool diameter come back joined by a bridge strip the tool
// could not separate.
package carve

import (
	"math"
	"sort"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/offset"
	"github.com/chazu/kerf/pkg/tool"
)

// Bridge is a strip left between two islands the tool could not pass
// between.
type Bridge struct {
	Rings [2]int    // AllRings indices of the two islands in the input set
	At    geom.Vec2 // center of the junction region
	Gap   float64   // closest distance between the two source islands
	Width float64   // approximate strip width, tool diameter minus gap
}

// Result is the carved boundary plus the metadata hosts use to render
// fillets and bridges distinctly.
type Result struct {
	Polygons geom.PolygonSet

	// Fillets are the tool-radius arcs present in the final boundary,
	// one per corner the tool could not reach into.
	Fillets []offset.Fillet

	// Bridges are reported in ascending gap order; when more than two
	// islands are mutually within the tool diameter, that ordering is
	// the deterministic resolution order of the chained merges.
	Bridges []Bridge
}

// Carve returns the geometry a square end mill of the given profile
// leaves after machining through ps. It is a pure function of its
// inputs and retains no state between calls; carving an already carved
// set again returns it unchanged within tolerance.
//
// Carve fails with *tool.UnsupportedShapeError for non-square tools
// (before any geometry work) and propagates *offset.NumericDegeneracyError
// from the underlying passes.
func Carve(ps geom.PolygonSet, tp tool.Profile, cfg offset.Config) (*Result, error) {
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	r := tp.Radius()

	outward, err := offset.Offset(ps, r, cfg)
	if err != nil {
		return nil, err
	}
	if outward.Polygons.IsEmpty() {
		return &Result{}, nil
	}

	inward, err := offset.Offset(outward.Polygons, -r, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Polygons: inward.Polygons,
		Fillets:  inward.Fillets,
		Bridges:  bridges(ps, outward.Merges, tp.Diameter),
	}
	return res, nil
}

// bridges groups the outward pass's merge junctions by island pair and
// sizes each bridge from the islands' closest approach.
func bridges(ps geom.PolygonSet, merges []offset.Merge, diameter float64) []Bridge {
	if len(merges) == 0 {
		return nil
	}
	rings := ps.AllRings()

	byPair := make(map[[2]int][]geom.Vec2)
	var pairs [][2]int
	for _, m := range merges {
		if _, seen := byPair[m.Rings]; !seen {
			pairs = append(pairs, m.Rings)
		}
		byPair[m.Rings] = append(byPair[m.Rings], m.At)
	}

	out := make([]Bridge, 0, len(pairs))
	for _, pair := range pairs {
		var center geom.Vec2
		for _, at := range byPair[pair] {
			center = center.Add(at)
		}
		center = center.Scale(1 / float64(len(byPair[pair])))

		gap := minRingDistance(rings[pair[0]], rings[pair[1]])
		width := diameter - gap
		if width < 0 {
			width = 0
		}
		out = append(out, Bridge{Rings: pair, At: center, Gap: gap, Width: width})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Gap != out[b].Gap {
			return out[a].Gap < out[b].Gap
		}
		return out[a].Rings[0] < out[b].Rings[0] ||
			(out[a].Rings[0] == out[b].Rings[0] && out[a].Rings[1] < out[b].Rings[1])
	})
	return out
}

// minRingDistance returns the closest approach between two disjoint
// ring boundaries. For non-crossing polygons the minimum is always
// attained at a vertex of one ring against an edge of the other.
func minRingDistance(a, b geom.Ring) float64 {
	best := math.Inf(1)
	for _, p := range a {
		if d := b.DistanceTo(p); d < best {
			best = d
		}
	}
	for _, p := range b {
		if d := a.DistanceTo(p); d < best {
			best = d
		}
	}
	return best
}
