package lift

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/tool"
)

// flatFace is a horizontal rectangular patch at a fixed height.
type flatFace struct {
	z      float64
	lo, hi geom.Vec2
}

func (f flatFace) Evaluate(x, y float64) (geom.Vec3, geom.Vec3, bool) {
	if x < f.lo.X || x > f.hi.X || y < f.lo.Y || y > f.hi.Y {
		return geom.Vec3{}, geom.Vec3{}, false
	}
	return geom.Vec3{X: x, Y: y, Z: f.z}, geom.Vec3{Z: 1}, true
}

func (f flatFace) Contains(p geom.Vec3, tol float64) bool {
	if p.X < f.lo.X-tol || p.X > f.hi.X+tol || p.Y < f.lo.Y-tol || p.Y > f.hi.Y+tol {
		return false
	}
	return p.Z >= f.z-tol && p.Z <= f.z+tol
}

func (f flatFace) Bounds() (geom.Vec2, geom.Vec2) { return f.lo, f.hi }

func square(x0, y0, x1, y1 float64) geom.Ring {
	return geom.Ring{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func mustNormalize(t *testing.T, rings ...geom.Ring) geom.PolygonSet {
	t.Helper()
	ps, _, err := geom.Normalize(rings, geom.DefaultConfig())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	return ps
}

func squareTool(d float64) tool.Profile {
	return tool.Profile{Shape: tool.Square, Diameter: d}
}

func TestToFacesFlatSurface(t *testing.T) {
	faces := []Face{flatFace{z: 7, lo: geom.Vec2{X: -10, Y: -10}, hi: geom.Vec2{X: 40, Y: 40}}}
	ps := mustNormalize(t, square(0, 0, 20, 20))

	cfg := DefaultConfig()
	cfg.CacheGrid = 0 // exact probes
	paths, err := ToFaces(ps, faces, squareTool(4), cfg)
	if err != nil {
		t.Fatalf("ToFaces() error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	p := paths[0]
	if !p.Closed || p.Ring != 0 {
		t.Errorf("path closed=%v ring=%d, want closed ring 0", p.Closed, p.Ring)
	}
	if len(p.Points) == 0 {
		t.Fatal("path has no points")
	}
	for _, pt := range p.Points {
		if pt.Pos.Z != 7 {
			t.Errorf("point %v not on the surface, want z=7", pt.Pos)
		}
		if pt.Normal != (geom.Vec3{Z: 1}) {
			t.Errorf("normal = %v, want +Z", pt.Normal)
		}
		if !faces[0].Contains(pt.Pos, 1e-9) {
			t.Errorf("lifted point %v not on the face", pt.Pos)
		}
	}
}

// Over a step the tool bottom must rise a full tool radius before the
// edge: the footprint reaches the upper level while the tool center is
// still over the lower one.
func TestToFacesStepClearance(t *testing.T) {
	const (
		stepX  = 10.0
		lowZ   = 0.0
		highZ  = 5.0
		radius = 2.0
	)
	faces := []Face{
		flatFace{z: lowZ, lo: geom.Vec2{X: -5, Y: -5}, hi: geom.Vec2{X: stepX, Y: 25}},
		flatFace{z: highZ, lo: geom.Vec2{X: stepX, Y: -5}, hi: geom.Vec2{X: 35, Y: 25}},
	}
	// The horizontal edges of this contour cross the step.
	ps := mustNormalize(t, square(2, 2, 18, 8))

	cfg := DefaultConfig()
	cfg.CacheGrid = 0
	paths, err := ToFaces(ps, faces, squareTool(2*radius), cfg)
	if err != nil {
		t.Fatalf("ToFaces() error: %v", err)
	}

	for _, pt := range paths[0].Points {
		nearStep := pt.Pos.X >= stepX-radius-1e-9
		switch {
		case nearStep && pt.Pos.Z != highZ:
			t.Errorf("tool at %v gouges the step: footprint reaches the upper level", pt.Pos)
		case !nearStep && pt.Pos.Z != lowZ:
			t.Errorf("tool at %v lifted early, want lower level", pt.Pos)
		}
	}
}

func TestToFacesNoFaceUnderPath(t *testing.T) {
	ps := mustNormalize(t, square(0, 0, 20, 20))

	t.Run("no faces at all", func(t *testing.T) {
		_, err := ToFaces(ps, nil, squareTool(4), DefaultConfig())
		var nerr *NoFaceUnderPathError
		if !errors.As(err, &nerr) {
			t.Fatalf("error = %v, want *NoFaceUnderPathError", err)
		}
	})

	t.Run("face misses part of the path", func(t *testing.T) {
		faces := []Face{flatFace{z: 0, lo: geom.Vec2{X: -5, Y: -5}, hi: geom.Vec2{X: 10, Y: 10}}}
		_, err := ToFaces(ps, faces, squareTool(4), DefaultConfig())
		var nerr *NoFaceUnderPathError
		if !errors.As(err, &nerr) {
			t.Fatalf("error = %v, want *NoFaceUnderPathError", err)
		}
	})
}

func TestToFacesRejectsUnsupportedTool(t *testing.T) {
	ps := mustNormalize(t, square(0, 0, 10, 10))
	faces := []Face{flatFace{z: 0, lo: geom.Vec2{X: -5, Y: -5}, hi: geom.Vec2{X: 15, Y: 15}}}
	_, err := ToFaces(ps, faces, tool.Profile{Shape: tool.Shape(2), Diameter: 4}, DefaultConfig())
	var serr *tool.UnsupportedShapeError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *tool.UnsupportedShapeError", err)
	}
}

// Output must be bit-identical for any worker count, with and without
// the probe cache.
func TestToFacesDeterministicAcrossWorkers(t *testing.T) {
	faces := []Face{
		flatFace{z: 0, lo: geom.Vec2{X: -5, Y: -5}, hi: geom.Vec2{X: 10, Y: 25}},
		flatFace{z: 5, lo: geom.Vec2{X: 10, Y: -5}, hi: geom.Vec2{X: 35, Y: 25}},
	}
	ps := mustNormalize(t, square(2, 2, 18, 8))

	for _, grid := range []float64{0, 0.25} {
		var baseline []Path
		for _, workers := range []int{1, 3, 8} {
			cfg := DefaultConfig()
			cfg.CacheGrid = grid
			cfg.Workers = workers
			paths, err := ToFaces(ps, faces, squareTool(4), cfg)
			if err != nil {
				t.Fatalf("ToFaces() grid=%v workers=%d: %v", grid, workers, err)
			}
			if baseline == nil {
				baseline = paths
				continue
			}
			if !reflect.DeepEqual(paths, baseline) {
				t.Errorf("grid=%v: result with %d workers differs from single-worker result",
					grid, workers)
			}
		}
	}
}
