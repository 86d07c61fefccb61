// Package sdfface adapts a signed distance field solid from
// github.com/deadsy/sdfx into a lift.Face. The top surface of the
// solid is recovered by casting a ray straight down and bisecting the
// sign change of the distance field.
package sdfface

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/lift"
)

// Compile-time interface check.
var _ lift.Face = (*Face)(nil)

// bisectIterations fixes the ray-cast precision at roughly 2^-48 of
// the initial step, far below any machining tolerance.
const bisectIterations = 48

// Face exposes the upward-facing surface of an SDF solid.
type Face struct {
	s   sdf.SDF3
	res float64
	min v3.Vec
	max v3.Vec
}

// New wraps a solid. resolution is the vertical marching step used to
// find the surface before bisection; it must be smaller than the
// thinnest feature of the solid's top surface.
func New(s sdf.SDF3, resolution float64) *Face {
	bb := s.BoundingBox()
	return &Face{s: s, res: resolution, min: bb.Min, max: bb.Max}
}

// Contains reports whether p lies on the solid's surface within tol.
func (f *Face) Contains(p geom.Vec3, tol float64) bool {
	return math.Abs(f.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})) <= tol
}

// Bounds returns the XY footprint of the solid's bounding box.
func (f *Face) Bounds() (min, max geom.Vec2) {
	return geom.Vec2{X: f.min.X, Y: f.min.Y}, geom.Vec2{X: f.max.X, Y: f.max.Y}
}

// Evaluate finds the highest surface point above (x, y). ok is false
// when the vertical ray misses the solid entirely.
func (f *Face) Evaluate(x, y float64) (pos, normal geom.Vec3, ok bool) {
	if x < f.min.X || x > f.max.X || y < f.min.Y || y > f.max.Y {
		return geom.Vec3{}, geom.Vec3{}, false
	}

	// March down from above the bounding box until the field goes
	// non-positive, then bisect the crossing.
	top := f.max.Z + f.res
	bottom := f.min.Z - f.res
	prev := top
	z := top
	found := false
	for z > bottom {
		z -= f.res
		if f.s.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0 {
			found = true
			break
		}
		prev = z
	}
	if !found {
		return geom.Vec3{}, geom.Vec3{}, false
	}

	lo, hi := z, prev
	for i := 0; i < bisectIterations; i++ {
		mid := (lo + hi) / 2
		if f.s.Evaluate(v3.Vec{X: x, Y: y, Z: mid}) <= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	surface := (lo + hi) / 2

	return geom.Vec3{X: x, Y: y, Z: surface}, f.gradient(x, y, surface), true
}

// gradient estimates the outward unit normal from central differences
// of the distance field.
func (f *Face) gradient(x, y, z float64) geom.Vec3 {
	h := f.res / 16
	p := v3.Vec{X: x, Y: y, Z: z}
	n := geom.Vec3{
		X: f.s.Evaluate(v3.Vec{X: p.X + h, Y: p.Y, Z: p.Z}) - f.s.Evaluate(v3.Vec{X: p.X - h, Y: p.Y, Z: p.Z}),
		Y: f.s.Evaluate(v3.Vec{X: p.X, Y: p.Y + h, Z: p.Z}) - f.s.Evaluate(v3.Vec{X: p.X, Y: p.Y - h, Z: p.Z}),
		Z: f.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z + h}) - f.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z - h}),
	}
	if n.Length() < math.SmallestNonzeroFloat64 {
		return geom.Vec3{Z: 1}
	}
	return n.Unit()
}
