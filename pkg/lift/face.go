package lift

import "github.com/chazu/kerf/pkg/geom"

// Face is a height-field surface patch. Implementations must be safe
// for concurrent Evaluate calls.
type Face interface {
	// Evaluate returns the surface point and unit outward normal above
	// (x, y). ok is false when (x, y) lies outside the face footprint.
	Evaluate(x, y float64) (pos, normal geom.Vec3, ok bool)

	// Contains reports whether p lies on the face surface within tol.
	Contains(p geom.Vec3, tol float64) bool

	// Bounds is the axis-aligned XY footprint of the face.
	Bounds() (min, max geom.Vec2)
}
