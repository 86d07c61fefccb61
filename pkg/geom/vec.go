package geom

import "math"

// Vec2 is a planar coordinate in working units (mm).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a scaled by s.
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dot returns the dot product of a and b.
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the Z component of the 3D cross product of a and b.
// Positive when b is counter-clockwise of a.
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Length returns the Euclidean length of a.
func (a Vec2) Length() float64 { return math.Hypot(a.X, a.Y) }

// LengthSq returns the squared length of a.
func (a Vec2) LengthSq() float64 { return a.X*a.X + a.Y*a.Y }

// DistanceTo returns the distance between a and b.
func (a Vec2) DistanceTo(b Vec2) float64 { return a.Sub(b).Length() }

// Unit returns a scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func (a Vec2) Unit() Vec2 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return Vec2{a.X / l, a.Y / l}
}

// Perp returns a rotated 90 degrees clockwise, i.e. the right-hand
// normal of a direction vector. For a counter-clockwise ring this is the
// outward edge normal.
func (a Vec2) Perp() Vec2 { return Vec2{a.Y, -a.X} }

// Coincident reports whether a and b are the same point within eps.
func (a Vec2) Coincident(b Vec2, eps float64) bool {
	return a.Sub(b).LengthSq() <= eps*eps
}

// Vec3 is a spatial coordinate in working units (mm).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a scaled by s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Length returns the Euclidean length of a.
func (a Vec3) Length() float64 { return math.Sqrt(a.Dot(a)) }

// DistanceTo returns the distance between a and b.
func (a Vec3) DistanceTo(b Vec3) float64 { return a.Sub(b).Length() }

// Unit returns a scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func (a Vec3) Unit() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}
