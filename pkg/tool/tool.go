// Package tool describes the cutting tool consumed by the offset,
// carve, and lift operations. Only square end mills are supported; the
// shape tag exists so future profiles can be added without breaking
// callers.
package tool

import "fmt"

// Shape identifies the cutter geometry.
type Shape int

const (
	// Square is a flat-bottomed end mill.
	Square Shape = iota
)

func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Profile is the immutable tool configuration.
type Profile struct {
	Shape    Shape
	Diameter float64 // working units (mm)
}

// Radius returns half the tool diameter.
func (p Profile) Radius() float64 { return p.Diameter / 2 }

// Validate checks that the profile can be machined with. It fails with
// *UnsupportedShapeError for any shape other than Square, before any
// geometry work is attempted.
func (p Profile) Validate() error {
	if p.Shape != Square {
		return &UnsupportedShapeError{Shape: p.Shape}
	}
	if p.Diameter <= 0 {
		return fmt.Errorf("tool diameter %.4f, must be positive", p.Diameter)
	}
	return nil
}

// UnsupportedShapeError reports a tool geometry the library cannot cut
// with yet.
type UnsupportedShapeError struct {
	Shape Shape
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported tool geometry %q: only square end mills are supported", e.Shape)
}
