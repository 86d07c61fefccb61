package geom

import "fmt"

// MalformedGeometryError reports input topology the normalizer could not
// resolve: ambiguous hole containment, partially overlapping rings, or
// an input with no usable rings. Rings holds the offending indices into
// the caller's input slice so the host can highlight them.
type MalformedGeometryError struct {
	Rings  []int
	Reason string
}

func (e *MalformedGeometryError) Error() string {
	if len(e.Rings) == 0 {
		return fmt.Sprintf("malformed geometry: %s", e.Reason)
	}
	return fmt.Sprintf("malformed geometry: %s (rings %v)", e.Reason, e.Rings)
}
