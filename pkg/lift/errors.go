package lift

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
)

// NoFaceUnderPathError reports a path sample whose tool footprint does
// not overlap any face. The caller decides what height, if any, to
// substitute.
type NoFaceUnderPathError struct {
	At geom.Vec2
}

func (e *NoFaceUnderPathError) Error() string {
	return fmt.Sprintf("lift: no face under path at (%g, %g)", e.At.X, e.At.Y)
}
