package offset

import (
	"runtime"

	"github.com/chazu/kerf/pkg/geom"
)

// Config carries the tolerances and limits for one offset operation.
type Config struct {
	// Geom holds the shared planar tolerances (coincidence epsilon,
	// degenerate-ring area threshold).
	Geom geom.Config

	// ArcTolerance is the maximum chord deviation allowed when corner
	// fillet arcs are discretized into segments.
	ArcTolerance float64

	// MaxIterations bounds the stitch refinement loop: when resolved
	// segments fail to close into loops at the base tolerance, the
	// snap tolerance is widened this many times before the operation
	// fails with NumericDegeneracy.
	MaxIterations int

	// Workers is the number of goroutines used for per-ring and
	// per-segment work. Zero means GOMAXPROCS. Results are identical
	// for any worker count.
	Workers int
}

// DefaultConfig returns tolerances sized for millimeter work.
func DefaultConfig() Config {
	return Config{
		Geom:          geom.DefaultConfig(),
		ArcTolerance:  0.01,
		MaxIterations: 8,
		Workers:       0,
	}
}

func (c Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
