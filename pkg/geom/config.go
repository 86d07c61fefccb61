package geom

// Config carries the numeric tolerances used by all planar operations.
// Tolerances are explicit arguments rather than package globals so that
// independent callers can run concurrently with different settings.
type Config struct {
	// Epsilon is the coincidence tolerance: two points closer than this
	// are treated as the same point, and a point within this distance of
	// a boundary is treated as lying on it. Expressed in working units.
	Epsilon float64

	// MinRingArea is the absolute area below which a ring is considered
	// degenerate and dropped during normalization.
	MinRingArea float64
}

// DefaultConfig returns the tolerances used when the caller has no
// reason to pick others. Epsilon is sized for millimeter work.
func DefaultConfig() Config {
	return Config{
		Epsilon:     1e-6,
		MinRingArea: 1e-6,
	}
}
