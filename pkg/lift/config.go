package lift

// Config controls sampling density and the probe cache. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	// ChordTolerance is the maximum deviation between the lifted
	// surface and the straight chord connecting adjacent samples.
	// Segments are subdivided until the midpoint falls within it.
	ChordTolerance float64

	// SampleDistance is the maximum spacing between samples along the
	// planar path before refinement.
	SampleDistance float64

	// CacheGrid, when positive, quantizes probe positions to a square
	// grid of this pitch so nearby samples share one surface query.
	// It bounds the positional error of a probe by CacheGrid/sqrt(2).
	// Zero disables the cache.
	CacheGrid float64

	// Epsilon is the coordinate coincidence tolerance.
	Epsilon float64

	// MaxRefine bounds the subdivision depth per segment.
	MaxRefine int

	// Workers is the number of goroutines used for sampling.
	// Zero means GOMAXPROCS. Output does not depend on it.
	Workers int
}

// DefaultConfig returns sampling parameters suited to millimeter-scale
// stock.
func DefaultConfig() Config {
	return Config{
		ChordTolerance: 0.05,
		SampleDistance: 1.0,
		CacheGrid:      0.1,
		Epsilon:        1e-6,
		MaxRefine:      6,
		Workers:        0,
	}
}
