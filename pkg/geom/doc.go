// Package geom defines the planar geometry types shared by the kerf
// toolpath operations: vectors, rings, polygon sets, and the normalizer
// that turns raw sketch rings into a consistently wound outer/hole
// partition. All tolerances are explicit per-call configuration; the
// package holds no global state and every operation returns new values
// rather than mutating its inputs.
package geom
