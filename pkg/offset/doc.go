// Package offset grows or shrinks a normalized polygon set by a signed
// perpendicular distance, with full topology handling: islands that
// collide merge into one boundary, holes that close vanish, and
// boundaries that collapse are dropped and reported.
//
// The engine works in three stages. First every ring is given a raw
// per-edge offset: edges translate along their outward normals, corners
// that open a gap receive a discretized circular-arc fillet of the
// offset radius, and corners whose offset edges overlap are trimmed at
// the offset-line intersection. Second, all raw segments are split at
// every pairwise crossing and each piece is kept only if its midpoint
// lies at the full offset distance from the source boundary on the
// correct side of the material. Third, the surviving pieces are
// stitched back into simple closed loops and re-classified into outer
// boundaries and holes. The keep-or-drop test is what makes the engine
// robust: inverted spikes at trimmed corners, vanishing holes, and the
// interior walls between merging islands all fail it for the same
// reason, so no case-by-case topology repair is needed.
package offset
