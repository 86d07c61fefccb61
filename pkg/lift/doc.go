// Package lift projects planar toolpaths onto 3D faces, producing
// paths a square end mill can follow without gouging. The tool bottom
// at each sample sits on the highest surface point anywhere under the
// tool footprint, so the path rises a full tool radius before a step
// edge instead of at it.
//
// Faces are indexed in an R-tree so each sample only probes the faces
// whose footprint overlaps the tool disc. Probe heights are optionally
// cached on a fixed grid; because a cached value depends only on its
// grid cell, output is identical whether a probe hits the cache or
// recomputes it, and sampling parallelizes freely.
package lift
