// Package layer builds and resolves the per-layer sample matrices.
//
// The Builder feeds scanned filenames through the pattern pipeline and the
// identity extractor and groups the results into a Matrix keyed by dynamics
// level, note index and round robin slot. Resolve then turns a Matrix into
// key and velocity ranges: contiguous midpoint extension by default, exact
// single-key mapping when the layer asks for it, with optional crossfade
// bands between adjacent key ranges.
package layer
