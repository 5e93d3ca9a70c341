// Package pattern implements the filename editing pipeline that turns raw
// sound file names into identity chunks.
//
// A rule set has four stages, applied in order:
//   - filter: a regex that must match somewhere in the name, or the file is
//     rejected
//   - sub: an ordered list of from/to regex substitutions over the whole name
//   - split: a regex delimiter breaking the name into chunks
//   - map: a case-insensitive dictionary replacing whole chunks
//
// Two rule sets combine into a Chain: the global set always runs before the
// layer set, so a layer filter restricts the globally accepted files and layer
// substitutions see the globally substituted string.
package pattern
