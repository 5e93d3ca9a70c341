// Package config provides the YAML schema, parsing, validation, and settings
// resolution for instrument definition documents.
//
// A document carries global settings plus a set of named layers. Layer values
// merge with the globals under fixed per-field rules:
//
//   - additive: volume, octave, transpose (layer value added to global)
//   - replace: attack, release, min, max, middleC, stride, exponent, split
//     (layer value wins when present)
//   - global-wins: crossfade, unpitched, invertDynamics, exact (layer values
//     are parsed but have no effect); skipAnalysis is the one switch a layer
//     may turn on when the global leaves it off
//
// Resolution produces one immutable Effective record per layer; nothing
// downstream reads the raw document again.
package config
