package config

import (
	"fmt"

	"sfz-generator/internal/pattern"
)

// Effective is the fully resolved settings record for one layer. It is
// immutable after resolution; every later stage reads from it and nothing
// reads the raw document again.
type Effective struct {
	Name   string
	Source string

	Volume   float64
	Attack   float64
	Release  float64
	Exponent float64

	Min *int
	Max *int

	MiddleC   int
	Stride    int
	Octave    int
	Transpose int

	Crossfade      bool
	Unpitched      bool
	InvertDynamics bool
	Exact          bool
	SkipAnalysis   bool

	IsRelease     bool
	AlwaysRelease bool
	OneKey        bool

	Knob      bool
	KnobValue int // MIDI CC value 0-127
}

// ResolveSettings merges a layer configuration against the document's global
// settings. The merge rules are fixed per field category; see the package doc.
func ResolveSettings(doc *Document, name string, layer *LayerConfig) (Effective, error) {
	eff := Effective{
		Name:   name,
		Source: layer.Source,

		// Additive fields.
		Volume:    doc.Volume + layer.Volume,
		Octave:    doc.Octave + layer.Octave,
		Transpose: doc.Transpose + layer.Transpose,

		// Replace fields.
		Attack:   orDefault(layer.Attack, *doc.Attack),
		Release:  orDefault(layer.Release, *doc.Release),
		Exponent: orDefault(layer.Exponent, *doc.Exponent),
		MiddleC:  orDefault(layer.MiddleC, *doc.MiddleC),
		Stride:   orDefault(layer.Stride, *doc.Stride),
		Min:      orPtr(layer.Min, doc.Min),
		Max:      orPtr(layer.Max, doc.Max),

		// Global-wins switches. skipAnalysis is the one switch with a
		// documented per-layer meaning, so a layer may enable it when
		// the global leaves it off.
		Crossfade:      doc.Crossfade,
		Unpitched:      doc.Unpitched,
		InvertDynamics: doc.InvertDynamics,
		Exact:          doc.Exact,
		SkipAnalysis:   doc.SkipAnalysis || layer.SkipAnalysis,

		IsRelease:     layer.IsRelease || name == "release",
		AlwaysRelease: layer.AlwaysRelease,
		OneKey:        layer.OneKey,

		// Knob creation needs the global opt-in and the layer opt-in.
		Knob:      doc.Knobs && layer.Knob,
		KnobValue: 127,
	}

	if layer.KnobPercent != nil {
		eff.KnobValue = *layer.KnobPercent * 127 / 100
	}

	if eff.Stride < 1 {
		return Effective{}, fmt.Errorf("layer %q: stride must be at least 1, got %d", name, eff.Stride)
	}
	if eff.Exponent <= 0 {
		return Effective{}, fmt.Errorf("layer %q: exponent must be positive, got %g", name, eff.Exponent)
	}
	if eff.Min != nil && eff.Max != nil && *eff.Min > *eff.Max {
		return Effective{}, fmt.Errorf("layer %q: min %d exceeds max %d", name, *eff.Min, *eff.Max)
	}

	return eff, nil
}

// CompileChain compiles the document's global rules and a layer's local rules
// into a pattern chain. Pattern errors here are configuration errors and
// abort the run before any file is read.
func (doc *Document) CompileChain(name string, layer *LayerConfig) (pattern.Chain, error) {
	global, err := pattern.Compile(doc.Rules.Spec())
	if err != nil {
		return pattern.Chain{}, fmt.Errorf("global rules: %w", err)
	}

	local, err := pattern.Compile(layer.Rules.Spec())
	if err != nil {
		return pattern.Chain{}, fmt.Errorf("layer %q rules: %w", name, err)
	}

	return pattern.Chain{Global: global, Layer: local}, nil
}

// Spec converts the YAML rules into the pattern package's uncompiled form.
func (r Rules) Spec() pattern.RuleSpec {
	spec := pattern.RuleSpec{
		Filter: r.Filter,
		Split:  r.Split,
		Map:    r.Map,
	}

	for _, sub := range r.Sub {
		spec.Subs = append(spec.Subs, pattern.SubSpec{From: sub.From, To: sub.To})
	}

	return spec
}

func orDefault[T any](v *T, def T) T {
	if v != nil {
		return *v
	}

	return def
}

func orPtr[T any](v, def *T) *T {
	if v != nil {
		return v
	}

	return def
}
