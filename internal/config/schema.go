package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document represents the root of a YAML instrument definition.
type Document struct {
	// Output is the output file name, without the .sfz extension.
	Output string `yaml:"output,omitempty"`

	// Name is the human-readable instrument name used in decoration.
	Name string `yaml:"name,omitempty"`

	// Comment is an arbitrary tree of values rendered as comments into the
	// generated file. Kept as a raw node to preserve document order.
	Comment *yaml.Node `yaml:"comment,omitempty"`

	// Volume in dB, added to every layer's volume.
	Volume float64 `yaml:"volume,omitempty"`

	// Attack is the default amp envelope attack in seconds.
	Attack *float64 `yaml:"attack,omitempty"`
	// Release is the default amp envelope release in seconds.
	Release *float64 `yaml:"release,omitempty"`

	// Exponent shapes the distribution of velocity boundaries between
	// dynamics levels. 1 distributes evenly.
	Exponent *float64 `yaml:"exponent,omitempty"`

	// Min and Max bound the usable note index range. Notes outside are
	// ignored. No default.
	Min *int `yaml:"min,omitempty"`
	Max *int `yaml:"max,omitempty"`

	// Octave shifts all note indices by whole octaves.
	Octave int `yaml:"octave,omitempty"`
	// Transpose shifts all note indices by semitones.
	Transpose int `yaml:"transpose,omitempty"`

	// MiddleC is the index assigned to middle C for numbered naming
	// schemes. Default 60.
	MiddleC *int `yaml:"middleC,omitempty"`
	// Stride is the index step between numbered samples. Default 1.
	Stride *int `yaml:"stride,omitempty"`

	// Crossfade blends adjacent key ranges instead of hard-switching.
	Crossfade bool `yaml:"crossfade,omitempty"`
	// Unpitched disables pitch tracking across a sample's key range.
	Unpitched bool `yaml:"unpitched,omitempty"`
	// InvertDynamics reverses the discovered dynamics order.
	InvertDynamics bool `yaml:"invertDynamics,omitempty"`
	// Exact disables key range extension, leaving gaps unmapped.
	Exact bool `yaml:"exact,omitempty"`
	// SkipAnalysis disables soundwave analysis for all layers.
	SkipAnalysis bool `yaml:"skipAnalysis,omitempty"`

	// Knobs enables the Attack/Release/Release Volume controls and allows
	// per-layer volume knobs.
	Knobs bool `yaml:"knobs,omitempty"`

	// Rules are the global filename editing rules, applied before any
	// layer rules.
	Rules `yaml:",inline"`

	// Sustain is a shorthand for a single layer named "sustain"; mutually
	// exclusive with Layers.
	Sustain *LayerConfig `yaml:"sustain,omitempty"`

	// Layers maps layer names to their configurations, in document order.
	Layers LayerList `yaml:"layers,omitempty"`
}

// LayerConfig describes one layer of an instrument. All numeric fields are
// optional overrides of the global settings; see the package doc for the
// merge rules.
type LayerConfig struct {
	// Source is the path to the folder holding this layer's sound files.
	Source string `yaml:"source"`

	Volume    float64 `yaml:"volume,omitempty"`
	Octave    int     `yaml:"octave,omitempty"`
	Transpose int     `yaml:"transpose,omitempty"`

	Attack   *float64 `yaml:"attack,omitempty"`
	Release  *float64 `yaml:"release,omitempty"`
	Exponent *float64 `yaml:"exponent,omitempty"`
	Min      *int     `yaml:"min,omitempty"`
	Max      *int     `yaml:"max,omitempty"`
	MiddleC  *int     `yaml:"middleC,omitempty"`
	Stride   *int     `yaml:"stride,omitempty"`

	// These switches are accepted for document compatibility but the
	// global value governs; only SkipAnalysis may be enabled per layer.
	Crossfade      bool `yaml:"crossfade,omitempty"`
	Unpitched      bool `yaml:"unpitched,omitempty"`
	InvertDynamics bool `yaml:"invertDynamics,omitempty"`
	Exact          bool `yaml:"exact,omitempty"`
	SkipAnalysis   bool `yaml:"skipAnalysis,omitempty"`

	// IsRelease marks a release-trigger layer. A layer named "release" is
	// treated the same way.
	IsRelease bool `yaml:"isRelease,omitempty"`
	// AlwaysRelease triggers on note-up regardless of the sustain pedal.
	AlwaysRelease bool `yaml:"alwaysRelease,omitempty"`

	// OneKey declares a layer with a single note; files need no
	// identifiable index and unparsed names become round robins.
	OneKey bool `yaml:"onekey,omitempty"`

	// Knob creates a volume knob for the layer, labeled by layer name.
	Knob bool `yaml:"knob,omitempty"`
	// KnobPercent is the knob's default value, 0-100.
	KnobPercent *int `yaml:"knobPercent,omitempty"`

	// Rules are layer-local filename editing rules, applied after the
	// global rules.
	Rules `yaml:",inline"`
}

// SubRule is one from/to substitution in a rule set.
type SubRule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Rules holds the uncompiled filename editing rules of a document or layer.
type Rules struct {
	// Filter: only names matching this regex (anywhere) are processed.
	Filter string `yaml:"filter,omitempty"`
	// Sub: ordered regex substitutions applied to the whole name.
	Sub []SubRule `yaml:"sub,omitempty"`
	// Split: regex delimiter breaking the name into chunks.
	Split string `yaml:"split,omitempty"`
	// Map: case-insensitive chunk replacement dictionary.
	Map map[string]string `yaml:"map,omitempty"`
}

// NamedLayer pairs a layer name with its configuration.
type NamedLayer struct {
	Name   string
	Config LayerConfig
}

// LayerList is an ordered list of named layers. YAML mappings lose their
// order through map decoding, and layer order decides knob CC assignment and
// output order, so the list unmarshals the mapping node directly.
type LayerList []NamedLayer

// UnmarshalYAML decodes a YAML mapping into an ordered layer list.
func (l *LayerList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("layers must be a mapping, got %s at line %d", kindName(value.Kind), value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		var name string
		if err := value.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("decoding layer name: %w", err)
		}

		var cfg LayerConfig
		if err := value.Content[i+1].Decode(&cfg); err != nil {
			return fmt.Errorf("decoding layer %q: %w", name, err)
		}

		*l = append(*l, NamedLayer{Name: name, Config: cfg})
	}

	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}
