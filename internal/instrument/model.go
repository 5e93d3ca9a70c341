// Package instrument aggregates resolved layers, knob controls and global
// envelope metadata into the final instrument model handed to the
// serializer.
package instrument

import (
	"gopkg.in/yaml.v3"

	"sfz-generator/internal/config"
	"sfz-generator/internal/layer"
)

// Controller numbers used by the generated instrument.
const (
	// CCRelease and CCAttack drive the global envelope knobs.
	CCRelease = 72
	CCAttack  = 73
	// CCReleaseVolume drives the release layer gain knob.
	CCReleaseVolume = 205
	// CCLayerBase is the first controller assigned to per-layer knobs.
	CCLayerBase = 301
)

// Envelope is the global amp envelope, in seconds.
type Envelope struct {
	Attack  float64
	Release float64
}

// Knob describes one user-facing control of the generated instrument.
type Knob struct {
	// CC is the MIDI controller number bound to the knob.
	CC int
	// Label shown by the sampler.
	Label string
	// Value is the default controller value, 0-127.
	Value int
}

// Model is the finished instrument mapping. It is created once per run and
// consumed only by the serializer.
type Model struct {
	// Name of the instrument, used in decoration.
	Name string
	// Output is the target file name without extension.
	Output string
	// Comment is the user's comment tree, nil when absent.
	Comment *yaml.Node

	Envelope Envelope

	// Knobs reports whether the global knob controls (attack, release,
	// release volume) are enabled.
	Knobs bool

	// Layers in document order, empty layers omitted.
	Layers []*layer.Resolved

	// Controls are the per-layer volume knobs, in layer order.
	Controls []Knob
}

// Assemble combines the resolved layers with the document's global metadata.
// Pure aggregation: every range and band is already final. Per-layer knob
// controllers are assigned here, one per knob-enabled layer, counting up
// from CCLayerBase in layer order.
func Assemble(doc *config.Document, layers []*layer.Resolved) *Model {
	m := &Model{
		Name:    doc.Name,
		Output:  doc.Output,
		Comment: doc.Comment,
		Envelope: Envelope{
			Attack:  *doc.Attack,
			Release: *doc.Release,
		},
		Knobs:  doc.Knobs,
		Layers: layers,
	}

	for i, l := range layers {
		if !l.Settings.Knob {
			continue
		}

		cc := CCLayerBase + i
		l.KnobCC = cc
		m.Controls = append(m.Controls, Knob{
			CC:    cc,
			Label: l.Settings.Name,
			Value: l.Settings.KnobValue,
		})
	}

	return m
}

// HasReleases reports whether any layer triggers on release.
func (m *Model) HasReleases() bool {
	for _, l := range m.Layers {
		if l.Settings.IsRelease {
			return true
		}
	}

	return false
}
