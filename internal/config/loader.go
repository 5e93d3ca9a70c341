package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for optional global settings.
const (
	DefaultAttack   = 0.004
	DefaultRelease  = 0.3
	DefaultExponent = 0.6
	DefaultMiddleC  = 60
	DefaultStride   = 1
)

// Load loads and parses an instrument definition from the given path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// applyDefaults fills in default values for optional fields and expands the
// sustain shorthand into the layer list.
func applyDefaults(doc *Document) {
	if doc.Attack == nil {
		doc.Attack = ptr(DefaultAttack)
	}
	if doc.Release == nil {
		doc.Release = ptr(DefaultRelease)
	}
	if doc.Exponent == nil {
		doc.Exponent = ptr(DefaultExponent)
	}
	if doc.MiddleC == nil {
		doc.MiddleC = ptr(DefaultMiddleC)
	}
	if doc.Stride == nil {
		doc.Stride = ptr(DefaultStride)
	}

	if doc.Name == "" {
		doc.Name = "Generated Instrument"
	}

	if doc.Sustain != nil && len(doc.Layers) == 0 {
		doc.Layers = LayerList{{Name: "sustain", Config: *doc.Sustain}}
	}
}

// BaseDocument returns a minimal starting definition, used by the
// create-base command to seed a new instrument.
func BaseDocument() *Document {
	return &Document{
		Output: "Instrument",
		Layers: LayerList{{Name: "sustain", Config: LayerConfig{}}},
	}
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	out, err := yaml.Marshal(baseYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal definition: %w", err)
	}

	return out, nil
}

// baseYAML renders the subset of the document the create-base command emits.
// yaml.Marshal on the full Document would drop layer ordering, so the layer
// list is rebuilt as an explicit mapping node.
func baseYAML(doc *Document) *yaml.Node {
	layers := &yaml.Node{Kind: yaml.MappingNode}
	for _, nl := range doc.Layers {
		layers.Content = append(layers.Content,
			scalarNode(nl.Name),
			&yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
				scalarNode("source"), scalarNode(nl.Config.Source),
				scalarNode("filter"), scalarNode(nl.Config.Filter),
			}},
		)
	}

	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		scalarNode("output"), scalarNode(doc.Output),
		scalarNode("layers"), layers,
	}}
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func ptr[T any](v T) *T {
	return &v
}
