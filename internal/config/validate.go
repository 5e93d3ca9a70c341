package config

import (
	"fmt"

	"sfz-generator/internal/diagnostic"
)

// Validate performs structural validation of a parsed document. It checks
// everything that can fail independently of the file system, so a bad
// definition aborts the run before any directory is scanned.
func Validate(doc *Document) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if doc == nil {
		res.AddError("document_is_nil", "definition document is nil", "", "")
		return res
	}

	if doc.Output == "" {
		res.AddError("missing_output", "definition has no output name", "", "")
	}

	if len(doc.Layers) == 0 {
		res.AddError("no_layers", "definition declares no layers (use layers: or sustain:)", "", "")
	}

	if doc.Sustain != nil && len(doc.Layers) > 1 {
		res.AddWarning("sustain_ignored", "both sustain: and layers: present; sustain shorthand ignored", "", "")
	}

	validateNumbers(res, "", doc.Stride, doc.Exponent, doc.Min, doc.Max)

	seen := map[string]struct{}{}

	for i := range doc.Layers {
		name := doc.Layers[i].Name
		layer := &doc.Layers[i].Config

		if _, ok := seen[name]; ok {
			res.AddError("duplicate_layer", fmt.Sprintf("duplicate layer %q", name), name, "")
			continue
		}
		seen[name] = struct{}{}

		if layer.Source == "" {
			res.AddError("missing_source", "layer has no source folder", name, "")
		}

		validateNumbers(res, name, layer.Stride, layer.Exponent, layer.Min, layer.Max)

		if layer.KnobPercent != nil && (*layer.KnobPercent < 0 || *layer.KnobPercent > 100) {
			res.AddError("knob_percent_range",
				fmt.Sprintf("knobPercent must be 0-100, got %d", *layer.KnobPercent), name, "")
		}

		if layer.OneKey && layer.Min != nil {
			res.AddWarning("onekey_range", "min/max have no effect on a onekey layer", name, "")
		}
	}

	return res
}

func validateNumbers(res *diagnostic.Diagnostics, layer string, stride *int, exponent *float64, min, max *int) {
	if stride != nil && *stride < 1 {
		res.AddError("invalid_stride", fmt.Sprintf("stride must be at least 1, got %d", *stride), layer, "")
	}

	if exponent != nil && *exponent <= 0 {
		res.AddError("invalid_exponent", fmt.Sprintf("exponent must be positive, got %g", *exponent), layer, "")
	}

	if min != nil && max != nil && *min > *max {
		res.AddError("min_above_max", fmt.Sprintf("min %d exceeds max %d", *min, *max), layer, "")
	}
}
