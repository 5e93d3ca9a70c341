package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(t *testing.T, yml string) *Document {
	t.Helper()

	doc, err := Parse([]byte(yml))
	require.NoError(t, err)

	return doc
}

func TestResolveSettings_AdditiveFields(t *testing.T) {
	doc := testDoc(t, `
output: X
volume: -3
octave: 1
transpose: 2
layers:
  a:
    source: ./a
    volume: -1.5
    octave: -1
    transpose: 1
  b:
    source: ./b
`)

	a, err := ResolveSettings(doc, "a", &doc.Layers[0].Config)
	require.NoError(t, err)
	assert.Equal(t, -4.5, a.Volume)
	assert.Equal(t, 0, a.Octave)
	assert.Equal(t, 3, a.Transpose)

	// Absent layer values contribute zero.
	b, err := ResolveSettings(doc, "b", &doc.Layers[1].Config)
	require.NoError(t, err)
	assert.Equal(t, -3.0, b.Volume)
	assert.Equal(t, 1, b.Octave)
	assert.Equal(t, 2, b.Transpose)
}

func TestResolveSettings_ReplaceFields(t *testing.T) {
	doc := testDoc(t, `
output: X
attack: 0.01
release: 0.5
exponent: 0.8
min: 21
max: 108
middleC: 48
stride: 3
layers:
  a:
    source: ./a
    attack: 0.002
    min: 36
    stride: 1
  b:
    source: ./b
`)

	a, err := ResolveSettings(doc, "a", &doc.Layers[0].Config)
	require.NoError(t, err)
	assert.Equal(t, 0.002, a.Attack)
	assert.Equal(t, 0.5, a.Release)
	require.NotNil(t, a.Min)
	assert.Equal(t, 36, *a.Min)
	assert.Equal(t, 1, a.Stride)
	assert.Equal(t, 48, a.MiddleC)

	b, err := ResolveSettings(doc, "b", &doc.Layers[1].Config)
	require.NoError(t, err)
	assert.Equal(t, 0.01, b.Attack)
	require.NotNil(t, b.Min)
	assert.Equal(t, 21, *b.Min)
	assert.Equal(t, 3, b.Stride)
}

func TestResolveSettings_GlobalWinsSwitches(t *testing.T) {
	doc := testDoc(t, `
output: X
crossfade: true
layers:
  a:
    source: ./a
    exact: true
    unpitched: true
`)

	a, err := ResolveSettings(doc, "a", &doc.Layers[0].Config)
	require.NoError(t, err)

	assert.True(t, a.Crossfade)
	// Layer-level values of the global-only switches have no effect.
	assert.False(t, a.Exact)
	assert.False(t, a.Unpitched)
}

func TestResolveSettings_SkipAnalysisIsLayerOrable(t *testing.T) {
	doc := testDoc(t, `
output: X
layers:
  a:
    source: ./a
    skipAnalysis: true
  b:
    source: ./b
`)

	a, err := ResolveSettings(doc, "a", &doc.Layers[0].Config)
	require.NoError(t, err)
	assert.True(t, a.SkipAnalysis)

	b, err := ResolveSettings(doc, "b", &doc.Layers[1].Config)
	require.NoError(t, err)
	assert.False(t, b.SkipAnalysis)
}

func TestResolveSettings_ReleaseByNameOrFlag(t *testing.T) {
	doc := testDoc(t, `
output: X
layers:
  release:
    source: ./r
  tail:
    source: ./t
    isRelease: true
  sustain:
    source: ./s
`)

	for i, want := range []bool{true, true, false} {
		eff, err := ResolveSettings(doc, doc.Layers[i].Name, &doc.Layers[i].Config)
		require.NoError(t, err)
		assert.Equal(t, want, eff.IsRelease, "layer %s", doc.Layers[i].Name)
	}
}

func TestResolveSettings_KnobNeedsGlobalOptIn(t *testing.T) {
	withKnobs := testDoc(t, `
output: X
knobs: true
layers:
  a:
    source: ./a
    knob: true
    knobPercent: 50
  b:
    source: ./b
`)

	a, err := ResolveSettings(withKnobs, "a", &withKnobs.Layers[0].Config)
	require.NoError(t, err)
	assert.True(t, a.Knob)
	assert.Equal(t, 63, a.KnobValue) // 50 * 127 / 100

	b, err := ResolveSettings(withKnobs, "b", &withKnobs.Layers[1].Config)
	require.NoError(t, err)
	assert.False(t, b.Knob)
	assert.Equal(t, 127, b.KnobValue)

	without := testDoc(t, `
output: X
layers:
  a:
    source: ./a
    knob: true
`)

	a, err = ResolveSettings(without, "a", &without.Layers[0].Config)
	require.NoError(t, err)
	assert.False(t, a.Knob)
}

func TestResolveSettings_InvalidEffectiveValues(t *testing.T) {
	doc := testDoc(t, `
output: X
min: 60
layers:
  a:
    source: ./a
    max: 40
`)

	_, err := ResolveSettings(doc, "a", &doc.Layers[0].Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min 60 exceeds max 40")
}

func TestCompileChain_BadLayerRegex(t *testing.T) {
	doc := testDoc(t, `
output: X
layers:
  a:
    source: ./a
    filter: "("
`)

	_, err := doc.CompileChain("a", &doc.Layers[0].Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `layer "a"`)
}
