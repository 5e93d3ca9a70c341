package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_MalformedRegex(t *testing.T) {
	_, err := Compile(RuleSpec{Filter: "("})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter")

	_, err = Compile(RuleSpec{Subs: []SubSpec{{From: "ok", To: "x"}, {From: "[", To: "y"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sub pattern 1")

	_, err = Compile(RuleSpec{Split: "(?P<"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")
}

func TestChain_FilterRejects(t *testing.T) {
	global, err := Compile(RuleSpec{Filter: `piano`})
	require.NoError(t, err)

	chain := Chain{Global: global}

	_, ok := chain.Apply("Violin_C4")
	assert.False(t, ok)

	chunks, ok := chain.Apply("piano_C4")
	require.True(t, ok)
	assert.Equal(t, []string{"piano_c4"}, chunks)
}

func TestChain_LayerFilterAfterGlobal(t *testing.T) {
	global, err := Compile(RuleSpec{Filter: `piano`})
	require.NoError(t, err)
	local, err := Compile(RuleSpec{Filter: `soft`})
	require.NoError(t, err)

	chain := Chain{Global: global, Layer: local}

	// Accepted globally but rejected by the layer.
	_, ok := chain.Apply("piano_loud_C4")
	assert.False(t, ok)

	// The layer filter alone is not enough.
	_, ok = chain.Apply("organ_soft_C4")
	assert.False(t, ok)

	_, ok = chain.Apply("piano_soft_C4")
	assert.True(t, ok)
}

func TestChain_SubsApplyInOrder(t *testing.T) {
	global, err := Compile(RuleSpec{
		Subs:  []SubSpec{{From: `Grand`, To: "g"}, {From: `g_`, To: ""}},
		Split: "_",
	})
	require.NoError(t, err)

	chunks, ok := Chain{Global: global}.Apply("Grand_C4")
	require.True(t, ok)
	// "Grand_C4" -> "g_C4" -> "C4": the second sub sees the first's output.
	assert.Equal(t, []string{"c4"}, chunks)
}

func TestChain_LayerSubsAfterGlobalSubs(t *testing.T) {
	global, err := Compile(RuleSpec{Subs: []SubSpec{{From: `-`, To: "_"}}, Split: "_"})
	require.NoError(t, err)
	local, err := Compile(RuleSpec{Subs: []SubSpec{{From: `_take\d+`, To: ""}}})
	require.NoError(t, err)

	chunks, ok := Chain{Global: global, Layer: local}.Apply("c4-take12-ff")
	require.True(t, ok)
	assert.Equal(t, []string{"c4", "ff"}, chunks)
}

func TestChain_SplitLayerOverridesGlobal(t *testing.T) {
	global, err := Compile(RuleSpec{Split: "_"})
	require.NoError(t, err)
	local, err := Compile(RuleSpec{Split: "-"})
	require.NoError(t, err)

	chunks, ok := Chain{Global: global, Layer: local}.Apply("c4-ff_x")
	require.True(t, ok)
	assert.Equal(t, []string{"c4", "ff_x"}, chunks)
}

func TestChain_MapIsCaseInsensitive(t *testing.T) {
	global, err := Compile(RuleSpec{
		Split: "_",
		Map:   map[string]string{"Middle": "c5", "LOUD": "ff"},
	})
	require.NoError(t, err)

	chunks, ok := Chain{Global: global}.Apply("MIDDLE_loud_rr1")
	require.True(t, ok)
	assert.Equal(t, []string{"c5", "ff", "rr1"}, chunks)
}

func TestChain_LayerMapAfterGlobalMap(t *testing.T) {
	global, err := Compile(RuleSpec{Split: "_", Map: map[string]string{"soft": "v1"}})
	require.NoError(t, err)
	local, err := Compile(RuleSpec{Map: map[string]string{"v1": "v2"}})
	require.NoError(t, err)

	chunks, ok := Chain{Global: global, Layer: local}.Apply("c4_soft")
	require.True(t, ok)
	// The layer map sees the globally mapped value.
	assert.Equal(t, []string{"c4", "v2"}, chunks)
}

func TestChain_DefaultSplitIsSpace(t *testing.T) {
	chunks, ok := Chain{}.Apply("c4 ff rr2")
	require.True(t, ok)
	assert.Equal(t, []string{"c4", "ff", "rr2"}, chunks)
}

func TestChain_NilRuleSetsAcceptEverything(t *testing.T) {
	chunks, ok := Chain{}.Apply("anything")
	require.True(t, ok)
	assert.Equal(t, []string{"anything"}, chunks)
}
