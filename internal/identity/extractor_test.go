package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfz-generator/internal/config"
)

func defaults() config.Effective {
	return config.Effective{
		MiddleC: config.DefaultMiddleC,
		Stride:  config.DefaultStride,
	}
}

func TestParseNoteName(t *testing.T) {
	cases := []struct {
		chunk string
		note  int
	}{
		{"c5", 60},
		{"c0", 0},
		{"a4", 57},
		{"a#3", 46},
		{"bb3", 46},
		{"eb2", 27},
		{"g9", 115},
		{"c-1", -12},
	}

	for _, c := range cases {
		n, ok := parseNoteName(c.chunk)
		require.True(t, ok, c.chunk)
		assert.Equal(t, c.note, n, c.chunk)
	}

	for _, chunk := range []string{"h4", "c", "4", "c#", "cis4", "rr1"} {
		_, ok := parseNoteName(chunk)
		assert.False(t, ok, chunk)
	}
}

func TestDynamicValue_Ordering(t *testing.T) {
	soft2loud := []string{"ppp", "pp", "p", "mp", "mf", "f", "ff", "fff"}

	prev := dynamicValue(soft2loud[0])
	for _, chunk := range soft2loud[1:] {
		cur := dynamicValue(chunk)
		assert.Greater(t, cur, prev, chunk)
		prev = cur
	}
}

func TestDynamicValue_Numbered(t *testing.T) {
	assert.Equal(t, 1, dynamicValue("v1"))
	assert.Equal(t, 3, dynamicValue("vl3"))
	assert.Equal(t, 2, dynamicValue("vel2"))
	assert.Equal(t, 7, dynamicValue("l7"))
}

func TestExtract_NoteName(t *testing.T) {
	id, status := Extract([]string{"piano", "a#3", "vel1", "rr2"}, defaults())

	require.Equal(t, StatusIdentified, status)
	assert.Equal(t, 46, id.Note)
	assert.True(t, id.HasNote)
	assert.Equal(t, 1, id.Dynamic)
	assert.True(t, id.HasDynamic)
	assert.Equal(t, 2, id.RoundRobin)
	assert.True(t, id.HasRoundRobin)
}

func TestExtract_NumericIndex(t *testing.T) {
	id, status := Extract([]string{"060"}, defaults())
	require.Equal(t, StatusIdentified, status)
	assert.Equal(t, 60, id.Note)

	s := defaults()
	s.Stride = 3
	s.MiddleC = 48

	// Numbered samples step by the stride, anchored so the sample numbered
	// middleC/stride lands on index 60.
	id, status = Extract([]string{"20"}, s)
	require.Equal(t, StatusIdentified, status)
	assert.Equal(t, 20*3-(48-60), id.Note)
}

func TestExtract_LaterChunksWin(t *testing.T) {
	id, status := Extract([]string{"c3", "c5", "pp", "mf"}, defaults())

	require.Equal(t, StatusIdentified, status)
	assert.Equal(t, 60, id.Note)
	assert.Equal(t, 1, id.Dynamic)
}

func TestExtract_OctaveAndTranspose(t *testing.T) {
	s := defaults()
	s.Octave = -1
	s.Transpose = 2

	id, status := Extract([]string{"c5"}, s)
	require.Equal(t, StatusIdentified, status)
	assert.Equal(t, 50, id.Note)
}

func TestExtract_NegativeIndex(t *testing.T) {
	s := defaults()
	s.Octave = -3

	_, status := Extract([]string{"c2"}, s)
	assert.Equal(t, StatusNegative, status)
}

func TestExtract_RangeBounds(t *testing.T) {
	s := defaults()
	min, max := 40, 80
	s.Min, s.Max = &min, &max

	_, status := Extract([]string{"c2"}, s)
	assert.Equal(t, StatusOutOfRange, status)

	_, status = Extract([]string{"c8"}, s)
	assert.Equal(t, StatusOutOfRange, status)

	_, status = Extract([]string{"c5"}, s)
	assert.Equal(t, StatusIdentified, status)
}

func TestExtract_NoNote(t *testing.T) {
	_, status := Extract([]string{"thump", "mf"}, defaults())
	assert.Equal(t, StatusNoNote, status)
}

func TestExtract_Unpitched(t *testing.T) {
	s := defaults()
	s.Unpitched = true

	id, status := Extract([]string{"crash", "rr1"}, s)
	assert.Equal(t, StatusUnpitched, status)
	assert.Equal(t, 1, id.RoundRobin)
}

func TestExtract_OneKey(t *testing.T) {
	s := defaults()
	s.OneKey = true

	id, status := Extract([]string{"pedal", "up"}, s)
	require.Equal(t, StatusIdentified, status)
	assert.Equal(t, OneKeyNote, id.Note)
	assert.False(t, id.HasNote)
}
