package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Accumulate(t *testing.T) {
	d := &Diagnostics{}
	assert.True(t, d.IsValid())
	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Error())

	d.AddInfo("outside_range", "note index 12 is outside the layer range", "sustain", "C1.wav")
	d.AddWarning("unknown_note", "no note identity in filename", "sustain", "creak.wav")
	assert.True(t, d.IsValid())

	d.AddError("identity_collision", "collides", "sustain", "c4.wav")
	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	require.Error(t, d.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	a := &Diagnostics{}
	a.AddWarning("w1", "first", "", "")

	b := Diagnostics{}
	b.AddError("e1", "second", "layer", "")
	b.AddInfo("i1", "third", "", "")

	a.Merge(b)

	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Infos, 1)
	assert.True(t, a.HasErrors())
}

func TestDiagnostic_Format(t *testing.T) {
	cases := []struct {
		diag Diagnostic
		want string
	}{
		{
			Diagnostic{Severity: SeverityError, Code: "missing_output", Message: "definition has no output name"},
			`[error] missing_output: definition has no output name`,
		},
		{
			Diagnostic{Severity: SeverityWarning, Code: "unknown_note", Message: "no note identity", Layer: "sustain"},
			`[warning] unknown_note: no note identity (layer "sustain")`,
		},
		{
			Diagnostic{Severity: SeverityInfo, Code: "outside_range", Message: "outside", Layer: "sustain", File: "C1.wav"},
			`[info] outside_range: outside (layer "sustain", file "C1.wav")`,
		},
		{
			Diagnostic{Severity: SeverityWarning, Code: "bad_file", Message: "unreadable", File: "C1.wav"},
			`[warning] bad_file: unreadable (file "C1.wav")`,
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.diag.Format())
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(99).String())
}
