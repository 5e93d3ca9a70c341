package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"sfz-generator/internal/common"
)

// Diagnostics holds all diagnostic information from a mapping run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Layer identifies which layer this relates to (if any).
	Layer string
	// File identifies which sound file this relates to (if any).
	File string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, layer, file string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Layer:    layer,
		File:     file,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, layer, file string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Layer:    layer,
		File:     file,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, layer, file string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Layer:    layer,
		File:     file,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	msgs := make([]string, 0, len(d.Errors))
	for _, diag := range d.Errors {
		msgs = append(msgs, diag.Format())
	}

	return errors.New(strings.Join(msgs, "; "))
}

// Format renders the diagnostic with its context for human consumption.
func (diag Diagnostic) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s: %s", diag.Severity, diag.Code, diag.Message)

	if diag.Layer != "" {
		fmt.Fprintf(&b, " (layer %q", diag.Layer)
		if diag.File != "" {
			fmt.Fprintf(&b, ", file %q", diag.File)
		}
		b.WriteString(")")
	} else if diag.File != "" {
		fmt.Fprintf(&b, " (file %q)", diag.File)
	}

	return b.String()
}
