// Package identity extracts a sample's placement identity (note index,
// dynamics level, round robin) from the chunk sequence the pattern pipeline
// produced for its filename.
package identity

import (
	"strconv"

	"sfz-generator/internal/config"
)

// OneKeyNote is the fixed note index used for layers declared onekey.
const OneKeyNote = 60

// Identity is the placement identity extracted for one sound file.
type Identity struct {
	// Note is the resolved note index, after octave, transpose and
	// stride adjustments.
	Note int
	// Dynamic is the dynamics ordering value; 0 when the file carries no
	// dynamics marking.
	Dynamic int
	// RoundRobin is the explicit round robin slot, 0 when absent.
	RoundRobin int

	// HasNote reports whether any chunk yielded a note index.
	HasNote bool
	// HasDynamic reports whether any chunk carried a dynamics marking.
	HasDynamic bool
	// HasRoundRobin reports whether an explicit rr chunk was present.
	HasRoundRobin bool
}

// Status classifies the outcome of an extraction.
type Status int

const (
	// StatusIdentified means the identity is complete and in range.
	StatusIdentified Status = iota
	// StatusNoNote means no chunk yielded a note index and the layer
	// gives unidentified files no home.
	StatusNoNote
	// StatusUnpitched means no chunk yielded a note index but the layer
	// is unpitched; the caller assigns a sequential index.
	StatusUnpitched
	// StatusNegative means adjustments pushed the note index below zero.
	StatusNegative
	// StatusOutOfRange means the note index fell outside [min, max].
	StatusOutOfRange
)

// Extract derives a sample identity from a chunk sequence under the layer's
// effective settings. Later chunks win when several chunks parse as the same
// identity component.
func Extract(chunks []string, s config.Effective) (Identity, Status) {
	var id Identity

	for _, chunk := range chunks {
		if note, ok := parseNoteName(chunk); ok {
			id.Note = note
			id.HasNote = true
			continue
		}

		if dynRe.MatchString(chunk) {
			id.Dynamic = dynamicValue(chunk)
			id.HasDynamic = true
			continue
		}

		if numRe.MatchString(chunk) {
			n, err := strconv.Atoi(chunk)
			if err != nil {
				continue
			}
			id.Note = n*s.Stride - (s.MiddleC - config.DefaultMiddleC)
			id.HasNote = true
			continue
		}

		if m := rrRe.FindStringSubmatch(chunk); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			id.RoundRobin = n
			id.HasRoundRobin = true
		}
	}

	if !id.HasNote {
		if s.OneKey {
			id.Note = OneKeyNote
			return id, StatusIdentified
		}
		if s.Unpitched {
			return id, StatusUnpitched
		}

		return id, StatusNoNote
	}

	id.Note += s.Octave*12 + s.Transpose

	if id.Note < 0 {
		return id, StatusNegative
	}
	if s.Min != nil && id.Note < *s.Min {
		return id, StatusOutOfRange
	}
	if s.Max != nil && id.Note > *s.Max {
		return id, StatusOutOfRange
	}

	return id, StatusIdentified
}
