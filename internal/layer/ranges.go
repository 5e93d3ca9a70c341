package layer

import (
	"fmt"

	"sfz-generator/internal/common"
	"sfz-generator/internal/config"
)

// Open marks an unbounded range edge. The serializer omits the opcode,
// leaving the sampler default (whole key or velocity range).
const Open = -1

// CrossfadeProportion sizes crossfade bands: the band half-width is this
// fraction of the distance between two adjacent samples, never less than one
// semitone. The sizing is not pinned down by the source material, so it is a
// single documented constant rather than a guessed formula.
const CrossfadeProportion = 0.25

// Resolved is a layer matrix annotated with key and velocity ranges, ready
// for assembly.
type Resolved struct {
	Settings config.Effective

	// KnobCC is the controller number of the layer's volume knob, 0 when
	// the layer has none. Assigned during assembly.
	KnobCC int

	// Dynamics holds the layer's dynamics levels ordered from the
	// quietest trigger band to the loudest.
	Dynamics []DynamicLevel
}

// DynamicLevel is one dynamics level with its velocity trigger band.
type DynamicLevel struct {
	// Marker is the ordering value of the dynamics marking.
	Marker int
	// VelLow and VelHigh bound the velocity trigger band; Open at the
	// outer edges.
	VelLow  int
	VelHigh int
	// Notes are the level's note cells in ascending note order.
	Notes []NoteCell
}

// NoteCell is one note position with its resolved key range and round
// robins.
type NoteCell struct {
	// Note is the pitch center.
	Note int
	// KeyLow and KeyHigh bound the triggering key range; Open when
	// unbounded.
	KeyLow  int
	KeyHigh int

	// Crossfade bands. The fade-in band sits on the low edge of this
	// cell's range, the fade-out band on the high edge. Open when the
	// cell does not fade on that side.
	FadeInLow   int
	FadeInHigh  int
	FadeOutLow  int
	FadeOutHigh int

	// Robins are the cell's round robins in rotation order.
	Robins []*Entry
}

// Resolve annotates a matrix with key ranges, velocity bands and crossfade
// boundaries. It fails when resolved ranges would overlap without a declared
// crossfade.
func Resolve(m *Matrix) (*Resolved, error) {
	s := m.Settings
	res := &Resolved{Settings: s}

	dyns := common.SortedKeys(m.cells)
	if s.InvertDynamics {
		for i, j := 0, len(dyns)-1; i < j; i, j = i+1, j-1 {
			dyns[i], dyns[j] = dyns[j], dyns[i]
		}
	}

	n := len(dyns)
	for i, dyn := range dyns {
		level := DynamicLevel{Marker: dyn, VelLow: Open, VelHigh: Open}

		if i > 0 {
			level.VelLow = velocityBorder(i, n, s.Exponent)
		}
		if i < n-1 {
			level.VelHigh = velocityBorder(i+1, n, s.Exponent) - 1
		}

		level.Notes = resolveNotes(m, dyn)

		if s.Crossfade && !s.Exact && !s.IsRelease {
			carveCrossfades(level.Notes)
		}

		res.Dynamics = append(res.Dynamics, level)
	}

	if err := verify(res); err != nil {
		return nil, err
	}

	return res, nil
}

// resolveNotes computes the key range of every note cell in one dynamics
// level. Without exact mode, each range extends to the midpoint toward its
// neighbors (integer division, so the lower note keeps the midpoint), the
// lowest down to min and the highest up to max.
func resolveNotes(m *Matrix, dyn int) []NoteCell {
	s := m.Settings
	noteMap := m.cells[dyn]
	notes := common.SortedKeys(noteMap)

	cells := make([]NoteCell, 0, len(notes))
	for j, note := range notes {
		cell := NoteCell{
			Note:        note,
			KeyLow:      Open,
			KeyHigh:     Open,
			FadeInLow:   Open,
			FadeInHigh:  Open,
			FadeOutLow:  Open,
			FadeOutHigh: Open,
		}

		if s.Exact {
			cell.KeyLow = note
			cell.KeyHigh = note
		} else {
			switch {
			case j > 0:
				cell.KeyLow = midpoint(notes[j-1], note) + 1
			case s.Min != nil:
				cell.KeyLow = *s.Min
			}

			switch {
			case j < len(notes)-1:
				cell.KeyHigh = midpoint(note, notes[j+1])
			case s.Max != nil:
				cell.KeyHigh = *s.Max
			}
		}

		for _, rr := range common.SortedKeys(noteMap[note]) {
			cell.Robins = append(cell.Robins, noteMap[note][rr])
		}

		cells = append(cells, cell)
	}

	return cells
}

// carveCrossfades opens a symmetric fade band around each inter-sample
// boundary. The lower sample's range grows to the top of the band and fades
// out across it; the upper sample's range grows down to the bottom of the
// band and fades in across it, so both sound inside the band.
func carveCrossfades(cells []NoteCell) {
	for j := 0; j+1 < len(cells); j++ {
		lo := &cells[j]
		hi := &cells[j+1]

		dist := hi.Note - lo.Note
		width := int(float64(dist) * CrossfadeProportion)
		if width < 1 {
			width = 1
		}

		mid := midpoint(lo.Note, hi.Note)

		bandLow := mid + 1 - width
		if bandLow <= lo.Note {
			bandLow = lo.Note + 1
		}
		bandHigh := mid + width
		if bandHigh > hi.Note {
			bandHigh = hi.Note
		}

		lo.KeyHigh = bandHigh
		lo.FadeOutLow = bandLow
		lo.FadeOutHigh = bandHigh

		hi.KeyLow = bandLow
		hi.FadeInLow = bandLow
		hi.FadeInHigh = bandHigh
	}
}

// verify rejects overlapping key ranges that no crossfade band accounts
// for. Ranges inside a fade band overlap on purpose; anything else is a
// consistency error in the resolved layer.
func verify(res *Resolved) error {
	for _, level := range res.Dynamics {
		for j := 0; j+1 < len(level.Notes); j++ {
			lo := level.Notes[j]
			hi := level.Notes[j+1]

			if lo.KeyHigh == Open || hi.KeyLow == Open {
				continue
			}
			if lo.KeyHigh < hi.KeyLow {
				continue
			}

			faded := lo.FadeOutLow != Open &&
				lo.FadeOutLow <= hi.KeyLow && lo.KeyHigh <= lo.FadeOutHigh
			if !faded {
				return fmt.Errorf(
					"layer %q: key ranges of notes %d and %d overlap without a crossfade",
					res.Settings.Name, lo.Note, hi.Note)
			}
		}
	}

	return nil
}

// midpoint splits the gap between two note indices, favoring the lower one.
func midpoint(a, b int) int {
	return (a + b) / 2
}
