package layer

import (
	"fmt"

	"go.uber.org/zap"

	"sfz-generator/internal/analysis"
	"sfz-generator/internal/common"
	"sfz-generator/internal/config"
	"sfz-generator/internal/diagnostic"
	"sfz-generator/internal/identity"
	"sfz-generator/internal/pattern"
	"sfz-generator/internal/scan"
)

// Entry is one mapped sound file.
type Entry struct {
	// File is the original filename, extension included.
	File string
	// Note is the resolved note index.
	Note int
	// RoundRobin is the slot within the note's rotation.
	RoundRobin int
	// Analysis holds soundwave metadata when analysis ran for this file.
	Analysis *analysis.Info
}

// Matrix is one layer's sample grid: dynamics level, then note index, then
// round robin slot. All entries share the layer's effective settings.
type Matrix struct {
	Settings config.Effective

	cells map[int]map[int]map[int]*Entry
}

// Empty reports whether the matrix holds no entries.
func (m *Matrix) Empty() bool {
	return len(m.cells) == 0
}

// Entries returns all entries in deterministic order (dynamics level, note,
// round robin).
func (m *Matrix) Entries() []*Entry {
	var out []*Entry
	for _, dyn := range common.SortedKeys(m.cells) {
		notes := m.cells[dyn]
		for _, note := range common.SortedKeys(notes) {
			robins := notes[note]
			for _, rr := range common.SortedKeys(robins) {
				out = append(out, robins[rr])
			}
		}
	}

	return out
}

// Builder accumulates a layer's files into a Matrix.
type Builder struct {
	settings config.Effective
	chain    pattern.Chain
	log      *zap.Logger
	matrix   *Matrix
}

// NewBuilder creates a Builder for one layer.
func NewBuilder(settings config.Effective, chain pattern.Chain, log *zap.Logger) *Builder {
	return &Builder{
		settings: settings,
		chain:    chain,
		log:      log.Named(settings.Name),
		matrix: &Matrix{
			Settings: settings,
			cells:    make(map[int]map[int]map[int]*Entry),
		},
	}
}

// Add runs one filename through the pipeline and places it in the matrix.
// Files the filters reject are dropped silently; identity problems surface
// as diagnostics. A collision on (note, dynamic, round robin) is an error:
// an ambiguous mapping must not be resolved by overwriting.
func (b *Builder) Add(filename string, diags *diagnostic.Diagnostics) {
	chunks, ok := b.chain.Apply(scan.StripExt(filename))
	if !ok {
		b.log.Debug("filtered out", zap.String("file", filename))
		return
	}

	id, status := identity.Extract(chunks, b.settings)

	switch status {
	case identity.StatusNoNote:
		diags.AddWarning("unknown_note",
			"no note identity in filename", b.settings.Name, filename)
		return
	case identity.StatusNegative:
		diags.AddWarning("negative_index",
			fmt.Sprintf("note index %d is negative", id.Note), b.settings.Name, filename)
		return
	case identity.StatusOutOfRange:
		diags.AddInfo("outside_range",
			fmt.Sprintf("note index %d is outside the layer range", id.Note), b.settings.Name, filename)
		return
	case identity.StatusUnpitched:
		// Unpitched samples without a note identity take sequential
		// indices within their dynamics level.
		id.Note = len(b.matrix.cells[id.Dynamic])
	case identity.StatusIdentified:
	}

	notes := b.matrix.cells[id.Dynamic]
	if notes == nil {
		notes = make(map[int]map[int]*Entry)
		b.matrix.cells[id.Dynamic] = notes
	}

	robins := notes[id.Note]
	if robins == nil {
		robins = make(map[int]*Entry)
		notes[id.Note] = robins
	}

	if b.settings.OneKey && !id.HasRoundRobin {
		// Onekey layers accept files without any parseable identity;
		// such files become round robins in encounter order.
		for {
			if _, taken := robins[id.RoundRobin]; !taken {
				break
			}
			id.RoundRobin++
		}
	}

	if existing, taken := robins[id.RoundRobin]; taken {
		diags.AddError("identity_collision",
			fmt.Sprintf("collides with %q at note %d, dynamic %d, round robin %d",
				existing.File, id.Note, id.Dynamic, id.RoundRobin),
			b.settings.Name, filename)
		return
	}

	robins[id.RoundRobin] = &Entry{
		File:       filename,
		Note:       id.Note,
		RoundRobin: id.RoundRobin,
	}

	b.log.Debug("mapped",
		zap.String("file", filename),
		zap.Int("note", id.Note),
		zap.Int("dynamic", id.Dynamic),
		zap.Int("roundRobin", id.RoundRobin))
}

// Matrix returns the accumulated matrix.
func (b *Builder) Matrix() *Matrix {
	return b.matrix
}
