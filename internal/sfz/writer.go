// Package sfz renders an instrument model into SFZ text.
package sfz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sfz-generator/internal/instrument"
	"sfz-generator/internal/layer"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Options control serialization.
type Options struct {
	// Decorate adds explanatory comments to the output.
	Decorate bool
	// NoReleases drops release-triggered layers from the output.
	NoReleases bool
	// OutputDir is where the file will live; sample paths are written
	// relative to it. Empty means the current directory.
	OutputDir string
	// Definition is the raw definition document, echoed as a comment
	// header when decorating. Optional.
	Definition string
}

// WriteFile renders the model into <dir>/<output>.sfz.
func WriteFile(m *instrument.Model, opts Options) error {
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, m.Output+".sfz")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := Write(f, m, opts); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	return nil
}

// Write renders the model as SFZ text.
func Write(out io.Writer, m *instrument.Model, opts Options) error {
	w := bufio.NewWriter(out)

	if opts.Decorate {
		writeDecoration(w, m, opts)
	}

	writeControl(w, m, opts)
	writeGlobal(w, m)

	for _, l := range m.Layers {
		if opts.NoReleases && l.Settings.IsRelease {
			continue
		}

		writeLayer(w, m, l, opts)
	}

	return w.Flush()
}

func writeDecoration(w *bufio.Writer, m *instrument.Model, opts Options) {
	fmt.Fprintf(w, "// Instrument: %s\n\n", m.Name)

	if opts.Definition != "" {
		fmt.Fprintln(w, "// Definition:")
		for _, line := range strings.Split(strings.TrimRight(opts.Definition, "\n"), "\n") {
			fmt.Fprintf(w, "//   %s\n", line)
		}
		fmt.Fprintln(w)
	}

	if m.Comment != nil {
		writeCommentNode(w, m.Comment)
		fmt.Fprintln(w)
	}
}

// writeCommentNode renders the user's comment tree: mapping keys become
// "// key:" lines, leaf values "// - value" lines.
func writeCommentNode(w *bufio.Writer, node *yaml.Node) {
	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			writeCommentNode(w, child)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			fmt.Fprintf(w, "// %s:\n", node.Content[i].Value)
			writeCommentNode(w, node.Content[i+1])
		}
	case yaml.SequenceNode:
		for _, child := range node.Content {
			writeCommentNode(w, child)
		}
	default:
		fmt.Fprintf(w, "// - %s\n", node.Value)
	}
}

func writeControl(w *bufio.Writer, m *instrument.Model, opts Options) {
	if !m.Knobs {
		return
	}

	fmt.Fprintln(w, "<control>")
	fmt.Fprintf(w, "label_cc%d=Release\n", instrument.CCRelease)
	fmt.Fprintf(w, "label_cc%d=Attack\n", instrument.CCAttack)
	fmt.Fprintf(w, "set_cc%d=18\n", instrument.CCRelease)
	fmt.Fprintf(w, "set_cc%d=0\n", instrument.CCAttack)

	if m.HasReleases() && !opts.NoReleases {
		fmt.Fprintf(w, "label_cc%d=Release Volume\n", instrument.CCReleaseVolume)
		fmt.Fprintf(w, "set_cc%d=60\n", instrument.CCReleaseVolume)
	}

	for _, knob := range m.Controls {
		fmt.Fprintf(w, "label_cc%d=%s\n", knob.CC, knob.Label)
		fmt.Fprintf(w, "set_cc%d=%d\n", knob.CC, knob.Value)
	}

	fmt.Fprintln(w)
}

func writeGlobal(w *bufio.Writer, m *instrument.Model) {
	fmt.Fprintln(w, "<global>")
	fmt.Fprintf(w, "ampeg_attack=%f\n", m.Envelope.Attack)
	fmt.Fprintf(w, "ampeg_release=%f\n", m.Envelope.Release)

	if m.Knobs {
		fmt.Fprintf(w, "ampeg_release_oncc%d=6\n", instrument.CCRelease)
		fmt.Fprintf(w, "ampeg_attack_oncc%d=6\n", instrument.CCAttack)
	}

	fmt.Fprintln(w)
}

func writeLayer(w *bufio.Writer, m *instrument.Model, l *layer.Resolved, opts Options) {
	for i := range l.Dynamics {
		writeLevel(w, m, l, &l.Dynamics[i], opts, false)
	}

	// A sustain-style layer marked alwaysRelease plays again as a
	// release trigger.
	if l.Settings.AlwaysRelease && !l.Settings.IsRelease {
		for i := range l.Dynamics {
			writeLevel(w, m, l, &l.Dynamics[i], opts, true)
		}
	}
}

func writeLevel(w *bufio.Writer, m *instrument.Model, l *layer.Resolved, level *layer.DynamicLevel, opts Options, asRelease bool) {
	s := l.Settings

	fmt.Fprintln(w, "<group>")

	if s.Attack != m.Envelope.Attack {
		fmt.Fprintf(w, "ampeg_attack=%f\n", s.Attack)
	}
	if s.Release != m.Envelope.Release {
		fmt.Fprintf(w, "ampeg_release=%f\n", s.Release)
	}

	if s.IsRelease || asRelease {
		if s.AlwaysRelease {
			fmt.Fprintln(w, "trigger=release_key")
		} else {
			fmt.Fprintln(w, "trigger=release")
		}
		if m.Knobs && !opts.NoReleases {
			fmt.Fprintf(w, "gain_oncc%d=10\n", instrument.CCReleaseVolume)
		}
	}

	if s.Unpitched {
		fmt.Fprintln(w, "pitch_keytrack=0")
	}

	if level.VelLow != layer.Open {
		fmt.Fprintf(w, "lovel=%d\n", level.VelLow)
	}
	if level.VelHigh != layer.Open {
		fmt.Fprintf(w, "hivel=%d\n", level.VelHigh)
	}

	if s.Volume != 0 {
		fmt.Fprintf(w, "volume=%f\n", s.Volume)
	}

	if l.KnobCC != 0 {
		fmt.Fprintf(w, "xfin_locc%d=1 xfin_hicc%d=127\n", l.KnobCC, l.KnobCC)
	}

	fmt.Fprintln(w)

	for i := range level.Notes {
		writeCell(w, l, &level.Notes[i], opts)
	}
}

func writeCell(w *bufio.Writer, l *layer.Resolved, cell *layer.NoteCell, opts Options) {
	for i, e := range cell.Robins {
		fmt.Fprintln(w, "<region>")

		// Positions count along the rotation; the slot numbers in the
		// filenames only order it.
		if len(cell.Robins) > 1 {
			fmt.Fprintf(w, "seq_length=%d\n", len(cell.Robins))
			fmt.Fprintf(w, "seq_position=%d\n", i+1)
		}

		fmt.Fprintf(w, "sample=%s\n", samplePath(l.Settings.Source, e.File, opts.OutputDir))

		if cell.KeyLow == cell.Note && cell.KeyHigh == cell.Note {
			fmt.Fprintf(w, "key=%d\n", cell.Note)
		} else {
			fmt.Fprintf(w, "pitch_keycenter=%d\n", cell.Note)
			if cell.KeyLow != layer.Open {
				fmt.Fprintf(w, "lokey=%d\n", cell.KeyLow)
			}
			if cell.KeyHigh != layer.Open {
				fmt.Fprintf(w, "hikey=%d\n", cell.KeyHigh)
			}
		}

		if cell.FadeInLow != layer.Open {
			fmt.Fprintf(w, "xfin_lokey=%d xfin_hikey=%d\n", cell.FadeInLow, cell.FadeInHigh)
		}
		if cell.FadeOutLow != layer.Open {
			fmt.Fprintf(w, "xfout_lokey=%d xfout_hikey=%d\n", cell.FadeOutLow, cell.FadeOutHigh)
		}

		if info := e.Analysis; info != nil {
			if info.Offset > 0 {
				fmt.Fprintf(w, "offset=%d\n", info.Offset)
			}
			if info.Volume != 0 {
				fmt.Fprintf(w, "volume=%f\n", info.Volume)
			}
			if info.Loop != nil {
				fmt.Fprintln(w, "loop_mode=loop_sustain")
				fmt.Fprintf(w, "loop_start=%d\n", info.Loop.Start)
				fmt.Fprintf(w, "loop_end=%d\n", info.Loop.End)
			}
		}

		fmt.Fprintln(w)
	}
}

// samplePath renders a region's sample path relative to the output
// directory, falling back to the plain join when no relative path exists.
func samplePath(source, file, outputDir string) string {
	full := filepath.Join(source, file)

	if outputDir == "" {
		outputDir = "."
	}

	rel, err := filepath.Rel(outputDir, full)
	if err != nil {
		return full
	}

	return rel
}
