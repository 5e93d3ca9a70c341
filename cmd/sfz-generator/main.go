// Package main provides the CLI entrypoint for sfz-generator.
//
// sfz-generator turns a declarative YAML instrument definition plus a folder
// of recorded samples into an SFZ instrument:
//   - Extracts note/dynamics/round-robin identity from filenames via
//     configurable filter/sub/split/map rules
//   - Resolves key and velocity ranges with crossfades or exact mapping
//   - Analyzes soundwaves for onset offsets, volumes and loop points
//   - Renders the mapped instrument as SFZ text
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sfz-generator/internal/analysis"
	"sfz-generator/internal/config"
	"sfz-generator/internal/diagnostic"
	"sfz-generator/internal/instrument"
	"sfz-generator/internal/layer"
	"sfz-generator/internal/scan"
	"sfz-generator/internal/sfz"
)

type options struct {
	Stdout      bool
	NoKnobs     bool
	Verbose     bool
	NoDecor     bool
	Out         string
	OutDir      string
	NoCrossfade bool
	NoReleases  bool
	CreateBase  bool
	HelpFormat  bool
	Force       bool
}

func main() {
	var opts options

	boolFlag(&opts.Stdout, "x", "stdout", "Send sfz to stdout instead of a file.")
	boolFlag(&opts.NoKnobs, "k", "noknobs", "Remove knobs.")
	boolFlag(&opts.Verbose, "v", "verbose", "Print feedback during processing.")
	boolFlag(&opts.NoDecor, "e", "nodecor", "Don't decorate sfz with comments.")
	boolFlag(&opts.NoCrossfade, "c", "nocrossfade", "Disable crossfade.")
	boolFlag(&opts.NoReleases, "r", "noreleases", "Ignore release samples.")
	boolFlag(&opts.CreateBase, "b", "createbase", "Create a basic definition file named after the source argument.")
	boolFlag(&opts.HelpFormat, "y", "yamlformat", "Print YAML format help.")
	boolFlag(&opts.Force, "f", "force", "Don't process soundwaves.")
	flag.StringVar(&opts.Out, "o", "", "Output filename override (without sfz extension).")
	flag.StringVar(&opts.Out, "out", "", "Output filename override (without sfz extension).")
	flag.StringVar(&opts.OutDir, "d", "", "Output directory override.")
	flag.StringVar(&opts.OutDir, "outdir", "", "Output directory override.")
	flag.Parse()

	if opts.HelpFormat {
		fmt.Print(formatHelp)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sfz-generator [flags] <definition.yaml>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	source := flag.Arg(0)

	if opts.CreateBase {
		if err := createBase(source); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(source, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func boolFlag(v *bool, short, long, usage string) {
	flag.BoolVar(v, short, false, usage)
	flag.BoolVar(v, long, false, usage)
}

func createBase(name string) error {
	data, err := config.Marshal(config.BaseDocument())
	if err != nil {
		return err
	}

	if err := os.WriteFile(name+".yaml", data, 0o644); err != nil {
		return fmt.Errorf("failed to write definition file: %w", err)
	}

	return nil
}

func run(source string, opts options) error {
	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	raw, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to open definition file: %w", err)
	}

	doc, err := config.Parse(raw)
	if err != nil {
		return err
	}

	// CLI switches override the document.
	if opts.Out != "" {
		doc.Output = opts.Out
	}
	if opts.NoKnobs {
		doc.Knobs = false
	}
	if opts.NoCrossfade {
		doc.Crossfade = false
	}
	if opts.Force {
		doc.SkipAnalysis = true
	}

	diags := config.Validate(doc)
	report(log, diags)
	if diags.HasErrors() {
		return diags.Error()
	}

	matrices, buildDiags, err := buildLayers(doc, log)
	report(log, buildDiags)
	if err != nil {
		return err
	}
	if buildDiags.HasErrors() {
		return buildDiags.Error()
	}

	analyzeLayers(matrices, log)

	resolved := make([]*layer.Resolved, 0, len(matrices))
	for _, m := range matrices {
		r, err := layer.Resolve(m)
		if err != nil {
			return err
		}
		resolved = append(resolved, r)
	}

	model := instrument.Assemble(doc, resolved)

	writeOpts := sfz.Options{
		Decorate:   !opts.NoDecor,
		NoReleases: opts.NoReleases,
		OutputDir:  opts.OutDir,
		Definition: string(raw),
	}

	if opts.Stdout {
		return sfz.Write(os.Stdout, model, writeOpts)
	}

	return sfz.WriteFile(model, writeOpts)
}

// buildLayers scans, filters and groups every layer's files. An unreadable
// source folder skips that layer; identity collisions become errors in the
// returned diagnostics.
func buildLayers(doc *config.Document, log *zap.Logger) ([]*layer.Matrix, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}
	scanLog := log.Named("scan")

	var matrices []*layer.Matrix
	for i := range doc.Layers {
		name := doc.Layers[i].Name
		cfg := &doc.Layers[i].Config

		eff, err := config.ResolveSettings(doc, name, cfg)
		if err != nil {
			return nil, diags, err
		}

		chain, err := doc.CompileChain(name, cfg)
		if err != nil {
			return nil, diags, err
		}

		files, err := scan.List(eff.Source)
		if err != nil {
			diags.AddWarning("unreadable_source", err.Error(), name, "")
			continue
		}

		builder := layer.NewBuilder(eff, chain, scanLog)
		for _, f := range files {
			builder.Add(f, diags)
		}

		matrix := builder.Matrix()
		if matrix.Empty() {
			diags.AddWarning("empty_layer", "no matching sound files", name, "")
			continue
		}

		matrices = append(matrices, matrix)
	}

	return matrices, diags, nil
}

// analyzeLayers reads soundwave metadata for every entry of every layer that
// wants analysis. Failures here never stop the run; an unanalyzed sample is
// still mapped.
func analyzeLayers(matrices []*layer.Matrix, log *zap.Logger) {
	alog := log.Named("analysis")

	for _, m := range matrices {
		s := m.Settings
		if s.SkipAnalysis || s.IsRelease {
			continue
		}

		for _, e := range m.Entries() {
			path := filepath.Join(s.Source, e.File)

			info, err := analysis.Analyze(path)
			switch {
			case errors.Is(err, analysis.ErrNoDecoder):
				alog.Info("skipping analysis", zap.String("file", e.File), zap.Error(err))
			case err != nil:
				alog.Warn("failed to analyze sample", zap.String("file", e.File), zap.Error(err))
			default:
				e.Analysis = info
				alog.Debug("analyzed",
					zap.String("file", e.File),
					zap.Int("offset", info.Offset),
					zap.Float64("volume", info.Volume),
					zap.Duration("duration", info.Duration))
			}
		}
	}
}

func report(log *zap.Logger, diags *diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		log.Warn(d.Format())
	}
	for _, d := range diags.Infos {
		log.Info(d.Format())
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	return cfg.Build()
}
