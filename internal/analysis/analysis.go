// Package analysis reads sound files to derive per-sample playback metadata:
// onset offset, perceived volume, duration, and WAV loop points.
//
// WAV and AIFF decode through the go-audio packages, Ogg Vorbis through
// jfreymuth/oggvorbis. FLAC files are accepted as samples but carry no
// decoder here, so they stay unanalyzed.
package analysis

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoDecoder is returned for sample formats without a decoder. The sample
// is still mapped, just without analysis metadata.
var ErrNoDecoder = errors.New("no decoder for sample format")

// Loop holds sustain loop points read from a WAV smpl chunk, in frames.
type Loop struct {
	Start uint32
	End   uint32
}

// Info is the analysis result for one sound file.
type Info struct {
	// Offset is the playback start offset in frames, placed just before
	// the detected onset.
	Offset int
	// Volume is the region volume adjustment in dB derived from the
	// perceived loudness around the onset.
	Volume float64
	// Duration of the whole file.
	Duration time.Duration
	// Loop points, when the file declares a sustain loop. Nil otherwise.
	Loop *Loop
}

// Analyze decodes the sound file at path and derives its metadata. The
// format is chosen by file extension.
func Analyze(path string) (*Info, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return analyzeWAV(path)
	case ".aif", ".aiff":
		return analyzeAIFF(path)
	case ".ogg":
		return analyzeOgg(path)
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoDecoder)
	}
}
