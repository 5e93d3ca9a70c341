package analysis

import (
	"fmt"
	"os"

	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

func analyzeWAV(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}

	dur, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("reading wav duration: %w", err)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding wav: %w", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid wav buffer: %s", path)
	}

	channels := deinterleave(buf.Data, buf.Format.NumChannels, buf.SourceBitDepth)
	offset, volume := measure(channels, buf.Format.SampleRate)

	return &Info{
		Offset:   offset,
		Volume:   volume,
		Duration: dur,
		Loop:     readLoop(path),
	}, nil
}

var smplID = [4]byte{'s', 'm', 'p', 'l'}

// readLoop walks the RIFF chunks of a WAV file looking for a sampler (smpl)
// chunk and returns its first sustain loop. Any parse trouble just means no
// loop points.
func readLoop(path string) *Loop {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	parser := riff.New(f)
	if err := parser.ParseHeaders(); err != nil {
		return nil
	}

	for {
		chunk, err := parser.NextChunk()
		if err != nil {
			return nil
		}

		if chunk.ID == smplID {
			return parseSmpl(chunk)
		}

		chunk.Done()
	}
}

// parseSmpl reads the fixed smpl header (nine uint32 fields, the eighth
// being the loop count) followed by the first loop record.
func parseSmpl(chunk *riff.Chunk) *Loop {
	var header [9]uint32
	for i := range header {
		if err := chunk.ReadLE(&header[i]); err != nil {
			return nil
		}
	}

	numLoops := header[7]
	if numLoops == 0 {
		return nil
	}

	// Loop record: cue ID, type, start, end, fraction, play count.
	var rec [6]uint32
	for i := range rec {
		if err := chunk.ReadLE(&rec[i]); err != nil {
			return nil
		}
	}
	chunk.Done()

	return &Loop{Start: rec[2], End: rec[3]}
}

// deinterleave splits interleaved integer PCM into per-channel float data
// normalized to [-1, 1] by bit depth.
func deinterleave(data []int, numChannels, bitDepth int) [][]float64 {
	if numChannels < 1 {
		return nil
	}

	var maxVal float64
	switch bitDepth {
	case 8:
		maxVal = 128
	case 16:
		maxVal = 32768
	case 24:
		maxVal = 8388608
	case 32:
		maxVal = 2147483648
	default:
		maxVal = 32768
	}

	frames := len(data) / numChannels
	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < numChannels; c++ {
			channels[c][i] = float64(data[i*numChannels+c]) / maxVal
		}
	}

	return channels
}
