package analysis

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

func analyzeAIFF(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid aiff file: %s", path)
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, fmt.Errorf("unsupported aiff layout: %s", path)
	}

	// Stream the PCM data in blocks; aiff decoding has no one-shot full
	// buffer read that we rely on.
	buf := &goaudio.IntBuffer{
		Data:   make([]int, 4096),
		Format: format,
	}

	var data []int
	for {
		n, err := dec.PCMBuffer(buf)
		if n > 0 {
			data = append(data, buf.Data[:n]...)
		}
		if err == io.EOF || n == 0 {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding aiff: %w", err)
		}
	}

	channels := deinterleave(data, format.NumChannels, int(dec.BitDepth))
	offset, volume := measure(channels, format.SampleRate)

	frames := len(data) / format.NumChannels
	dur := time.Duration(float64(frames) / float64(format.SampleRate) * float64(time.Second))

	return &Info{
		Offset:   offset,
		Volume:   volume,
		Duration: dur,
	}, nil
}
