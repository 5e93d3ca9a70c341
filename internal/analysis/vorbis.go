package analysis

import (
	"fmt"
	"os"
	"time"

	"github.com/jfreymuth/oggvorbis"
)

func analyzeOgg(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("decoding ogg: %w", err)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid ogg channel count: %s", path)
	}

	frames := len(data) / format.Channels
	channels := make([][]float64, format.Channels)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < format.Channels; c++ {
			channels[c][i] = float64(data[i*format.Channels+c])
		}
	}

	offset, volume := measure(channels, format.SampleRate)
	dur := time.Duration(float64(frames) / float64(format.SampleRate) * float64(time.Second))

	return &Info{
		Offset:   offset,
		Volume:   volume,
		Duration: dur,
	}, nil
}
