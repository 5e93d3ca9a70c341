package analysis

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempWAV(t *testing.T, samples []float32, sampleRate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s * 32767)
	}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())

	return path
}

func TestAnalyze_WAV(t *testing.T) {
	rate := 44100
	silence := rate / 2

	samples := make([]float32, rate)
	for i := silence; i < len(samples); i++ {
		samples[i] = 0.5 * float32(math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}

	info, err := Analyze(writeTempWAV(t, samples, rate))
	require.NoError(t, err)

	assert.Greater(t, info.Offset, silence-1000)
	assert.Less(t, info.Offset, silence)
	assert.InDelta(t, time.Second, info.Duration, float64(50*time.Millisecond))
	assert.Nil(t, info.Loop)
	assert.NotZero(t, info.Volume)
}

func TestAnalyze_InvalidWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav"), 0o644))

	_, err := Analyze(path)
	require.Error(t, err)
}

func TestAnalyze_NoDecoder(t *testing.T) {
	_, err := Analyze("sample.flac")
	require.ErrorIs(t, err, ErrNoDecoder)

	_, err = Analyze("sample.txt")
	require.ErrorIs(t, err, ErrNoDecoder)
}
