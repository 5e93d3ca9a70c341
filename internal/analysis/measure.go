package analysis

import (
	"math"
	"sort"
)

// Measurement constants. The onset detector smooths the absolute amplitude
// with a short moving average, then looks for the first crossing of a
// fraction of the peak; the volume estimate takes the 95th percentile of the
// smoothed amplitude over the first second after the onset.
const (
	smoothWindow   = 100
	onsetDivisor   = 50.0
	onsetBackoff   = 100
	volumePercent  = 0.95
	volumeHeadroom = 4.5
)

// measure computes the onset offset (in frames) and the volume adjustment
// (in dB) for one decoded file. channels holds per-channel amplitude data;
// rate is the sample rate in Hz.
func measure(channels [][]float64, rate int) (int, float64) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0, 0
	}

	frames := len(channels[0])

	// Channel-averaged absolute amplitude drives onset detection.
	amp := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for _, ch := range channels {
			sum += math.Abs(ch[i])
		}
		amp[i] = sum / float64(len(channels))
	}

	smooth := movingAverage(amp, smoothWindow)

	peak := 0.0
	for _, v := range smooth {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 0, 0
	}

	cutoff := peak / onsetDivisor
	onset := 0
	for i, v := range smooth {
		if v > cutoff {
			onset = i
			break
		}
	}

	offset := 0
	if onset > onsetBackoff {
		offset = onset - onsetBackoff
	}

	// Perceived loudness: per-channel 95th percentile of the smoothed
	// amplitude over the first second after the onset, summed in power.
	end := onset + rate
	if end > len(smooth) {
		end = len(smooth)
	}

	var power float64
	for _, ch := range channels {
		chAmp := make([]float64, frames)
		for i := 0; i < frames; i++ {
			chAmp[i] = math.Abs(ch[i])
		}
		chSmooth := movingAverage(chAmp, smoothWindow)

		chEnd := end
		if chEnd > len(chSmooth) {
			chEnd = len(chSmooth)
		}

		p := percentile(chSmooth[onset:chEnd], volumePercent)
		power += p * p
	}

	if power <= 0 {
		return offset, 0
	}

	volume := -10*math.Log10(power) - volumeHeadroom

	return offset, volume
}

// movingAverage returns the simple moving average of data over the given
// window, in "valid" mode: the result has len(data)-window+1 points.
func movingAverage(data []float64, window int) []float64 {
	if window < 1 || len(data) < window {
		return data
	}

	out := make([]float64, len(data)-window+1)

	var sum float64
	for i := 0; i < window; i++ {
		sum += data[i]
	}
	out[0] = sum / float64(window)

	for i := 1; i < len(out); i++ {
		sum += data[i+window-1] - data[i-1]
		out[i] = sum / float64(window)
	}

	return out
}

// percentile returns the p-th percentile (0..1) of the data by
// nearest-rank on a sorted copy.
func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	idx := int(p * float64(len(sorted)-1))

	return sorted[idx]
}
