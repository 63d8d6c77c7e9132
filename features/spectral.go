// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"

	"github.com/mjibson/go-dsp/spectral"
	"gonum.org/v1/gonum/floats"
)

// centroid is Σ f·|X| / Σ |X| for one magnitude frame; 0 when the frame is silent.
func centroid(mag, freqs []float64) float64 {
	total := floats.Sum(mag)
	if total == 0 {
		return 0
	}
	return floats.Dot(mag, freqs) / total
}

// bandwidth is the magnitude-weighted standard deviation of frequency
// around the frame centroid.
func bandwidth(mag, freqs []float64, c float64) float64 {
	total := floats.Sum(mag)
	if total == 0 {
		return 0
	}
	var acc float64
	for k, m := range mag {
		d := freqs[k] - c
		acc += m * d * d
	}
	return math.Sqrt(acc / total)
}

// rolloff is the lowest bin frequency below which pct of the frame's
// magnitude lies.
func rolloff(mag, freqs []float64, pct float64) float64 {
	threshold := pct * floats.Sum(mag)
	var cum float64
	for k, m := range mag {
		cum += m
		if cum >= threshold {
			return freqs[k]
		}
	}
	return freqs[len(freqs)-1]
}

// zeroCrossingRate counts sign changes inside frames of frameLength samples
// centred every hop samples. Edges are padded by repeating the end samples;
// zero counts as positive.
func zeroCrossingRate(x []float64, frameLength, hop int) []float64 {
	frames := 1 + len(x)/hop
	half := frameLength / 2
	at := func(i int) float64 { return x[min(max(i, 0), len(x)-1)] }

	out := make([]float64, frames)
	for f := range out {
		start := f*hop - half
		var crossings int
		prev := math.Signbit(at(start))
		for i := start + 1; i < start+frameLength; i++ {
			cur := math.Signbit(at(i))
			if cur != prev {
				crossings++
			}
			prev = cur
		}
		out[f] = float64(crossings) / float64(frameLength)
	}
	return out
}

// welch estimates the power spectral density with Welch's method:
// Hann-windowed segments of cfg.PSDSegment samples overlapping by
// cfg.PSDOverlap, averaged periodograms. It returns PSDSegment/2+1 bins and
// their frequencies from 0 to Nyquist.
func welch(x []float64, cfg Config) (psd, freqs []float64) {
	// Pwelch may window its segments in place; never hand it the signal itself
	buf := append([]float64(nil), x...)
	return spectral.Pwelch(buf, float64(cfg.SampleRate), &spectral.PwelchOptions{
		NFFT:     cfg.PSDSegment,
		Noverlap: cfg.PSDOverlap,
		Window:   periodicHann,
	})
}
