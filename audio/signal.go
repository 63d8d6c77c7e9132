// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"time"
)

// Signal is a mono, peak-normalized sequence of samples at a fixed rate.
// A Signal is never empty, every sample is finite and max(|sample|) == 1.
// The zero value is not usable; build one with NewSignal or a Loader.
type Signal struct {
	samples []float64
	rate    int
}

// NewSignal validates samples and returns a copy scaled so that its peak
// absolute value is exactly 1.
func NewSignal(samples []float64, sampleRate int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, ErrInvalidSampleRate
	}
	if len(samples) == 0 {
		return Signal{}, ErrEmptySignal
	}

	var peak float64
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return Signal{}, ErrNonFiniteSample
		}
		peak = math.Max(peak, math.Abs(s))
	}
	if peak == 0 {
		return Signal{}, ErrSilentSignal
	}

	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s / peak
	}

	return Signal{samples: out, rate: sampleRate}, nil
}

// Samples returns the normalized samples. The slice is shared and must be treated as read-only.
func (s Signal) Samples() []float64 { return s.samples }

func (s Signal) SampleRate() int { return s.rate }
func (s Signal) Len() int        { return len(s.samples) }

func (s Signal) Duration() time.Duration {
	if s.rate == 0 {
		return 0
	}
	return time.Duration(float64(len(s.samples)) / float64(s.rate) * float64(time.Second))
}

// Peak returns max(|sample|); 1 for every valid Signal.
func (s Signal) Peak() float64 {
	var peak float64
	for _, v := range s.samples {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}
