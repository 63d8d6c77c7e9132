// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

const (
	trimFrameLength = 2048
	trimHopLength   = 512
)

// Trim cuts leading and trailing audio whose frame RMS is more than topDB
// below the loudest frame. Frames are centred on multiples of the hop.
// The result is normalized again, so its peak stays 1. A non-positive
// topDB returns s unchanged.
func Trim(s Signal, topDB float64) (Signal, error) {
	if topDB <= 0 || s.Len() == 0 {
		return s, nil
	}

	rms := FrameRMS(s.samples, trimFrameLength, trimHopLength)

	var loudest float64
	for _, v := range rms {
		loudest = math.Max(loudest, v)
	}
	if loudest == 0 {
		return s, nil
	}

	threshold := loudest * math.Pow(10, -topDB/20)
	first, last := -1, -1
	for i, v := range rms {
		if v > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return s, nil
	}

	start := first * trimHopLength
	end := min(s.Len(), (last+1)*trimHopLength)
	if start == 0 && end == s.Len() {
		return s, nil
	}

	return NewSignal(s.samples[start:end], s.rate)
}

// FrameRMS returns the root mean square of frames of frameLength samples
// centred every hop samples, zero padded at both ends. There are
// 1 + len(x)/hop frames.
func FrameRMS(x []float64, frameLength, hop int) []float64 {
	frames := 1 + len(x)/hop
	half := frameLength / 2
	out := make([]float64, frames)

	for f := range frames {
		center := f * hop
		var sum float64
		for i := center - half; i < center+half; i++ {
			if i >= 0 && i < len(x) {
				sum += x[i] * x[i]
			}
		}
		out[f] = math.Sqrt(sum / float64(frameLength))
	}
	return out
}
