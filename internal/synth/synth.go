// SPDX-License-Identifier: EPL-2.0

// Package synth generates deterministic test and demo signals.
package synth

import (
	"math"
	"math/rand/v2"
)

// Sine returns seconds of a sine at freq Hz with the given amplitude.
func Sine(rate int, seconds, freq, amplitude float64) []float64 {
	n := int(float64(rate) * seconds)
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

// Harmonic returns a tone built from base and its first partials, each
// weighted 1/k, scaled to a 0.8 peak.
func Harmonic(rate int, seconds, base float64, partials int) []float64 {
	freqs := make([]float64, partials)
	for k := range freqs {
		freqs[k] = base * float64(k+1)
	}
	return Tone(rate, seconds, freqs...)
}

// Tone sums sines at freqs, the i-th weighted 1/(i+1), scaled to a 0.8 peak.
func Tone(rate int, seconds float64, freqs ...float64) []float64 {
	n := int(float64(rate) * seconds)
	out := make([]float64, n)
	for k, f := range freqs {
		amp := 0.5 / float64(k+1)
		for i := range out {
			out[i] += amp * math.Sin(2*math.Pi*f*float64(i)/float64(rate))
		}
	}
	scale(out, 0.8)
	return out
}

// Vibrato modulates the amplitude of x by 1 + depth·sin(2π·hz·t).
func Vibrato(x []float64, rate int, hz, depth float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * (1 + depth*math.Sin(2*math.Pi*hz*float64(i)/float64(rate)))
	}
	return out
}

// Melody concatenates sustained tones, one per entry of freqs, each lasting
// noteSeconds. Stretching noteSeconds time-scales the melody without
// changing its pitch.
func Melody(rate int, noteSeconds float64, freqs ...float64) []float64 {
	per := int(float64(rate) * noteSeconds)
	out := make([]float64, 0, per*len(freqs))
	var phase float64
	for _, f := range freqs {
		step := 2 * math.Pi * f / float64(rate)
		for range per {
			out = append(out, 0.6*math.Sin(phase))
			phase += step
		}
	}
	return out
}

// Noise returns uniform white noise from a fixed seed.
func Noise(rate int, seconds float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	n := int(float64(rate) * seconds)
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

// Envelope applies a linear attack and release, each a fraction of the length.
func Envelope(x []float64, attack, release float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	a := int(float64(len(x)) * attack)
	r := int(float64(len(x)) * release)
	for i := 0; i < a && i < len(out); i++ {
		out[i] *= float64(i) / float64(a)
	}
	for i := 0; i < r && i < len(out); i++ {
		out[len(out)-1-i] *= float64(i) / float64(r)
	}
	return out
}

// Pad surrounds x with the given number of zero samples.
func Pad(x []float64, before, after int) []float64 {
	out := make([]float64, before+len(x)+after)
	copy(out[before:], x)
	return out
}

// Scaled returns x multiplied by k.
func Scaled(x []float64, k float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * k
	}
	return out
}

func scale(x []float64, peak float64) {
	var m float64
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}
	if m == 0 {
		return
	}
	for i := range x {
		x[i] = x[i] / m * peak
	}
}

// Sample is a named demo recording.
type Sample struct {
	Name    string
	Samples []float64
}

// SampleSet returns three demo recordings: a 220 Hz harmonic tone, the same
// tone shifted to 225 Hz with a different vibrato, and a shorter 440 Hz tone
// with another partial structure.
func SampleSet(rate int) []Sample {
	const seconds = 3.0

	first := Vibrato(Envelope(Harmonic(rate, seconds, 220, 4), 0.1, 0.1), rate, 5, 0.02)
	second := Vibrato(Envelope(Harmonic(rate, seconds, 225, 4), 0.1, 0.1), rate, 4.5, 0.015)
	third := Envelope(Tone(rate, seconds*0.8, 440, 660, 880), 0.2, 0.3)

	return []Sample{
		{Name: "sample_audio_1.wav", Samples: first},
		{Name: "sample_audio_2.wav", Samples: second},
		{Name: "sample_audio_3_different.wav", Samples: third},
	}
}
