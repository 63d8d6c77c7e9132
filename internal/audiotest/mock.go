// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests. The sources
// satisfy audio.Source without importing the audio package.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// MockSource renders a Waveform frame by frame.
type MockSource struct {
	rate, channels int
	frames, pos    int
	wave           Waveform
	closed         bool
}

func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{rate: sampleRate, channels: channels, frames: frames, wave: wave}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource puts the same sine on every channel.
func NewSineSource(sampleRate, channels, frames int, hz float64) *MockSource {
	step := 2 * math.Pi * hz / float64(sampleRate)
	return NewMockSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(step * float64(i)))
	})
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds to the first frame.
func (m *MockSource) Reset() { m.pos = 0 }

// ReadSamples writes whole frames only and returns io.EOF together with the
// last frames.
func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	left := m.frames - m.pos
	if left <= 0 {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, left)
	out := dst[:n*m.channels]
	for k := range out {
		out[k] = m.wave(m.pos+k/m.channels, k%m.channels)
	}
	m.pos += n

	if m.pos == m.frames {
		return len(out), io.EOF
	}
	return len(out), nil
}
