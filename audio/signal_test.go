// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewSignal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []float64
		rate    int
		wantErr error
	}{
		{"valid", []float64{0.1, -0.5, 0.25}, 22050, nil},
		{"empty", nil, 22050, ErrEmptySignal},
		{"silent", []float64{0, 0, 0}, 22050, ErrSilentSignal},
		{"nan", []float64{0.1, math.NaN()}, 22050, ErrNonFiniteSample},
		{"inf", []float64{math.Inf(-1), 0.2}, 22050, ErrNonFiniteSample},
		{"zero rate", []float64{0.1}, 0, ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewSignal(tt.samples, tt.rate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSignal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSignal_Normalizes(t *testing.T) {
	t.Parallel()

	in := []float64{0.1, -0.5, 0.25}
	s, err := NewSignal(in, 100)
	if err != nil {
		t.Fatalf("NewSignal() error = %v", err)
	}

	if s.Peak() != 1 {
		t.Errorf("Peak() = %v, want 1", s.Peak())
	}
	want := []float64{0.2, -1, 0.5}
	for i, v := range s.Samples() {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("Samples()[%d] = %v, want %v", i, v, want[i])
		}
	}
	if in[1] != -0.5 {
		t.Error("NewSignal() modified its input")
	}
	if s.Len() != 3 || s.SampleRate() != 100 {
		t.Errorf("Len(), SampleRate() = %d, %d", s.Len(), s.SampleRate())
	}
	if s.Duration() != 30*time.Millisecond {
		t.Errorf("Duration() = %v, want 30ms", s.Duration())
	}
}
