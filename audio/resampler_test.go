// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audsim/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		interp  Interpolation
	}{
		{"44100 to 22050 sinc", 44100, 22050, 44100, InterpolationSinc},
		{"48000 to 22050 sinc", 48000, 22050, 48001, InterpolationSinc},
		{"8000 to 22050 sinc", 8000, 22050, 8001, InterpolationSinc},
		{"44100 to 22050 cubic", 44100, 22050, 44100, InterpolationCubic},
		{"16000 to 22050 cubic", 16000, 22050, 16001, InterpolationCubic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 220)
			r := NewResampler(src, tt.dstRate, WithInterpolation(tt.interp))

			if r.SampleRate() != tt.dstRate {
				t.Errorf("Resampler.SampleRate() = %d, want %d", r.SampleRate(), tt.dstRate)
			}

			got := len(drain(t, r, 1000))
			want := int(math.Ceil(float64(tt.frames) * float64(tt.dstRate) / float64(tt.srcRate)))
			if got != want {
				t.Errorf("output frames = %d, want %d", got, want)
			}
		})
	}
}

func TestResampler_PreservesAmplitude(t *testing.T) {
	t.Parallel()

	for _, interp := range []Interpolation{InterpolationSinc, InterpolationCubic} {
		t.Run(interp.String(), func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(44100, 1, 44100, 440)
			out := drain(t, NewResampler(src, 22050, WithInterpolation(interp)), 512)

			// skip the edges
			var sum float64
			mid := out[2000 : len(out)-2000]
			for _, v := range mid {
				sum += float64(v) * float64(v)
			}
			rms := math.Sqrt(sum / float64(len(mid)))
			if math.Abs(rms-1/math.Sqrt2) > 0.01 {
				t.Errorf("rms = %v, want ~%v", rms, 1/math.Sqrt2)
			}
		})
	}
}

func TestResampler_DCGain(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(48000, 2, 4800, 0.25)
	out := drain(t, NewResampler(src, 22050), 64)

	for i, v := range out {
		if math.Abs(float64(v)-0.25) > 1e-3 {
			t.Fatalf("out[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestResampler_SameRatePassthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(22050, 1, 1000, 100)
	ref := audiotest.NewSineSource(22050, 1, 1000, 100)

	got := drain(t, NewResampler(src, 22050), 128)
	want := drain(t, ref, 128)

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampler_RemovesContentAboveNyquist(t *testing.T) {
	t.Parallel()

	// 15 kHz is above the 11025 Hz Nyquist of the target rate
	src := audiotest.NewSineSource(44100, 1, 44100, 15000)
	out := drain(t, NewResampler(src, 22050), 1024)

	var sum float64
	mid := out[2000 : len(out)-2000]
	for _, v := range mid {
		sum += float64(v) * float64(v)
	}
	if rms := math.Sqrt(sum / float64(len(mid))); rms > 0.05 {
		t.Errorf("aliased rms = %v, want < 0.05", rms)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 22050)

	_, err := r.ReadSamples(make([]float32, 3))
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_CloseClosesSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 1, 10)
	r := NewResampler(src, 22050)
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func TestInterpolation_String(t *testing.T) {
	t.Parallel()

	tests := map[Interpolation]string{
		InterpolationSinc:  "sinc",
		InterpolationCubic: "cubic",
		Interpolation(9):   "Interpolation(9)",
	}
	for in, want := range tests {
		if got := in.String(); got != want {
			t.Errorf("Interpolation(%d).String() = %q, want %q", int(in), got, want)
		}
	}
}

func TestBesselI0(t *testing.T) {
	t.Parallel()

	if got := besselI0(0); got != 1 {
		t.Errorf("besselI0(0) = %v, want 1", got)
	}
	// I0(1) = 1.2660658777520082
	if got := besselI0(1); math.Abs(got-1.2660658777520082) > 1e-12 {
		t.Errorf("besselI0(1) = %v", got)
	}
}

func BenchmarkResampler_Sinc(b *testing.B) {
	src := audiotest.NewSineSource(44100, 1, 44100, 440)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		r := NewResampler(src, 22050)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
