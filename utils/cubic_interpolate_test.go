// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
		tolerance      float32
	}{
		{"start returns y1", 0, 1, 2, 3, 0, 1, 0.001},
		{"end returns y2", 0, 1, 2, 3, 1, 2, 0.001},
		{"linear data stays linear", 1, 2, 3, 4, 0.25, 2.25, 0.001},
		{"symmetric crossing", -1, -0.5, 0.5, 1, 0.5, 0, 0.001},
		{"zero values", 0, 0, 0, 0, 0.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if diff := float32(math.Abs(float64(got - tt.want))); diff > tt.tolerance {
				t.Errorf("CubicInterpolate() = %v, want %v (tolerance %v)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestCubicInterpolate_SampledSine(t *testing.T) {
	t.Parallel()

	// 32 samples per period is plenty for Catmull-Rom to track a sine
	const step = 2 * math.Pi / 32
	for i := 1; i < 60; i++ {
		y := func(k int) float32 { return float32(math.Sin(float64(k) * step)) }
		got := CubicInterpolate(y(i-1), y(i), y(i+1), y(i+2), 0.5)
		want := math.Sin((float64(i) + 0.5) * step)
		if math.Abs(float64(got)-want) > 0.005 {
			t.Errorf("i=%d: CubicInterpolate() = %v, want %v", i, got, want)
		}
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	for b.Loop() {
		_ = CubicInterpolate(0.1, 0.5, 0.9, 0.3, 0.5)
	}
}
