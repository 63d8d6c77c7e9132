// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestReflectIndex(t *testing.T) {
	cases := map[int]int{-2: 2, -1: 1, 0: 0, 4: 4, 5: 3, 6: 2, 9: 1}
	for in, want := range cases {
		assert.Equal(t, want, reflectIndex(in, 5), "reflectIndex(%d, 5)", in)
	}
	assert.Equal(t, 0, reflectIndex(7, 1))
}

func TestPeriodicHann(t *testing.T) {
	w := periodicHann(8)
	require.Len(t, w, 8)
	assert.InDelta(t, 0, w[0], 1e-12)
	assert.InDelta(t, 1, w[4], 1e-12)
	// periodic: symmetric around n/2, not around (n-1)/2
	assert.InDelta(t, w[1], w[7], 1e-12)

	padded := paddedWindow(4, 8)
	assert.Equal(t, 0.0, padded[0])
	assert.Equal(t, 0.0, padded[7])
	assert.InDelta(t, 1, padded[4], 1e-12)
}

func TestMelScale(t *testing.T) {
	assert.InDelta(t, 15, hzToMel(1000), 1e-12)
	assert.InDelta(t, 3, hzToMel(200), 1e-12)
	for _, hz := range []float64{0, 60, 999, 1000, 4000, 11025} {
		assert.InDelta(t, hz, melToHz(hzToMel(hz)), 1e-9)
	}
}

func TestMelFilterbank(t *testing.T) {
	cfg := DefaultConfig()
	fb := melFilterbank(cfg)

	r, c := fb.Dims()
	require.Equal(t, cfg.NMels, r)
	require.Equal(t, cfg.Bins(), c)

	for m := range r {
		row := fb.RawRowView(m)
		var sum float64
		for _, v := range row {
			require.GreaterOrEqual(t, v, 0.0)
			sum += v
		}
		assert.Positive(t, sum, "filter %d is empty", m)
	}
}

func TestDCTBasis_Orthonormal(t *testing.T) {
	b := dctBasis(8, 8)

	var prod mat.Dense
	prod.Mul(b, b.T())
	assert.True(t, mat.EqualApprox(&prod, eye(8), 1e-12))

	// truncation keeps the leading rows
	trunc := dctBasis(3, 8)
	assert.Equal(t, b.RawRowView(2), trunc.RawRowView(2))
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := range n {
		m.Set(i, i, 1)
	}
	return m
}

func TestPowerToDB(t *testing.T) {
	power := mat.NewDense(1, 4, []float64{1, 0.1, 1e-12, 0})

	db := powerToDB(power, 80)
	assert.InDelta(t, 0, db.At(0, 0), 1e-12)
	assert.InDelta(t, -10, db.At(0, 1), 1e-12)
	assert.InDelta(t, -80, db.At(0, 2), 1e-12)
	assert.InDelta(t, -80, db.At(0, 3), 1e-12)

	// no floor: amin bounds silence at -100 dB
	raw := powerToDB(power, 0)
	assert.InDelta(t, -100, raw.At(0, 3), 1e-9)
}

func TestFrameDescriptors(t *testing.T) {
	freqs := []float64{0, 100, 200, 300}

	assert.Equal(t, 0.0, centroid([]float64{0, 0, 0, 0}, freqs))
	assert.InDelta(t, 200, centroid([]float64{0, 0, 3, 0}, freqs), 1e-12)
	assert.InDelta(t, 150, centroid([]float64{0, 1, 1, 0}, freqs), 1e-12)

	assert.InDelta(t, 50, bandwidth([]float64{0, 1, 1, 0}, freqs, 150), 1e-12)
	assert.Equal(t, 0.0, bandwidth([]float64{0, 0, 0, 0}, freqs, 0))

	assert.Equal(t, 200.0, rolloff([]float64{1, 1, 1, 1}, freqs, 0.6))
	assert.Equal(t, 0.0, rolloff([]float64{0, 0, 0, 0}, freqs, 0.85))
}

func TestZeroCrossingRate(t *testing.T) {
	alternating := make([]float64, 64)
	for i := range alternating {
		alternating[i] = math.Pow(-1, float64(i))
	}
	constant := make([]float64, 64)
	for i := range constant {
		constant[i] = 0.3
	}

	zcr := zeroCrossingRate(alternating, 16, 8)
	require.Len(t, zcr, 9)
	assert.InDelta(t, 15.0/16, zcr[4], 1e-12)

	for _, v := range zeroCrossingRate(constant, 16, 8) {
		assert.Equal(t, 0.0, v)
	}
}
