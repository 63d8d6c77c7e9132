// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

// periodicHann is the DFT-even Hann window: the first n points of an n+1
// point symmetric window.
func periodicHann(n int) []float64 {
	return window.Hann(n + 1)[:n]
}

// paddedWindow centres a periodic Hann of winLength inside nfft zeros.
func paddedWindow(winLength, nfft int) []float64 {
	w := make([]float64, nfft)
	copy(w[(nfft-winLength)/2:], periodicHann(winLength))
	return w
}

// reflectIndex mirrors i into [0, n) without repeating the edge sample.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// magnitudes returns |STFT| as frames x bins. Frames are centred on
// multiples of the hop over a reflect-padded copy of x.
func magnitudes(x []float64, cfg Config) [][]float64 {
	nfft := cfg.NFFT
	half := nfft / 2
	frames := cfg.Frames(len(x))
	win := paddedWindow(cfg.WinLength, nfft)

	fft := fourier.NewFFT(nfft)
	buf := make([]float64, nfft)
	coeffs := make([]complex128, cfg.Bins())

	out := make([][]float64, frames)
	for f := range out {
		start := f*cfg.HopLength - half
		for i := range buf {
			buf[i] = x[reflectIndex(start+i, len(x))] * win[i]
		}
		coeffs = fft.Coefficients(coeffs, buf)

		row := make([]float64, len(coeffs))
		for k, c := range coeffs {
			row[k] = cmplx.Abs(c)
		}
		out[f] = row
	}
	return out
}

// fftFrequencies is the centre frequency of every STFT bin.
func fftFrequencies(cfg Config) []float64 {
	freqs := make([]float64, cfg.Bins())
	for k := range freqs {
		freqs[k] = float64(k) * float64(cfg.SampleRate) / float64(cfg.NFFT)
	}
	return freqs
}
