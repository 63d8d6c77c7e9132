// SPDX-License-Identifier: EPL-2.0

package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ik5/audsim/audio"
)

// Extractor computes FeatureSets with one fixed Config. The filterbank and
// DCT basis are built once; FFT plans are per call. An Extractor is safe
// for concurrent use.
type Extractor struct {
	cfg      Config
	melBasis *mat.Dense // NMels x Bins
	dct      *mat.Dense // NMFCC x NMels
	freqs    []float64
}

func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		cfg:      cfg,
		melBasis: melFilterbank(cfg),
		dct:      dctBasis(cfg.NMFCC, cfg.NMels),
		freqs:    fftFrequencies(cfg),
	}, nil
}

func (e *Extractor) Config() Config { return e.cfg }

// Extract computes every feature of sig.
func (e *Extractor) Extract(sig audio.Signal) (*FeatureSet, error) {
	if sig.SampleRate() != e.cfg.SampleRate {
		return nil, fmt.Errorf("%w: %d Hz, want %d Hz", ErrSampleRateMismatch, sig.SampleRate(), e.cfg.SampleRate)
	}
	if sig.Len() < e.cfg.WinLength {
		return nil, fmt.Errorf("%w: %d samples, need %d", ErrInsufficientSamples, sig.Len(), e.cfg.WinLength)
	}

	x := sig.Samples()
	mags := magnitudes(x, e.cfg)
	frames := len(mags)
	bins := e.cfg.Bins()

	power := mat.NewDense(bins, frames, nil)
	centroids := make([]float64, frames)
	bandwidths := make([]float64, frames)
	rolloffs := make([]float64, frames)
	for f, mag := range mags {
		for k, m := range mag {
			power.Set(k, f, m*m)
		}
		centroids[f] = centroid(mag, e.freqs)
		bandwidths[f] = bandwidth(mag, e.freqs, centroids[f])
		rolloffs[f] = rolloff(mag, e.freqs, e.cfg.RolloffPercent)
	}

	var mel mat.Dense
	mel.Mul(e.melBasis, power)

	var mfcc mat.Dense
	mfcc.Mul(e.dct, powerToDB(&mel, e.cfg.TopDB))

	psd, psdFreqs := welch(x, e.cfg)

	fs := &FeatureSet{
		Shape: Shape{
			Coefficients: e.cfg.NMFCC,
			MelBands:     e.cfg.NMels,
			Frames:       frames,
			FreqBins:     len(psd),
		},
		SampleRate: e.cfg.SampleRate,
		MFCC:       &mfcc,
		Mel:        &mel,
		Centroid:   centroids,
		Bandwidth:  bandwidths,
		Rolloff:    rolloffs,
		RMS:        audio.FrameRMS(x, e.cfg.NFFT, e.cfg.HopLength),
		ZCR:        zeroCrossingRate(x, e.cfg.NFFT, e.cfg.HopLength),
		PSD:        psd,
		Freqs:      psdFreqs,
	}
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	return fs, nil
}
