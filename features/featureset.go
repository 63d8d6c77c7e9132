// SPDX-License-Identifier: EPL-2.0

package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Shape is the explicit size metadata carried with every FeatureSet.
type Shape struct {
	Coefficients int `json:"coefficients"`
	MelBands     int `json:"mel_bands"`
	Frames       int `json:"frames"`
	FreqBins     int `json:"freq_bins"`
}

func (s Shape) String() string {
	return fmt.Sprintf("%d coefficients, %d mel bands, %d frames, %d bins",
		s.Coefficients, s.MelBands, s.Frames, s.FreqBins)
}

// FeatureSet is the extracted representation of one signal.
type FeatureSet struct {
	Shape      Shape
	SampleRate int

	MFCC *mat.Dense // Coefficients x Frames
	Mel  *mat.Dense // MelBands x Frames, power

	Centroid  []float64 // Hz
	Bandwidth []float64 // Hz
	Rolloff   []float64 // Hz
	RMS       []float64
	ZCR       []float64 // crossings per sample

	PSD   []float64
	Freqs []float64 // Hz, strictly increasing from 0 to Nyquist
}

// Validate checks that the data agrees with Shape.
func (fs *FeatureSet) Validate() error {
	s := fs.Shape
	if s.Frames <= 0 || s.Coefficients <= 0 || s.MelBands <= 0 || s.FreqBins <= 0 {
		return fmt.Errorf("%w: empty shape (%v)", ErrInvalidFeatureSet, s)
	}

	if fs.MFCC == nil || fs.Mel == nil {
		return fmt.Errorf("%w: missing matrix", ErrInvalidFeatureSet)
	}
	if r, c := fs.MFCC.Dims(); r != s.Coefficients || c != s.Frames {
		return fmt.Errorf("%w: mfcc is %dx%d, shape says %dx%d", ErrInvalidFeatureSet, r, c, s.Coefficients, s.Frames)
	}
	if r, c := fs.Mel.Dims(); r != s.MelBands || c != s.Frames {
		return fmt.Errorf("%w: mel is %dx%d, shape says %dx%d", ErrInvalidFeatureSet, r, c, s.MelBands, s.Frames)
	}

	perFrame := map[string][]float64{
		"centroid":  fs.Centroid,
		"bandwidth": fs.Bandwidth,
		"rolloff":   fs.Rolloff,
		"rms":       fs.RMS,
		"zcr":       fs.ZCR,
	}
	for name, v := range perFrame {
		if len(v) != s.Frames {
			return fmt.Errorf("%w: %s has %d frames, want %d", ErrInvalidFeatureSet, name, len(v), s.Frames)
		}
	}

	if len(fs.PSD) != s.FreqBins || len(fs.Freqs) != s.FreqBins {
		return fmt.Errorf("%w: psd/freqs have %d/%d bins, want %d", ErrInvalidFeatureSet, len(fs.PSD), len(fs.Freqs), s.FreqBins)
	}
	for i := 1; i < len(fs.Freqs); i++ {
		if fs.Freqs[i] <= fs.Freqs[i-1] {
			return fmt.Errorf("%w: freqs not strictly increasing at bin %d", ErrInvalidFeatureSet, i)
		}
	}

	return nil
}

// MFCCFrames returns the MFCC matrix as one coefficient vector per frame.
func (fs *FeatureSet) MFCCFrames() [][]float64 {
	t := mat.DenseCopyOf(fs.MFCC.T())
	frames := make([][]float64, fs.Shape.Frames)
	for i := range frames {
		frames[i] = t.RawRowView(i)
	}
	return frames
}

// MFCCMeans is the mean of every coefficient over time.
func (fs *FeatureSet) MFCCMeans() []float64 {
	means := make([]float64, fs.Shape.Coefficients)
	for i := range means {
		means[i] = stat.Mean(fs.MFCC.RawRowView(i), nil)
	}
	return means
}
