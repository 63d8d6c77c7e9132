// SPDX-License-Identifier: EPL-2.0

package similarity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ik5/audsim/features"
	"github.com/ik5/audsim/utils"
)

// Breakdown holds the per-dimension percentages, each in [0, 100].
type Breakdown struct {
	MFCC                  float64 `json:"mfcc_similarity"`
	Spectral              float64 `json:"spectral_similarity"`
	FrequencyDistribution float64 `json:"frequency_distribution_similarity"`
	TemporalPattern       float64 `json:"temporal_pattern_similarity"`
}

// Engine compares FeatureSets. It holds only immutable options and is safe
// for concurrent use.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

func (e *Engine) Options() Options { return e.opts }

// CheckCompatible reports a *DimensionMismatchError when a and b were not
// extracted with the same configuration.
func CheckCompatible(a, b *features.FeatureSet) error {
	checks := []struct {
		name string
		a, b int
	}{
		{"sample rate", a.SampleRate, b.SampleRate},
		{"mfcc coefficients", a.Shape.Coefficients, b.Shape.Coefficients},
		{"mel bands", a.Shape.MelBands, b.Shape.MelBands},
		{"psd bins", a.Shape.FreqBins, b.Shape.FreqBins},
	}
	for _, c := range checks {
		if c.a != c.b {
			return &DimensionMismatchError{Dimension: c.name, A: c.a, B: c.b}
		}
	}
	return nil
}

// Compare scores a against b on every dimension. Shapes are checked before
// any metric runs.
func (e *Engine) Compare(a, b *features.FeatureSet) (Breakdown, error) {
	if err := a.Validate(); err != nil {
		return Breakdown{}, fmt.Errorf("first feature set: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Breakdown{}, fmt.Errorf("second feature set: %w", err)
	}
	if err := CheckCompatible(a, b); err != nil {
		return Breakdown{}, err
	}

	var (
		out Breakdown
		err error
	)
	if out.MFCC, err = e.MFCC(a, b); err != nil {
		return Breakdown{}, fmt.Errorf("mfcc: %w", err)
	}
	if out.Spectral, err = e.Spectral(a, b); err != nil {
		return Breakdown{}, fmt.Errorf("spectral: %w", err)
	}
	if out.FrequencyDistribution, err = e.FrequencyDistribution(a, b); err != nil {
		return Breakdown{}, fmt.Errorf("frequency distribution: %w", err)
	}
	if out.TemporalPattern, err = e.TemporalPattern(a, b); err != nil {
		return Breakdown{}, fmt.Errorf("temporal pattern: %w", err)
	}
	return out, nil
}

// Score is the weighted mean of the breakdown.
func (e *Engine) Score(b Breakdown) float64 {
	values := []float64{b.MFCC, b.Spectral, b.FrequencyDistribution, b.TemporalPattern}
	return clampPercent(stat.Mean(values, e.opts.Weights.slice()))
}

func (e *Engine) dtwOptions() *DTWOptions {
	return &DTWOptions{Window: e.opts.Window, MemoryMode: RollingArray}
}

// MFCC aligns the MFCC frame sequences with DTW and maps the average
// per-step Euclidean distance through ExpDecay.
func (e *Engine) MFCC(a, b *features.FeatureSet) (float64, error) {
	fa := decimate(a.MFCCFrames(), e.opts.MaxFrames)
	fb := decimate(b.MFCCFrames(), e.opts.MaxFrames)
	if len(fa[0]) != len(fb[0]) {
		return 0, &DimensionMismatchError{Dimension: "mfcc coefficients", A: len(fa[0]), B: len(fb[0])}
	}

	al, err := DTW(len(fa), len(fb), EuclideanCost(fa, fb), e.dtwOptions())
	if err != nil {
		return 0, err
	}
	return ExpDecay(al.Average(), e.opts.MFCCScale), nil
}

// Spectral resamples both centroid sequences to CentroidPoints and maps
// their cosine to a percentage.
func (e *Engine) Spectral(a, b *features.FeatureSet) (float64, error) {
	ca := utils.ResampleLinear(a.Centroid, e.opts.CentroidPoints)
	cb := utils.ResampleLinear(b.Centroid, e.opts.CentroidPoints)

	c, err := Cosine(ca, cb)
	if err != nil {
		return 0, err
	}
	return CosineToPercent(c), nil
}

// FrequencyDistribution maps the cosine of the two PSDs to a percentage.
func (e *Engine) FrequencyDistribution(a, b *features.FeatureSet) (float64, error) {
	c, err := Cosine(a.PSD, b.PSD)
	if err != nil {
		return 0, err
	}
	return CosineToPercent(c), nil
}

// TemporalPattern aligns the RMS envelopes, each scaled to its own peak,
// with DTW and maps the average absolute difference through ExpDecay.
func (e *Engine) TemporalPattern(a, b *features.FeatureSet) (float64, error) {
	ea := decimate(envelope(a.RMS), e.opts.MaxFrames)
	eb := decimate(envelope(b.RMS), e.opts.MaxFrames)

	al, err := DTW(len(ea), len(eb), AbsCost(ea, eb), e.dtwOptions())
	if err != nil {
		return 0, err
	}
	return ExpDecay(al.Average(), e.opts.TemporalScale), nil
}

func envelope(rms []float64) []float64 {
	out := append([]float64(nil), rms...)
	if peak := floats.Max(out); peak > 0 {
		floats.Scale(1/peak, out)
	}
	return out
}

// decimate keeps every k-th element so that at most limit remain.
func decimate[T any](x []T, limit int) []T {
	if limit <= 0 || len(x) <= limit {
		return x
	}
	step := int(math.Ceil(float64(len(x)) / float64(limit)))
	out := make([]T, 0, limit)
	for i := 0; i < len(x); i += step {
		out = append(out, x[i])
	}
	return out
}
