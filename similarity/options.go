// SPDX-License-Identifier: EPL-2.0

package similarity

import (
	"fmt"
	"math"
)

// Weights are the share of each dimension in the aggregate score. They must
// be non-negative and sum to 1.
type Weights struct {
	MFCC      float64 `json:"mfcc"`
	Spectral  float64 `json:"spectral"`
	Frequency float64 `json:"frequency_distribution"`
	Temporal  float64 `json:"temporal_pattern"`
}

// DefaultWeights favour timbre (MFCC) and weigh the temporal pattern lowest.
func DefaultWeights() Weights {
	return Weights{MFCC: 0.35, Spectral: 0.25, Frequency: 0.20, Temporal: 0.20}
}

func (w Weights) slice() []float64 {
	return []float64{w.MFCC, w.Spectral, w.Frequency, w.Temporal}
}

func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w.slice() {
		s += v
	}
	return s
}

const weightTolerance = 1e-9

func (w Weights) Validate() error {
	for _, v := range w.slice() {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: negative weight in %+v", ErrInvalidWeights, w)
		}
	}
	if s := w.Sum(); math.Abs(s-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, s)
	}
	return nil
}

// Options tune the engine. Scales are in the unit of the distance they map.
type Options struct {
	Weights Weights

	// MFCCScale is the average per-step MFCC distance that maps to 100/e percent.
	MFCCScale float64
	// TemporalScale is the same for the peak-normalized RMS envelope.
	TemporalScale float64
	// CentroidPoints is the common length centroid sequences are resampled to.
	CentroidPoints int

	// Window is a Sakoe-Chiba band half width in frames, 0 for none.
	Window int
	// MaxFrames decimates longer frame sequences before alignment, 0 for none.
	MaxFrames int
}

func DefaultOptions() Options {
	return Options{
		Weights:        DefaultWeights(),
		MFCCScale:      50,
		TemporalScale:  0.25,
		CentroidPoints: 100,
	}
}

func (o Options) Validate() error {
	if err := o.Weights.Validate(); err != nil {
		return err
	}
	switch {
	case !(o.MFCCScale > 0) || !(o.TemporalScale > 0):
		return fmt.Errorf("%w: scales must be positive", ErrInvalidOptions)
	case o.CentroidPoints < 2:
		return fmt.Errorf("%w: centroid points %d", ErrInvalidOptions, o.CentroidPoints)
	case o.Window < 0 || o.MaxFrames < 0:
		return fmt.Errorf("%w: negative window or frame limit", ErrInvalidOptions)
	}
	return nil
}
