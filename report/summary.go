// SPDX-License-Identifier: EPL-2.0

package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ik5/audsim/features"
)

// Stat is the mean and sample standard deviation of a per-frame feature.
type Stat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

func statOf(x []float64) Stat {
	if len(x) == 0 {
		return Stat{}
	}
	if len(x) == 1 {
		return Stat{Mean: x[0]}
	}
	mean, std := stat.MeanStdDev(x, nil)
	return Stat{Mean: mean, Std: std}
}

// Summary describes the features of one input.
type Summary struct {
	Label      string         `json:"label"`
	Shape      features.Shape `json:"shape"`
	MFCCMeans  []float64      `json:"mfcc_means"`
	Centroid   Stat           `json:"spectral_centroid"`
	Bandwidth  Stat           `json:"spectral_bandwidth"`
	Rolloff    Stat           `json:"spectral_rolloff"`
	RMS        Stat           `json:"rms"`
	ZCR        Stat           `json:"zero_crossing_rate"`
	PeakFreqHz float64        `json:"peak_frequency_hz"`
}

// Summarize computes the Summary of in. PeakFreqHz is the frequency of the
// strongest PSD bin.
func Summarize(in Input) Summary {
	fs := in.Features
	s := Summary{
		Label:     in.Label,
		Shape:     fs.Shape,
		MFCCMeans: fs.MFCCMeans(),
		Centroid:  statOf(fs.Centroid),
		Bandwidth: statOf(fs.Bandwidth),
		Rolloff:   statOf(fs.Rolloff),
		RMS:       statOf(fs.RMS),
		ZCR:       statOf(fs.ZCR),
	}

	var peak float64
	for i, p := range fs.PSD {
		if p > peak {
			peak = p
			s.PeakFreqHz = fs.Freqs[i]
		}
	}
	return s
}
