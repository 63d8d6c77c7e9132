// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melFSp       = 200.0 / 3
	melMinLogHz  = 1000.0
	melMinLogMel = melMinLogHz / melFSp
	amin         = 1e-10
)

var melLogStep = math.Log(6.4) / 27

func hzToMel(hz float64) float64 {
	if hz >= melMinLogHz {
		return melMinLogMel + math.Log(hz/melMinLogHz)/melLogStep
	}
	return hz / melFSp
}

func melToHz(mel float64) float64 {
	if mel >= melMinLogMel {
		return melMinLogHz * math.Exp(melLogStep*(mel-melMinLogMel))
	}
	return melFSp * mel
}

// melFilterbank builds NMels triangular, area-normalized filters over the
// STFT bins as an NMels x Bins matrix.
func melFilterbank(cfg Config) *mat.Dense {
	bins := cfg.Bins()
	fftFreqs := fftFrequencies(cfg)

	lo, hi := hzToMel(cfg.FMin), hzToMel(cfg.MaxFreq())
	edges := make([]float64, cfg.NMels+2)
	for i := range edges {
		edges[i] = melToHz(lo + (hi-lo)*float64(i)/float64(cfg.NMels+1))
	}

	fb := mat.NewDense(cfg.NMels, bins, nil)
	for m := range cfg.NMels {
		left, centre, right := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (right - left)
		for k, f := range fftFreqs {
			lower := (f - left) / (centre - left)
			upper := (right - f) / (right - centre)
			if w := math.Min(lower, upper); w > 0 {
				fb.Set(m, k, w*norm)
			}
		}
	}
	return fb
}

// dctBasis is the orthonormal DCT-II matrix, truncated to n rows over m inputs.
func dctBasis(n, m int) *mat.Dense {
	basis := mat.NewDense(n, m, nil)
	for k := range n {
		scale := math.Sqrt(2 / float64(m))
		if k == 0 {
			scale = math.Sqrt(1 / float64(m))
		}
		for j := range m {
			basis.Set(k, j, scale*math.Cos(math.Pi*float64(k)*(2*float64(j)+1)/float64(2*m)))
		}
	}
	return basis
}

// powerToDB converts power to decibels relative to 1, clipping everything
// more than topDB below the loudest value. topDB <= 0 disables the floor.
func powerToDB(power *mat.Dense, topDB float64) *mat.Dense {
	r, c := power.Dims()
	db := mat.NewDense(r, c, nil)
	db.Apply(func(_, _ int, v float64) float64 {
		return 10 * math.Log10(math.Max(amin, v))
	}, power)

	if topDB > 0 {
		floor := mat.Max(db) - topDB
		db.Apply(func(_, _ int, v float64) float64 {
			return math.Max(v, floor)
		}, db)
	}
	return db
}
