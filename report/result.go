// SPDX-License-Identifier: EPL-2.0

package report

import (
	"github.com/ik5/audsim/features"
	"github.com/ik5/audsim/similarity"
	"github.com/ik5/audsim/utils"
)

// GraphPoints is the maximum number of PSD bins per plotted series.
const GraphPoints = 200

// Input is one side of a comparison.
type Input struct {
	Label    string
	Features *features.FeatureSet
}

// Series is a labelled PSD curve.
type Series struct {
	Label string    `json:"label"`
	Freqs []float64 `json:"freqs"`
	PSD   []float64 `json:"psd"`
}

type GraphData struct {
	Audio1 Series `json:"audio1"`
	Audio2 Series `json:"audio2"`
}

// Result is the outcome of a comparison.
type Result struct {
	SimilarityScore float64              `json:"similarity_score"`
	Breakdown       similarity.Breakdown `json:"breakdown"`
	Interpretation  string               `json:"interpretation"`
	GraphData       GraphData            `json:"graph_data"`
	Summary         []Summary            `json:"summary,omitempty"`
}

// Assemble builds the Result for score and b. The first two inputs become
// audio1 and audio2 of the graph data; every input gets a summary. Inputs
// without features are skipped.
func Assemble(score float64, b similarity.Breakdown, inputs ...Input) Result {
	r := Result{
		SimilarityScore: score,
		Breakdown:       b,
		Interpretation:  Interpret(score),
	}

	for i, in := range inputs {
		if in.Features == nil {
			continue
		}
		switch i {
		case 0:
			r.GraphData.Audio1 = graphSeries(in)
		case 1:
			r.GraphData.Audio2 = graphSeries(in)
		}
		r.Summary = append(r.Summary, Summarize(in))
	}
	return r
}

func graphSeries(in Input) Series {
	fs := in.Features
	idx := utils.Decimate(len(fs.PSD), GraphPoints)

	s := Series{
		Label: in.Label,
		Freqs: make([]float64, len(idx)),
		PSD:   make([]float64, len(idx)),
	}
	for k, i := range idx {
		s.Freqs[k] = fs.Freqs[i]
		s.PSD[k] = fs.PSD[i]
	}
	return s
}
