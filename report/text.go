// SPDX-License-Identifier: EPL-2.0

package report

import (
	"fmt"
	"io"
	"strings"
)

const textWidth = 68

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) rule(left, right string) {
	t.printf("%s%s%s\n", left, strings.Repeat("═", textWidth), right)
}

// line writes s padded to the box width. Longer text is cut.
func (t *textWriter) line(s string) {
	r := []rune(s)
	if len(r) > textWidth {
		r = r[:textWidth]
	}
	t.printf("║%s%s║\n", string(r), strings.Repeat(" ", textWidth-len(r)))
}

func (t *textWriter) percent(name string, v float64) {
	t.line(fmt.Sprintf("  %-30s %6.1f%%", name, v))
}

// Text writes the console report of r to w.
func (r Result) Text(w io.Writer) error {
	t := &textWriter{w: w}

	t.rule("╔", "╗")
	t.line(fmt.Sprintf("%*s", (textWidth+len("COMPARISON RESULTS"))/2, "COMPARISON RESULTS"))
	t.rule("╠", "╣")
	t.line("  Audio 1: " + r.GraphData.Audio1.Label)
	t.line("  Audio 2: " + r.GraphData.Audio2.Label)
	t.rule("╠", "╣")
	t.line("  SIMILARITY BREAKDOWN:")
	t.percent("├── MFCC Similarity:", r.Breakdown.MFCC)
	t.percent("├── Spectral Similarity:", r.Breakdown.Spectral)
	t.percent("├── Frequency Distribution:", r.Breakdown.FrequencyDistribution)
	t.percent("└── Temporal Pattern (DTW):", r.Breakdown.TemporalPattern)
	t.rule("╠", "╣")
	t.percent("OVERALL SIMILARITY SCORE:", r.SimilarityScore)
	t.rule("╚", "╝")
	t.printf("\n  Interpretation: %s\n", r.Interpretation)

	for _, s := range r.Summary {
		t.printf("\n  %s (%v)\n", s.Label, s.Shape)
		t.printf("    centroid   %9.1f Hz ± %.1f\n", s.Centroid.Mean, s.Centroid.Std)
		t.printf("    bandwidth  %9.1f Hz ± %.1f\n", s.Bandwidth.Mean, s.Bandwidth.Std)
		t.printf("    rolloff    %9.1f Hz ± %.1f\n", s.Rolloff.Mean, s.Rolloff.Std)
		t.printf("    rms        %9.4f ± %.4f\n", s.RMS.Mean, s.RMS.Std)
		t.printf("    zcr        %9.4f ± %.4f\n", s.ZCR.Mean, s.ZCR.Std)
		t.printf("    peak       %9.1f Hz\n", s.PeakFreqHz)
	}
	return t.err
}
