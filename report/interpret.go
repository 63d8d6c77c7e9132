// SPDX-License-Identifier: EPL-2.0

package report

// Band is one interpretation range of the overall score.
type Band struct {
	Min   float64 // inclusive lower bound
	Label string
	Text  string
}

// Bands are ordered from the highest lower bound down and together cover
// [0, 100] without overlap.
var Bands = []Band{
	{90, "Very High", "The audio recordings are extremely similar"},
	{75, "High", "The audio recordings share strong similarities"},
	{60, "Moderate", "The audio recordings have noticeable similarities"},
	{40, "Low", "The audio recordings have some similarities"},
	{20, "Very Low", "The audio recordings are quite different"},
	{0, "Minimal", "The audio recordings appear to be very different"},
}

// BandOf returns the band score falls in. Scores below 0 (or NaN) fall in
// the last band.
func BandOf(score float64) Band {
	for _, b := range Bands {
		if score >= b.Min {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// Interpret renders the band of score as "Label - Text".
func Interpret(score float64) string {
	b := BandOf(score)
	return b.Label + " - " + b.Text
}
