// SPDX-License-Identifier: EPL-2.0

package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Cosine returns the cosine similarity of a and b, clamped to [-1, 1].
// Identical vectors give exactly 1. Two all-zero vectors are identical;
// one all-zero vector against a non-zero one gives 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Dimension: "vector length", A: len(a), B: len(b)}
	}
	if len(a) == 0 {
		return 0, ErrEmptySequence
	}
	if floats.Equal(a, b) {
		return 1, nil
	}

	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, nil
	}

	c := floats.Dot(a, b) / (na * nb)
	return math.Max(-1, math.Min(1, c)), nil
}
