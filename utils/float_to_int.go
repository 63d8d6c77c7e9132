// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float64ToInt16 converts a sample in [-1, 1] to 16-bit PCM. Values outside
// the range are clamped; NaN maps to 0. The negative side scales by 32768
// so that -1 reaches math.MinInt16.
func Float64ToInt16(x float64) int16 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= 1:
		return math.MaxInt16
	case x <= -1:
		return math.MinInt16
	case x < 0:
		return int16(math.Round(x * 32768))
	default:
		return int16(math.Round(x * 32767))
	}
}

// Float64sToInt16 converts a whole buffer with Float64ToInt16.
func Float64sToInt16(xs []float64) []int16 {
	out := make([]int16, len(xs))
	for i, x := range xs {
		out[i] = Float64ToInt16(x)
	}
	return out
}
