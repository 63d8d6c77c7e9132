// SPDX-License-Identifier: EPL-2.0

package similarity

import "math"

// ExpDecay maps a distance to 100·exp(-d/scale). 0 gives 100, +Inf gives 0.
func ExpDecay(d, scale float64) float64 {
	if math.IsNaN(d) || scale <= 0 {
		return 0
	}
	if d <= 0 {
		return 100
	}
	return clampPercent(100 * math.Exp(-d/scale))
}

// InverseDistance maps a distance to 100 / (1 + d/scale).
func InverseDistance(d, scale float64) float64 {
	if math.IsNaN(d) || scale <= 0 {
		return 0
	}
	if d <= 0 {
		return 100
	}
	if math.IsInf(d, 1) {
		return 0
	}
	return clampPercent(100 / (1 + d/scale))
}

// CosineToPercent maps a cosine in [-1, 1] linearly onto [0, 100].
func CosineToPercent(c float64) float64 {
	if math.IsNaN(c) {
		return 0
	}
	return clampPercent((c + 1) / 2 * 100)
}

func clampPercent(p float64) float64 {
	return math.Min(100, math.Max(0, p))
}
