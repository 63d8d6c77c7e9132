// SPDX-License-Identifier: EPL-2.0

package utils

// ResampleLinear stretches or squeezes x to exactly n points by linear
// interpolation. The first and last points are kept. A single-point input
// is repeated; an empty input or n <= 0 returns nil.
func ResampleLinear(x []float64, n int) []float64 {
	if len(x) == 0 || n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if len(x) == 1 || n == 1 {
		for i := range out {
			out[i] = x[0]
		}
		return out
	}

	step := float64(len(x)-1) / float64(n-1)
	last := len(x) - 1
	for i := range out {
		pos := float64(i) * step
		lo := int(pos)
		if lo >= last {
			out[i] = x[last]
			continue
		}
		frac := pos - float64(lo)
		out[i] = x[lo]*(1-frac) + x[lo+1]*frac
	}
	return out
}

// Decimate picks n evenly spaced indices out of length, always keeping the
// first and last. When length <= n every index is returned.
func Decimate(length, n int) []int {
	if length <= 0 || n <= 0 {
		return nil
	}
	if length <= n {
		idx := make([]int, length)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	if n == 1 {
		return []int{0}
	}

	idx := make([]int, n)
	step := float64(length-1) / float64(n-1)
	for i := range idx {
		idx[i] = int(float64(i)*step + 0.5)
	}
	return idx
}
