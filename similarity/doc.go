// SPDX-License-Identifier: EPL-2.0

// Package similarity scores two FeatureSets on four dimensions and
// combines them into one weighted percentage.
//
//   - mfcc: dynamic time warping over MFCC frame vectors (Euclidean cost)
//   - spectral: cosine of centroid sequences resampled to a common length
//   - frequency distribution: cosine of the Welch PSD vectors
//   - temporal pattern: dynamic time warping over peak-normalized RMS envelopes
//
// Distances become percentages through the pure mapping functions ExpDecay,
// InverseDistance and CosineToPercent.
package similarity
