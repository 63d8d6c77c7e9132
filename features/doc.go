// SPDX-License-Identifier: EPL-2.0

// Package features derives the numeric representations two signals are
// compared on: an MFCC matrix, a mel spectrogram, per-frame spectral
// descriptors (centroid, bandwidth, rolloff, RMS, zero-crossing rate) and a
// Welch power spectral density.
//
// All frame-indexed features share one framing: windows of NFFT samples
// centred every HopLength samples on a reflect-padded signal, which gives
// 1 + len/HopLength frames. The analysis Config is an immutable value; two
// FeatureSets are only comparable when they were produced with the same one.
package features
