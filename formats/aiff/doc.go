// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF (and AIFF-C "NONE") files using
// github.com/go-audio/aiff. Signed PCM at 8, 16, 24 and 32 bit is supported,
// any channel count and sample rate. Samples are delivered as float32 in
// [-1, 1].
//
//	src, err := aiff.Decoder{}.Decode(file)
package aiff
