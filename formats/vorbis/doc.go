// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files using github.com/jfreymuth/oggvorbis.
// Samples come out as interleaved float32 at the stream's own rate and
// channel count.
//
//	src, err := vorbis.Decoder{}.Decode(file)
package vorbis
