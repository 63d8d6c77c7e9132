// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files using github.com/hajimehoshi/go-mp3.
//
// go-mp3 always renders two channels, so every Source from this package is
// stereo at the stream's sample rate; the loader mixes it back to mono.
//
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
