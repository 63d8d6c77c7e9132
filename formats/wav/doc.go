// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files and writes 16-bit PCM WAV.
//
// Decoding is done by github.com/go-audio/wav. 8, 16, 24 and 32-bit PCM
// (format tag 1 or WAVE_FORMAT_EXTENSIBLE) are accepted; floating point
// and compressed encodings fail with ErrUnsupportedEncoding.
//
//	src, err := wav.Decoder{}.Decode(file)
//
// WriteWAV16 emits a canonical 44-byte header file to any io.Writer:
//
//	err := wav.WriteWAV16(w, 22050, 1, samples)
package wav
