// SPDX-License-Identifier: EPL-2.0

// Package audio turns encoded audio into analysis-ready signals.
//
// Decoders produce a Source, a pull-based stream of interleaved float32
// samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources chain. A MonoMixer averages channels, a Resampler converts the
// rate with a windowed sinc (or Catmull-Rom cubic) kernel. A Loader runs
// the whole chain and collects the result into a Signal:
//
//	loader := audio.NewLoader(registry, audio.DefaultLoaderConfig())
//	sig, err := loader.LoadFile("take1.wav")
//
// A Signal is mono, at the loader's rate (22050 Hz by default), never
// empty, and peak-normalized so that max(|sample|) == 1. Silent or empty
// inputs fail with ErrSilentSignal or ErrEmptySignal.
//
// # Format Registry
//
// Decoders are registered by format name. Lookup accepts common aliases
// and, when a file name carries no known extension, falls back to the
// magic bytes at the start of the stream:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	dec, format, err := registry.Resolve("upload", header)
//
// # End of stream
//
// ReadSamples returns io.EOF, possibly together with the final samples,
// once the stream is exhausted.
package audio
