// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// DefaultSampleRate is the analysis rate every input is converted to.
const DefaultSampleRate = 22050

// LoaderConfig is the immutable configuration of a Loader.
type LoaderConfig struct {
	// SampleRate every signal is resampled to, in Hz.
	SampleRate int
	// Interpolation kernel used when the source rate differs.
	Interpolation Interpolation
	// BufferSize is the number of samples pulled from the pipeline per read.
	BufferSize int
}

func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		SampleRate:    DefaultSampleRate,
		Interpolation: InterpolationSinc,
		BufferSize:    4096,
	}
}

// Loader decodes audio into normalized mono Signals at a fixed rate.
//
// The processing pipeline for every input is:
//  1. Decode with the registry decoder matching the input
//  2. Mix channels to mono by averaging (MonoMixer)
//  3. Resample to the configured rate (Resampler)
//  4. Collect every sample and peak-normalize (NewSignal)
//
// A Loader holds no per-call state and is safe for concurrent use.
type Loader struct {
	cfg      LoaderConfig
	registry *Registry
}

func NewLoader(registry *Registry, cfg LoaderConfig) *Loader {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 4096
	}
	return &Loader{cfg: cfg, registry: registry}
}

func (l *Loader) Config() LoaderConfig { return l.cfg }

// Load drains src through the mono/resample pipeline. It does not close src.
func (l *Loader) Load(src Source) (Signal, error) {
	if src.SampleRate() <= 0 {
		return Signal{}, ErrInvalidSampleRate
	}

	var stream Source = NewMonoMixer(src)
	if stream.SampleRate() != l.cfg.SampleRate {
		stream = NewResampler(stream, l.cfg.SampleRate, WithInterpolation(l.cfg.Interpolation))
	}

	buf := make([]float32, l.cfg.BufferSize)
	samples := make([]float64, 0, l.cfg.SampleRate*2)

	for {
		n, err := stream.ReadSamples(buf)
		for i := range n {
			samples = append(samples, float64(buf[i]))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return Signal{}, fmt.Errorf("load: %w", err)
		}
	}

	sig, err := NewSignal(samples, l.cfg.SampleRate)
	if err != nil {
		return Signal{}, fmt.Errorf("load: %w", err)
	}
	return sig, nil
}

// LoadReader decodes r. name is only used to pick a decoder by extension;
// when it has none the leading bytes of r are sniffed.
func (l *Loader) LoadReader(r io.Reader, name string) (Signal, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(HeaderSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return Signal{}, fmt.Errorf("load %s: %w", name, err)
	}
	if len(header) == 0 {
		return Signal{}, fmt.Errorf("load %s: %w", name, ErrEmptySignal)
	}

	dec, _, err := l.registry.Resolve(name, header)
	if err != nil {
		return Signal{}, fmt.Errorf("load %s: %w", name, err)
	}

	src, err := dec.Decode(br)
	if err != nil {
		return Signal{}, fmt.Errorf("load %s: decode: %w", name, err)
	}
	defer src.Close()

	sig, err := l.Load(src)
	if err != nil {
		return Signal{}, fmt.Errorf("load %s: %w", name, err)
	}
	return sig, nil
}

// LoadFile opens, decodes and closes the file at path.
func (l *Loader) LoadFile(path string) (Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return Signal{}, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	return l.LoadReader(f, path)
}
