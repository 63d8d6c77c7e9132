// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// HeaderSize is the number of leading bytes Detect needs to recognise a container.
const HeaderSize = 12

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg", "aiff").
type Registry struct {
	codecs  map[string]Decoder
	aliases map[string]string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		aliases: map[string]string{
			"wave":   "wav",
			"aif":    "aiff",
			"aifc":   "aiff",
			"oga":    "ogg",
			"vorbis": "ogg",
			"mpeg":   "mp3",
		},
		mtx: &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[r.canonical(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[r.canonical(format)]
	return d, ok
}

// Formats lists the registered format keys.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	return out
}

// Resolve picks a decoder for a named input. The extension of name is
// tried first; when it is missing or unknown the header bytes are sniffed.
func (r *Registry) Resolve(name string, header []byte) (Decoder, string, error) {
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		if d, ok := r.Get(ext); ok {
			return d, r.canonical(ext), nil
		}
	}

	if format, ok := Detect(header); ok {
		if d, ok := r.Get(format); ok {
			return d, format, nil
		}
	}

	return nil, "", ErrUnknownFormat
}

func (r *Registry) canonical(format string) string {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if alias, ok := r.aliases[f]; ok {
		return alias
	}
	return f
}

// Detect recognises a container from its magic bytes.
func Detect(header []byte) (string, bool) {
	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return "wav", true
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return "aiff", true
	case len(header) >= 4 && bytes.Equal(header[:4], []byte("OggS")):
		return "ogg", true
	case len(header) >= 3 && bytes.Equal(header[:3], []byte("ID3")):
		return "mp3", true
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG frame sync
		return "mp3", true
	}
	return "", false
}
