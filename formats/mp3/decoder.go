// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audsim/audio"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM
const (
	channels    = 2
	frameBytes  = channels * 2
	maxNoDataRd = 100
)

type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
	// bytes of an incomplete frame carried to the next read
	carry int
	eof   bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}

	frames := len(dst) / channels
	if frames == 0 {
		return 0, nil
	}

	want := frames * frameBytes
	if cap(s.buf) < want {
		buf := make([]byte, want)
		copy(buf, s.buf[:s.carry])
		s.buf = buf
	}
	s.buf = s.buf[:want]

	have := s.carry
	var err error
	for empty := 0; have < frameBytes && err == nil; {
		var n int
		n, err = s.dec.Read(s.buf[have:])
		have += n
		if n == 0 {
			if empty++; empty >= maxNoDataRd {
				err = io.ErrNoProgress
			}
		}
	}
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("mp3: %w", err)
	}

	whole := have - have%frameBytes
	samples := whole / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}

	s.carry = copy(s.buf, s.buf[whole:have])

	if err == io.EOF {
		s.eof = true
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder decodes MPEG-1/2 Layer III streams with github.com/hajimehoshi/go-mp3.
// Output is always stereo; mono files are duplicated onto both channels.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}
	if dec.SampleRate() <= 0 {
		return nil, ErrNotMP3
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
