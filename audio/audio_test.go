// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/audsim/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "wav"}
	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}

	if _, ok := registry.Get("flac"); ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_Aliases(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	ogg := &stubDecoder{name: "ogg"}
	aiff := &stubDecoder{name: "aiff"}
	registry.Register("WAV", wav)
	registry.Register(".ogg", ogg)
	registry.Register("aiff", aiff)

	tests := []struct {
		format string
		want   Decoder
	}{
		{"wav", wav},
		{"wave", wav},
		{"vorbis", ogg},
		{"oga", ogg},
		{"aif", aiff},
		{"AIFC", aiff},
	}

	for _, tt := range tests {
		got, ok := registry.Get(tt.format)
		if !ok || got != tt.want {
			t.Errorf("Registry.Get(%q) = %v, %v; want %v", tt.format, got, ok, tt.want)
		}
	}

	formats := registry.Formats()
	slices.Sort(formats)
	if !slices.Equal(formats, []string{"aiff", "ogg", "wav"}) {
		t.Errorf("Registry.Formats() = %v", formats)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register("wav", &stubDecoder{name: "wav"})
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get("wav")
			_ = i
		}()
	}
	wg.Wait()

	if _, ok := registry.Get("wav"); !ok {
		t.Error("decoder missing after concurrent registration")
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   string
		ok     bool
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVE"), "wav", true},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFF"), "aiff", true},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFC"), "aiff", true},
		{"ogg", []byte("OggS\x00\x02"), "ogg", true},
		{"mp3 id3", []byte("ID3\x04\x00"), "mp3", true},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, "mp3", true},
		{"riff but not wave", []byte("RIFF\x24\x00\x00\x00AVI "), "", false},
		{"text", []byte("hello world!"), "", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Detect(tt.header)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Detect() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	mp3 := &stubDecoder{name: "mp3"}
	registry.Register("wav", wav)
	registry.Register("mp3", mp3)

	// extension wins
	d, format, err := registry.Resolve("take1.MP3", []byte("RIFF\x24\x00\x00\x00WAVE"))
	if err != nil || d != mp3 || format != "mp3" {
		t.Errorf("Resolve(ext) = %v, %q, %v", d, format, err)
	}

	// unknown extension falls back to sniffing
	d, format, err = registry.Resolve("upload.bin", []byte("RIFF\x24\x00\x00\x00WAVE"))
	if err != nil || d != wav || format != "wav" {
		t.Errorf("Resolve(sniff) = %v, %q, %v", d, format, err)
	}

	_, _, err = registry.Resolve("notes.txt", []byte("plain text.."))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Resolve(unknown) error = %v, want ErrUnknownFormat", err)
	}
}
