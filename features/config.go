// SPDX-License-Identifier: EPL-2.0

package features

import "fmt"

// Config is the fixed analysis configuration. Both signals of a comparison
// must be extracted with the same Config.
type Config struct {
	SampleRate int // Hz
	NFFT       int
	WinLength  int // <= NFFT; the window is zero padded to NFFT
	HopLength  int

	NMFCC int
	NMels int
	FMin  float64 // lowest mel filter edge, Hz
	FMax  float64 // highest mel filter edge, Hz; 0 means Nyquist
	TopDB float64 // dynamic range kept below the loudest mel bin

	PSDSegment int // Welch segment length; the PSD has PSDSegment/2+1 bins
	PSDOverlap int

	RolloffPercent float64
}

func DefaultConfig() Config {
	return Config{
		SampleRate:     22050,
		NFFT:           2048,
		WinLength:      2048,
		HopLength:      512,
		NMFCC:          13,
		NMels:          128,
		TopDB:          80,
		PSDSegment:     2048,
		PSDOverlap:     1024,
		RolloffPercent: 0.85,
	}
}

func (c Config) Validate() error {
	nyquist := float64(c.SampleRate) / 2

	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.NFFT < 2 || c.NFFT%2 != 0:
		return fmt.Errorf("%w: nfft %d must be even and >= 2", ErrInvalidConfig, c.NFFT)
	case c.WinLength <= 0 || c.WinLength > c.NFFT:
		return fmt.Errorf("%w: window length %d outside (0, %d]", ErrInvalidConfig, c.WinLength, c.NFFT)
	case c.HopLength <= 0:
		return fmt.Errorf("%w: hop length %d", ErrInvalidConfig, c.HopLength)
	case c.NMels <= 0:
		return fmt.Errorf("%w: %d mel bands", ErrInvalidConfig, c.NMels)
	case c.NMFCC <= 0 || c.NMFCC > c.NMels:
		return fmt.Errorf("%w: %d coefficients for %d mel bands", ErrInvalidConfig, c.NMFCC, c.NMels)
	case c.FMin < 0 || c.FMin >= c.MaxFreq() || c.MaxFreq() > nyquist:
		return fmt.Errorf("%w: mel range %v..%v Hz", ErrInvalidConfig, c.FMin, c.MaxFreq())
	case c.TopDB < 0:
		return fmt.Errorf("%w: top dB %v", ErrInvalidConfig, c.TopDB)
	case c.PSDSegment < 2 || c.PSDOverlap < 0 || c.PSDOverlap >= c.PSDSegment:
		return fmt.Errorf("%w: psd segment %d overlap %d", ErrInvalidConfig, c.PSDSegment, c.PSDOverlap)
	case c.RolloffPercent <= 0 || c.RolloffPercent >= 1:
		return fmt.Errorf("%w: rolloff percent %v", ErrInvalidConfig, c.RolloffPercent)
	}
	return nil
}

// MaxFreq is FMax, or Nyquist when FMax is unset.
func (c Config) MaxFreq() float64 {
	if c.FMax > 0 {
		return c.FMax
	}
	return float64(c.SampleRate) / 2
}

// Frames is the number of analysis frames for n samples.
func (c Config) Frames(n int) int {
	return 1 + n/c.HopLength
}

// Bins is the number of STFT frequency bins.
func (c Config) Bins() int {
	return c.NFFT/2 + 1
}
