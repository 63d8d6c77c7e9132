// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrEmptySignal is returned when decoding produced no samples.
	ErrEmptySignal = errors.New("audio: decoded signal is empty")

	// ErrSilentSignal is returned when every sample is zero and the signal cannot be normalized.
	ErrSilentSignal = errors.New("audio: signal is silent, cannot normalize")

	// ErrNonFiniteSample is returned when a decoded sample is NaN or infinite.
	ErrNonFiniteSample = errors.New("audio: signal contains non-finite sample")

	ErrInvalidSampleRate = errors.New("audio: sample rate must be positive")
	ErrUnknownFormat     = errors.New("audio: unknown audio format")
)
