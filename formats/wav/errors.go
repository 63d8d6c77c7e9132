// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrUnsupportedEncoding is returned for compressed or floating point WAV data.
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrPartialFrame        = errors.New("sample count is not a multiple of the channel count")
)
