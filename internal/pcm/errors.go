// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrInvalidFormat       = errors.New("invalid PCM format")
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
)
