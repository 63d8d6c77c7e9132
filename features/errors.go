// SPDX-License-Identifier: EPL-2.0

package features

import "errors"

var (
	// ErrInsufficientSamples is returned for signals shorter than one analysis window.
	ErrInsufficientSamples = errors.New("signal shorter than one analysis window")
	ErrSampleRateMismatch  = errors.New("signal sample rate differs from analysis sample rate")
	ErrInvalidConfig       = errors.New("invalid feature configuration")
	ErrInvalidFeatureSet   = errors.New("inconsistent feature set")
)
