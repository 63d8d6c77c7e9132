// SPDX-License-Identifier: EPL-2.0

package similarity

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch = errors.New("feature dimensions do not match")
	ErrInvalidWeights    = errors.New("invalid similarity weights")
	ErrInvalidOptions    = errors.New("invalid similarity options")
	ErrEmptySequence     = errors.New("empty sequence")
)

// DimensionMismatchError reports which dimension of two feature sets
// differs. It matches ErrDimensionMismatch under errors.Is.
type DimensionMismatchError struct {
	Dimension string
	A, B      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: %s %d != %d", ErrDimensionMismatch, e.Dimension, e.A, e.B)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
