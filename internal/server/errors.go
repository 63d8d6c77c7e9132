// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/mdobak/go-xerrors"
	"go.uber.org/zap"

	"github.com/ik5/audsim/audio"
	"github.com/ik5/audsim/features"
	"github.com/ik5/audsim/formats/aiff"
	"github.com/ik5/audsim/formats/mp3"
	"github.com/ik5/audsim/formats/vorbis"
	"github.com/ik5/audsim/formats/wav"
	"github.com/ik5/audsim/internal/pcm"
	"github.com/ik5/audsim/similarity"
)

var errBadRequest = errors.New("bad request")

var unsupported = []error{
	audio.ErrUnknownFormat,
	wav.ErrUnsupportedEncoding,
	aiff.ErrUnsupportedBitDepth,
	aiff.ErrUnsupportedAiffLayout,
	pcm.ErrUnsupportedBitDepth,
}

var invalid = []error{
	errBadRequest,
	audio.ErrEmptySignal,
	audio.ErrSilentSignal,
	audio.ErrNonFiniteSample,
	features.ErrInsufficientSamples,
	similarity.ErrDimensionMismatch,
	wav.ErrNotWavFile,
	aiff.ErrNotAiffFile,
	mp3.ErrNotMP3,
	vorbis.ErrNotVorbis,
	pcm.ErrInvalidFormat,
}

// statusOf maps a pipeline error to an HTTP status.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	for _, target := range unsupported {
		if errors.Is(err, target) {
			return http.StatusUnsupportedMediaType
		}
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	id := requestIDFrom(r.Context())

	if status == http.StatusInternalServerError {
		err = xerrors.New(err)
		s.log.Error("analysis failed",
			zap.String("request_id", id),
			zap.Error(err),
			zap.String("stack", xerrors.Sprint(err)),
		)
		writeJSON(w, status, errorBody{Detail: "internal error", RequestID: id})
		return
	}

	s.log.Warn("request rejected",
		zap.String("request_id", id),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeJSON(w, status, errorBody{Detail: err.Error(), RequestID: id})
}
