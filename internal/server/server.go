// SPDX-License-Identifier: EPL-2.0

// Package server exposes the comparison pipeline over HTTP.
//
//	POST /analyze  multipart fields file1 and file2, responds with the JSON Result
//	GET  /health   {"status":"ok"}
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ik5/audsim"
	"github.com/ik5/audsim/report"
)

// Comparer is the part of audsim.Comparator the server needs.
type Comparer interface {
	CompareReaders(ctx context.Context, in1, in2 audsim.Input) (report.Result, error)
}

// Options bound the work a single request may cause.
type Options struct {
	MaxUploadBytes int64         // whole request body
	RequestTimeout time.Duration // wall clock per /analyze request
}

func DefaultOptions() Options {
	return Options{
		MaxUploadBytes: 64 << 20,
		RequestTimeout: 2 * time.Minute,
	}
}

type Server struct {
	cmp  Comparer
	log  *zap.Logger
	opts Options
}

func New(cmp Comparer, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = def.MaxUploadBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = def.RequestTimeout
	}
	return &Server{cmp: cmp, log: log, opts: opts}
}

// Handler returns the routed handler with CORS and request IDs applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /analyze", http.TimeoutHandler(http.HandlerFunc(s.analyze), s.opts.RequestTimeout,
		`{"detail":"analysis timed out"}`))
	mux.HandleFunc("GET /health", s.health)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return s.requestID(c.Handler(mux))
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("stopped")
	return nil
}

type ctxKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		started := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.log.Debug("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(started)),
		)
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	files, err := readUploads(r, "file1", "file2")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.cmp.CompareReaders(r.Context(),
		audsim.Input{Name: files[0].name, Reader: bytes.NewReader(files[0].data)},
		audsim.Input{Name: files[1].name, Reader: bytes.NewReader(files[1].data)},
	)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.log.Info("analyzed",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("file1", files[0].name),
		zap.String("file2", files[1].name),
		zap.Float64("score", res.SimilarityScore),
	)
	writeJSON(w, http.StatusOK, res)
}

type upload struct {
	name string
	data []byte
}

// readUploads reads the named file parts into memory, in the order of
// fields. Other parts are skipped.
func readUploads(r *http.Request, fields ...string) ([]upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}
	out := make([]upload, len(fields))

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(err)
		}

		i, ok := index[part.FormName()]
		if !ok || out[i].data != nil {
			part.Close()
			continue
		}
		data, err := readPart(part)
		if err != nil {
			return nil, readError(err)
		}
		out[i] = upload{name: part.FileName(), data: data}
		if out[i].name == "" {
			out[i].name = part.FormName()
		}
	}

	for i, f := range fields {
		if out[i].data == nil {
			return nil, fmt.Errorf("%w: missing file field %q", errBadRequest, f)
		}
	}
	return out, nil
}

func readPart(p *multipart.Part) ([]byte, error) {
	defer p.Close()
	data, err := io.ReadAll(p)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func readError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %w", errBadRequest, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
