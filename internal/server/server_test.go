// SPDX-License-Identifier: EPL-2.0

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
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ik5/audsim"
	"github.com/ik5/audsim/audio"
	"github.com/ik5/audsim/features"
	"github.com/ik5/audsim/formats/wav"
	"github.com/ik5/audsim/internal/synth"
	"github.com/ik5/audsim/report"
	"github.com/ik5/audsim/utils"
)

type fakeComparer struct {
	err   error
	delay time.Duration
	got   [2]string
}

func (f *fakeComparer) CompareReaders(ctx context.Context, in1, in2 audsim.Input) (report.Result, error) {
	f.got = [2]string{in1.Name, in2.Name}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return report.Result{}, ctx.Err()
		}
	}
	if f.err != nil {
		return report.Result{}, f.err
	}
	return report.Result{SimilarityScore: 42, Interpretation: report.Interpret(42)}, nil
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, field+".wav")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.WriteField("note", "ignored"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, mw.FormDataContentType()
}

func post(t *testing.T, h http.Handler, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()

	body, ct := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := New(&fakeComparer{}, nil, Options{}).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestAnalyze_OK(t *testing.T) {
	t.Parallel()

	cmp := &fakeComparer{}
	h := New(cmp, nil, Options{}).Handler()
	rec := post(t, h, map[string][]byte{"file1": []byte("a"), "file2": []byte("b")})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var res report.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.SimilarityScore != 42 {
		t.Errorf("SimilarityScore = %v, want 42", res.SimilarityScore)
	}
	if cmp.got != [2]string{"file1.wav", "file2.wav"} {
		t.Errorf("comparer got names %v", cmp.got)
	}
}

func TestAnalyze_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown format", fmt.Errorf("b: %w", audio.ErrUnknownFormat), http.StatusUnsupportedMediaType},
		{"unsupported wav", wav.ErrUnsupportedEncoding, http.StatusUnsupportedMediaType},
		{"silent", audio.ErrSilentSignal, http.StatusBadRequest},
		{"too short", fmt.Errorf("a: extract: %w", features.ErrInsufficientSamples), http.StatusBadRequest},
		{"not wav", wav.ErrNotWavFile, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := New(&fakeComparer{err: tt.err}, nil, Options{}).Handler()
			rec := post(t, h, map[string][]byte{"file1": []byte("a"), "file2": []byte("b")})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}

			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Detail == "" || body.RequestID == "" {
				t.Errorf("error body = %+v", body)
			}
		})
	}
}

func TestAnalyze_MissingField(t *testing.T) {
	t.Parallel()

	h := New(&fakeComparer{}, nil, Options{}).Handler()
	rec := post(t, h, map[string][]byte{"file1": []byte("a")})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyze_NotMultipart(t *testing.T) {
	t.Parallel()

	h := New(&fakeComparer{}, nil, Options{}).Handler()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString(`{"file1":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyze_TooLarge(t *testing.T) {
	t.Parallel()

	h := New(&fakeComparer{}, nil, Options{MaxUploadBytes: 1024}).Handler()
	rec := post(t, h, map[string][]byte{"file1": make([]byte, 4096), "file2": []byte("b")})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestAnalyze_Timeout(t *testing.T) {
	t.Parallel()

	h := New(&fakeComparer{delay: time.Second}, nil, Options{RequestTimeout: 20 * time.Millisecond}).Handler()
	rec := post(t, h, map[string][]byte{"file1": []byte("a"), "file2": []byte("b")})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestAnalyze_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := New(&fakeComparer{}, nil, Options{}).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	h := New(&fakeComparer{}, nil, Options{}).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("preflight response has no Access-Control-Allow-Origin")
	}
}

func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	const id = "0b8f2a62-0b1c-4d7a-9d55-0f3c1c3f6a10"
	h := New(&fakeComparer{}, nil, Options{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}
}

func TestAnalyze_InternalErrorLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := New(&fakeComparer{err: errors.New("boom")}, zap.New(core), Options{}).Handler()
	post(t, h, map[string][]byte{"file1": []byte("a"), "file2": []byte("b")})

	entries := logs.FilterMessage("analysis failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d failure entries, want 1", len(entries))
	}
	if stack, ok := entries[0].ContextMap()["stack"].(string); !ok || stack == "" {
		t.Error("failure entry has no stack")
	}
}

func TestAnalyze_EndToEnd(t *testing.T) {
	t.Parallel()

	cmp, err := audsim.New(audsim.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(cmp, nil, Options{}).Handler())
	defer srv.Close()

	var tone bytes.Buffer
	if err := wav.WriteWAV16(&tone, 22050, 1, utils.Float64sToInt16(synth.Sine(22050, 1, 440, 0.5))); err != nil {
		t.Fatal(err)
	}
	body, ct := multipartBody(t, map[string][]byte{"file1": tone.Bytes(), "file2": tone.Bytes()})

	resp, err := http.Post(srv.URL+"/analyze", ct, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"similarity_score", "breakdown", "interpretation", "graph_data"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("response has no %q", key)
		}
	}
	if score, _ := doc["similarity_score"].(float64); score < 99.99 {
		t.Errorf("similarity_score = %v, want 100", score)
	}
}
