package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/scribe/assemble"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/format"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/transcription"
)

// --- fakes ---

type fakeTranscriber struct {
	result *transcription.Result
	err    error
}

func (f *fakeTranscriber) Name() string                       { return "fake" }
func (f *fakeTranscriber) IsAvailable(_ context.Context) bool { return true }
func (f *fakeTranscriber) Transcribe(_ context.Context, _ transcription.Request) (*transcription.Result, error) {
	return f.result, f.err
}

type fakeDiarizer struct {
	result *diarization.Result
	err    error
}

func (f *fakeDiarizer) Name() string                       { return "fake" }
func (f *fakeDiarizer) IsAvailable(_ context.Context) bool { return true }
func (f *fakeDiarizer) Diarize(_ context.Context, _ diarization.Request) (*diarization.Result, error) {
	return f.result, f.err
}

func testResult() *transcription.Result {
	return &transcription.Result{
		Text:     "hello world",
		Language: "en",
		Duration: 8,
		Segments: []transcription.Segment{
			{Start: 0, End: 4, Text: "hello"},
			{Start: 4, End: 8, Text: "world"},
		},
	}
}

func newTestEngine(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if svc.Log == nil {
		svc.Log = logger.NewDefault("test")
	}
	if svc.Assembler == nil {
		svc.Assembler = assemble.New(assemble.WithLogger(svc.Log))
	}
	engine := gin.New()
	svc.register(engine)
	return engine
}

func uploadRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("audio", "sample.wav")
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprint(part, "RIFF fake audio")
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/transcriptions", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeError(t *testing.T, body *bytes.Buffer) errors.AppError {
	t.Helper()
	var appErr errors.AppError
	if err := json.Unmarshal(body.Bytes(), &appErr); err != nil {
		t.Fatalf("error body is not an AppError: %v", err)
	}
	return appErr
}

// --- tests ---

func TestHealth(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{result: testResult()},
		Diarizer:    &fakeDiarizer{result: &diarization.Result{}},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["transcriber"] != true || body["diarizer"] != true {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestTranscribe_JSONDefault(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{result: testResult()},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected JSON content type, got %s", ct)
	}

	doc, err := format.Deserialize(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("body is not a transcript document: %v", err)
	}
	if len(doc.Segments) != 2 || doc.FullText != "hello world" {
		t.Errorf("unexpected transcript: %+v", doc)
	}
	if doc.Diarized() {
		t.Error("diarization was not requested")
	}
}

func TestTranscribe_TextFormat(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{result: testResult()},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, map[string]string{"format": "txt"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "Audio Transcription") {
		t.Error("expected plain text document")
	}
}

func TestTranscribe_WithDiarization(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{result: testResult()},
		Diarizer: &fakeDiarizer{result: &diarization.Result{
			Method:      "pyannote",
			NumSpeakers: 2,
			Turns: []diarization.Turn{
				{Speaker: "SPEAKER_00", Start: 0, End: 4},
				{Speaker: "SPEAKER_01", Start: 4, End: 8},
			},
		}},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, map[string]string{"diarize": "true"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	doc, err := format.Deserialize(rec.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Diarized() || doc.Metadata.Method != "pyannote" {
		t.Errorf("expected applied diarization, got %+v", doc.Metadata)
	}
	if doc.Segments[0].Speaker != "SPEAKER_00" || doc.Segments[1].Speaker != "SPEAKER_01" {
		t.Errorf("speaker labels wrong: %+v", doc.Segments)
	}
}

func TestTranscribe_DiarizerFailureDegrades(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{result: testResult()},
		Diarizer:    &fakeDiarizer{err: errors.ConnectionFailed("pyannote sidecar")},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, map[string]string{"diarize": "true"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected degraded 200, got %d", rec.Code)
	}
	doc, err := format.Deserialize(rec.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Diarized() {
		t.Error("failed diarization must not mark the transcript diarized")
	}
	if doc.Metadata.Diarization != "unavailable" {
		t.Errorf("expected unavailable status, got %s", doc.Metadata.Diarization)
	}
}

func TestTranscribe_MissingAudio(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{result: testResult()},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/transcriptions", strings.NewReader(""))
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if appErr := decodeError(t, rec.Body); appErr.Code != errors.ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", appErr.Code)
	}
}

func TestTranscribe_BadFormat(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{result: testResult()},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, map[string]string{"format": "xml"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if appErr := decodeError(t, rec.Body); appErr.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT, got %s", appErr.Code)
	}
}

func TestTranscribe_BackendDown(t *testing.T) {
	engine := newTestEngine(t, &Service{
		Transcriber: &fakeTranscriber{err: errors.ServiceUnavailable("whisper sidecar")},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	appErr := decodeError(t, rec.Body)
	if appErr.Code != errors.ErrCodeServiceUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %s", appErr.Code)
	}
	if !appErr.Retryable {
		t.Error("expected retryable error in response body")
	}
}
