package pyannote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/errors"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, []byte("RIFF fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fakeSidecar(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProvider(Config{BaseURL: srv.URL})
}

func TestProvider_Name(t *testing.T) {
	p := NewProvider(Config{})
	if p.Name() != ProviderName {
		t.Errorf("expected %s, got %s", ProviderName, p.Name())
	}
}

func TestDiarize(t *testing.T) {
	p := fakeSidecar(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("num_speakers"); got != "2" {
			t.Errorf("expected num_speakers 2, got %q", got)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("missing audio part: %v", err)
		}

		json.NewEncoder(w).Encode(pyannoteResponse{
			NumSpeakers: 2,
			Segments: []pyannoteSegment{
				{Speaker: "SPEAKER_00", Start: 0, End: 5.5},
				{Speaker: "SPEAKER_01", Start: 5.5, End: 9},
				{Speaker: "SPEAKER_00", Start: 9, End: 12},
			},
		})
	})

	result, err := p.Diarize(context.Background(), diarization.Request{
		AudioPath:   writeAudioFixture(t),
		NumSpeakers: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Method != ProviderName {
		t.Errorf("expected method %s, got %s", ProviderName, result.Method)
	}
	if result.NumSpeakers != 2 {
		t.Errorf("expected 2 speakers, got %d", result.NumSpeakers)
	}
	if len(result.Turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(result.Turns))
	}
	if result.Turns[1].Speaker != "SPEAKER_01" || result.Turns[1].Start != 5.5 {
		t.Errorf("turn 1 wrong: %+v", result.Turns[1])
	}
}

func TestDiarize_SpeakerBoundsOmittedWhenZero(t *testing.T) {
	p := fakeSidecar(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(32 << 20)
		for _, field := range []string{"num_speakers", "min_speakers", "max_speakers"} {
			if got := r.FormValue(field); got != "" {
				t.Errorf("expected %s absent, got %q", field, got)
			}
		}
		json.NewEncoder(w).Encode(pyannoteResponse{})
	})

	if _, err := p.Diarize(context.Background(), diarization.Request{
		AudioPath: writeAudioFixture(t),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDiarize_MissingAudioFile(t *testing.T) {
	p := NewProvider(Config{})
	_, err := p.Diarize(context.Background(), diarization.Request{
		AudioPath: "/nonexistent/audio.wav",
	})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestDiarize_SidecarError(t *testing.T) {
	p := fakeSidecar(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pipeline loading", http.StatusServiceUnavailable)
	})

	_, err := p.Diarize(context.Background(), diarization.Request{
		AudioPath: writeAudioFixture(t),
	})
	if err == nil {
		t.Fatal("expected error from failing sidecar")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeServiceUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestDiarize_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewProvider(Config{BaseURL: url})
	_, err := p.Diarize(context.Background(), diarization.Request{
		AudioPath: writeAudioFixture(t),
	})
	if err == nil {
		t.Fatal("expected error for unreachable sidecar")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeConnectionFailed {
		t.Errorf("expected CONNECTION_FAILED, got %v", err)
	}
}

func TestIsAvailable_Down(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewProvider(Config{BaseURL: url})
	if p.IsAvailable(context.Background()) {
		t.Error("expected unavailable when sidecar is unreachable")
	}
}

func TestToResult_CountsDistinctSpeakers(t *testing.T) {
	r := toResult(&pyannoteResponse{
		Segments: []pyannoteSegment{
			{Speaker: "SPEAKER_00", Start: 0, End: 1},
			{Speaker: "SPEAKER_01", Start: 1, End: 2},
			{Speaker: "SPEAKER_00", Start: 2, End: 3},
		},
	})
	if r.NumSpeakers != 2 {
		t.Errorf("expected 2 distinct speakers, got %d", r.NumSpeakers)
	}
}

func TestFactory(t *testing.T) {
	f := Factory()
	p, err := f(map[string]any{"base_url": "http://example.invalid:1"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != ProviderName {
		t.Errorf("expected %s, got %s", ProviderName, p.Name())
	}
}
