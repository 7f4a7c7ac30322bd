package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/retry"
)

func writeWAV(t *testing.T, size int) string {
	t.Helper()
	data := make([]byte, size)
	copy(data[0:4], "RIFF")
	copy(data[8:12], "WAVE")
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestTranscriber(url string) Transcriber {
	log := logger.New("error")
	return New(url, "key-id", "key", retry.New(3, time.Millisecond, log), log)
}

func TestValidateAudioFile(t *testing.T) {
	good := writeWAV(t, 2048)

	noHeader := filepath.Join(t.TempDir(), "raw.wav")
	if err := os.WriteFile(noHeader, make([]byte, 2048), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid wav", good, false},
		{"empty path", "", true},
		{"missing file", filepath.Join(t.TempDir(), "nope.wav"), true},
		{"below 1KiB", writeWAV(t, 512), true},
		{"no RIFF header", noHeader, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAudioFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAudioFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTranscribeInvalidAudioSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL)
	jc := job.Context{LocalAudioPath: writeWAV(t, 512)}

	_, err := tr.Transcribe(context.Background(), jc)
	if err == nil {
		t.Fatal("Transcribe() should reject an undersized file")
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0", requests)
	}
}

func TestTranscribeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-NCP-APIGW-API-KEY-ID"); got != "key-id" {
			t.Errorf("api key id header = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/octet-stream" {
			t.Errorf("content type = %q", got)
		}
		w.Write([]byte(`{"text":"hello from the video"}`))
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL)
	jc := job.Context{LocalAudioPath: writeWAV(t, 2048)}

	jc, err := tr.Transcribe(context.Background(), jc)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if jc.Transcript != "hello from the video" {
		t.Errorf("Transcript = %q", jc.Transcript)
	}
}

func TestTranscribeEmptyTextRetried(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.Write([]byte(`{"text":""}`))
			return
		}
		w.Write([]byte(`{"text":"finally"}`))
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL)
	jc := job.Context{LocalAudioPath: writeWAV(t, 2048)}

	jc, err := tr.Transcribe(context.Background(), jc)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3", requests)
	}
	if jc.Transcript != "finally" {
		t.Errorf("Transcript = %q", jc.Transcript)
	}
}

func TestTranscribeClientErrorTerminal(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL)
	jc := job.Context{LocalAudioPath: writeWAV(t, 2048)}

	_, err := tr.Transcribe(context.Background(), jc)
	if err == nil {
		t.Fatal("Transcribe() should fail on 401")
	}
	if requests != 1 {
		t.Errorf("requests = %d, want exactly 1 for 4xx", requests)
	}
	if kind := job.Classify(err); kind != job.KindSTTBadResponse {
		t.Errorf("kind = %s, want %s", kind, job.KindSTTBadResponse)
	}
}

func TestTranscribeRateLimitExhaustsAsTimeout(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL)
	jc := job.Context{LocalAudioPath: writeWAV(t, 2048)}

	_, err := tr.Transcribe(context.Background(), jc)
	if err == nil {
		t.Fatal("Transcribe() should fail after sustained rate limiting")
	}
	if requests != 4 {
		t.Errorf("requests = %d, want maxRetries+1 = 4", requests)
	}
	if kind := job.Classify(err); kind != job.KindSTTTimeout {
		t.Errorf("kind = %s, want %s", kind, job.KindSTTTimeout)
	}
}

func TestTranscribeServerErrorExhaustsRetries(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL)
	jc := job.Context{LocalAudioPath: writeWAV(t, 2048)}

	_, err := tr.Transcribe(context.Background(), jc)
	if err == nil {
		t.Fatal("Transcribe() should fail after exhausting retries")
	}
	if requests != 4 {
		t.Errorf("requests = %d, want maxRetries+1 = 4", requests)
	}
}
