package callback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/retry"
)

type fakeStore struct {
	puts    int
	failPut error
	bucket  string
	key     string
	body    []byte
}

func (f *fakeStore) Download(ctx context.Context, bucket, key, dest string) error {
	return nil
}

func (f *fakeStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	f.puts++
	if f.failPut != nil {
		return f.failPut
	}
	f.bucket, f.key, f.body = bucket, key, body
	return nil
}

func newTestClient(baseURL string, store *fakeStore) Client {
	log := logger.New("error")
	return New(baseURL, "secret", "test", "gemini-2.5-flash", "result-bucket",
		store, retry.New(3, time.Millisecond, log), log)
}

func testJob() job.Context {
	return job.Context{
		JobID:      "videos/u1/clip.mp4",
		UserID:     "u1",
		Bucket:     "b",
		Key:        "videos/u1/clip.mp4",
		Transcript: "spoken words",
		Summary:    "a summary\n\n#a #b #c",
		CreatedAt:  time.Now(),
	}
}

func TestDeliverSuccessPayload(t *testing.T) {
	var gotURI string
	var gotPayload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		if got := r.Header.Get("X-Internal-Token"); got != "secret" {
			t.Errorf("token header = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotPayload); err != nil {
			t.Errorf("payload not json: %v", err)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeStore{})
	if ok := c.DeliverSuccess(context.Background(), testJob(), "summary/summary_clip.json", 1500*time.Millisecond); !ok {
		t.Fatal("DeliverSuccess() = false, want true")
	}

	if !strings.Contains(gotURI, "/internal/jobs/videos%2Fu1%2Fclip.mp4/complete") {
		t.Errorf("request URI = %q, job id should be path-escaped", gotURI)
	}
	if gotPayload["status"] != "DONE" {
		t.Errorf("status = %v", gotPayload["status"])
	}
	if _, present := gotPayload["error_code"]; present {
		t.Error("success payload must omit error_code")
	}
	if gotPayload["result_s3_key"] != "summary/summary_clip.json" {
		t.Errorf("result_s3_key = %v", gotPayload["result_s3_key"])
	}
}

func TestDeliverFailurePayload(t *testing.T) {
	var gotPayload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotPayload)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeStore{})
	jc := testJob()
	jc.Transcript, jc.Summary = "", ""
	if ok := c.DeliverFailure(context.Background(), jc, job.KindExtraction, "ffmpeg exploded"); !ok {
		t.Fatal("DeliverFailure() = false, want true")
	}

	if gotPayload["status"] != "FAILED" {
		t.Errorf("status = %v", gotPayload["status"])
	}
	if gotPayload["error_code"] != "FFMPEG_FAILED" {
		t.Errorf("error_code = %v", gotPayload["error_code"])
	}
	if _, present := gotPayload["transcript"]; present {
		t.Error("failure payload must omit transcript")
	}
}

func TestDeliverClientErrorSingleAttempt(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "no such job", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeStore{})
	if ok := c.DeliverSuccess(context.Background(), testJob(), "", time.Second); ok {
		t.Fatal("DeliverSuccess() = true, want false on 404")
	}
	if requests != 1 {
		t.Errorf("requests = %d, want exactly 1 for 4xx", requests)
	}
}

func TestDeliverRecoversFromServerErrors(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeStore{})
	if ok := c.DeliverSuccess(context.Background(), testJob(), "", time.Second); !ok {
		t.Fatal("DeliverSuccess() = false, want true after recovery")
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3 (503, 503, 200)", requests)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeStore{})
	if !c.Health(context.Background()) {
		t.Error("Health() = false, want true")
	}

	srv.Close()
	if c.Health(context.Background()) {
		t.Error("Health() = true after server shutdown")
	}
}

func TestUploadResult(t *testing.T) {
	store := &fakeStore{}
	c := newTestClient("http://backend.invalid", store)

	key := c.UploadResult(context.Background(), testJob())
	if key != "summary/summary_clip.json" {
		t.Errorf("UploadResult() = %q", key)
	}
	if store.bucket != "result-bucket" {
		t.Errorf("bucket = %q", store.bucket)
	}

	var doc job.ResultDocument
	if err := json.Unmarshal(store.body, &doc); err != nil {
		t.Fatalf("artifact not json: %v", err)
	}
	if doc.JobID != "videos/u1/clip.mp4" || doc.Summary == "" {
		t.Errorf("artifact = %+v", doc)
	}
}

func TestUploadResultSkipsEmptyJob(t *testing.T) {
	store := &fakeStore{}
	c := newTestClient("http://backend.invalid", store)

	jc := testJob()
	jc.Transcript, jc.Summary = "", ""
	if key := c.UploadResult(context.Background(), jc); key != "" {
		t.Errorf("UploadResult() = %q, want empty for empty job", key)
	}
	if store.puts != 0 {
		t.Errorf("puts = %d, want 0", store.puts)
	}
}

func TestUploadResultBestEffort(t *testing.T) {
	store := &fakeStore{failPut: errors.New("s3 unavailable")}
	c := newTestClient("http://backend.invalid", store)

	if key := c.UploadResult(context.Background(), testJob()); key != "" {
		t.Errorf("UploadResult() = %q, want empty on storage failure", key)
	}
	if store.puts != 4 {
		t.Errorf("puts = %d, want maxRetries+1 = 4", store.puts)
	}
}
