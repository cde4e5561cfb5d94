package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestUploadVideo(t *testing.T) {
	var gotField, gotFilename string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/video/upload" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		for field, headers := range r.MultipartForm.File {
			gotField = field
			gotFilename = headers[0].Filename
		}
		json.NewEncoder(w).Encode(map[string]any{
			"video_title":       "clip.mp4",
			"transcript":        "hello world",
			"transcript_length": 11,
			"processing_time":   1.5,
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	os.WriteFile(path, []byte("fake video bytes"), 0644)

	c := New(srv.URL)
	res, err := c.UploadVideo(context.Background(), path)
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}

	if gotField != "file" {
		t.Errorf("multipart field = %q, want file", gotField)
	}
	if gotFilename != "clip.mp4" {
		t.Errorf("filename = %q", gotFilename)
	}
	if res.Transcript != "hello world" {
		t.Errorf("transcript = %q", res.Transcript)
	}
	if res.VideoTitle != "clip.mp4" {
		t.Errorf("video_title = %q", res.VideoTitle)
	}
}

func TestUploadVideo_MissingFile(t *testing.T) {
	c := New("http://unused.test")
	if _, err := c.UploadVideo(context.Background(), "/nope/missing.mp4"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCreateCampaign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/campaign/create" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body struct {
			Transcript    string        `json:"transcript"`
			VideoMetadata VideoMetadata `json:"video_metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Transcript != "hello world" {
			t.Errorf("transcript = %q", body.Transcript)
		}
		if body.VideoMetadata.Title != "clip.mp4" {
			t.Errorf("title = %q", body.VideoMetadata.Title)
		}
		w.Write([]byte(`{"strategy":{"primary_angle":"X"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	raw, err := c.CreateCampaign(context.Background(), "hello world", VideoMetadata{Title: "clip.mp4"})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	if string(raw) != `{"strategy":{"primary_angle":"X"}}` {
		t.Errorf("raw payload = %s", raw)
	}
}

func TestCreateFromTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/campaign/from-transcript" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["video_title"] != "Manual Input" {
			t.Errorf("video_title = %v", body["video_title"])
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.CreateFromTranscript(context.Background(), "pasted text", "Manual Input"); err != nil {
		t.Fatalf("CreateFromTranscript: %v", err)
	}
}

func TestDo_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail": "backend on fire"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateFromTranscript(context.Background(), "x", "y")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "backend on fire" {
		t.Errorf("message = %q, want detail field extracted", apiErr.Message)
	}
}

func TestDo_TransportError(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("transport error should carry status 0, got %d", apiErr.Status)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "healthy",
			"timestamp": "2026-01-01T00:00:00Z",
			"services":  map[string]bool{"watson_stt": true, "orchestrate": false},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	hs, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if hs.Status != "healthy" {
		t.Errorf("status = %q", hs.Status)
	}
	if !hs.Services["watson_stt"] || hs.Services["orchestrate"] {
		t.Errorf("services = %v", hs.Services)
	}
}
