// Package backend is the HTTP client for the external campaign backend.
// It exposes the four operations the dashboard needs: video upload,
// campaign creation from a transcript (uploaded or manual), and a health
// probe. No retries; a failed call is reported once and the user resubmits.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client calls the campaign backend over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// UploadResult is the backend's answer to a video upload.
type UploadResult struct {
	VideoTitle       string  `json:"video_title"`
	Transcript       string  `json:"transcript"`
	TranscriptLength int     `json:"transcript_length"`
	ProcessingTime   float64 `json:"processing_time"`
}

// VideoMetadata accompanies a campaign-create request.
type VideoMetadata struct {
	Title string `json:"title,omitempty"`
}

// HealthStatus is the backend's readiness report.
type HealthStatus struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Services  map[string]bool `json:"services"`
}

// UploadVideo sends the file as multipart form data and returns the
// transcript the backend extracted from it.
func (c *Client) UploadVideo(ctx context.Context, path string) (*UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read video: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/video/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	respBody, err := c.do(req, "upload video")
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}
	return &result, nil
}

// CreateCampaign asks the backend to build a campaign from a transcript.
// The raw payload bytes are returned for the normalizer; their shape is the
// backend's business.
func (c *Client) CreateCampaign(ctx context.Context, transcript string, meta VideoMetadata) ([]byte, error) {
	body := map[string]any{
		"transcript":     transcript,
		"video_metadata": meta,
	}
	return c.postJSON(ctx, "/api/campaign/create", body, "create campaign")
}

// CreateFromTranscript builds a campaign from a manually supplied transcript.
func (c *Client) CreateFromTranscript(ctx context.Context, transcript, videoTitle string) ([]byte, error) {
	body := map[string]any{
		"transcript":  transcript,
		"video_title": videoTitle,
	}
	return c.postJSON(ctx, "/api/campaign/from-transcript", body, "create campaign")
}

// Health probes the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	respBody, err := c.do(req, "health check")
	if err != nil {
		return nil, err
	}

	var hs HealthStatus
	if err := json.Unmarshal(respBody, &hs); err != nil {
		return nil, fmt.Errorf("parse health response: %w", err)
	}
	return &hs, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, op string) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op)
}

// do executes the request and returns the response body, converting
// transport failures and non-2xx statuses into *APIError.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: detailMessage(respBody)}
	}
	return respBody, nil
}

// detailMessage pulls the human-readable message out of an error body.
// The backend reports errors as {"detail": "..."}.
func detailMessage(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "no error detail"
	}
	return msg
}
