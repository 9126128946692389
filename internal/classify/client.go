// Package classify provides the client for the remote genre-classification
// API.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lvasse/encore/internal/identity"
)

// Sentinel errors for the classification flow.
var (
	// ErrUnauthenticated means no user was signed in at submission time.
	// It is checked before any network call.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrEmptyAsset means the submitted payload had no bytes. A zero-chunk
	// recording is producible but not submittable.
	ErrEmptyAsset = errors.New("recording is empty")

	// ErrTimeout means the classification call exceeded its allotted window.
	ErrTimeout = errors.New("classification timed out")
)

// APIError carries a non-2xx response's detail message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("classification failed: %s", e.Detail)
}

const (
	defaultUploadTimeout  = 2 * time.Minute
	defaultSegmentTimeout = time.Minute

	// DefaultSegmentDuration is the backend's default analysis window.
	DefaultSegmentDuration = 30
)

// Client provides access to the classification API. It holds no mutable
// state across calls; concurrent calls are safe.
type Client struct {
	baseURL  string
	provider identity.Provider

	// Large-file classification gets an extended window; segment-only and
	// metadata calls use a shorter one.
	uploadClient  *http.Client
	segmentClient *http.Client
}

// NewClient creates a classification API client.
func NewClient(baseURL string, provider identity.Provider) *Client {
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		provider:      provider,
		uploadClient:  &http.Client{Timeout: defaultUploadTimeout},
		segmentClient: &http.Client{Timeout: defaultSegmentTimeout},
	}
}

// SetTimeouts overrides the per-call windows (from config).
func (c *Client) SetTimeouts(upload, segment time.Duration) {
	if upload > 0 {
		c.uploadClient.Timeout = upload
	}
	if segment > 0 {
		c.segmentClient.Timeout = segment
	}
}

// ClassifyUpload submits a full audio payload for classification.
// segmentDuration is the analysis window in seconds (default 30).
func (c *Client) ClassifyUpload(ctx context.Context, filename string, data []byte, segmentDuration int) (*Result, error) {
	if segmentDuration <= 0 {
		segmentDuration = DefaultSegmentDuration
	}
	fields := map[string]string{
		"segment_duration": strconv.Itoa(segmentDuration),
	}

	var result Result
	if err := c.postMultipart(ctx, c.uploadClient, "/api/music/classify/upload", filename, data, fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClassifySegment submits a single segment of an audio payload.
func (c *Client) ClassifySegment(ctx context.Context, filename string, data []byte, startTime, duration int) (*SegmentPrediction, error) {
	if duration <= 0 {
		duration = DefaultSegmentDuration
	}
	fields := map[string]string{
		"start_time": strconv.Itoa(startTime),
		"duration":   strconv.Itoa(duration),
	}

	var result SegmentPrediction
	if err := c.postMultipart(ctx, c.segmentClient, "/api/music/classify/segment", filename, data, fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SupportedFormats fetches the accepted upload formats. No auth required.
func (c *Client) SupportedFormats(ctx context.Context) (*FormatsInfo, error) {
	var result FormatsInfo
	if err := c.get(ctx, "/api/music/classify/supported-formats", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Genres fetches the label set the backend can predict. No auth required.
func (c *Client) Genres(ctx context.Context) (*GenreInfo, error) {
	var result GenreInfo
	if err := c.get(ctx, "/api/music/classify/genres", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// postMultipart performs an authenticated multipart upload and decodes the
// response into out.
func (c *Client) postMultipart(ctx context.Context, httpClient *http.Client, path, filename string, data []byte, fields map[string]string, out any) error {
	// Both checks precede any network activity.
	if c.provider == nil || !c.provider.Authenticated() {
		return ErrUnauthenticated
	}
	if len(data) == 0 {
		return ErrEmptyAsset
	}

	// Stale cached credentials are not reused for classification calls.
	token, err := c.provider.Token(ctx, true)
	if err != nil {
		return fmt.Errorf("obtain token: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("build form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrTimeout
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// get performs an unauthenticated GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.segmentClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrTimeout
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError extracts the server's detail message from an error response,
// falling back to a generic message.
func apiError(resp *http.Response) error {
	detail := "classification request failed"

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			detail = payload.Detail
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
