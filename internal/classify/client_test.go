package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockProvider records token requests for assertions.
type mockProvider struct {
	authenticated bool
	token         string
	tokenErr      error
	calls         []bool // forceRefresh flag per call
}

func (m *mockProvider) Authenticated() bool {
	return m.authenticated
}

func (m *mockProvider) Token(_ context.Context, forceRefresh bool) (string, error) {
	m.calls = append(m.calls, forceRefresh)
	if m.tokenErr != nil {
		return "", m.tokenErr
	}
	return m.token, nil
}

func sampleResult() Result {
	return Result{
		OverallPrediction: OverallPrediction{
			PredictedGenre: "jazz",
			Confidence:     0.91,
			GenreDistribution: map[string]float64{
				"jazz": 0.8,
				"rock": 0.2,
			},
		},
		TrackInfo: TrackInfo{
			Duration:            62.5,
			NumSegmentsAnalyzed: 2,
			SegmentDuration:     30,
		},
		SegmentPredictions: []SegmentPrediction{
			{PredictedGenre: "jazz", Confidence: 0.95, StartTime: 0, Duration: 30},
			{PredictedGenre: "jazz", Confidence: 0.87, StartTime: 30, Duration: 30},
		},
		GenreVotes: map[string]int{"jazz": 2},
		FileInfo:   FileInfo{Filename: "recording.wav", FileSize: 12345, UserID: "uid-1"},
	}
}

func TestClassifyUpload_Success(t *testing.T) {
	var gotAuth, gotSegmentDuration, gotFilename string
	var gotFileBytes []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/music/classify/upload" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotSegmentDuration = r.FormValue("segment_duration")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		gotFilename = header.Filename
		buf := make([]byte, header.Size)
		if _, err := file.Read(buf); err != nil && err.Error() != "EOF" {
			t.Fatalf("read file: %v", err)
		}
		gotFileBytes = buf

		_ = json.NewEncoder(w).Encode(sampleResult())
	}))
	defer srv.Close()

	provider := &mockProvider{authenticated: true, token: "fresh-token"}
	c := NewClient(srv.URL, provider)

	result, err := c.ClassifyUpload(context.Background(), "recording.wav", []byte("RIFF-audio-data"), 30)
	if err != nil {
		t.Fatalf("ClassifyUpload: %v", err)
	}

	if result.OverallPrediction.PredictedGenre != "jazz" {
		t.Errorf("predicted genre = %s, want jazz", result.OverallPrediction.PredictedGenre)
	}
	if result.OverallPrediction.Confidence != 0.91 {
		t.Errorf("confidence = %v, want 0.91", result.OverallPrediction.Confidence)
	}
	if len(result.SegmentPredictions) != 2 {
		t.Errorf("segments = %d, want 2", len(result.SegmentPredictions))
	}
	if gotAuth != "Bearer fresh-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotSegmentDuration != "30" {
		t.Errorf("segment_duration = %q, want 30", gotSegmentDuration)
	}
	if gotFilename != "recording.wav" {
		t.Errorf("filename = %q", gotFilename)
	}
	if string(gotFileBytes) != "RIFF-audio-data" {
		t.Errorf("file bytes = %q", gotFileBytes)
	}
}

func TestClassifyUpload_ForcesTokenRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(sampleResult())
	}))
	defer srv.Close()

	provider := &mockProvider{authenticated: true, token: "t"}
	c := NewClient(srv.URL, provider)

	if _, err := c.ClassifyUpload(context.Background(), "a.wav", []byte("x"), 0); err != nil {
		t.Fatalf("ClassifyUpload: %v", err)
	}

	if len(provider.calls) != 1 || !provider.calls[0] {
		t.Errorf("token calls = %v, want exactly one forced refresh", provider.calls)
	}
}

func TestClassifyUpload_UnauthenticatedBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		requests++
	}))
	defer srv.Close()

	provider := &mockProvider{authenticated: false}
	c := NewClient(srv.URL, provider)

	_, err := c.ClassifyUpload(context.Background(), "a.wav", []byte("x"), 30)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
	if requests != 0 {
		t.Errorf("server saw %d requests, want 0", requests)
	}
	if len(provider.calls) != 0 {
		t.Errorf("token requested %d times, want 0", len(provider.calls))
	}
}

func TestClassifyUpload_EmptyAssetBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &mockProvider{authenticated: true, token: "t"})

	_, err := c.ClassifyUpload(context.Background(), "a.wav", nil, 30)
	if !errors.Is(err, ErrEmptyAsset) {
		t.Errorf("error = %v, want ErrEmptyAsset", err)
	}
	if requests != 0 {
		t.Errorf("server saw %d requests, want 0", requests)
	}
}

func TestClassifyUpload_ServerDetailMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Unsupported file format"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &mockProvider{authenticated: true, token: "t"})

	_, err := c.ClassifyUpload(context.Background(), "a.xyz", []byte("x"), 30)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Detail != "Unsupported file format" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestClassifyUpload_GenericMessageWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &mockProvider{authenticated: true, token: "t"})

	_, err := c.ClassifyUpload(context.Background(), "a.wav", []byte("x"), 30)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Detail == "" {
		t.Error("detail should fall back to a generic message")
	}
}

func TestClassifyUpload_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, &mockProvider{authenticated: true, token: "t"})
	c.SetTimeouts(20*time.Millisecond, 20*time.Millisecond)

	_, err := c.ClassifyUpload(context.Background(), "a.wav", []byte("x"), 30)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestClassifySegment_Fields(t *testing.T) {
	var gotStart, gotDuration string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/music/classify/segment" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotStart = r.FormValue("start_time")
		gotDuration = r.FormValue("duration")
		_ = json.NewEncoder(w).Encode(SegmentPrediction{PredictedGenre: "rock", Confidence: 0.8})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &mockProvider{authenticated: true, token: "t"})

	seg, err := c.ClassifySegment(context.Background(), "a.wav", []byte("x"), 10, 30)
	if err != nil {
		t.Fatalf("ClassifySegment: %v", err)
	}
	if seg.PredictedGenre != "rock" {
		t.Errorf("genre = %s, want rock", seg.PredictedGenre)
	}
	if gotStart != "10" || gotDuration != "30" {
		t.Errorf("start_time=%q duration=%q, want 10/30", gotStart, gotDuration)
	}
}

func TestMetadataEndpoints_NoAuthRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("metadata endpoints should not carry credentials")
		}
		switch r.URL.Path {
		case "/api/music/classify/supported-formats":
			_ = json.NewEncoder(w).Encode(FormatsInfo{
				SupportedFormats:       []string{".mp3", ".wav"},
				MaxFileSize:            "100MB",
				MaxSegmentDuration:     300,
				DefaultSegmentDuration: 30,
			})
		case "/api/music/classify/genres":
			_ = json.NewEncoder(w).Encode(GenreInfo{
				Genres:      []string{"blues", "jazz", "rock"},
				TotalGenres: 3,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	// No identity provider at all: metadata calls must still work.
	c := NewClient(srv.URL, nil)

	formats, err := c.SupportedFormats(context.Background())
	if err != nil {
		t.Fatalf("SupportedFormats: %v", err)
	}
	if len(formats.SupportedFormats) != 2 {
		t.Errorf("formats = %v", formats.SupportedFormats)
	}

	genres, err := c.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres: %v", err)
	}
	if genres.TotalGenres != 3 {
		t.Errorf("total genres = %d, want 3", genres.TotalGenres)
	}
}
