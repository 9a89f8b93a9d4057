package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
	"pdf-summarizer/pkg/logger"
)

func testConfig(endpoint string) Config {
	return Config{
		Endpoint: endpoint,
		APIKey:   "hf_test_token",
		Parameters: domain.GenerationParameters{
			MaxLength: 300,
			MinLength: 50,
			DoSample:  false,
		},
	}
}

func newFakeEndpoint(t *testing.T, status int, body string, calls *int32, seen *domain.SummaryRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf_test_token" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected Content-Type: %q", got)
		}
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(raw, seen); err != nil {
				t.Errorf("request body is not valid JSON: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSummarize_Success(t *testing.T) {
	var calls int32
	var seen domain.SummaryRequest
	srv := newFakeEndpoint(t, http.StatusOK, `[{"summary_text": "X"}]`, &calls, &seen)

	client := NewClient(testConfig(srv.URL), logger.NewNop())
	got, err := client.Summarize(context.Background(), "some research text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "X" {
		t.Fatalf("expected summary X, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
	if seen.Inputs != "some research text" {
		t.Fatalf("unexpected inputs: %q", seen.Inputs)
	}
	want := domain.GenerationParameters{MaxLength: 300, MinLength: 50, DoSample: false}
	if seen.Parameters != want {
		t.Fatalf("unexpected parameters: %+v", seen.Parameters)
	}
}

func TestSummarize_RequestBodyShape(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &raw)
		_, _ = w.Write([]byte(`[{"summary_text": "ok"}]`))
	}))
	defer srv.Close()

	if _, err := NewClient(testConfig(srv.URL), logger.NewNop()).Summarize(context.Background(), "t"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw["inputs"]) != `"t"` {
		t.Fatalf("unexpected inputs field: %s", raw["inputs"])
	}
	if string(raw["parameters"]) != `{"max_length":300,"min_length":50,"do_sample":false}` {
		t.Fatalf("unexpected parameters field: %s", raw["parameters"])
	}
}

func TestSummarize_RemoteError(t *testing.T) {
	srv := newFakeEndpoint(t, http.StatusServiceUnavailable, `{"error": "model loading", "estimated_time": 20.0}`, nil, nil)

	_, err := NewClient(testConfig(srv.URL), logger.NewNop()).Summarize(context.Background(), "text")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "model loading" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestSummarize_UnexpectedShapes(t *testing.T) {
	bodies := map[string]string{
		"empty object":      `{}`,
		"empty array":       `[]`,
		"missing field":     `[{"label": "POSITIVE"}]`,
		"wrong field type":  `{"error": 5}`,
		"array of numbers":  `[1, 2]`,
		"not json":          `<html>Bad Gateway</html>`,
		"empty body":        ``,
		"null":              `null`,
		"truncated payload": `[{"summary_text": "hal`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newFakeEndpoint(t, http.StatusOK, body, nil, nil)

			got, err := NewClient(testConfig(srv.URL), logger.NewNop()).Summarize(context.Background(), "text")

			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %T: %v", err, err)
			}
			if decodeErr.StatusCode != http.StatusOK {
				t.Fatalf("expected status recorded on decode error, got %d", decodeErr.StatusCode)
			}
			if got != "" {
				t.Fatalf("expected empty summary on failure, got %q", got)
			}
		})
	}
}

func TestSummarize_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	_, err := NewClient(testConfig(endpoint), logger.NewNop()).Summarize(context.Background(), "text")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestSummarize_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond

	_, err := NewClient(cfg, logger.NewNop()).Summarize(context.Background(), "text")
	if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		t.Fatalf("expected network error on timeout, got %v", err)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	srv := newFakeEndpoint(t, http.StatusOK, `[{"summary_text": "same every time"}]`, nil, nil)
	client := NewClient(testConfig(srv.URL), logger.NewNop())

	first, err := client.Summarize(context.Background(), "identical input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := client.Summarize(context.Background(), "identical input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical summaries, got %q and %q", first, second)
	}
}

func TestWithHTTPClient(t *testing.T) {
	var used int32
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		atomic.AddInt32(&used, 1)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`[{"summary_text": "via custom client"}]`)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(testConfig("http://summarizer.invalid/models/x"), logger.NewNop(),
		WithHTTPClient(&http.Client{Transport: transport}))

	got, err := client.Summarize(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "via custom client" || used != 1 {
		t.Fatalf("expected custom transport to serve the request, got %q (%d calls)", got, used)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
