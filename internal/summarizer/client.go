// Package summarizer talks to a hosted summarization model over HTTP.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 4 << 20

// Config is fixed at construction and never mutated
type Config struct {
	Endpoint   string
	APIKey     string
	Parameters domain.GenerationParameters
	// Timeout of zero leaves the HTTP client without a deadline.
	Timeout time.Duration
}

// ConfigFrom builds a client configuration from application settings
func ConfigFrom(cfg domain.Config) Config {
	return Config{
		Endpoint: cfg.GetSummarizerURL(),
		APIKey:   cfg.GetAPIKey(),
		Parameters: domain.GenerationParameters{
			MaxLength: cfg.GetMaxLength(),
			MinLength: cfg.GetMinLength(),
			DoSample:  cfg.GetDoSample(),
		},
		Timeout: cfg.GetSummarizerTimeout(),
	}
}

// Client implements domain.Summarizer against a Hugging Face style inference endpoint
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     domain.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a summarization client
func NewClient(cfg Config, logger domain.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summarize sends text in a single POST and returns the model's summary.
// A reported model error is returned as *APIError; any response that is
// neither shape is returned as *DecodeError.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(domain.SummaryRequest{
		Inputs:     text,
		Parameters: c.cfg.Parameters,
	})
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode summary request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build summary request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewNetworkError("summarization request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperrors.NewNetworkError("failed to read summarization response", err)
	}

	c.logger.Debug("Summarization response received",
		"status", resp.StatusCode,
		"bytes", len(raw),
	)

	decoded, err := DecodeResponse(raw)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.StatusCode = resp.StatusCode
		}
		return "", err
	}

	switch decoded.Kind {
	case ResponseError:
		return "", &APIError{Message: decoded.ErrorMessage, StatusCode: resp.StatusCode}
	case ResponseSuccess:
		return decoded.SummaryText, nil
	default:
		return "", &DecodeError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unknown response kind %d", decoded.Kind)}
	}
}
