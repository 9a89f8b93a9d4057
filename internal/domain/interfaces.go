package domain

import (
	"context"
	"time"
)

// PageReader opens PDF bytes with a concrete library and returns the text
// of every page in natural page order.
type PageReader interface {
	Name() string
	ReadPages(ctx context.Context, data []byte) (*PageSet, error)
}

// TextExtractor converts an uploaded document into its plain text
type TextExtractor interface {
	ExtractText(ctx context.Context, document *Document) (*ExtractedText, error)
}

// Summarizer issues a single summarization request for already-truncated text
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummaryService truncates text, summarizes it and folds every failure
// into the returned result
type SummaryService interface {
	Summarize(ctx context.Context, text string) SummaryResult
	InputLimit() int
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetSummarizerURL() string
	GetAPIKey() string
	GetSummarizerTimeout() time.Duration
	GetInputLimit() int
	GetMaxLength() int
	GetMinLength() int
	GetDoSample() bool
	GetPDFBackend() string
	GetAllowedOrigins() []string
	GetRateLimit() float64
	GetRateBurst() int
}
