package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

// Mock logger used by handler package tests.
type MockHandlerLogger struct{}

func NewMockHandlerLogger() domain.Logger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})              {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})             {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})              {}

type MockExtractor struct {
	result *domain.ExtractedText
	err    error
	calls  int
	last   *domain.Document
}

func (m *MockExtractor) ExtractText(ctx context.Context, document *domain.Document) (*domain.ExtractedText, error) {
	m.calls++
	m.last = document
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type MockSummaryService struct {
	result   domain.SummaryResult
	limit    int
	calls    int
	lastText string
}

func (m *MockSummaryService) Summarize(ctx context.Context, text string) domain.SummaryResult {
	m.calls++
	m.lastText = text
	return m.result
}

func (m *MockSummaryService) InputLimit() int {
	if m.limit == 0 {
		return domain.DefaultInputLimit
	}
	return m.limit
}

func newProcessingFailure() error {
	return apperrors.NewProcessingError("File is not a readable PDF", &domain.ParseError{Backend: "mupdf"})
}

// newUploadRequest builds a multipart request with a single "file" part
func newUploadRequest(t *testing.T, target, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
