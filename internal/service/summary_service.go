package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/summarizer"
)

// SummaryObserver receives one observation per summarization attempt
type SummaryObserver interface {
	ObserveSummary(outcome string, upstream time.Duration)
}

// SummaryService implements domain.SummaryService
type SummaryService struct {
	summarizer domain.Summarizer
	inputLimit int
	observer   SummaryObserver
	logger     domain.Logger
}

// NewSummaryService creates a summary service. A non-positive inputLimit
// falls back to domain.DefaultInputLimit; observer may be nil.
func NewSummaryService(s domain.Summarizer, inputLimit int, observer SummaryObserver, logger domain.Logger) *SummaryService {
	if inputLimit <= 0 {
		inputLimit = domain.DefaultInputLimit
	}
	return &SummaryService{
		summarizer: s,
		inputLimit: inputLimit,
		observer:   observer,
		logger:     logger,
	}
}

// InputLimit returns the number of characters sent to the model
func (s *SummaryService) InputLimit() int {
	return s.inputLimit
}

// Summarize sends the first InputLimit characters of text to the model.
// Every failure is returned inside the result.
func (s *SummaryService) Summarize(ctx context.Context, text string) domain.SummaryResult {
	input := TruncateText(text, s.inputLimit)
	inputChars := utf8.RuneCountInString(input)

	if strings.TrimSpace(input) == "" {
		s.record("unexpected", 0)
		return domain.NewSummaryFailure(domain.FailureUnexpected, "Unexpected error: "+domain.ErrNoText.Error(), 0)
	}

	start := time.Now()
	summary, err := s.summarizer.Summarize(ctx, input)
	elapsed := time.Since(start)

	if err != nil {
		var apiErr *summarizer.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn("Summarization endpoint reported an error",
				"message", apiErr.Message,
				"status", apiErr.StatusCode,
				"input_chars", inputChars,
			)
			s.record(string(domain.FailureRemote), elapsed)
			return domain.NewSummaryFailure(domain.FailureRemote, "Error: "+apiErr.Message, inputChars)
		}

		s.logger.Error("Summarization failed", err, "input_chars", inputChars)
		s.record(string(domain.FailureUnexpected), elapsed)
		return domain.NewSummaryFailure(domain.FailureUnexpected, "Unexpected error: "+err.Error(), inputChars)
	}

	s.logger.Info("Summary generated",
		"input_chars", inputChars,
		"summary_chars", utf8.RuneCountInString(summary),
		"duration_ms", elapsed.Milliseconds(),
	)
	s.record("ok", elapsed)
	return domain.NewSummarySuccess(summary, inputChars)
}

func (s *SummaryService) record(outcome string, upstream time.Duration) {
	if s.observer != nil {
		s.observer.ObserveSummary(outcome, upstream)
	}
}

// TruncateText returns the first limit characters (runes) of text
func TruncateText(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(text) <= limit {
		// Byte length bounds rune count.
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
