package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

// ExtractionObserver receives one observation per extraction attempt
type ExtractionObserver interface {
	ObserveExtraction(backend string, pages int, err error)
}

// PDFProcessor implements domain.TextExtractor on top of a PageReader
type PDFProcessor struct {
	reader   domain.PageReader
	observer ExtractionObserver
	logger   domain.Logger
}

// NewPDFProcessor creates a new PDF processor. observer may be nil.
func NewPDFProcessor(reader domain.PageReader, observer ExtractionObserver, logger domain.Logger) *PDFProcessor {
	return &PDFProcessor{
		reader:   reader,
		observer: observer,
		logger:   logger,
	}
}

// ExtractText reads every page in order and concatenates the page texts
// with no separator. Text is returned exactly as the backend produced it.
func (p *PDFProcessor) ExtractText(ctx context.Context, document *domain.Document) (*domain.ExtractedText, error) {
	if document == nil || len(document.Data) == 0 {
		return nil, apperrors.NewValidationError("Uploaded file is empty")
	}

	start := time.Now()
	set, err := p.reader.ReadPages(ctx, document.Data)
	p.observe(set, err)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			p.logger.Warn("PDF could not be parsed",
				"filename", document.Filename,
				"backend", parseErr.Backend,
				"page", parseErr.Page,
				"error", parseErr.Err,
			)
			return nil, apperrors.NewProcessingError("File is not a readable PDF", err)
		}
		return nil, err
	}

	var sb strings.Builder
	for _, page := range set.Pages {
		sb.WriteString(page)
	}

	extracted := &domain.ExtractedText{
		Content:   sb.String(),
		PageCount: len(set.Pages),
		Backend:   p.reader.Name(),
		Title:     strings.TrimSpace(set.Title),
		Author:    strings.TrimSpace(set.Author),
	}

	p.logger.Info("PDF text extracted",
		"filename", document.Filename,
		"backend", extracted.Backend,
		"page_count", extracted.PageCount,
		"characters", len([]rune(extracted.Content)),
		"file_size", document.Size(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return extracted, nil
}

func (p *PDFProcessor) observe(set *domain.PageSet, err error) {
	if p.observer == nil {
		return
	}
	pages := 0
	if set != nil {
		pages = len(set.Pages)
	}
	p.observer.ObserveExtraction(p.reader.Name(), pages, err)
}
