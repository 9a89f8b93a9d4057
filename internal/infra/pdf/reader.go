package pdf

import (
	"fmt"
	"strings"

	"pdf-summarizer/internal/domain"
)

// NewPageReader returns the page reader registered under backend
func NewPageReader(backend string, logger domain.Logger) (domain.PageReader, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", domain.PDFBackendMuPDF:
		return NewMuPDFReader(logger), nil
	case domain.PDFBackendPure:
		return NewPureReader(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, backend)
	}
}
