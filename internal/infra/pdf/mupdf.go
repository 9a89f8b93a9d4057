// Package pdf holds the PDF libraries the extractor can read pages with.
package pdf

import (
	"context"

	"pdf-summarizer/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// MuPDFReader reads pages with MuPDF through go-fitz
type MuPDFReader struct {
	logger domain.Logger
}

// NewMuPDFReader creates a MuPDF-backed page reader
func NewMuPDFReader(logger domain.Logger) *MuPDFReader {
	return &MuPDFReader{logger: logger}
}

func (r *MuPDFReader) Name() string {
	return domain.PDFBackendMuPDF
}

// ReadPages returns the text of each page exactly as MuPDF extracts it
func (r *MuPDFReader) ReadPages(ctx context.Context, data []byte) (*domain.PageSet, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &domain.ParseError{Backend: r.Name(), Err: err}
	}
	defer doc.Close()

	set := &domain.PageSet{}
	meta := doc.Metadata()
	if title, ok := meta["title"]; ok {
		set.Title = title
	}
	if author, ok := meta["author"]; ok {
		set.Author = author
	}

	numPages := doc.NumPage()
	set.Pages = make([]string, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		text, err := doc.Text(pageNum)
		if err != nil {
			return nil, &domain.ParseError{Backend: r.Name(), Page: pageNum + 1, Err: err}
		}
		set.Pages = append(set.Pages, text)
	}

	return set, nil
}
