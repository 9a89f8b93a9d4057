package pdf

import (
	"bytes"
	"context"
	"fmt"

	"pdf-summarizer/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PureReader reads pages with the pure Go ledongthuc/pdf parser. No cgo required.
type PureReader struct {
	logger domain.Logger
}

// NewPureReader creates a pure Go page reader
func NewPureReader(logger domain.Logger) *PureReader {
	return &PureReader{logger: logger}
}

func (r *PureReader) Name() string {
	return domain.PDFBackendPure
}

// ReadPages returns the plain text of each page. The parser panics on some
// malformed inputs; those panics are reported as parse errors.
func (r *PureReader) ReadPages(ctx context.Context, data []byte) (set *domain.PageSet, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			set = nil
			err = &domain.ParseError{Backend: r.Name(), Err: fmt.Errorf("parser panic: %v", rec)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &domain.ParseError{Backend: r.Name(), Err: err}
	}

	set = &domain.PageSet{}
	info := reader.Trailer().Key("Info")
	set.Title = info.Key("Title").Text()
	set.Author = info.Key("Author").Text()

	numPages := reader.NumPage()
	set.Pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.logger.Debug("PDF processing page", "page", i, "total", numPages)

		page := reader.Page(i)
		if page.V.IsNull() {
			set.Pages = append(set.Pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &domain.ParseError{Backend: r.Name(), Page: i, Err: err}
		}
		set.Pages = append(set.Pages, text)
	}

	return set, nil
}
