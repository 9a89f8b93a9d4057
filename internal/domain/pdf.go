package domain

import "fmt"

const (
	PDFBackendMuPDF = "mupdf"
	PDFBackendPure  = "pure"
)

// Document is one uploaded file. It lives for a single request and is never stored.
type Document struct {
	Filename string
	Data     []byte
}

// Size returns the document size in bytes
func (d *Document) Size() int64 {
	return int64(len(d.Data))
}

// PageSet is the raw per-page output of a PageReader
type PageSet struct {
	Pages  []string
	Title  string
	Author string
}

// ExtractedText is the concatenation of every page's text in page order
type ExtractedText struct {
	Content   string `json:"text"`
	PageCount int    `json:"page_count"`
	Backend   string `json:"backend"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
}

// ParseError reports bytes that the PDF backend could not read.
// Page is 1-based; zero means the document itself could not be opened.
type ParseError struct {
	Backend string
	Page    int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: failed to read page %d: %v", e.Backend, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: failed to open PDF: %v", e.Backend, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
