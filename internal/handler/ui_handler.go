package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"unicode/utf8"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/service"
	apperrors "pdf-summarizer/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	previewRunes = 1500
	maxFormBody  = 16 << 20
)

// UIHandler serves the server-rendered pages. The part of the extracted text
// that is sent for summarization is carried between pages in a hidden form
// field so no session state is kept.
type UIHandler struct {
	extractor   domain.TextExtractor
	summaries   domain.SummaryService
	maxFileSize int64
	logger      domain.Logger
}

// NewUIHandler creates a new UI handler
func NewUIHandler(extractor domain.TextExtractor, summaries domain.SummaryService, maxFileSize int64, logger domain.Logger) *UIHandler {
	return &UIHandler{
		extractor:   extractor,
		summaries:   summaries,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type pageData struct {
	MaxFileSize  string
	Error        string
	Filename     string
	Text         string
	Preview      string
	Truncated    bool
	PageCount    int
	Characters   int
	InputLimit   int
	Summary      string
	SummaryError string
}

// Index renders the upload form
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", h.newPage())
}

// Upload extracts the uploaded PDF and renders the summarize form
func (h *UIHandler) Upload(w http.ResponseWriter, r *http.Request) {
	document, err := readPDFUpload(w, r, h.maxFileSize)
	if err != nil {
		h.renderError(w, err)
		return
	}

	extracted, err := h.extractor.ExtractText(r.Context(), document)
	if err != nil {
		h.renderError(w, err)
		return
	}

	page := h.newPage()
	page.Filename = document.Filename
	page.PageCount = extracted.PageCount
	h.setText(&page, extracted.Content)
	h.render(w, http.StatusOK, "extracted.html", page)
}

// Summarize sends the carried text to the summary service and renders the result.
// Failures are shown inline on the page.
func (h *UIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.renderError(w, err)
		return
	}

	text := normalizeNewlines(r.PostFormValue("text"))
	if strings.TrimSpace(text) == "" {
		h.renderError(w, apperrors.NewValidationError("No extracted text to summarize. Upload a PDF first."))
		return
	}

	result := h.summaries.Summarize(r.Context(), text)

	page := h.newPage()
	page.Filename = r.PostFormValue("filename")
	h.setText(&page, text)
	if result.OK() {
		page.Summary = result.Summary
	} else {
		page.SummaryError = result.Message
	}
	h.render(w, http.StatusOK, "summary.html", page)
}

// Download returns the posted summary as summary.txt
func (h *UIHandler) Download(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.renderError(w, err)
		return
	}

	summary := normalizeNewlines(r.PostFormValue("summary"))
	if strings.TrimSpace(summary) == "" {
		h.renderError(w, apperrors.NewValidationError("There is no summary to download."))
		return
	}

	writeSummaryFile(w, summary)
}

func (h *UIHandler) newPage() pageData {
	return pageData{
		MaxFileSize: formatBytes(h.maxFileSize),
		InputLimit:  h.summaries.InputLimit(),
	}
}

// setText fills the preview from the full text but only puts the first
// InputLimit characters in the form
func (h *UIHandler) setText(page *pageData, text string) {
	page.Text = service.TruncateText(text, page.InputLimit)
	page.Characters = utf8.RuneCountInString(text)
	page.Preview = text
	if page.Characters > previewRunes {
		page.Preview = string([]rune(text)[:previewRunes])
		page.Truncated = true
	}
}

func (h *UIHandler) renderError(w http.ResponseWriter, err error) {
	status := apperrors.GetStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", err)
	}

	page := h.newPage()
	page.Error = apperrors.GetMessage(err)
	h.render(w, status, "index.html", page)
}

// render buffers the page so a template error can still become a 500
func (h *UIHandler) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("Failed to render template", err, "template", name)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// normalizeNewlines undoes the CRLF line endings browsers use when they
// submit form fields
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.NewTooLargeError("Request body too large")
		}
		return apperrors.NewValidationError("Invalid form submission")
	}
	return nil
}
