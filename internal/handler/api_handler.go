// Package handler provides the HTTP handlers for the UI pages and the JSON API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

// maxJSONBody bounds JSON request bodies. Extracted text can be large.
const maxJSONBody = 16 << 20

// APIHandler serves the JSON API under /api/v1
type APIHandler struct {
	extractor   domain.TextExtractor
	summaries   domain.SummaryService
	maxFileSize int64
	logger      domain.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(extractor domain.TextExtractor, summaries domain.SummaryService, maxFileSize int64, logger domain.Logger) *APIHandler {
	return &APIHandler{
		extractor:   extractor,
		summaries:   summaries,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type extractResponse struct {
	Text       string `json:"text"`
	PageCount  int    `json:"page_count"`
	Characters int    `json:"characters"`
	Backend    string `json:"backend"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary         string `json:"summary"`
	InputCharacters int    `json:"input_characters"`
}

type summaryFailureResponse struct {
	Error string             `json:"error"`
	Kind  domain.FailureKind `json:"kind"`
}

type downloadRequest struct {
	Summary string `json:"summary"`
}

// Extract handles POST /api/v1/extract
func (h *APIHandler) Extract(w http.ResponseWriter, r *http.Request) {
	document, err := readPDFUpload(w, r, h.maxFileSize)
	if err != nil {
		h.logger.Warn("Rejected upload", "request_id", RequestIDFromContext(r.Context()), "error", err.Error())
		writeAppError(w, err)
		return
	}

	extracted, err := h.extractor.ExtractText(r.Context(), document)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Text:       extracted.Content,
		PageCount:  extracted.PageCount,
		Characters: utf8.RuneCountInString(extracted.Content),
		Backend:    extracted.Backend,
		Title:      extracted.Title,
		Author:     extracted.Author,
	})
}

// Summarize handles POST /api/v1/summarize
func (h *APIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result := h.summaries.Summarize(r.Context(), req.Text)
	if !result.OK() {
		writeJSON(w, http.StatusBadGateway, summaryFailureResponse{
			Error: result.Message,
			Kind:  result.Kind,
		})
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary:         result.Summary,
		InputCharacters: result.InputChars,
	})
}

// DownloadSummary handles POST /api/v1/summary/download
func (h *APIHandler) DownloadSummary(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if strings.TrimSpace(req.Summary) == "" {
		writeError(w, http.StatusBadRequest, "Summary is required")
		return
	}

	writeSummaryFile(w, req.Summary)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.NewTooLargeError("Request body too large")
		case errors.Is(err, io.EOF):
			return apperrors.NewValidationError("Request body is required")
		default:
			return apperrors.NewValidationError("Invalid JSON body")
		}
	}
	return nil
}
