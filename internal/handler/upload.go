package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

// multipartOverhead leaves room for boundaries and part headers around the file
const multipartOverhead = 64 << 10

// readPDFUpload reads the multipart "file" field fully into memory.
// Nothing is written to disk.
func readPDFUpload(w http.ResponseWriter, r *http.Request, maxFileSize int64) (*domain.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxFileSize + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(maxFileSize)
		}
		return nil, apperrors.NewValidationError("File is required")
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, apperrors.NewValidationError("File is required")
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = "document.pdf"
	}

	if !isPDF(filename, header.Header.Get("Content-Type")) {
		return nil, apperrors.NewValidationError("Unsupported file type. Only PDF (.pdf) files are accepted.")
	}
	if header.Size > maxFileSize {
		return nil, tooLarge(maxFileSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return nil, apperrors.NewValidationError("Failed to read uploaded file")
	}
	if int64(len(data)) > maxFileSize {
		return nil, tooLarge(maxFileSize)
	}

	return &domain.Document{Filename: filename, Data: data}, nil
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/pdf"
}

func tooLarge(maxFileSize int64) error {
	return apperrors.NewTooLargeError(fmt.Sprintf("File too large. Maximum size is %s.", formatBytes(maxFileSize)))
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
