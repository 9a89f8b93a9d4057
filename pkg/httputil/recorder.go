// Package httputil holds small net/http helpers shared by middlewares.
package httputil

import "net/http"

// StatusRecorder wraps a ResponseWriter and remembers the status code and
// the number of body bytes written. The status defaults to 200.
type StatusRecorder struct {
	http.ResponseWriter
	StatusCode   int
	BytesWritten int
}

// NewStatusRecorder wraps w
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (w *StatusRecorder) WriteHeader(statusCode int) {
	w.StatusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *StatusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.BytesWritten += n
	return n, err
}
