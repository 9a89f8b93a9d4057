package handler

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
	"pdf-summarizer/pkg/httputil"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware propagates or assigns an X-Request-Id
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccessLogMiddleware logs one line per request
func AccessLogMiddleware(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := httputil.NewStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			remoteAddr := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				remoteAddr = host
			}
			fields := []interface{}{
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.StatusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", recorder.BytesWritten,
				"remote_addr", remoteAddr,
			}

			switch {
			case recorder.StatusCode >= 500:
				logger.Error("http_request", fmt.Errorf("status %d", recorder.StatusCode), fields...)
			case recorder.StatusCode >= 400:
				logger.Warn("http_request", fields...)
			default:
				logger.Info("http_request", fields...)
			}
		})
	}
}

// RecoverMiddleware turns a handler panic into a 500 response
func RecoverMiddleware(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Handler panic recovered", fmt.Errorf("%v", rec),
						"request_id", RequestIDFromContext(r.Context()),
						"path", r.URL.Path,
					)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter is a process-wide token bucket for calls that reach the
// summarization endpoint. A nil *RateLimiter lets everything through.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  domain.Logger
}

// NewRateLimiter returns nil when rps is not positive
func NewRateLimiter(rps float64, burst int, logger domain.Logger) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Middleware rejects requests with 429 once the bucket is empty
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			l.logger.Warn("Summarization rate limit exceeded",
				"request_id", RequestIDFromContext(r.Context()),
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", "1")
			writeAppError(w, apperrors.NewRateLimitError("Too many summarization requests. Please try again shortly."))
			return
		}
		next.ServeHTTP(w, r)
	})
}
