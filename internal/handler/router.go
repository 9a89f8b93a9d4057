package handler

import (
	"net/http"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterConfig holds everything the router wires together
type RouterConfig struct {
	UI             *UIHandler
	API            *APIHandler
	Metrics        *metrics.Metrics
	Limiter        *RateLimiter
	Logger         domain.Logger
	AllowedOrigins []string
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	router.Use(RequestIDMiddleware, AccessLogMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware)
	}
	router.Use(RecoverMiddleware(cfg.Logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pdf-summarizer"})
	}).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	// UI pages
	router.HandleFunc("/", cfg.UI.Index).Methods(http.MethodGet)
	router.HandleFunc("/upload", cfg.UI.Upload).Methods(http.MethodPost)
	router.Handle("/summarize", cfg.Limiter.Middleware(http.HandlerFunc(cfg.UI.Summarize))).Methods(http.MethodPost)
	router.HandleFunc("/download", cfg.UI.Download).Methods(http.MethodPost)

	// JSON API
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/extract", cfg.API.Extract).Methods(http.MethodPost)
	api.Handle("/summarize", cfg.Limiter.Middleware(http.HandlerFunc(cfg.API.Summarize))).Methods(http.MethodPost)
	api.HandleFunc("/summary/download", cfg.API.DownloadSummary).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			requestIDHeader,
		},
		ExposedHeaders: []string{
			requestIDHeader,
			"Content-Disposition",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
