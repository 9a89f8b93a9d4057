package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-summarizer/internal/config"
	"pdf-summarizer/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		if s, ok := container.Logger.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
	}()

	cfg := container.Config
	if cfg.GetAPIKey() == "" {
		container.Logger.Warn("HF_API_KEY is not set; the summarization endpoint will likely reject requests")
	}

	// Handlers
	uiHandler := handler.NewUIHandler(
		container.Extractor,
		container.SummaryService,
		cfg.GetMaxFileSize(),
		container.Logger,
	)
	apiHandler := handler.NewAPIHandler(
		container.Extractor,
		container.SummaryService,
		cfg.GetMaxFileSize(),
		container.Logger,
	)

	// Router
	router := handler.NewRouter(handler.RouterConfig{
		UI:             uiHandler,
		API:            apiHandler,
		Metrics:        container.Metrics,
		Limiter:        handler.NewRateLimiter(cfg.GetRateLimit(), cfg.GetRateBurst(), container.Logger),
		Logger:         container.Logger,
		AllowedOrigins: cfg.GetAllowedOrigins(),
	})

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening",
			"address", server.Addr,
			"pdf_backend", container.PageReader.Name(),
			"summarizer_url", cfg.GetSummarizerURL(),
			"input_limit", container.SummaryService.InputLimit(),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
