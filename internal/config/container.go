package config

import (
	"fmt"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/infra/pdf"
	"pdf-summarizer/internal/metrics"
	"pdf-summarizer/internal/service"
	"pdf-summarizer/internal/summarizer"
	"pdf-summarizer/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	Metrics        *metrics.Metrics
	PageReader     domain.PageReader
	Extractor      domain.TextExtractor
	Summarizer     domain.Summarizer
	SummaryService domain.SummaryService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg := NewConfig()
	return NewContainerWith(cfg, logger.NewLogger(cfg.GetLogLevel()))
}

// NewContainerWith wires the application around an existing config and logger
func NewContainerWith(cfg domain.Config, appLogger domain.Logger) (*Container, error) {
	appMetrics := metrics.New()

	reader, err := pdf.NewPageReader(cfg.GetPDFBackend(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("pdf backend %q: %w", cfg.GetPDFBackend(), err)
	}

	extractor := service.NewPDFProcessor(reader, appMetrics, appLogger)
	client := summarizer.NewClient(summarizer.ConfigFrom(cfg), appLogger)
	summaries := service.NewSummaryService(client, cfg.GetInputLimit(), appMetrics, appLogger)

	return &Container{
		Config:         cfg,
		Logger:         appLogger,
		Metrics:        appMetrics,
		PageReader:     reader,
		Extractor:      extractor,
		Summarizer:     client,
		SummaryService: summaries,
	}, nil
}
