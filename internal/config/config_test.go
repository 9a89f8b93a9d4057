package config

import (
	"reflect"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"PORT", "SERVER_PORT", "LOG_LEVEL", "MAX_FILE_SIZE", "HF_API_KEY",
	"SUMMARIZER_URL", "SUMMARIZER_TIMEOUT", "SUMMARY_INPUT_CHARS",
	"SUMMARY_MAX_LENGTH", "SUMMARY_MIN_LENGTH", "SUMMARY_DO_SAMPLE",
	"PDF_BACKEND", "CORS_ALLOWED_ORIGINS", "SUMMARY_RATE_LIMIT", "SUMMARY_RATE_BURST",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetSummarizerURL() != defaultSummarizerURL {
		t.Fatalf("expected default summarizer url, got %s", cfg.GetSummarizerURL())
	}
	if cfg.GetAPIKey() != "" {
		t.Fatalf("expected empty api key, got %s", cfg.GetAPIKey())
	}
	if cfg.GetSummarizerTimeout() != 0 {
		t.Fatalf("expected no summarizer timeout, got %s", cfg.GetSummarizerTimeout())
	}
	if cfg.GetInputLimit() != 3000 {
		t.Fatalf("expected input limit 3000, got %d", cfg.GetInputLimit())
	}
	if cfg.GetMaxLength() != 300 || cfg.GetMinLength() != 50 || cfg.GetDoSample() {
		t.Fatalf("unexpected generation defaults: max=%d min=%d sample=%v", cfg.GetMaxLength(), cfg.GetMinLength(), cfg.GetDoSample())
	}
	if cfg.GetPDFBackend() != "mupdf" {
		t.Fatalf("expected mupdf backend, got %s", cfg.GetPDFBackend())
	}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), defaultAllowedOrigins) {
		t.Fatalf("unexpected default origins: %v", cfg.GetAllowedOrigins())
	}
	if cfg.GetRateLimit() != 0 || cfg.GetRateBurst() != defaultRateBurst {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.GetRateLimit(), cfg.GetRateBurst())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HF_API_KEY", "hf_test")
	t.Setenv("SUMMARIZER_URL", "http://localhost:9000/summarize")
	t.Setenv("SUMMARIZER_TIMEOUT", "45s")
	t.Setenv("SUMMARY_INPUT_CHARS", "1000")
	t.Setenv("SUMMARY_MAX_LENGTH", "120")
	t.Setenv("SUMMARY_MIN_LENGTH", "20")
	t.Setenv("SUMMARY_DO_SAMPLE", "true")
	t.Setenv("PDF_BACKEND", "PURE")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SUMMARY_RATE_LIMIT", "0.5")
	t.Setenv("SUMMARY_RATE_BURST", "2")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetAPIKey() != "hf_test" {
		t.Fatalf("expected api key hf_test, got %s", cfg.GetAPIKey())
	}
	if cfg.GetSummarizerURL() != "http://localhost:9000/summarize" {
		t.Fatalf("unexpected summarizer url %s", cfg.GetSummarizerURL())
	}
	if cfg.GetSummarizerTimeout() != 45*time.Second {
		t.Fatalf("expected timeout 45s, got %s", cfg.GetSummarizerTimeout())
	}
	if cfg.GetInputLimit() != 1000 {
		t.Fatalf("expected input limit 1000, got %d", cfg.GetInputLimit())
	}
	if cfg.GetMaxLength() != 120 || cfg.GetMinLength() != 20 || !cfg.GetDoSample() {
		t.Fatalf("unexpected generation overrides: max=%d min=%d sample=%v", cfg.GetMaxLength(), cfg.GetMinLength(), cfg.GetDoSample())
	}
	if cfg.GetPDFBackend() != "pure" {
		t.Fatalf("expected pure backend, got %s", cfg.GetPDFBackend())
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.GetAllowedOrigins())
	}
	if cfg.GetRateLimit() != 0.5 || cfg.GetRateBurst() != 2 {
		t.Fatalf("unexpected rate limit overrides: %v/%d", cfg.GetRateLimit(), cfg.GetRateBurst())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("SUMMARY_INPUT_CHARS", "-5")
	t.Setenv("SUMMARY_DO_SAMPLE", "maybe")
	t.Setenv("SUMMARIZER_TIMEOUT", "soon")
	t.Setenv("SUMMARY_RATE_LIMIT", "-1")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetInputLimit() != 3000 {
		t.Fatalf("expected default input limit, got %d", cfg.GetInputLimit())
	}
	if cfg.GetDoSample() {
		t.Fatalf("expected do_sample to fall back to false")
	}
	if cfg.GetSummarizerTimeout() != 0 {
		t.Fatalf("expected timeout fallback 0, got %s", cfg.GetSummarizerTimeout())
	}
	if cfg.GetRateLimit() != 0 {
		t.Fatalf("expected rate limit fallback 0, got %v", cfg.GetRateLimit())
	}
}

func TestGetEnvDurationOrDefault_Seconds(t *testing.T) {
	t.Setenv("SUMMARIZER_TIMEOUT", "90")
	if got := getEnvDurationOrDefault("SUMMARIZER_TIMEOUT", 0); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
}

func TestNewConfig_ZeroMinLength(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SUMMARY_MIN_LENGTH", "0")
	t.Setenv("SUMMARY_MAX_LENGTH", "-3")

	cfg := NewConfig()

	if cfg.GetMinLength() != 0 {
		t.Fatalf("expected min length 0, got %d", cfg.GetMinLength())
	}
	if cfg.GetMaxLength() != defaultMaxLength {
		t.Fatalf("expected default max length %d, got %d", defaultMaxLength, cfg.GetMaxLength())
	}
}
