package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"
)

const (
	defaultSummarizerURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	defaultMaxFileSize   = 50 * 1024 * 1024 // 50MB
	defaultMaxLength     = 300
	defaultMinLength     = 50
	defaultRateBurst     = 5
)

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://localhost:3000",
}

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort        string
	LogLevel          string
	MaxFileSize       int64
	SummarizerURL     string
	APIKey            string
	SummarizerTimeout time.Duration
	InputLimit        int
	MaxLength         int
	MinLength         int
	DoSample          bool
	PDFBackend        string
	AllowedOrigins    []string
	RateLimit         float64
	RateBurst         int
}

// NewConfig creates a new configuration instance from the environment
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:        getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize:       getEnvInt64OrDefault("MAX_FILE_SIZE", defaultMaxFileSize),
		SummarizerURL:     getEnvOrDefault("SUMMARIZER_URL", defaultSummarizerURL),
		APIKey:            os.Getenv("HF_API_KEY"),
		SummarizerTimeout: getEnvDurationOrDefault("SUMMARIZER_TIMEOUT", 0),
		InputLimit:        getEnvIntOrDefault("SUMMARY_INPUT_CHARS", domain.DefaultInputLimit),
		MaxLength:         getEnvNonNegativeIntOrDefault("SUMMARY_MAX_LENGTH", defaultMaxLength),
		MinLength:         getEnvNonNegativeIntOrDefault("SUMMARY_MIN_LENGTH", defaultMinLength),
		DoSample:          getEnvBoolOrDefault("SUMMARY_DO_SAMPLE", false),
		PDFBackend:        strings.ToLower(getEnvOrDefault("PDF_BACKEND", domain.PDFBackendMuPDF)),
		AllowedOrigins:    getEnvListOrDefault("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		RateLimit:         getEnvFloatOrDefault("SUMMARY_RATE_LIMIT", 0),
		RateBurst:         getEnvIntOrDefault("SUMMARY_RATE_BURST", defaultRateBurst),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetSummarizerURL returns the inference endpoint URL
func (c *AppConfig) GetSummarizerURL() string {
	return c.SummarizerURL
}

// GetAPIKey returns the bearer token for the inference endpoint
func (c *AppConfig) GetAPIKey() string {
	return c.APIKey
}

// GetSummarizerTimeout returns the HTTP client timeout; zero means none
func (c *AppConfig) GetSummarizerTimeout() time.Duration {
	return c.SummarizerTimeout
}

// GetInputLimit returns how many characters are sent for summarization
func (c *AppConfig) GetInputLimit() int {
	return c.InputLimit
}

func (c *AppConfig) GetMaxLength() int {
	return c.MaxLength
}

func (c *AppConfig) GetMinLength() int {
	return c.MinLength
}

func (c *AppConfig) GetDoSample() bool {
	return c.DoSample
}

// GetPDFBackend returns the PDF library name used for extraction
func (c *AppConfig) GetPDFBackend() string {
	return c.PDFBackend
}

// GetAllowedOrigins returns the CORS allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetRateLimit returns summarize requests per second; zero disables limiting
func (c *AppConfig) GetRateLimit() float64 {
	return c.RateLimit
}

func (c *AppConfig) GetRateBurst() int {
	return c.RateBurst
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// getEnvNonNegativeIntOrDefault accepts zero, which is a valid model length parameter
func getEnvNonNegativeIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("90s") or plain seconds ("90")
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
