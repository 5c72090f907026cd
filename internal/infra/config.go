package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	// Base URL of the remote generation service hosting /api/generate,
	// /api/generate-video, /api/generate-3d-mockup and /api/basic-edit.
	GenerationBaseURL string
	GenerationTimeout time.Duration

	// Batch dispatch tuning. MaxInFlight of 1 reproduces the strictly
	// sequential dispatch of the original client.
	MaxInFlight       int
	InterRequestDelay time.Duration

	ProgressTick         time.Duration
	ProgressDisplayDelay time.Duration

	// Optional directory for materialized downloads. Empty disables
	// filesystem exports; the download endpoints still stream bytes.
	ExportPath string

	AllowedOrigins  []string
	RateLimitPerMin int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		Port:                 getEnv("PORT", "8080"),
		GenerationBaseURL:    getEnv("GENERATION_BASE_URL", "http://localhost:8000"),
		GenerationTimeout:    time.Second * time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 300)),
		MaxInFlight:          getEnvInt("STUDIO_MAX_INFLIGHT", 1),
		InterRequestDelay:    time.Millisecond * time.Duration(getEnvInt("STUDIO_ITEM_DELAY_MS", 300)),
		ProgressTick:         time.Millisecond * time.Duration(getEnvInt("STUDIO_PROGRESS_TICK_MS", 250)),
		ProgressDisplayDelay: time.Millisecond * time.Duration(getEnvInt("STUDIO_PROGRESS_HOLD_MS", 400)),
		ExportPath:           os.Getenv("STUDIO_EXPORT_PATH"),
		AllowedOrigins:       splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RateLimitPerMin:      getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		HTTPReadTimeout:      time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:     time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 600)),
		HTTPIdleTimeout:      time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.MaxInFlight < 1 {
		cfg.MaxInFlight = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
