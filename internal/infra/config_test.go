package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GENERATION_BASE_URL", "")
	t.Setenv("STUDIO_MAX_INFLIGHT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.GenerationBaseURL != "http://localhost:8000" {
		t.Fatalf("GenerationBaseURL mismatch: got %q", cfg.GenerationBaseURL)
	}
	if cfg.MaxInFlight != 1 {
		t.Fatalf("MaxInFlight mismatch: got %d want 1", cfg.MaxInFlight)
	}
	if cfg.InterRequestDelay != 300*time.Millisecond {
		t.Fatalf("InterRequestDelay mismatch: got %v", cfg.InterRequestDelay)
	}
}

func TestLoadConfigClampsInFlight(t *testing.T) {
	t.Setenv("STUDIO_MAX_INFLIGHT", "0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxInFlight != 1 {
		t.Fatalf("MaxInFlight = %d, want floor of 1", cfg.MaxInFlight)
	}
}

func TestLoadConfigSplitsOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %#v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("AllowedOrigins[1] = %q", cfg.AllowedOrigins[1])
	}
}
