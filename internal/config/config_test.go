package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "GEMINI_API_KEY", "GEMINI_SCAN_MODEL", "GEMINI_GRADING_MODEL",
		"GEMINI_SCAN_TIMEOUT_SECONDS", "GEMINI_GRADING_TIMEOUT_SECONDS",
		"MAX_SCAN_UPLOAD_MB", "MAX_PAGE_UPLOAD_MB", "JWT_EXPIRY_HOURS", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("GeminiAPIKey should default to empty, got %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiScanModel != "gemini-2.5-flash" || cfg.GeminiGradingModel != "gemini-2.5-flash" {
		t.Errorf("models = %q / %q", cfg.GeminiScanModel, cfg.GeminiGradingModel)
	}
	if cfg.GeminiScanTimeout != 120*time.Second || cfg.GeminiGradingTimeout != 120*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.GeminiScanTimeout, cfg.GeminiGradingTimeout)
	}
	if cfg.MaxScanUploadBytes != 10*1024*1024 {
		t.Errorf("MaxScanUploadBytes = %d", cfg.MaxScanUploadBytes)
	}
	if cfg.MaxPageUploadBytes != 20*1024*1024 {
		t.Errorf("MaxPageUploadBytes = %d", cfg.MaxPageUploadBytes)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil (allow all)", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "AIza-test")
	t.Setenv("GEMINI_SCAN_MODEL", "gemini-2.0-pro")
	t.Setenv("GEMINI_GRADING_TIMEOUT_SECONDS", "300")
	t.Setenv("MAX_SCAN_UPLOAD_MB", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := Load()

	if cfg.GeminiAPIKey != "AIza-test" {
		t.Errorf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiScanModel != "gemini-2.0-pro" {
		t.Errorf("GeminiScanModel = %q", cfg.GeminiScanModel)
	}
	if cfg.GeminiGradingTimeout != 300*time.Second {
		t.Errorf("GeminiGradingTimeout = %v", cfg.GeminiGradingTimeout)
	}
	if cfg.MaxScanUploadBytes != 5*1024*1024 {
		t.Errorf("MaxScanUploadBytes = %d", cfg.MaxScanUploadBytes)
	}
	want := []string{"https://app.example.com", "https://staging.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoadBadInt(t *testing.T) {
	t.Setenv("GEMINI_SCAN_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.GeminiScanTimeout != 120*time.Second {
		t.Errorf("GeminiScanTimeout = %v, want the 120s default", cfg.GeminiScanTimeout)
	}
}

func TestUserSessionKey(t *testing.T) {
	if got := CacheKey.UserSessionKey(7); got != "login:7" {
		t.Errorf("UserSessionKey(7) = %q", got)
	}
}
