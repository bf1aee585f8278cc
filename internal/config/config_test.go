package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_ACCESS_EXPIRY", "SMTP_HOST", "MINIO_USE_SSL", "LOG_RETENTION"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTAccessExpiry != 15*time.Minute {
		t.Errorf("JWTAccessExpiry = %v, want 15m", cfg.JWTAccessExpiry)
	}
	if cfg.LogRetention != 30*24*time.Hour {
		t.Errorf("LogRetention = %v, want 720h", cfg.LogRetention)
	}
	if cfg.MinioUseSSL {
		t.Error("MinioUseSSL should default to false")
	}
	if cfg.SMTPAddr() != "" {
		t.Errorf("SMTPAddr = %q, want empty without SMTP_HOST", cfg.SMTPAddr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "1h")
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()
	if cfg.JWTAccessExpiry != time.Hour {
		t.Errorf("JWTAccessExpiry = %v, want 1h", cfg.JWTAccessExpiry)
	}
	if got := cfg.SMTPAddr(); got != "mail.example.com:2525" {
		t.Errorf("SMTPAddr = %q", got)
	}
	if !cfg.MinioUseSSL {
		t.Error("MinioUseSSL should be true")
	}
}

func TestParseDurationFallback(t *testing.T) {
	if got := parseDuration("soon", time.Minute); got != time.Minute {
		t.Errorf("parseDuration = %v, want fallback", got)
	}
}
