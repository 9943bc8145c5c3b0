package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("CORS_ORIGINS", "")
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.SessionTTL)
	}
	if len(cfg.CORSOrigins) != 1 {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9000" || cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Fatalf("expected upload limit override, got %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if !cfg.AllowAdminSignup {
		t.Fatalf("expected admin signup enabled")
	}
}

func TestFromEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SESSION_TTL_SECONDS", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	cfg := FromEnv()
	if cfg.SessionTTL != 24*time.Hour || cfg.MaxUploadBytes != 20<<20 {
		t.Fatalf("expected defaults for malformed values, got %+v", cfg)
	}
}
