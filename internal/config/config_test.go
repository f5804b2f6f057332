package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("Load succeeded without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/hms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("port = %q, want 8000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Errorf("env = %q, want development default", cfg.Env)
	}
	if cfg.TokenTTL != 480 {
		t.Errorf("token ttl = %d, want 480", cfg.TokenTTL)
	}
	if cfg.TokenTTLDuration() != 480*time.Minute {
		t.Errorf("ttl duration = %v", cfg.TokenTTLDuration())
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTL: 480}
	if err := cfg.Validate(); err == nil {
		t.Error("production config without JWT_SECRET passed validation")
	}

	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.TokenTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero token ttl passed validation")
	}

	dev := &Config{Env: "development", TokenTTL: 60}
	if err := dev.Validate(); err != nil {
		t.Errorf("dev config without secret rejected: %v", err)
	}
}
