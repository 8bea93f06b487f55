package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Errorf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %v, want 10s", cfg.APITimeout)
	}
	if cfg.CacheSize != 32 {
		t.Errorf("CacheSize = %d, want 32", cfg.CacheSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WALLET_API_URL", "https://wallet.example.com/api")
	t.Setenv("WALLET_API_TIMEOUT", "5s")
	t.Setenv("WALLET_CACHE_SIZE", "64")
	t.Setenv("WALLET_LANGUAGE", "zh")

	cfg := Load()

	if cfg.APIBaseURL != "https://wallet.example.com/api" {
		t.Errorf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("APITimeout = %v, want 5s", cfg.APITimeout)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, want 64", cfg.CacheSize)
	}
	if cfg.Language != "zh" {
		t.Errorf("Language = %s, want zh", cfg.Language)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Load()
	cfg.APIBaseURL = "ftp://wrong"
	cfg.APITimeout = 0
	cfg.CacheSize = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	for _, want := range []string{"scheme", "timeout", "cache size", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestValidate_BadEnvIntFallsBack(t *testing.T) {
	t.Setenv("WALLET_CACHE_SIZE", "lots")

	cfg := Load()
	if cfg.CacheSize != 32 {
		t.Errorf("CacheSize = %d, want default 32 on unparsable env", cfg.CacheSize)
	}
}
