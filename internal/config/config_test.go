package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTAL_CREDENTIALS_FILE", "/tmp/creds.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:8000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.OAuth.CallbackAddr != "127.0.0.1:53682" {
		t.Errorf("CallbackAddr = %q", cfg.OAuth.CallbackAddr)
	}
	if cfg.Store.CredentialsFile != "/tmp/creds.json" {
		t.Errorf("CredentialsFile = %q", cfg.Store.CredentialsFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTAL_API_URL", "https://api.example.org/v1")
	t.Setenv("PORTAL_HTTP_TIMEOUT", "3s")
	t.Setenv("PORTAL_CREDENTIALS_FILE", "/tmp/creds.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.org/v1" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
}
