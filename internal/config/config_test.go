package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("FCRA_REFRESH_INTERVAL", "")
	t.Setenv("BACKEND_TIMEOUT", "")
	t.Setenv("AUTH_ENABLED", "")
	t.Setenv("FCRA_REG_EXPIRY", "")

	cfg := New()

	if cfg.CacheBackend != CacheBackendFile {
		t.Errorf("CacheBackend = %q, want file", cfg.CacheBackend)
	}
	if cfg.RefreshInterval != time.Hour {
		t.Errorf("RefreshInterval = %v, want 1h", cfg.RefreshInterval)
	}
	if cfg.BackendTimeout != 15*time.Second {
		t.Errorf("BackendTimeout = %v, want 15s", cfg.BackendTimeout)
	}
	if cfg.AuthEnabled {
		t.Error("AuthEnabled should default to false")
	}
	if cfg.Registration.ExpiryDate != "2028-03-15" {
		t.Errorf("unexpected default expiry %q", cfg.Registration.ExpiryDate)
	}
	if cfg.Endpoints.CreateApplication != "add_grant_application_api.php" {
		t.Errorf("unexpected create path %q", cfg.Endpoints.CreateApplication)
	}
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "Firestore")
	t.Setenv("FCRA_REFRESH_INTERVAL", "10m")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("FCRA_REG_NUMBER", "FCRA/2024/X")
	t.Setenv("BACKEND_TIMEOUT", "not-a-duration")

	cfg := New()

	if cfg.CacheBackend != CacheBackendFirestore {
		t.Errorf("CacheBackend = %q, want firestore", cfg.CacheBackend)
	}
	if cfg.RefreshInterval != 10*time.Minute {
		t.Errorf("RefreshInterval = %v, want 10m", cfg.RefreshInterval)
	}
	if !cfg.AuthEnabled {
		t.Error("AuthEnabled should be true")
	}
	if cfg.Registration.RegistrationNumber != "FCRA/2024/X" {
		t.Errorf("unexpected registration number %q", cfg.Registration.RegistrationNumber)
	}
	if cfg.BackendTimeout != 15*time.Second {
		t.Errorf("invalid duration should fall back, got %v", cfg.BackendTimeout)
	}
}
