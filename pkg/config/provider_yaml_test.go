package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	path := writeConfig(t, `
rest:
  listen_addr: 127.0.0.1
  http_port: 9090
  cors_origins:
    - https://console.example.com
planner:
  base_url: http://localhost:8000
  timeout_seconds: 30
geocoder:
  token: tok-123
`)

	provider := NewYAMLProvider(path)
	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.REST.ListenAddr != "127.0.0.1" || cfg.REST.HTTPPort != 9090 {
		t.Errorf("REST config = %+v", cfg.REST)
	}
	if len(cfg.REST.CORSOrigins) != 1 || cfg.REST.CORSOrigins[0] != "https://console.example.com" {
		t.Errorf("CORS origins = %v", cfg.REST.CORSOrigins)
	}
	if cfg.Planner.BaseURL != "http://localhost:8000" || cfg.Planner.TimeoutSeconds != 30 {
		t.Errorf("planner config = %+v", cfg.Planner)
	}
	if cfg.Geocoder.Token != "tok-123" {
		t.Errorf("geocoder config = %+v", cfg.Geocoder)
	}

	if !provider.IsReadOnly() {
		t.Error("YAML provider must be read-only")
	}
}

func TestYAMLProviderSectionGetters(t *testing.T) {
	path := writeConfig(t, `
planner:
  base_url: http://localhost:8000
`)

	provider := NewYAMLProvider(path)

	planner, err := provider.GetPlannerConfig()
	if err != nil {
		t.Fatalf("GetPlannerConfig failed: %v", err)
	}
	if planner.BaseURL != "http://localhost:8000" {
		t.Errorf("base URL = %q", planner.BaseURL)
	}

	// Absent sections come back zero-valued, not as errors.
	geocoder, err := provider.GetGeocoderConfig()
	if err != nil {
		t.Fatalf("GetGeocoderConfig failed: %v", err)
	}
	if geocoder.Token != "" {
		t.Errorf("expected empty token, got %q", geocoder.Token)
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	provider := NewYAMLProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := provider.LoadConfig(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
