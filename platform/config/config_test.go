package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "CORS_ORIGINS", "CORS_ALLOW_ALL", "PROVIDER_MODE", "AGGREGATE_TIMEOUT",
		"UPSTREAM_TIMEOUT", "POI_RADIUS_METERS", "OVERPASS_RPS", "REDIS_URL", "HOUSING_API_KEY",
		"ASSISTANT_ENABLED", "COMMUTE_DEST_LAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)
	t.Setenv("PROVIDER_MODE", "live")
	t.Setenv("AGGREGATE_TIMEOUT", "20s")
	t.Setenv("UPSTREAM_TIMEOUT", "12s")
	t.Setenv("POI_RADIUS_METERS", "2000")
	t.Setenv("OVERPASS_RPS", "2")
	t.Setenv("CORS_ORIGINS", "http://localhost:8501")
	t.Setenv("COMMUTE_DEST_LAT", "42.3601")
	t.Setenv("ASSISTANT_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.GetAggregateTimeout() != 20*time.Second {
		t.Fatalf("expected 20s aggregate timeout, got %v", cfg.GetAggregateTimeout())
	}
	if cfg.GetCORSAllowAll() {
		t.Fatalf("expected explicit origins")
	}
	if cfg.IsGeocodeCacheEnabled() {
		t.Fatalf("expected cache disabled without REDIS_URL")
	}
	if cfg.GetHousingAPIKey() != "" {
		t.Fatalf("expected no credential by default")
	}
	lat, _, name := cfg.GetCommuteDestination()
	if lat != 42.3601 || name != "Downtown Boston" {
		t.Fatalf("unexpected commute destination %v %q", lat, name)
	}
	if !cfg.IsAssistantEnabled() {
		t.Fatalf("expected assistant enabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PROVIDER_MODE", "mixed"},
		{"AGGREGATE_TIMEOUT", "soon"},
		{"UPSTREAM_TIMEOUT", "-1s"},
		{"POI_RADIUS_METERS", "0"},
		{"OVERPASS_RPS", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			clearEnv(t)
			t.Setenv("PROVIDER_MODE", "live")
			t.Setenv("AGGREGATE_TIMEOUT", "20s")
			t.Setenv("UPSTREAM_TIMEOUT", "12s")
			t.Setenv("POI_RADIUS_METERS", "2000")
			t.Setenv("OVERPASS_RPS", "2")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestWildcardOriginAllowsAll(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)
	t.Setenv("PROVIDER_MODE", "simulated")
	t.Setenv("AGGREGATE_TIMEOUT", "5s")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("POI_RADIUS_METERS", "500")
	t.Setenv("OVERPASS_RPS", "1")
	t.Setenv("CORS_ORIGINS", "http://a.example, *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatalf("expected wildcard to allow all origins")
	}
	if cfg.GetProviderMode() != ProviderModeSimulated {
		t.Fatalf("expected simulated mode, got %q", cfg.GetProviderMode())
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a , ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
}
