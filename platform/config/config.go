// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider modes.
const (
	ProviderModeLive      = "live"
	ProviderModeSimulated = "simulated"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	IsDevelopment() bool
}

// GeocoderConfig provides settings for the geocoding provider.
type GeocoderConfig interface {
	GetGeocoderURL() string
	GetGeocoderAPIKey() string
	GetUpstreamTimeout() time.Duration
}

// CacheConfig provides settings for the optional Redis geocode cache.
type CacheConfig interface {
	GetRedisURL() string
	GetGeocodeCacheTTL() time.Duration
	IsGeocodeCacheEnabled() bool
}

// POIConfig provides settings for the points-of-interest search.
type POIConfig interface {
	GetOverpassURL() string
	GetOverpassRPS() float64
	GetPOIRadiusMeters() int
	GetUpstreamTimeout() time.Duration
}

// ProviderConfig provides settings for the metric providers.
type ProviderConfig interface {
	GetProviderMode() string
	GetSimulatedFixturesPath() string
	GetUpstreamTimeout() time.Duration
	GetHousingAPIURL() string
	GetHousingAPIKey() string
	GetCrimeAPIURL() string
	GetCrimeAPIKey() string
	GetRoutingAPIURL() string
	GetRoutingAPIKey() string
	GetCommuteDestination() (lat, lon float64, name string)
	GetSchoolsAPIURL() string
	GetSchoolsAPIKey() string
}

// ProfileConfig provides settings for the profile aggregator.
type ProfileConfig interface {
	GetAggregateTimeout() time.Duration
}

// AssistantConfig provides settings for the chat assistant.
type AssistantConfig interface {
	IsAssistantEnabled() bool
	GetAssistantBaseURL() string
	GetAssistantModel() string
	GetAssistantAPIKey() string
	GetSearchURL() string
	GetUpstreamTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	CORSAllowAll          bool
	CORSOrigins           []string
	ProviderMode          string
	SimulatedFixturesPath string
	AggregateTimeout      time.Duration
	UpstreamTimeout       time.Duration
	POIRadiusMeters       int
	OverpassURL           string
	OverpassRPS           float64
	GeocoderURL           string
	GeocoderAPIKey        string
	RedisURL              string
	GeocodeCacheTTL       time.Duration
	HousingAPIURL         string
	HousingAPIKey         string
	CrimeAPIURL           string
	CrimeAPIKey           string
	RoutingAPIURL         string
	RoutingAPIKey         string
	CommuteDestLat        float64
	CommuteDestLon        float64
	CommuteDestName       string
	SchoolsAPIURL         string
	SchoolsAPIKey         string
	AssistantEnabled      bool
	AssistantBaseURL      string
	AssistantModel        string
	AssistantAPIKey       string
	SearchURL             string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) IsDevelopment() bool      { return strings.EqualFold(c.Env, "development") }

// GeocoderConfig implementation
func (c *Config) GetGeocoderURL() string            { return c.GeocoderURL }
func (c *Config) GetGeocoderAPIKey() string         { return c.GeocoderAPIKey }
func (c *Config) GetUpstreamTimeout() time.Duration { return c.UpstreamTimeout }

// CacheConfig implementation
func (c *Config) GetRedisURL() string               { return c.RedisURL }
func (c *Config) GetGeocodeCacheTTL() time.Duration { return c.GeocodeCacheTTL }
func (c *Config) IsGeocodeCacheEnabled() bool       { return c.RedisURL != "" }

// POIConfig implementation
func (c *Config) GetOverpassURL() string  { return c.OverpassURL }
func (c *Config) GetOverpassRPS() float64 { return c.OverpassRPS }
func (c *Config) GetPOIRadiusMeters() int { return c.POIRadiusMeters }

// ProviderConfig implementation
func (c *Config) GetProviderMode() string          { return c.ProviderMode }
func (c *Config) GetSimulatedFixturesPath() string { return c.SimulatedFixturesPath }
func (c *Config) GetHousingAPIURL() string         { return c.HousingAPIURL }
func (c *Config) GetHousingAPIKey() string         { return c.HousingAPIKey }
func (c *Config) GetCrimeAPIURL() string           { return c.CrimeAPIURL }
func (c *Config) GetCrimeAPIKey() string           { return c.CrimeAPIKey }
func (c *Config) GetRoutingAPIURL() string         { return c.RoutingAPIURL }
func (c *Config) GetRoutingAPIKey() string         { return c.RoutingAPIKey }
func (c *Config) GetCommuteDestination() (float64, float64, string) {
	return c.CommuteDestLat, c.CommuteDestLon, c.CommuteDestName
}
func (c *Config) GetSchoolsAPIURL() string { return c.SchoolsAPIURL }
func (c *Config) GetSchoolsAPIKey() string { return c.SchoolsAPIKey }

// ProfileConfig implementation
func (c *Config) GetAggregateTimeout() time.Duration { return c.AggregateTimeout }

// AssistantConfig implementation
func (c *Config) IsAssistantEnabled() bool    { return c.AssistantEnabled }
func (c *Config) GetAssistantBaseURL() string { return c.AssistantBaseURL }
func (c *Config) GetAssistantModel() string   { return c.AssistantModel }
func (c *Config) GetAssistantAPIKey() string  { return c.AssistantAPIKey }
func (c *Config) GetSearchURL() string        { return c.SearchURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8501"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		ProviderMode:          strings.ToLower(strings.TrimSpace(getEnv("PROVIDER_MODE", ProviderModeLive))),
		SimulatedFixturesPath: getEnv("SIMULATED_FIXTURES_PATH", ""),
		AggregateTimeout:      mustDuration(getEnv("AGGREGATE_TIMEOUT", "20s")),
		UpstreamTimeout:       mustDuration(getEnv("UPSTREAM_TIMEOUT", "12s")),
		POIRadiusMeters:       mustInt(getEnv("POI_RADIUS_METERS", "2000")),
		OverpassURL:           getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OverpassRPS:           mustFloat(getEnv("OVERPASS_RPS", "2")),
		GeocoderURL:           getEnv("GEOCODER_URL", "https://api.opencagedata.com/geocode/v1/json"),
		GeocoderAPIKey:        getEnv("GEOCODER_API_KEY", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		GeocodeCacheTTL:       mustDuration(getEnv("GEOCODE_CACHE_TTL", "168h")),
		HousingAPIURL:         getEnv("HOUSING_API_URL", "https://api.rentcast.io/v1/avm/rent/long-term"),
		HousingAPIKey:         getEnv("HOUSING_API_KEY", ""),
		CrimeAPIURL:           getEnv("CRIME_API_URL", "https://api.crimeometer.com/v1/stats/rate"),
		CrimeAPIKey:           getEnv("CRIME_API_KEY", ""),
		RoutingAPIURL:         getEnv("ROUTING_API_URL", "https://api.openrouteservice.org/v2/directions/driving-car"),
		RoutingAPIKey:         getEnv("ROUTING_API_KEY", ""),
		CommuteDestLat:        mustFloat(getEnv("COMMUTE_DEST_LAT", "42.3601")),
		CommuteDestLon:        mustFloat(getEnv("COMMUTE_DEST_LON", "-71.0589")),
		CommuteDestName:       getEnv("COMMUTE_DEST_NAME", "Downtown Boston"),
		SchoolsAPIURL:         getEnv("SCHOOLS_API_URL", "https://gs-api.greatschools.org/v2/schools"),
		SchoolsAPIKey:         getEnv("SCHOOLS_API_KEY", ""),
		AssistantEnabled:      strings.EqualFold(getEnv("ASSISTANT_ENABLED", "true"), "true"),
		AssistantBaseURL:      getEnv("ASSISTANT_BASE_URL", "http://localhost:11434/v1"),
		AssistantModel:        getEnv("ASSISTANT_MODEL", "mistral"),
		AssistantAPIKey:       getEnv("ASSISTANT_API_KEY", ""),
		SearchURL:             getEnv("SEARCH_URL", "https://html.duckduckgo.com/html/"),
	}

	if cfg.ProviderMode != ProviderModeLive && cfg.ProviderMode != ProviderModeSimulated {
		return nil, fmt.Errorf("PROVIDER_MODE must be %q or %q, got %q", ProviderModeLive, ProviderModeSimulated, cfg.ProviderMode)
	}
	if cfg.AggregateTimeout <= 0 {
		return nil, fmt.Errorf("AGGREGATE_TIMEOUT must be a positive duration")
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be a positive duration")
	}
	if cfg.POIRadiusMeters <= 0 {
		return nil, fmt.Errorf("POI_RADIUS_METERS must be positive")
	}
	if cfg.OverpassRPS <= 0 {
		return nil, fmt.Errorf("OVERPASS_RPS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
