package http

import (
	"neighborhood_insights/platform/config"
	"neighborhood_insights/platform/logger"
	"neighborhood_insights/platform/observability"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP settings only).
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Metrics is the Prometheus collector set served at /metrics.
	Metrics *observability.Metrics
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
