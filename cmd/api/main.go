package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neighborhood_insights/internal/assistant"
	"neighborhood_insights/internal/geo"
	apphttp "neighborhood_insights/internal/http"
	"neighborhood_insights/internal/http/router"
	"neighborhood_insights/internal/metric"
	"neighborhood_insights/internal/poi"
	"neighborhood_insights/internal/profile"
	"neighborhood_insights/platform/config"
	"neighborhood_insights/platform/logger"
	"neighborhood_insights/platform/observability"
	"neighborhood_insights/platform/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "provider_mode", cfg.ProviderMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := validator.RegisterGinRules(); err != nil {
		panic("failed to register validation rules: " + err.Error())
	}

	metrics := observability.NewMetrics()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	resolver, closeCache := initResolver(ctx, cfg, log, metrics)
	if closeCache != nil {
		defer closeCache()
	}

	searcher := poi.NewClient(cfg.GetOverpassURL(), cfg.GetOverpassRPS(), cfg.GetUpstreamTimeout(), log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// One last-known-good store for the process; both compared places share it.
	registry, err := metric.NewRegistry(cfg, metric.NewLastKnownGood(), log)
	if err != nil {
		log.Error("failed to initialize metric providers", "error", err)
		panic("failed to initialize metric providers: " + err.Error())
	}

	aggregator := profile.NewService(resolver, searcher, registry, profile.Options{
		Timeout:      cfg.GetAggregateTimeout(),
		RadiusMeters: cfg.GetPOIRadiusMeters(),
	}, log, metrics)
	profileModule := profile.NewModule(aggregator)

	assistantModule, err := assistant.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to initialize assistant module", "error", err)
		panic("failed to initialize assistant module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics,
		Modules: []apphttp.Module{
			profileModule,
			assistantModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initResolver builds the geocoder, wrapped in the Redis cache when REDIS_URL
// is set. A cache that cannot be reached at startup is skipped, not fatal.
func initResolver(ctx context.Context, cfg *config.Config, log *logger.Logger, metrics *observability.Metrics) (geo.Resolver, func()) {
	resolver := geo.NewInstrumented(
		geo.NewClient(cfg.GetGeocoderURL(), cfg.GetGeocoderAPIKey(), cfg.GetUpstreamTimeout(), log),
		metrics,
	)
	if cfg.GetGeocoderAPIKey() == "" {
		log.Warn("GEOCODER_API_KEY not configured; every place will be unresolved")
	}

	if !cfg.IsGeocodeCacheEnabled() {
		log.Info("geocode cache disabled: REDIS_URL not configured")
		return resolver, nil
	}

	rdb, err := geo.NewRedisClient(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; geocode cache disabled", "error", err)
		return resolver, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable; geocode cache disabled", "error", err)
		_ = rdb.Close()
		return resolver, nil
	}

	log.Info("geocode cache enabled", "ttl", cfg.GetGeocodeCacheTTL())
	return geo.NewCachedResolver(resolver, rdb, cfg.GetGeocodeCacheTTL(), log, metrics), func() {
		_ = rdb.Close()
	}
}
