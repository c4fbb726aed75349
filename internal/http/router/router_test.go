package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apphttp "neighborhood_insights/internal/http"
	"neighborhood_insights/platform/config"
	"neighborhood_insights/platform/httpkit"
	"neighborhood_insights/platform/logger"
	"neighborhood_insights/platform/observability"

	"github.com/gin-gonic/gin"
)

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
}

func newTestApp() *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config:  &config.Config{Env: "development", CORSOrigins: []string{"http://localhost:8501"}},
		Logger:  logger.Discard(),
		Metrics: observability.NewMetrics(),
		Modules: []apphttp.Module{pingModule{}},
	}
}

func do(engine *gin.Engine, method, target string, header map[string]string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndRequestID(t *testing.T) {
	engine := New(newTestApp())

	rec := do(engine, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(httpkit.RequestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected security headers")
	}

	rec = do(engine, http.MethodGet, "/api/health", map[string]string{httpkit.RequestIDHeader: "req-123"})
	if got := rec.Header().Get(httpkit.RequestIDHeader); got != "req-123" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
}

func TestMetricsEndpointExposesHTTPCounters(t *testing.T) {
	engine := New(newTestApp())
	do(engine, http.MethodGet, "/api/v1/ping", nil)

	rec := do(engine, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests_total{route="/api/v1/ping",status="200"} 1`) {
		t.Fatalf("expected ping counter in exposition, got:\n%s", rec.Body.String())
	}
}

func TestV1IsRateLimitedPerIP(t *testing.T) {
	engine := New(newTestApp())

	limited := false
	for range rateLimitBurst + 1 {
		if rec := do(engine, http.MethodGet, "/api/v1/ping", nil); rec.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Fatalf("expected burst to be exhausted")
	}

	if rec := do(engine, http.MethodGet, "/api/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected health to bypass the limiter, got %d", rec.Code)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	engine := New(newTestApp())

	rec := do(engine, http.MethodGet, "/api/health", map[string]string{"Origin": "http://localhost:8501"})
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8501" {
		t.Fatalf("expected allowed origin header, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	rec = do(engine, http.MethodGet, "/api/health", map[string]string{"Origin": "http://evil.example"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected foreign origin to be rejected, got %d", rec.Code)
	}
}
