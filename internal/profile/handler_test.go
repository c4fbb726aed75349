package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "neighborhood_insights/internal/http"
	"neighborhood_insights/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGinRules(); err != nil {
		t.Fatalf("register validation rules: %v", err)
	}

	engine := gin.New()
	NewModule(svc).RegisterRoutes(&apphttp.RouterContext{Engine: engine, V1: engine.Group("/api/v1")})
	return engine
}

func serve(engine *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHandlerGetProfile(t *testing.T) {
	svc := newTestService(resolverFor("Cambridge, MA"), &fakePOI{}, registryFor(&keyed{}), time.Second, nil)
	engine := newTestRouter(t, svc)

	rec := serve(engine, "/api/v1/profiles?place=Cambridge,%20MA")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Place   string `json:"place"`
		Partial bool   `json:"partial"`
		Metrics []struct {
			Name  string `json:"name"`
			Value struct {
				Kind    string `json:"kind"`
				Display string `json:"display"`
			} `json:"value"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Place != "Cambridge, MA" {
		t.Fatalf("expected place echoed, got %q", body.Place)
	}
	if len(body.Metrics) != 11 {
		t.Fatalf("expected 11 metrics, got %d", len(body.Metrics))
	}
	if body.Metrics[0].Value.Display != "$2,000" {
		t.Fatalf("expected rent display, got %+v", body.Metrics[0])
	}
}

func TestHandlerGetProfileErrors(t *testing.T) {
	svc := newTestService(resolverFor("Cambridge, MA"), &fakePOI{}, registryFor(&keyed{}), time.Second, nil)
	engine := newTestRouter(t, svc)

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/profiles", http.StatusBadRequest},
		{"/api/v1/profiles?place=%20%20", http.StatusBadRequest},
		{"/api/v1/profiles?place=12345", http.StatusBadRequest},
		{"/api/v1/profiles?place=Atlantis", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := serve(engine, tt.target)
		if rec.Code != tt.status {
			t.Fatalf("%s: expected %d, got %d: %s", tt.target, tt.status, rec.Code, rec.Body.String())
		}
	}

	rec := serve(engine, "/api/v1/profiles?place=Atlantis")
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != msgUnresolvedPlace {
		t.Fatalf("expected %q, got %q", msgUnresolvedPlace, body.Error)
	}
}

func TestHandlerCompare(t *testing.T) {
	svc := newTestService(resolverFor("Cambridge, MA"), &fakePOI{}, registryFor(&keyed{}), time.Second, nil)
	engine := newTestRouter(t, svc)

	rec := serve(engine, "/api/v1/profiles/compare?place1=Cambridge,%20MA&place2=Atlantis")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Results []struct {
			Place   string          `json:"place"`
			Profile json.RawMessage `json:"profile"`
			Error   string          `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(body.Results))
	}
	if body.Results[0].Error != "" || len(body.Results[0].Profile) == 0 {
		t.Fatalf("expected first place profile, got %+v", body.Results[0])
	}
	if body.Results[1].Error != msgUnresolvedPlace || len(body.Results[1].Profile) != 0 {
		t.Fatalf("expected second place error, got %+v", body.Results[1])
	}

	if rec := serve(engine, "/api/v1/profiles/compare?place1=Cambridge"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing place2, got %d", rec.Code)
	}
}
