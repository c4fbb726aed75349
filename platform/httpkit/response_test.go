package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"neighborhood_insights/platform/apperr"

	"github.com/gin-gonic/gin"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"typed", apperr.Unavailable("assistant is disabled"), http.StatusServiceUnavailable, "assistant is disabled"},
		{"details", apperr.NotFound("could not locate place").WithDetails(map[string]string{"place": "x"}), http.StatusNotFound, "could not locate place"},
		{"untyped", errors.New("secret internals"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			if !HandleError(c, tt.err) {
				t.Fatalf("expected error to be handled")
			}
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.msg {
				t.Fatalf("expected %q, got %q", tt.msg, body.Error)
			}
		})
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if HandleError(c, nil) {
		t.Fatalf("expected nil error to be ignored")
	}
}
