package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{Internal("x"), http.StatusInternalServerError},
		{Unavailable("x"), http.StatusServiceUnavailable},
		{BadGateway("x", nil), http.StatusBadGateway},
		{Timeout("x", nil), http.StatusGatewayTimeout},
		{New(KindUnknown, "x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Fatalf("kind %d: expected %d, got %d", tt.err.Kind, tt.want, got)
		}
	}
}

func TestAsFindsWrappedError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("ask: %w", BadGateway("assistant is unavailable", cause).WithOp("assistant.Ask"))

	domainErr, ok := As(err)
	if !ok {
		t.Fatalf("expected to find *Error in chain")
	}
	if domainErr.Error() != "assistant.Ask: assistant is unavailable" {
		t.Fatalf("unexpected message %q", domainErr.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if !Is(err, KindBadGateway) || GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("unexpected kind detection")
	}
}
