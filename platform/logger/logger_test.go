package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	log.WithContext(ctx).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Fatalf("expected request_id, got %v", entry["request_id"])
	}
}

func TestProviderOutcomeLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.ProviderOutcome("Average Rent", "ok", 5*time.Millisecond, "")
	if buf.Len() != 0 {
		t.Fatalf("expected ok outcomes at debug level to be dropped in production, got %q", buf.String())
	}

	log.ProviderOutcome("Crime Level", "unavailable", 5*time.Millisecond, "crime not configured")
	out := buf.String()
	if !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, `"reason":"crime not configured"`) {
		t.Fatalf("unexpected warn entry %q", out)
	}
}
