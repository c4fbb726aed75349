package metric

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValueDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"text", Text("Low (12.0 per 1,000)"), "Low (12.0 per 1,000)"},
		{"whole number", Number(75), "75"},
		{"fraction", Number(7.5), "7.5"},
		{"list", List([]string{"Alpha", "Beta"}), "Alpha, Beta"},
		{"empty list", List(nil), ""},
		{"unavailable", Unavailable("timeout"), "N/A"},
		{"zero value", Value{}, "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Display(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValueNumeric(t *testing.T) {
	tests := []struct {
		value Value
		want  float64
	}{
		{Number(42), 42},
		{List([]string{"a", "b", "c"}), 3},
		{Text("$2,000"), 2000},
		{Text("8/10 (14 min drive to Downtown Boston)"), 8},
		{Text("Moderate"), 0},
		{Unavailable("x"), 0},
		{Value{}, 0},
	}
	for _, tt := range tests {
		if got := tt.value.Numeric(); got != tt.want {
			t.Fatalf("%+v: expected %v, got %v", tt.value, tt.want, got)
		}
	}
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal([]Metric{
		{Name: KeyParks, Value: List(nil)},
		{Name: KeyCrimeLevel, Value: Unavailable("crime not configured")},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`"name":"Parks Nearby"`,
		`"kind":"list"`,
		`"kind":"unavailable"`,
		`"reason":"crime not configured"`,
		`"display":"N/A"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}
