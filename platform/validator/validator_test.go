package validator

import (
	"strings"
	"testing"
)

func TestIsPlaceName(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"city and state", "Cambridge, MA", true},
		{"unicode", "São Paulo", true},
		{"blank", "   ", false},
		{"digits only", "02139", false},
		{"control character", "Boston\x00", false},
		{"too long", strings.Repeat("a", maxPlaceNameLength+1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsPlaceName(tc.value); got != tc.want {
				t.Fatalf("expected IsPlaceName(%q) = %v, got %v", tc.value, tc.want, got)
			}
		})
	}
}

func TestVarUsesPlaceNameRule(t *testing.T) {
	v := New()
	if err := v.Var("Somerville, MA", PlaceNameTag); err != nil {
		t.Fatalf("expected valid place name, got %v", err)
	}
	if err := v.Var("", PlaceNameTag); err == nil {
		t.Fatalf("expected blank place name to fail validation")
	}
}
