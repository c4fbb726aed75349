package metric

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"neighborhood_insights/platform/logger"
)

const fixtureYAML = `
places:
  "Cambridge, MA":
    rent: 2850
    crime_rate: 24.5
    commute_minutes: 18
    school_rating: 8
`

func TestSimulatorIsDeterministic(t *testing.T) {
	a := NewSimulator(nil)
	b := NewSimulator(nil)
	ctx := context.Background()

	for _, place := range []string{"Somerville, MA", "Austin, TX", "Portland, OR"} {
		r1, _ := a.Rent(ctx, place)
		r2, _ := b.Rent(ctx, place)
		if r1 != r2 {
			t.Fatalf("%s: expected stable rent, got %v and %v", place, r1, r2)
		}
		c1, _ := a.CrimeRate(ctx, place)
		c2, _ := b.CrimeRate(ctx, strings.ToUpper(place))
		if c1 != c2 {
			t.Fatalf("%s: expected case-insensitive seed, got %v and %v", place, c1, c2)
		}
		if c1 < 5 || c1 > 70 {
			t.Fatalf("%s: crime rate out of range: %v", place, c1)
		}
		d, _ := a.DriveDuration(ctx, place, cambridge, cambridge)
		if d < 5*time.Minute || d >= 60*time.Minute {
			t.Fatalf("%s: commute out of range: %v", place, d)
		}
		rating, _ := a.Rating(ctx, place, "Example School", cambridge)
		if rating < 1 || rating > 10 {
			t.Fatalf("%s: rating out of range: %v", place, rating)
		}
	}
}

func TestSimulatorFixturesPinValues(t *testing.T) {
	sim, err := ParseSimulator([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	ctx := context.Background()

	if rent, _ := sim.Rent(ctx, "cambridge, ma"); rent != 2850 {
		t.Fatalf("expected pinned rent 2850, got %v", rent)
	}
	if rate, _ := sim.CrimeRate(ctx, "Cambridge, MA"); rate != 24.5 {
		t.Fatalf("expected pinned crime 24.5, got %v", rate)
	}
	if d, _ := sim.DriveDuration(ctx, "Cambridge, MA", cambridge, cambridge); d != 18*time.Minute {
		t.Fatalf("expected pinned 18m, got %v", d)
	}
	if r, _ := sim.Rating(ctx, "Cambridge, MA", "Anything", cambridge); r != 8 {
		t.Fatalf("expected pinned rating 8, got %v", r)
	}
}

func TestLoadSimulator(t *testing.T) {
	if _, err := LoadSimulator(""); err != nil {
		t.Fatalf("expected empty path to be fine, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(fixtureYAML), 0o600); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}
	sim, err := LoadSimulator(path)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	if rent, _ := sim.Rent(context.Background(), "Cambridge, MA"); rent != 2850 {
		t.Fatalf("expected 2850, got %v", rent)
	}

	if _, err := LoadSimulator(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := ParseSimulator([]byte("places: [")); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestSimulatedRegistryLabelsValues(t *testing.T) {
	sim, err := ParseSimulator([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	reg := Build(Sources{
		Rent:        sim,
		Crime:       sim,
		Route:       sim,
		Ratings:     sim,
		Destination: Destination{Name: "Downtown Boston"},
		Simulated:   true,
	}, nil, logger.Discard())

	searcher := newFakePOI(map[string][]string{"amenity=school": {"Example School"}})
	want := map[string]string{
		KeyAverageRent:  "$2,850 (simulated)",
		KeyCrimeLevel:   "Moderate (24.5 per 1,000) (simulated)",
		KeyCommuteScore: "7/10 (18 min drive to Downtown Boston) (simulated)",
		KeySchools:      "Example School (rating 8/10, simulated)",
	}
	for _, p := range reg.Providers {
		expected, ok := want[p.Name()]
		if !ok {
			continue
		}
		v, err := p.Measure(context.Background(), input(searcher))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", p.Name(), err)
		}
		if v.Display() != expected {
			t.Fatalf("%s: expected %q, got %q", p.Name(), expected, v.Display())
		}
	}
}
