package metric

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"neighborhood_insights/internal/geo"

	"gopkg.in/yaml.v3"
)

const simulatedLabel = " (simulated)"

// Fixture pins simulated values for one place. Nil fields are generated.
type Fixture struct {
	Rent           *float64 `yaml:"rent"`
	CrimeRate      *float64 `yaml:"crime_rate"`
	CommuteMinutes *float64 `yaml:"commute_minutes"`
	SchoolRating   *float64 `yaml:"school_rating"`
}

type fixtureFile struct {
	Places map[string]Fixture `yaml:"places"`
}

// Simulator produces deterministic stand-in values for the keyed providers.
// The same place always yields the same numbers within and across processes.
type Simulator struct {
	fixtures map[string]Fixture
}

// NewSimulator creates a simulator with optional pinned fixtures.
func NewSimulator(fixtures map[string]Fixture) *Simulator {
	normalized := make(map[string]Fixture, len(fixtures))
	for place, f := range fixtures {
		normalized[placeKey(place)] = f
	}
	return &Simulator{fixtures: normalized}
}

// LoadSimulator reads fixtures from a YAML file. An empty path yields a
// simulator without fixtures.
func LoadSimulator(path string) (*Simulator, error) {
	if path == "" {
		return NewSimulator(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read simulated fixtures: %w", err)
	}
	return ParseSimulator(data)
}

// ParseSimulator builds a simulator from YAML fixture content.
func ParseSimulator(data []byte) (*Simulator, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse simulated fixtures: %w", err)
	}
	return NewSimulator(file.Places), nil
}

func (s *Simulator) fixture(place string) Fixture {
	return s.fixtures[placeKey(place)]
}

func (s *Simulator) rng(parts ...string) *rand.Rand {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(placeKey(p)))
		_, _ = h.Write([]byte{0})
	}
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *Simulator) Rent(_ context.Context, place string) (float64, error) {
	if f := s.fixture(place); f.Rent != nil {
		return *f.Rent, nil
	}
	return float64(1200 + s.rng(place, "rent").IntN(2800)), nil
}

func (s *Simulator) CrimeRate(_ context.Context, place string) (float64, error) {
	if f := s.fixture(place); f.CrimeRate != nil {
		return *f.CrimeRate, nil
	}
	return math.Round((5+s.rng(place, "crime").Float64()*65)*10) / 10, nil
}

func (s *Simulator) DriveDuration(_ context.Context, place string, _, _ geo.Coordinate) (time.Duration, error) {
	minutes := float64(5 + s.rng(place, "commute").IntN(55))
	if f := s.fixture(place); f.CommuteMinutes != nil {
		minutes = *f.CommuteMinutes
	}
	return time.Duration(minutes * float64(time.Minute)), nil
}

func (s *Simulator) Rating(_ context.Context, place, school string, _ geo.Coordinate) (float64, error) {
	if f := s.fixture(place); f.SchoolRating != nil {
		return *f.SchoolRating, nil
	}
	return float64(1 + s.rng(place, school, "rating").IntN(10)), nil
}
