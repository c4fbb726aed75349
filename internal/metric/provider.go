package metric

import (
	"context"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/internal/poi"
)

// Metric keys, in profile order.
const (
	KeyAverageRent    = "Average Rent"
	KeyCrimeLevel     = "Crime Level"
	KeyCommuteScore   = "Commute Score"
	KeyWalkability    = "Walkability Score"
	KeySchools        = "Schools Nearby"
	KeyParks          = "Parks Nearby"
	KeyHospitals      = "Hospitals Nearby"
	KeyRestaurants    = "Restaurants Nearby"
	KeyParking        = "Parking Spots"
	KeyDiversityIndex = "Diversity Index"
	KeyPETScore       = "PET Score"
)

// Input is everything an independent provider may read. POI is the
// request-scoped memoized searcher; RadiusMeters <= 0 means the search default.
type Input struct {
	Place        string
	Coordinate   geo.Coordinate
	POI          poi.Searcher
	RadiusMeters int
}

// Provider computes one metric from external data. A returned error is turned
// into Unavailable by the caller.
type Provider interface {
	Name() string
	Measure(ctx context.Context, in Input) (Value, error)
}

// Derived computes one metric from values other providers produced. Missing
// or unavailable inputs count as 0.
type Derived interface {
	Name() string
	Inputs() []string
	Derive(values map[string]Value) Value
}
