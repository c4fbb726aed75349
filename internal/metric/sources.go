package metric

import (
	"context"
	"time"

	"neighborhood_insights/internal/geo"
)

// RentSource returns an estimated monthly rent for a place.
type RentSource interface {
	Rent(ctx context.Context, place string) (float64, error)
}

// CrimeSource returns incidents per 1,000 residents for a place.
type CrimeSource interface {
	CrimeRate(ctx context.Context, place string) (float64, error)
}

// RouteSource returns the drive time between two coordinates. place names the
// origin for sources that key on it.
type RouteSource interface {
	DriveDuration(ctx context.Context, place string, origin, destination geo.Coordinate) (time.Duration, error)
}

// RatingSource returns a 1-10 rating for a named school near a place.
type RatingSource interface {
	Rating(ctx context.Context, place, school string, near geo.Coordinate) (float64, error)
}

// Destination is the fixed reference point commutes are measured to.
type Destination struct {
	Name       string
	Coordinate geo.Coordinate
}
