// Package geo resolves free-text place names to coordinates.
package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrUnresolved marks a place the geocoder could not locate.
var ErrUnresolved = errors.New("place could not be resolved")

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the coordinate as "lat,lon" with six decimals.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Valid reports whether both components are finite and in range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Resolver turns a place name into a coordinate. The boolean is false when
// the place is unresolved; implementations never return an error for
// network, decoding or empty-result failures.
type Resolver interface {
	Resolve(ctx context.Context, place string) (Coordinate, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, place string) (Coordinate, bool)

func (f ResolverFunc) Resolve(ctx context.Context, place string) (Coordinate, bool) {
	return f(ctx, place)
}
