package metric

import (
	"context"
	"fmt"
	"slices"
	"time"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/internal/metric/client"
	"neighborhood_insights/platform/config"
	"neighborhood_insights/platform/logger"
)

// Registry is the fixed, ordered set of providers behind every profile.
type Registry struct {
	Providers []Provider
	Derived   []Derived
}

// Keys returns every metric key in profile order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.Providers)+len(r.Derived))
	for _, p := range r.Providers {
		keys = append(keys, p.Name())
	}
	for _, d := range r.Derived {
		keys = append(keys, d.Name())
	}
	return keys
}

// Sources are the keyed backends a registry is built over. Ratings may be nil.
type Sources struct {
	Rent        RentSource
	Crime       CrimeSource
	Route       RouteSource
	Ratings     RatingSource
	Destination Destination
	Simulated   bool
}

// Build assembles the registry in profile order.
func Build(src Sources, store *LastKnownGood, log *logger.Logger) *Registry {
	housing := NewHousingCost(src.Rent, store, log)
	crime := NewCrimeLevel(src.Crime)
	commute := NewCommuteScore(src.Route, src.Destination)
	schools := NewSchoolsNearby(src.Ratings, log)
	if src.Simulated {
		housing.label = simulatedLabel
		crime.label = simulatedLabel
		commute.label = simulatedLabel
		schools.label = ", simulated"
	}

	return &Registry{
		Providers: []Provider{
			housing,
			crime,
			commute,
			NewWalkability(),
			schools,
			NewNearby(KeyParks, "leisure=park"),
			NewNearby(KeyHospitals, "amenity=hospital"),
			NewNearby(KeyRestaurants, "amenity=restaurant"),
			NewParking(),
		},
		Derived: []Derived{
			NewDiversityIndex(),
			NewPETScore(),
		},
	}
}

// NewRegistry builds the live or simulated registry selected by cfg. Live and
// simulated keyed providers are never mixed.
func NewRegistry(cfg config.ProviderConfig, store *LastKnownGood, log *logger.Logger) (*Registry, error) {
	lat, lon, name := cfg.GetCommuteDestination()
	dest := Destination{Name: name, Coordinate: geo.Coordinate{Latitude: lat, Longitude: lon}}

	switch cfg.GetProviderMode() {
	case config.ProviderModeSimulated:
		sim, err := LoadSimulator(cfg.GetSimulatedFixturesPath())
		if err != nil {
			return nil, err
		}
		log.Info("metric providers running in simulated mode")
		return Build(Sources{
			Rent:        sim,
			Crime:       sim,
			Route:       sim,
			Ratings:     sim,
			Destination: dest,
			Simulated:   true,
		}, store, log), nil

	case config.ProviderModeLive:
		timeout := cfg.GetUpstreamTimeout()
		housing := client.NewHousing(cfg.GetHousingAPIURL(), cfg.GetHousingAPIKey(), timeout, log)
		crime := client.NewCrime(cfg.GetCrimeAPIURL(), cfg.GetCrimeAPIKey(), timeout, log)
		routing := client.NewRouting(cfg.GetRoutingAPIURL(), cfg.GetRoutingAPIKey(), timeout, log)
		schools := client.NewSchools(cfg.GetSchoolsAPIURL(), cfg.GetSchoolsAPIKey(), timeout, log)

		unconfigured := make([]string, 0, 3)
		for name, ok := range map[string]bool{
			KeyAverageRent:  housing.Configured(),
			KeyCrimeLevel:   crime.Configured(),
			KeyCommuteScore: routing.Configured(),
		} {
			if !ok {
				unconfigured = append(unconfigured, name)
			}
		}
		slices.Sort(unconfigured)
		if len(unconfigured) > 0 {
			log.Warn("metric providers missing API keys will report N/A", "providers", unconfigured)
		}

		src := Sources{
			Rent:        housing,
			Crime:       crime,
			Route:       liveRoute{routing},
			Destination: dest,
		}
		if schools.Configured() {
			src.Ratings = liveRatings{schools}
		}
		return Build(src, store, log), nil

	default:
		return nil, fmt.Errorf("unknown provider mode %q", cfg.GetProviderMode())
	}
}

type liveRoute struct {
	*client.Routing
}

func (r liveRoute) DriveDuration(ctx context.Context, _ string, origin, destination geo.Coordinate) (time.Duration, error) {
	return r.Routing.DriveDuration(ctx, origin, destination)
}

type liveRatings struct {
	*client.Schools
}

func (r liveRatings) Rating(ctx context.Context, _, school string, near geo.Coordinate) (float64, error) {
	return r.Schools.Rating(ctx, school, near)
}
