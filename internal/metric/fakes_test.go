package metric

import (
	"context"
	"errors"
	"sync"
	"time"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/internal/poi"
)

var cambridge = geo.Coordinate{Latitude: 42.3736, Longitude: -71.1097}

var errUpstream = errors.New("upstream down")

// fakePOI answers from a tag -> names table; tags in failing return a fetch
// error, unknown tags return an empty success.
type fakePOI struct {
	mu      sync.Mutex
	names   map[string][]string
	failing map[string]bool
	calls   map[string]int
}

func newFakePOI(names map[string][]string, failing ...string) *fakePOI {
	f := &fakePOI{names: names, failing: map[string]bool{}, calls: map[string]int{}}
	for _, tag := range failing {
		f.failing[tag] = true
	}
	return f
}

func (f *fakePOI) Search(_ context.Context, _ geo.Coordinate, tag string, _ int) poi.Result {
	f.mu.Lock()
	f.calls[tag]++
	f.mu.Unlock()
	if f.failing[tag] {
		return poi.Result{Category: tag, Err: errUpstream}
	}
	return poi.Result{Category: tag, Names: f.names[tag]}
}

type rentFunc func(ctx context.Context, place string) (float64, error)

func (f rentFunc) Rent(ctx context.Context, place string) (float64, error) { return f(ctx, place) }

type crimeFunc func(ctx context.Context, place string) (float64, error)

func (f crimeFunc) CrimeRate(ctx context.Context, place string) (float64, error) { return f(ctx, place) }

type routeFunc func(ctx context.Context, place string, origin, dest geo.Coordinate) (time.Duration, error)

func (f routeFunc) DriveDuration(ctx context.Context, place string, origin, dest geo.Coordinate) (time.Duration, error) {
	return f(ctx, place, origin, dest)
}

type ratingFunc func(ctx context.Context, place, school string, near geo.Coordinate) (float64, error)

func (f ratingFunc) Rating(ctx context.Context, place, school string, near geo.Coordinate) (float64, error) {
	return f(ctx, place, school, near)
}

func input(searcher poi.Searcher) Input {
	return Input{Place: "Cambridge, MA", Coordinate: cambridge, POI: searcher, RadiusMeters: 2000}
}
