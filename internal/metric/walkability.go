package metric

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	walkPointsPerAmenity = 2.5
	maxWalkability       = 100
)

// WalkabilityTags are the everyday amenities counted toward walkability.
var WalkabilityTags = []string{
	"amenity=restaurant",
	"amenity=cafe",
	"leisure=park",
	"amenity=school",
	"shop=supermarket",
	"amenity=pharmacy",
	"amenity=bank",
	"highway=bus_stop",
}

// Walkability scores amenity density. Failed categories count as zero; the
// provider itself never fails.
type Walkability struct {
	tags []string
}

// NewWalkability creates the provider over WalkabilityTags.
func NewWalkability() *Walkability {
	return &Walkability{tags: WalkabilityTags}
}

func (p *Walkability) Name() string { return KeyWalkability }

func (p *Walkability) Measure(ctx context.Context, in Input) (Value, error) {
	var (
		mu    sync.Mutex
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, tag := range p.tags {
		g.Go(func() error {
			res := in.POI.Search(gctx, in.Coordinate, tag, in.RadiusMeters)
			mu.Lock()
			total += res.Count()
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return Number(WalkabilityScore(total)), nil
}

// WalkabilityScore is linear in the amenity count and saturates at 100.
func WalkabilityScore(amenities int) float64 {
	return math.Min(maxWalkability, walkPointsPerAmenity*float64(max(0, amenities)))
}

// nearbyNames runs one search and returns its names or its fetch error.
func nearbyNames(ctx context.Context, in Input, tag string) ([]string, error) {
	res := in.POI.Search(ctx, in.Coordinate, tag, in.RadiusMeters)
	if res.Failed() {
		return nil, res.Err
	}
	return res.Names, nil
}
