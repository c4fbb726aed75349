package metric

import (
	"context"
	"fmt"
)

// Nearby lists named places of one category. A fetch error is reported as
// such, never as an empty list.
type Nearby struct {
	name string
	tag  string
}

// NewNearby creates a list provider for tag under the metric key name.
func NewNearby(name, tag string) *Nearby {
	return &Nearby{name: name, tag: tag}
}

func (p *Nearby) Name() string { return p.name }

func (p *Nearby) Measure(ctx context.Context, in Input) (Value, error) {
	names, err := nearbyNames(ctx, in, p.tag)
	if err != nil {
		return Value{}, fmt.Errorf("%s search failed: %w", p.tag, err)
	}
	return List(names), nil
}

// Parking counts parking facilities. Errors count as zero.
type Parking struct{}

// NewParking creates the provider.
func NewParking() *Parking {
	return &Parking{}
}

func (p *Parking) Name() string { return KeyParking }

func (p *Parking) Measure(ctx context.Context, in Input) (Value, error) {
	res := in.POI.Search(ctx, in.Coordinate, "amenity=parking", in.RadiusMeters)
	return Number(float64(res.Count())), nil
}
