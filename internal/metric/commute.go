package metric

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	maxCommuteScore    = 10
	minCommuteScore    = 1
	minutesPerPointOff = 6
)

// CommuteScore rates the drive to a fixed destination on an inverted 1-10
// scale.
type CommuteScore struct {
	source      RouteSource
	destination Destination
	label       string
}

// NewCommuteScore creates the provider.
func NewCommuteScore(source RouteSource, destination Destination) *CommuteScore {
	return &CommuteScore{source: source, destination: destination}
}

func (p *CommuteScore) Name() string { return KeyCommuteScore }

func (p *CommuteScore) Measure(ctx context.Context, in Input) (Value, error) {
	d, err := p.source.DriveDuration(ctx, in.Place, in.Coordinate, p.destination.Coordinate)
	if err != nil {
		return Value{}, err
	}
	minutes := int(math.Round(d.Minutes()))
	return Text(fmt.Sprintf("%d/10 (%d min drive to %s)%s", CommuteRating(d), minutes, p.destination.Name, p.label)), nil
}

// CommuteRating maps a drive time to 1-10, losing one point per six minutes.
func CommuteRating(d time.Duration) int {
	minutes := int(math.Round(d.Minutes()))
	score := maxCommuteScore - minutes/minutesPerPointOff
	return max(minCommuteScore, min(maxCommuteScore, score))
}
