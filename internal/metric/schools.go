package metric

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"neighborhood_insights/platform/logger"

	"golang.org/x/sync/errgroup"
)

const ratingConcurrency = 4

var schoolTags = []string{"amenity=school", "amenity=college"}

// SchoolsNearby lists schools then colleges, each annotated with a rating
// when a rating source is configured. A failed rating degrades only its own
// entry.
type SchoolsNearby struct {
	ratings RatingSource
	label   string
	log     *logger.Logger
}

// NewSchoolsNearby creates the provider. ratings may be nil.
func NewSchoolsNearby(ratings RatingSource, log *logger.Logger) *SchoolsNearby {
	return &SchoolsNearby{ratings: ratings, log: log}
}

func (p *SchoolsNearby) Name() string { return KeySchools }

func (p *SchoolsNearby) Measure(ctx context.Context, in Input) (Value, error) {
	var (
		names []string
		errs  []error
	)
	for _, tag := range schoolTags {
		found, err := nearbyNames(ctx, in, tag)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s search failed: %w", tag, err))
			continue
		}
		names = append(names, found...)
	}
	if len(errs) == len(schoolTags) {
		return Value{}, errors.Join(errs...)
	}

	if p.ratings == nil || len(names) == 0 {
		return List(names), nil
	}
	return List(p.annotate(ctx, in, names)), nil
}

func (p *SchoolsNearby) annotate(ctx context.Context, in Input, names []string) []string {
	items := make([]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ratingConcurrency)
	for i, name := range names {
		g.Go(func() error {
			rating, err := p.ratings.Rating(gctx, in.Place, name, in.Coordinate)
			if err != nil {
				p.log.WithContext(ctx).Debug("school rating lookup failed", "school", name, "error", err)
				items[i] = fmt.Sprintf("%s (rating unavailable)", name)
				return nil
			}
			items[i] = fmt.Sprintf("%s (rating %s/10%s)", name, strconv.FormatFloat(rating, 'f', -1, 64), p.label)
			return nil
		})
	}
	_ = g.Wait()

	return items
}
