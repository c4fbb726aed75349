package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/internal/metric"
	"neighborhood_insights/internal/poi"
	"neighborhood_insights/platform/apperr"
	"neighborhood_insights/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 20 * time.Second

	outcomeOK          = "ok"
	outcomeUnavailable = "unavailable"
	outcomeTimeout     = "timeout"
	outcomePanic       = "panic"
)

// Recorder receives one observation per provider run.
type Recorder interface {
	ObserveProvider(provider, outcome string, latency time.Duration)
}

// Options tunes an aggregator.
type Options struct {
	// Timeout bounds a whole Aggregate call, geocoding included.
	Timeout time.Duration
	// RadiusMeters is the POI search radius; <= 0 uses the search default.
	RadiusMeters int
}

// Service is the profile aggregator.
type Service struct {
	resolver geo.Resolver
	searcher poi.Searcher
	registry *metric.Registry
	opts     Options
	log      *logger.Logger
	recorder Recorder
}

// NewService creates an aggregator. recorder may be nil.
func NewService(resolver geo.Resolver, searcher poi.Searcher, registry *metric.Registry, opts Options, log *logger.Logger, recorder Recorder) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Service{
		resolver: resolver,
		searcher: searcher,
		registry: registry,
		opts:     opts,
		log:      log,
		recorder: recorder,
	}
}

type slot struct {
	index   int
	value   metric.Value
	outcome string
	latency time.Duration
}

// Aggregate resolves place and runs every provider against it. The only
// errors are a validation error for a blank place and *ResolutionFailedError.
func (s *Service) Aggregate(ctx context.Context, place string) (*Profile, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, apperr.Validation("place is required").WithOp("profile.Aggregate")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	coord, ok := s.resolver.Resolve(ctx, place)
	if !ok {
		s.log.WithContext(ctx).Info("place could not be resolved", "place", place)
		return nil, &ResolutionFailedError{Place: place}
	}

	in := metric.Input{
		Place:        place,
		Coordinate:   coord,
		POI:          poi.NewLookup(s.searcher),
		RadiusMeters: s.opts.RadiusMeters,
	}

	values := s.measureAll(ctx, in)
	metrics := make([]metric.Metric, 0, len(values)+len(s.registry.Derived))
	byName := make(map[string]metric.Value, len(values)+len(s.registry.Derived))
	for i, p := range s.registry.Providers {
		metrics = append(metrics, metric.Metric{Name: p.Name(), Value: values[i]})
		byName[p.Name()] = values[i]
	}
	for _, d := range s.registry.Derived {
		v := s.derive(ctx, d, byName)
		metrics = append(metrics, metric.Metric{Name: d.Name(), Value: v})
		byName[d.Name()] = v
	}

	partial := false
	for _, m := range metrics {
		if m.Value.IsUnavailable() {
			partial = true
			break
		}
	}

	s.log.WithContext(ctx).Info("profile aggregated",
		"place", place,
		"partial", partial,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return &Profile{
		Place:       place,
		Coordinate:  coord,
		Metrics:     metrics,
		Partial:     partial,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// measureAll runs every independent provider concurrently. Slots still empty
// when ctx ends are abandoned and reported as timeouts.
func (s *Service) measureAll(ctx context.Context, in metric.Input) []metric.Value {
	providers := s.registry.Providers
	results := make(chan slot, len(providers))

	var g errgroup.Group
	for i, p := range providers {
		g.Go(func() error {
			results <- s.measure(ctx, i, p, in)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	values := make([]metric.Value, len(providers))
	filled := make([]bool, len(providers))
	started := time.Now()

collect:
	for {
		select {
		case r, ok := <-results:
			if !ok {
				break collect
			}
			values[r.index] = r.value
			filled[r.index] = true
			s.observe(ctx, providers[r.index].Name(), r.outcome, r.latency, r.value.Reason)
		case <-ctx.Done():
			break collect
		}
	}

	for i, done := range filled {
		if done {
			continue
		}
		values[i] = metric.Unavailable("timeout")
		s.observe(ctx, providers[i].Name(), outcomeTimeout, time.Since(started), "timeout")
	}
	return values
}

func (s *Service) measure(ctx context.Context, index int, p metric.Provider, in metric.Input) (res slot) {
	start := time.Now()
	res.index = index
	defer func() {
		if r := recover(); r != nil {
			s.log.WithContext(ctx).Error("metric provider panicked", "provider", p.Name(), "panic", fmt.Sprint(r))
			res.value = metric.Unavailable("internal error")
			res.outcome = outcomePanic
		}
		res.latency = time.Since(start)
	}()

	value, err := p.Measure(ctx, in)
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil):
		res.value, res.outcome = metric.Unavailable("timeout"), outcomeTimeout
	case err != nil:
		res.value, res.outcome = metric.Unavailable(err.Error()), outcomeUnavailable
	case value.Kind == "":
		res.value, res.outcome = metric.Unavailable("no value"), outcomeUnavailable
	case value.IsUnavailable():
		res.value, res.outcome = value, outcomeUnavailable
	default:
		res.value, res.outcome = value, outcomeOK
	}
	return res
}

func (s *Service) derive(ctx context.Context, d metric.Derived, values map[string]metric.Value) (v metric.Value) {
	inputs := make(map[string]metric.Value, len(d.Inputs()))
	for _, key := range d.Inputs() {
		if val, ok := values[key]; ok {
			inputs[key] = val
		}
	}

	start := time.Now()
	defer func() {
		outcome := outcomeOK
		if r := recover(); r != nil {
			s.log.WithContext(ctx).Error("derived metric panicked", "provider", d.Name(), "panic", fmt.Sprint(r))
			v = metric.Unavailable("internal error")
			outcome = outcomePanic
		}
		s.observe(ctx, d.Name(), outcome, time.Since(start), v.Reason)
	}()
	return d.Derive(inputs)
}

func (s *Service) observe(ctx context.Context, provider, outcome string, latency time.Duration, reason string) {
	s.log.WithContext(ctx).ProviderOutcome(provider, outcome, latency, reason)
	if s.recorder != nil {
		s.recorder.ObserveProvider(provider, outcome, latency)
	}
}

// Compare aggregates each place concurrently. One place failing never
// affects another; results keep the argument order.
func (s *Service) Compare(ctx context.Context, places ...string) []Outcome {
	outcomes := make([]Outcome, len(places))

	var g errgroup.Group
	for i, place := range places {
		g.Go(func() error {
			profile, err := s.Aggregate(ctx, place)
			outcomes[i] = Outcome{Place: strings.TrimSpace(place), Profile: profile, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
