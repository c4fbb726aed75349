package geo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"neighborhood_insights/platform/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "geo:v1:"

// Recorder receives geocoding outcomes (resolved, unresolved, cache_hit).
type Recorder interface {
	ObserveGeocode(outcome string)
}

// CachedResolver keeps resolved coordinates in Redis so repeat lookups of
// the same place skip the geocoder. Unresolved places are never cached and
// any Redis failure falls through to the wrapped resolver.
type CachedResolver struct {
	next     Resolver
	rdb      redis.UniversalClient
	ttl      time.Duration
	log      *logger.Logger
	recorder Recorder
}

// NewCachedResolver wraps next with a Redis cache.
func NewCachedResolver(next Resolver, rdb redis.UniversalClient, ttl time.Duration, log *logger.Logger, recorder Recorder) *CachedResolver {
	return &CachedResolver{next: next, rdb: rdb, ttl: ttl, log: log, recorder: recorder}
}

// NewRedisClient builds a client from a redis:// or rediss:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// Resolve implements Resolver.
func (r *CachedResolver) Resolve(ctx context.Context, place string) (Coordinate, bool) {
	key := cacheKey(place)
	if key == cacheKeyPrefix {
		return r.next.Resolve(ctx, place)
	}

	if coord, ok := r.get(ctx, key); ok {
		if r.recorder != nil {
			r.recorder.ObserveGeocode("cache_hit")
		}
		return coord, true
	}

	coord, ok := r.next.Resolve(ctx, place)
	if ok {
		r.set(ctx, key, coord)
	}
	return coord, ok
}

func (r *CachedResolver) get(ctx context.Context, key string) (Coordinate, bool) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WithContext(ctx).Warn("geocode cache read failed", "key", key, "error", err)
		}
		return Coordinate{}, false
	}

	var coord Coordinate
	if err := json.Unmarshal(raw, &coord); err != nil || !coord.Valid() {
		r.log.WithContext(ctx).Warn("geocode cache entry corrupt", "key", key)
		return Coordinate{}, false
	}
	return coord, true
}

func (r *CachedResolver) set(ctx context.Context, key string, coord Coordinate) {
	raw, err := json.Marshal(coord)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.log.WithContext(ctx).Warn("geocode cache write failed", "key", key, "error", err)
	}
}

func cacheKey(place string) string {
	return cacheKeyPrefix + strings.ToLower(strings.Join(strings.Fields(place), " "))
}

// Instrumented records resolved/unresolved outcomes of the wrapped resolver.
type Instrumented struct {
	next     Resolver
	recorder Recorder
}

// NewInstrumented wraps next so every lookup is counted.
func NewInstrumented(next Resolver, recorder Recorder) *Instrumented {
	return &Instrumented{next: next, recorder: recorder}
}

// Resolve implements Resolver.
func (i *Instrumented) Resolve(ctx context.Context, place string) (Coordinate, bool) {
	coord, ok := i.next.Resolve(ctx, place)
	if i.recorder != nil {
		if ok {
			i.recorder.ObserveGeocode("resolved")
		} else {
			i.recorder.ObserveGeocode("unresolved")
		}
	}
	return coord, ok
}
