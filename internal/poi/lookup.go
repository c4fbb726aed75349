package poi

import (
	"context"
	"fmt"
	"sync"

	"neighborhood_insights/internal/geo"

	"golang.org/x/sync/singleflight"
)

// Lookup memoizes searches for the lifetime of one profile request so that
// providers asking for the same category share a single upstream query.
// A Lookup must not outlive its request.
type Lookup struct {
	next   Searcher
	group  singleflight.Group
	mu     sync.Mutex
	result map[string]Result
}

// NewLookup wraps next with a fresh request-scoped memo.
func NewLookup(next Searcher) *Lookup {
	return &Lookup{next: next, result: make(map[string]Result)}
}

// Search implements Searcher.
func (l *Lookup) Search(ctx context.Context, coord geo.Coordinate, tag string, radiusMeters int) Result {
	key := fmt.Sprintf("%s|%s|%d", coord, tag, radiusMeters)

	l.mu.Lock()
	if cached, ok := l.result[key]; ok {
		l.mu.Unlock()
		return cached
	}
	l.mu.Unlock()

	v, _, _ := l.group.Do(key, func() (any, error) {
		res := l.next.Search(ctx, coord, tag, radiusMeters)
		// Failures caused by the caller's own cancellation are not memoized.
		if res.Err == nil || ctx.Err() == nil {
			l.mu.Lock()
			l.result[key] = res
			l.mu.Unlock()
		}
		return res, nil
	})
	return v.(Result)
}
