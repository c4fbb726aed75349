package poi

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"neighborhood_insights/internal/geo"
)

type countingSearcher struct {
	calls atomic.Int32
	err   error
}

func (s *countingSearcher) Search(_ context.Context, _ geo.Coordinate, tag string, _ int) Result {
	s.calls.Add(1)
	if s.err != nil {
		return Result{Category: tag, Err: s.err}
	}
	return Result{Category: tag, Names: []string{"Harvard Square"}}
}

func TestLookupSharesIdenticalQueries(t *testing.T) {
	next := &countingSearcher{}
	lookup := NewLookup(next)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := lookup.Search(context.Background(), cambridge, "amenity=school", 2000)
			if len(res.Names) != 1 {
				t.Errorf("expected 1 name, got %v", res.Names)
			}
		}()
	}
	wg.Wait()

	if got := next.calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}

	lookup.Search(context.Background(), cambridge, "leisure=park", 2000)
	lookup.Search(context.Background(), cambridge, "amenity=school", 1000)
	if got := next.calls.Load(); got != 3 {
		t.Fatalf("expected distinct keys to miss, got %d calls", got)
	}
}

func TestLookupMemoizesFailures(t *testing.T) {
	next := &countingSearcher{err: errors.New("overpass down")}
	lookup := NewLookup(next)

	first := lookup.Search(context.Background(), cambridge, "amenity=hospital", 2000)
	second := lookup.Search(context.Background(), cambridge, "amenity=hospital", 2000)
	if !first.Failed() || !second.Failed() {
		t.Fatalf("expected both results to carry the failure")
	}
	if got := next.calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}
