// Package poi searches a points-of-interest database around a coordinate.
package poi

import (
	"context"
	"fmt"
	"strings"

	"neighborhood_insights/internal/geo"
)

// MaxResults caps every Result. Entries beyond it are dropped and the result
// is flagged Truncated.
const MaxResults = 10

// DefaultRadiusMeters is used when a caller passes a non-positive radius.
const DefaultRadiusMeters = 2000

// Result is the outcome of one category query. Names keeps the provider's
// order with duplicates intact. A nil Err with no Names means the query
// succeeded and found nothing; a non-nil Err means the query could not be
// asked at all.
type Result struct {
	Category  string   `json:"category"`
	Names     []string `json:"names"`
	Truncated bool     `json:"truncated"`
	Err       error    `json:"-"`
}

// Failed reports whether the query itself failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Count returns the number of names, 0 for failed queries.
func (r Result) Count() int {
	if r.Failed() {
		return 0
	}
	return len(r.Names)
}

// Searcher is the PlaceSearchClient contract.
type Searcher interface {
	Search(ctx context.Context, coord geo.Coordinate, tag string, radiusMeters int) Result
}

// Tag is a parsed "key=value" category filter such as amenity=school.
type Tag struct {
	Key   string
	Value string
}

// ParseTag splits a "key=value" category tag.
func ParseTag(raw string) (Tag, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(raw), "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return Tag{}, fmt.Errorf("invalid category tag %q: expected key=value", raw)
	}
	if strings.ContainsAny(key+value, "\"[]();") {
		return Tag{}, fmt.Errorf("invalid category tag %q: reserved characters", raw)
	}
	return Tag{Key: key, Value: value}, nil
}

func (t Tag) String() string {
	return t.Key + "=" + t.Value
}
