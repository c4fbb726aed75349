package profile

import (
	"fmt"
	"time"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/internal/metric"
)

// Profile is the normalized record of every metric for one place. It is
// built once per request and never mutated afterwards.
type Profile struct {
	Place       string          `json:"place"`
	Coordinate  geo.Coordinate  `json:"coordinate"`
	Metrics     []metric.Metric `json:"metrics"`
	Partial     bool            `json:"partial"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Value returns the metric named name.
func (p *Profile) Value(name string) (metric.Value, bool) {
	for _, m := range p.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return metric.Value{}, false
}

// ResolutionFailedError is returned when a place cannot be geocoded. No
// provider runs for such a place.
type ResolutionFailedError struct {
	Place string
}

func (e *ResolutionFailedError) Error() string {
	return fmt.Sprintf("could not locate %q", e.Place)
}

func (e *ResolutionFailedError) Unwrap() error {
	return geo.ErrUnresolved
}

// Outcome is the per-place result of a comparison. Exactly one of Profile and
// Err is set.
type Outcome struct {
	Place   string
	Profile *Profile
	Err     error
}

// ProfileRequest is the query of GET /profiles.
type ProfileRequest struct {
	Place string `form:"place" binding:"required,placename"`
}

// CompareRequest is the query of GET /profiles/compare.
type CompareRequest struct {
	Place1 string `form:"place1" binding:"required,placename"`
	Place2 string `form:"place2" binding:"required,placename"`
}

// CompareResult is one entry of the comparison response.
type CompareResult struct {
	Place   string   `json:"place"`
	Profile *Profile `json:"profile,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// CompareResponse wraps the comparison results in request order.
type CompareResponse struct {
	Results []CompareResult `json:"results"`
}
