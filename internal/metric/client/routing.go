package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/platform/logger"
)

// Routing queries a driving-directions API (OpenRouteService GeoJSON shape).
type Routing struct {
	base
}

// NewRouting creates a routing client.
func NewRouting(endpoint, apiKey string, timeout time.Duration, log *logger.Logger) *Routing {
	return &Routing{base: newBase("routing", endpoint, apiKey, timeout, log)}
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Duration *float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// DriveDuration returns the driving time from origin to destination.
func (c *Routing) DriveDuration(ctx context.Context, origin, destination geo.Coordinate) (time.Duration, error) {
	params := url.Values{}
	params.Set("start", lonLat(origin))
	params.Set("end", lonLat(destination))

	var payload directionsResponse
	if err := c.getJSON(ctx, params, "Authorization", &payload); err != nil {
		return 0, err
	}
	if len(payload.Features) == 0 || payload.Features[0].Properties.Summary.Duration == nil {
		return 0, ErrNoData
	}
	seconds := *payload.Features[0].Properties.Summary.Duration
	if seconds < 0 {
		return 0, ErrNoData
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func lonLat(c geo.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Longitude, c.Latitude)
}
