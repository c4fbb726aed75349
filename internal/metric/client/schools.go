package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/platform/logger"
)

// Schools looks up school ratings by name near a coordinate.
type Schools struct {
	base
}

// NewSchools creates a school ratings client.
func NewSchools(endpoint, apiKey string, timeout time.Duration, log *logger.Logger) *Schools {
	return &Schools{base: newBase("schools", endpoint, apiKey, timeout, log)}
}

type schoolsResponse struct {
	Schools []struct {
		Name   string      `json:"name"`
		Rating *FlexNumber `json:"rating"`
	} `json:"schools"`
}

// Rating returns the 1-10 rating of the first match for name.
func (c *Schools) Rating(ctx context.Context, name string, near geo.Coordinate) (float64, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("lat", strconv.FormatFloat(near.Latitude, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(near.Longitude, 'f', 6, 64))

	var payload schoolsResponse
	if err := c.getJSON(ctx, params, "X-Api-Key", &payload); err != nil {
		return 0, err
	}
	if len(payload.Schools) == 0 || payload.Schools[0].Rating == nil {
		return 0, ErrNoData
	}
	return float64(*payload.Schools[0].Rating), nil
}
