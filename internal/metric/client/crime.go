package client

import (
	"context"
	"net/url"
	"time"

	"neighborhood_insights/platform/logger"
)

// Crime queries a crime statistics API.
type Crime struct {
	base
}

// NewCrime creates a crime statistics client.
func NewCrime(endpoint, apiKey string, timeout time.Duration, log *logger.Logger) *Crime {
	return &Crime{base: newBase("crime", endpoint, apiKey, timeout, log)}
}

type crimeResponse struct {
	CrimeRate *FlexNumber `json:"crime_rate"`
}

// CrimeRate returns incidents per 1,000 residents for the place.
func (c *Crime) CrimeRate(ctx context.Context, place string) (float64, error) {
	params := url.Values{}
	params.Set("location", place)

	var payload crimeResponse
	if err := c.getJSON(ctx, params, "X-Api-Key", &payload); err != nil {
		return 0, err
	}
	if payload.CrimeRate == nil || *payload.CrimeRate < 0 {
		return 0, ErrNoData
	}
	return float64(*payload.CrimeRate), nil
}
