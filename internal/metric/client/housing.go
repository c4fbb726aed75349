package client

import (
	"context"
	"net/url"
	"time"

	"neighborhood_insights/platform/logger"
)

// Housing queries a rent-estimate API for a two-bedroom apartment.
type Housing struct {
	base
}

// NewHousing creates a housing client.
func NewHousing(endpoint, apiKey string, timeout time.Duration, log *logger.Logger) *Housing {
	return &Housing{base: newBase("housing", endpoint, apiKey, timeout, log)}
}

type rentResponse struct {
	Rent  *FlexNumber `json:"rent"`
	Price *FlexNumber `json:"price"`
}

// Rent returns the estimated monthly rent for the place.
func (c *Housing) Rent(ctx context.Context, place string) (float64, error) {
	params := url.Values{}
	params.Set("address", place)
	params.Set("propertyType", "Apartment")
	params.Set("bedrooms", "2")

	var payload rentResponse
	if err := c.getJSON(ctx, params, "X-Api-Key", &payload); err != nil {
		return 0, err
	}

	switch {
	case payload.Rent != nil && *payload.Rent > 0:
		return float64(*payload.Rent), nil
	case payload.Price != nil && *payload.Price > 0:
		return float64(*payload.Price), nil
	default:
		return 0, ErrNoData
	}
}
