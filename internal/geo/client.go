package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"neighborhood_insights/platform/logger"
)

const defaultHTTPTimeout = 12 * time.Second

// Client geocodes against an OpenCage-compatible endpoint: one GET per place
// with limit=1, reading results[0].geometry.lat/lng. There is no retry.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	log        *logger.Logger
}

// NewClient creates a geocoding client.
func NewClient(endpoint, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		log:        log,
	}
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"geometry"`
		Formatted string `json:"formatted"`
	} `json:"results"`
}

// Resolve implements Resolver.
func (c *Client) Resolve(ctx context.Context, place string) (Coordinate, bool) {
	query := strings.TrimSpace(place)
	if query == "" {
		return Coordinate{}, false
	}
	if c.apiKey == "" {
		c.log.Warn("geocoder not configured: GEOCODER_API_KEY missing")
		return Coordinate{}, false
	}

	coord, err := c.lookup(ctx, query)
	if err != nil {
		c.log.WithContext(ctx).Error("geocode request failed", "place", query, "error", err)
		return Coordinate{}, false
	}
	if coord == nil {
		c.log.WithContext(ctx).Info("geocode returned no results", "place", query)
		return Coordinate{}, false
	}
	return *coord, true
}

func (c *Client) lookup(ctx context.Context, query string) (*Coordinate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("limit", "1")
	params.Set("no_annotations", "1")

	reqURL := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocoder payload: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}

	geometry := payload.Results[0].Geometry
	if geometry.Lat == nil || geometry.Lng == nil {
		return nil, fmt.Errorf("geocoder result without geometry")
	}

	coord := Coordinate{Latitude: *geometry.Lat, Longitude: *geometry.Lng}
	if !coord.Valid() {
		return nil, fmt.Errorf("geocoder returned out-of-range coordinate %s", coord)
	}
	return &coord, nil
}
