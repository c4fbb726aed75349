package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"neighborhood_insights/internal/geo"
	"neighborhood_insights/platform/logger"

	"golang.org/x/time/rate"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	overpassTimeoutSec = 25
)

// Client queries an Overpass API interpreter. Each Search is a single POST
// covering nodes, ways and relations carrying the tag within the radius.
type Client struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewClient creates an Overpass client. rps bounds outbound requests per
// second; the public instances reject bursts.
func NewClient(endpoint string, rps float64, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		limiter:    rate.NewLimiter(limit, 1),
		log:        log,
	}
}

type overpassResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		ID   int64             `json:"id"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Search implements Searcher. It never returns an error; failures are carried
// in Result.Err.
func (c *Client) Search(ctx context.Context, coord geo.Coordinate, tag string, radiusMeters int) Result {
	result := Result{Category: tag}

	parsed, err := ParseTag(tag)
	if err != nil {
		result.Err = err
		return result
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	names, err := c.fetch(ctx, BuildQuery(parsed, coord, radiusMeters))
	if err != nil {
		c.log.WithContext(ctx).Error("overpass request failed", "tag", tag, "error", err)
		result.Err = err
		return result
	}

	if len(names) > MaxResults {
		result.Names = names[:MaxResults]
		result.Truncated = true
	} else {
		result.Names = names
	}
	return result
}

// BuildQuery renders the combined node/way/relation Overpass QL query.
func BuildQuery(tag Tag, coord geo.Coordinate, radiusMeters int) string {
	filter := fmt.Sprintf(`["%s"="%s"](around:%d,%f,%f)`, tag.Key, tag.Value, radiusMeters, coord.Latitude, coord.Longitude)

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];(", overpassTimeoutSec)
	for _, kind := range []string{"node", "way", "relation"} {
		b.WriteString(kind)
		b.WriteString(filter)
		b.WriteString(";")
	}
	b.WriteString(");out tags;")
	return b.String()
}

func (c *Client) fetch(ctx context.Context, query string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass status %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode overpass payload: %w", err)
	}

	// Provider order is kept and duplicate names pass through untouched.
	names := make([]string, 0, len(payload.Elements))
	for _, el := range payload.Elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
