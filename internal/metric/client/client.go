// Package client provides HTTP clients for the keyed third-party APIs behind
// the housing, crime, commute and school-rating metrics.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"neighborhood_insights/platform/logger"
)

const defaultHTTPTimeout = 12 * time.Second

// ErrNoData is returned when an upstream answered but carried no usable value.
var ErrNoData = errors.New("no data in response")

// NotConfiguredError is returned by a client whose API key is missing. No
// request is made.
type NotConfiguredError struct {
	Service string
}

func (e *NotConfiguredError) Error() string {
	return e.Service + " not configured"
}

// StatusError reports a non-200 upstream answer.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status %d", e.Service, e.StatusCode)
}

// FlexNumber handles JSON values that can be either string or number.
type FlexNumber float64

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexNumber(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = FlexNumber(parsed)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexNumber", string(data))
}

// base carries what every keyed client shares.
type base struct {
	service    string
	httpClient *http.Client
	endpoint   string
	apiKey     string
	log        *logger.Logger
}

func newBase(service, endpoint, apiKey string, timeout time.Duration, log *logger.Logger) base {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return base{
		service:    service,
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		log:        log,
	}
}

// Configured reports whether the client has a credential.
func (b *base) Configured() bool {
	return b.apiKey != ""
}

// getJSON issues one GET with params and decodes the JSON body into dst.
// header is the credential header name; the key is sent as its value.
func (b *base) getJSON(ctx context.Context, params url.Values, header string, dst any) error {
	if !b.Configured() {
		return &NotConfiguredError{Service: b.service}
	}

	reqURL := b.endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", b.endpoint, params.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(header, b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.log.WithContext(ctx).Error(b.service+" request failed", "error", err)
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		b.log.WithContext(ctx).Error(b.service+" returned non-200", "status", resp.StatusCode)
		return &StatusError{Service: b.service, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		b.log.WithContext(ctx).Error(b.service+" decode failed", "error", err)
		return fmt.Errorf("decode %s payload: %w", b.service, err)
	}
	return nil
}
