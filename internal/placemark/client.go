package placemark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/atomicstack/mapping-example/internal/logging/events"
)

const (
	// DefaultEndpoint is where the point-source service listens by default.
	DefaultEndpoint = "http://127.0.0.1:9876"

	// Path is the route serving the placemark grid.
	Path = "/cloud/getPlacemarks"

	defaultTimeout = 5 * time.Second
)

// StatusError reports a non-2xx response from the point source.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("placemark service returned %d", e.Code)
	}
	return fmt.Sprintf("placemark service returned %d: %s", e.Code, e.Body)
}

// Client fetches placemark grids from the point-source service.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for endpoint. A nil httpClient gets a default
// with a short timeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch posts lat/lon to the service and decodes the grid it returns.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (Response, error) {
	events.Placemark.Request(lat, lon)
	body, err := json.Marshal(NewRequest(lat, lon))
	if err != nil {
		return Response{}, fmt.Errorf("encode placemark request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+Path, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build placemark request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		events.Placemark.Error(err)
		return Response{}, fmt.Errorf("fetch placemarks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		events.Placemark.Error(err)
		return Response{}, err
	}
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		events.Placemark.Error(err)
		return Response{}, fmt.Errorf("decode placemark response: %w", err)
	}
	events.Placemark.Result(len(out.Points))
	return out, nil
}
