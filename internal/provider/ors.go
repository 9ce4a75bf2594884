package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bataanroutes/route-backend-go/internal/models"
	"github.com/bataanroutes/route-backend-go/internal/observability"
)

const (
	defaultBaseURL = "https://api.openrouteservice.org/v2/directions/driving-car/geojson"

	requestTimeout  = 20 * time.Second
	maxAttempts     = 5
	baseBackoff     = 400 * time.Millisecond
	maxBackoff      = 4 * time.Second
	maxResponseSize = 8 << 20
)

// ORSClient calls the OpenRouteService directions API.
// A semaphore bounds the number of in-flight upstream calls so the free-tier
// quota is not burst through by concurrent requests.
type ORSClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	sem        chan struct{}
	metrics    *observability.Metrics

	backoffBase time.Duration
}

// NewORSClient creates an OpenRouteService client with at most
// maxConcurrency in-flight upstream calls
func NewORSClient(apiKey string, maxConcurrency int, metrics *observability.Metrics) *ORSClient {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &ORSClient{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: requestTimeout},
		sem:         make(chan struct{}, maxConcurrency),
		metrics:     metrics,
		backoffBase: baseBackoff,
	}
}

type orsResponse struct {
	Features []struct {
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// GetRoute requests a driving route from ORS, retrying transient upstream
// failures with capped exponential backoff
func (c *ORSClient) GetRoute(ctx context.Context, start, end models.Coordinate) (models.RoutePolyline, error) {
	if err := validatePair(start, end); err != nil {
		return models.RoutePolyline{}, err
	}
	if c.apiKey == "" {
		return models.RoutePolyline{}, fmt.Errorf("%w: ORS_API_KEY not configured", models.ErrProviderUnavailable)
	}

	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return models.RoutePolyline{}, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, ctx.Err())
	}
	defer func() { <-c.sem }()

	body, err := json.Marshal(map[string]interface{}{
		// ORS expects [lng, lat] pairs
		"coordinates": [][]float64{
			{start.Lng, start.Lat},
			{end.Lng, end.Lat},
		},
	})
	if err != nil {
		return models.RoutePolyline{}, fmt.Errorf("%w: encoding request: %v", models.ErrProviderUnavailable, err)
	}

	route, err := c.doWithRetry(ctx, body)
	if err != nil {
		c.metrics.ProviderCalls.WithLabelValues("error").Inc()
		return models.RoutePolyline{}, err
	}
	c.metrics.ProviderCalls.WithLabelValues("ok").Inc()
	return route, nil
}

func (c *ORSClient) doWithRetry(ctx context.Context, body []byte) (models.RoutePolyline, error) {
	var lastStatus int
	var lastBody []byte

	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return models.RoutePolyline{}, fmt.Errorf("%w: creating request: %v", models.ErrProviderUnavailable, err)
		}
		req.Header.Set("Authorization", c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return models.RoutePolyline{}, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
		}

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		resp.Body.Close()
		if err != nil {
			return models.RoutePolyline{}, fmt.Errorf("%w: reading response: %v", models.ErrProviderUnavailable, err)
		}

		lastStatus = resp.StatusCode
		lastBody = respBody

		if resp.StatusCode == http.StatusOK {
			return parseRoute(respBody)
		}
		if !retryableStatus(resp.StatusCode) {
			return models.RoutePolyline{}, fmt.Errorf("%w: ORS status %d: %s", models.ErrProviderUnavailable, resp.StatusCode, snippet(respBody))
		}

		wait := c.backoffBase * (1 << attempt)
		if wait > maxBackoff {
			wait = maxBackoff
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return models.RoutePolyline{}, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, ctx.Err())
		}
	}

	return models.RoutePolyline{}, fmt.Errorf("%w: ORS status %d after %d attempts: %s", models.ErrProviderUnavailable, lastStatus, maxAttempts, snippet(lastBody))
}

func parseRoute(body []byte) (models.RoutePolyline, error) {
	var parsed orsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.RoutePolyline{}, fmt.Errorf("%w: decoding response: %v", models.ErrProviderUnavailable, err)
	}
	if len(parsed.Features) == 0 {
		return models.RoutePolyline{}, fmt.Errorf("%w: ORS returned no route features", models.ErrProviderUnavailable)
	}

	feature := parsed.Features[0]
	summary := feature.Properties.Summary
	if summary.Distance <= 0 || summary.Duration <= 0 {
		return models.RoutePolyline{}, fmt.Errorf("%w: ORS returned non-positive distance or duration", models.ErrProviderUnavailable)
	}

	points := make([]models.Coordinate, 0, len(feature.Geometry.Coordinates))
	for _, pos := range feature.Geometry.Coordinates {
		if len(pos) < 2 {
			continue
		}
		points = append(points, models.Coordinate{Lat: pos[1], Lng: pos[0]})
	}

	return models.RoutePolyline{
		Points:          points,
		DistanceKm:      summary.Distance / 1000.0,
		DurationMinutes: summary.Duration / 60.0,
	}, nil
}

func validatePair(start, end models.Coordinate) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if start == end {
		return fmt.Errorf("%w: start and end are identical", models.ErrInvalidRouteRequest)
	}
	return nil
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func snippet(body []byte) string {
	const limit = 200
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
