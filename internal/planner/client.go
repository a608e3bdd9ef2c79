// Package planner is the HTTP client for the external trip-planning
// backend. Route computation, HOS rule evaluation, and stop scheduling all
// happen on the far side of this client; the console only relays input and
// renders the result.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openhaul/dispatch/pkg/config"
)

// Client posts trip-planning requests to the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a planner client from configuration.
func NewClient(cfg config.PlannerData, logger *zap.SugaredLogger) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("planner base_url is required")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// PlanTrip submits a plan request and decodes the backend's response. The
// response shape is consumed as an opaque contract; absent fields decode to
// zero values rather than failing.
func (c *Client) PlanTrip(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding plan request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/trips/plan", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building plan request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("trip planning request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trip planning backend returned status %d", resp.StatusCode)
	}

	var plan PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("decoding plan response: %w", err)
	}

	c.logger.Debugw("trip plan received",
		"distance_miles", plan.Route.DistanceMiles,
		"days", len(plan.Logs),
		"stops", len(plan.Stops),
		"duration", time.Since(start))

	return &plan, nil
}
