// HTTP client for the remote traffic-simulation backend
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trafficdash/internal/traffic"
)

// ServiceError reports a semantic failure from a reachable backend, e.g. an
// invalid map name. Transport failures are returned as wrapped plain errors.
type ServiceError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: backend error (status %d): %s", e.Op, e.Status, e.Message)
}

// Client talks to the simulation backend. The benchmark endpoint blocks for
// the full duration of a run, so it uses a dedicated client with no timeout.
type Client struct {
	baseURL string
	http    *http.Client
	long    *http.Client
}

// New creates a Client. timeout bounds every request except benchmark runs.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		long:    &http.Client{},
	}
}

type startRequest struct {
	MapName string `json:"map_name"`
	RunID   string `json:"run_id,omitempty"`
	AIMode  bool   `json:"ai_mode,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// StartSession begins an interactive session for the given map.
func (c *Client) StartSession(ctx context.Context, mapID string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, c.http, "start session", http.MethodPost, "/start", startRequest{MapName: mapID}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RunBenchmark runs a full non-interactive simulation and returns its summary.
// The call blocks until the backend finishes the run; no client-side timeout
// applies.
func (c *Client) RunBenchmark(ctx context.Context, mapID, runID string, aiMode bool) (traffic.BenchmarkSummary, error) {
	var sum traffic.BenchmarkSummary
	req := startRequest{MapName: mapID, RunID: runID, AIMode: aiMode}
	if err := c.do(ctx, c.long, fmt.Sprintf("benchmark %s", runID), http.MethodPost, "/start", req, &sum); err != nil {
		return traffic.BenchmarkSummary{}, err
	}
	return sum, nil
}

// PollStep fetches the latest step snapshot. Only valid while a session is
// active server-side.
func (c *Client) PollStep(ctx context.Context) (traffic.TelemetrySnapshot, error) {
	var snap traffic.TelemetrySnapshot
	if err := c.do(ctx, c.http, "poll step", http.MethodGet, "/step", nil, &snap); err != nil {
		return traffic.TelemetrySnapshot{}, err
	}
	return snap, nil
}

// ToggleAI flips the backend AI controller and returns its authoritative
// state.
func (c *Client) ToggleAI(ctx context.Context) (traffic.ToggleResult, error) {
	var res traffic.ToggleResult
	if err := c.do(ctx, c.http, "toggle ai", http.MethodPost, "/toggle-ai", nil, &res); err != nil {
		return traffic.ToggleResult{}, err
	}
	return res, nil
}

// DispatchEmergency injects an emergency vehicle into the running session.
func (c *Client) DispatchEmergency(ctx context.Context) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, c.http, "dispatch emergency", http.MethodPost, "/dispatch-emergency", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eresp errorResponse
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&eresp); err == nil && eresp.Error != "" {
			msg = eresp.Error
		}
		return &ServiceError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
