package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient calls an external generation service over JSON. The
// endpoint and token come from configuration; a per-request timeout
// keeps a slow generator from pinning the mutation request open.
type HTTPClient struct {
	endpoint   string
	apiToken   string
	httpClient *http.Client
}

// NewHTTPClient creates a generation client against the given endpoint.
func NewHTTPClient(endpoint, apiToken string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		endpoint: endpoint,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateResponse struct {
	Exercises []Exercise `json:"exercises"`
	Error     string     `json:"error,omitempty"`
}

// GenerateSession posts the request and decodes the exercise list. Any
// transport failure, non-200 status, or empty result is an error; the
// executor converts it into a user-visible failure.
func (c *HTTPClient) GenerateSession(ctx context.Context, req Request) ([]Exercise, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("generation service error: %s", decoded.Error)
	}
	if len(decoded.Exercises) == 0 {
		return nil, fmt.Errorf("generation service returned no exercises")
	}
	return decoded.Exercises, nil
}

func truncate(raw []byte, limit int) string {
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
