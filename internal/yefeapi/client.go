// Package yefeapi is a typed client for the Yefe REST API. Every piece of
// business state lives behind this API; the console only ever holds read
// projections of it.
package yefeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/yefe-app/yefe-console/internal/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 1 << 20 // 1 MiB
)

// ErrUnauthorized reports that the API rejected the bearer token. Callers are
// expected to clear the session and send the user back to sign-in.
var ErrUnauthorized = errors.New("yefe api: unauthorized")

// ErrInvalidResponse reports a 2xx response whose body did not match the
// expected envelope shape.
var ErrInvalidResponse = errors.New("Invalid response format")

// APIError carries the user-facing message extracted from a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("HTTP Error: %d %s", e.StatusCode, text)
	}
	return "An unexpected error occurred"
}

// Message extracts the user-facing string for err in the order the console
// surfaces errors: server-provided message, then the error's own text, then a
// generic fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a Yefe API client rooted at baseURL (no trailing slash).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("yefe api base URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	return &Client{
		BaseURL: base,
		HTTP:    httpClient,
	}, nil
}

// envelope is the response wrapper every Yefe endpoint uses.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// do issues one request and decodes the envelope's data into out (when out is
// non-nil). token is the bearer token, empty for unauthenticated endpoints.
// No retries: every failure is terminal for this one invocation.
func (c *Client) do(ctx context.Context, operation, method, path, token string, body, out any) error {
	if c.HTTP == nil {
		return errors.New("yefe api http client is not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	metrics.APIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(operation, "network_error").Inc()
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(operation, "read_error").Inc()
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.APIRequestsTotal.WithLabelValues(operation, "unauthorized").Inc()
		return fmt.Errorf("%s: %w", serverMessage(raw, "session expired"), ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.APIRequestsTotal.WithLabelValues(operation, "http_error").Inc()
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw, ""),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.APIRequestsTotal.WithLabelValues(operation, "invalid_response").Inc()
		return ErrInvalidResponse
	}
	if !env.Success {
		metrics.APIRequestsTotal.WithLabelValues(operation, "rejected").Inc()
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(env.Message),
		}
	}

	if out != nil {
		if len(env.Data) == 0 {
			metrics.APIRequestsTotal.WithLabelValues(operation, "invalid_response").Inc()
			return ErrInvalidResponse
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			metrics.APIRequestsTotal.WithLabelValues(operation, "invalid_response").Inc()
			return ErrInvalidResponse
		}
	}

	metrics.APIRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return nil
}

// serverMessage pulls the message out of an error body, tolerating both the
// standard envelope and bare {"error": "..."} shapes.
func serverMessage(raw []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}
	return fallback
}
