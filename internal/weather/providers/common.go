package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"
)

var (
	// ErrMissingAPIKey reports a missing credential before any network call.
	ErrMissingAPIKey = errors.New("openweather api key is not configured")

	errNoHTTPClient = errors.New("http client not configured")
	errCircuitOpen  = errors.New("circuit breaker open")
)

// APIError is a non-2xx response from the weather API, carrying the HTTP
// status and the best-effort message extracted from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: status %d", e.StatusCode)
}

// doRequest executes the request through the circuit breaker. A non-2xx
// status becomes an *APIError; the breaker fails fast when open but never
// re-attempts a request on its own.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				Message:    responseErrorMessage(resp),
			}
			resp.Body.Close()
			return nil, apiErr
		}

		return resp, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// responseErrorMessage extracts a helpful message from an error response:
// the JSON body's "message" field, then "error", then the raw JSON text,
// then the HTTP status line.
func responseErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var payload map[string]interface{}
		if json.Unmarshal(body, &payload) == nil && payload != nil {
			if msg, ok := payload["message"].(string); ok && msg != "" {
				return msg
			}
			if msg, ok := payload["error"].(string); ok && msg != "" {
				return msg
			}
			return strings.TrimSpace(string(body))
		}
	}
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
