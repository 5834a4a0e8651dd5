// Package calcom is the client for the Cal.com scheduling backend.
//
// Cal.com exposes two API generations with different auth conventions: the
// legacy /v1 surface authenticates with an apiKey query parameter, the /v2
// surface with an Authorization bearer header. One request core serves both,
// parameterized by surface.
package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"calchat/config"
)

const (
	DefaultBaseURL = "https://api.cal.com/v1"
	DefaultFindURL = "https://api.cal.com/v2"

	// StatusAccepted is the fixed booking status sent on creation.
	StatusAccepted = "ACCEPTED"
)

type surface int

const (
	surfaceLegacy surface = iota // /v1, apiKey query parameter
	surfaceBearer                // /v2, Authorization: Bearer header
)

// Client issues authenticated requests against both Cal.com API surfaces.
// No retries, no backoff, no timeout override: transport behavior is the
// http.Client's default.
type Client struct {
	apiKey  string
	baseURL string
	findURL string
	httpc   *http.Client
}

func NewClient(apiKey, baseURL, findURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if findURL == "" {
		findURL = DefaultFindURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		findURL: findURL,
		httpc:   http.DefaultClient,
	}
}

// Configured reports whether a Cal.com API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// do performs one request and normalizes every failure into an error value.
// Order of precedence: missing credential (before any I/O), non-2xx response
// (structured body preferred over raw text), transport failure, malformed
// 2xx body.
func (c *Client) do(ctx context.Context, s surface, method, path string, query url.Values, body any) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	base := c.baseURL
	if s == surfaceBearer {
		base = c.findURL
	}

	if query == nil {
		query = url.Values{}
	}
	if s == surfaceLegacy {
		query.Set("apiKey", c.apiKey)
	}
	fullURL := base + path + "?" + query.Encode()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if s == surfaceBearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Cal.com API Error] request exception: %v", err)
		}
		return nil, &APIError{Message: fmt.Sprintf("request exception: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Message:    fmt.Sprintf("HTTP error: %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
			RawText:    string(raw),
		}
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			apiErr.Body = decoded
		}
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Cal.com API Error] %s - %s", apiErr.Message, apiErr.RawText)
		}
		return nil, apiErr
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &APIError{Message: "failed to decode JSON response from Cal.com API"}
	}
	return decoded, nil
}
