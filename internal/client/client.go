// Package client is the HTTP client for the portal backend. Requests carry
// the stored access token as a bearer credential; a 401 triggers one
// refresh-and-retry cycle through the wired Refresher.
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

	"github.com/csesa/portal-client/internal/config"
	"github.com/csesa/portal-client/internal/store"
)

// Refresher obtains a fresh access token after an authentication failure.
// Implementations must collapse concurrent calls into a single exchange.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// APIError is a non-2xx response from the backend. Statuses other than 401
// are not interpreted here; callers decide what they mean.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal api: status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      *store.Store

	// Refresher handles 401 responses. While unset, a 401 is returned to
	// the caller like any other error status.
	Refresher Refresher
}

func New(cfg config.APIConfig, creds *store.Store) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
	}
}

// do sends an authenticated request and decodes the JSON response into out.
// The attempt counter threaded through doAttempt enforces at most one
// retry per original request; a second 401 is terminal.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doAttempt(ctx, method, path, body, out, 0, "")
}

func (c *Client) doAttempt(ctx context.Context, method, path string, body, out any, attempt int, token string) error {
	if token == "" {
		if t, ok := c.creds.AccessToken(); ok {
			token = t
		}
	}
	status, data, err := c.send(ctx, method, path, body, token)
	if err != nil {
		// Plain transport errors propagate unchanged; only authentication
		// failures are retried.
		return err
	}

	if status == http.StatusUnauthorized && attempt == 0 && c.Refresher != nil {
		refreshed, err := c.Refresher.Refresh(ctx)
		if err != nil {
			return err
		}
		return c.doAttempt(ctx, method, path, body, out, attempt+1, refreshed)
	}
	return decode(status, data, out)
}

// doBare sends a request outside the retry pipeline. The auth endpoints go
// through here so a refresh exchange can never recurse into another one.
func (c *Client) doBare(ctx context.Context, method, path string, body, out any) error {
	token, _ := c.creds.AccessToken()
	status, data, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}
	return decode(status, data, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string) (int, []byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func decode(status int, data []byte, out any) error {
	if status < 200 || status >= 300 {
		return &APIError{StatusCode: status, Body: strings.TrimSpace(string(data))}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
