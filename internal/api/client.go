// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxResponseSize caps how much of a response body the client will read.
const MaxResponseSize = 10 << 20

// SessionState is the slice of the client session the request layer needs:
// the current token, and the ability to drop credentials when the server
// rejects them.
type SessionState interface {
	Token() string
	ClearCredentials()
}

// ClientConfig holds configuration options for the DocuMind API client.
type ClientConfig struct {
	// BaseURL of the DocuMind server (default: http://127.0.0.1:5000)
	BaseURL string

	// Timeout for requests (default: 60s; answer generation is slow)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: 60 * time.Second,
	}
}

// Client is the single chokepoint for talking to the DocuMind server.
// Every authenticated request flows through it: the bearer token is
// injected in exactly one place, a missing token fails fast before any
// network I/O, and a 401 clears the stored credentials before surfacing
// ErrUnauthorized.
//
// The Client is safe for concurrent use. It never retries.
type Client struct {
	config        *ClientConfig
	httpClient    *http.Client
	session       SessionState
	onAuthFailure func()
}

// NewClient creates a client bound to the given session state.
func NewClient(sess SessionState, config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &Client{
		config:  config,
		session: sess,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client. Mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithAuthFailureHandler registers a callback invoked after a 401 has
// cleared the session credentials. The UI uses it to drop to the login
// screen.
func (c *Client) WithAuthFailureHandler(fn func()) *Client {
	c.onAuthFailure = fn
	return c
}

// BaseURL returns the configured server address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// newRequest builds an authenticated request. It returns ErrNoToken
// without touching the network when no token is stored.
func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	token := c.session.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "documind-tui/0.1.0")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do executes a request and applies the shared response policy: 401 clears
// credentials and maps to ErrUnauthorized, other non-2xx statuses pass
// through as *APIError. No status is ever retried.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.ClearCredentials()
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp.StatusCode, body)
	}
	return body, nil
}

// doJSON performs an authenticated request with an optional JSON payload
// and decodes the response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}

	respBody, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return unmarshalBody(respBody, out)
}

// unmarshalBody decodes a response body, wrapping decode failures in
// ErrInvalidResponse.
func unmarshalBody(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// readResponse reads a body with a size cap to bound memory use.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", int64(MaxResponseSize))
	}
	return body, nil
}

// errorFromResponse turns a non-2xx status into an error, preserving the
// server's message when the body carries one.
func errorFromResponse(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
		Msg   string `json:"msg"`
	}
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		message = payload.Error
		if message == "" {
			message = payload.Msg
		}
	}

	if status == http.StatusTooManyRequests {
		if message != "" {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, message)
		}
		return ErrQuotaExceeded
	}
	return &APIError{Status: status, Message: message}
}
