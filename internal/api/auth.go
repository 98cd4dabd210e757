// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/documind/documind-tui/internal/session"
)

// Login exchanges a username and password for a bearer token. This is the
// one authenticated-API call that does not go through the token chokepoint,
// since no token exists yet.
func (c *Client) Login(ctx context.Context, username, password string) (session.Credentials, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return session.Credentials{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return session.Credentials{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "documind-tui/0.1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.Credentials{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return session.Credentials{}, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return session.Credentials{}, &APIError{Status: resp.StatusCode, Message: "bad username or password"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return session.Credentials{}, errorFromResponse(resp.StatusCode, body)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
		Role        string `json:"role"`
	}
	if err := unmarshalBody(body, &result); err != nil {
		return session.Credentials{}, err
	}
	if result.AccessToken == "" {
		return session.Credentials{}, fmt.Errorf("%w: login response missing token", ErrInvalidResponse)
	}

	return session.Credentials{
		Token:       result.AccessToken,
		Username:    result.Username,
		Role:        result.Role,
		Permissions: tokenPermissions(result.AccessToken),
	}, nil
}

// ChangePassword updates the caller's own password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	payload := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/users/change-password", payload, nil)
}

// tokenPermissions extracts the permission claims embedded in the JWT.
// The signature is not verified; the server enforces permissions, this
// list only decides which surfaces the client offers.
func tokenPermissions(token string) []string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil
	}
	var claims struct {
		Permissions []string `json:"permissions"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil
	}
	return claims.Permissions
}
