// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error variables for common client failures.
var (
	// ErrNoToken indicates no bearer token is present. Requests fail with
	// this before any network I/O happens.
	ErrNoToken = errors.New("not authenticated")

	// ErrUnauthorized indicates the server rejected the token. The client
	// has already cleared its credentials when this is returned.
	ErrUnauthorized = errors.New("session expired")

	// ErrQuotaExceeded indicates the upload quota is exhausted (HTTP 429).
	ErrQuotaExceeded = errors.New("upload quota exceeded")

	// ErrInvalidResponse indicates the server answered with a payload the
	// client could not interpret.
	ErrInvalidResponse = errors.New("invalid server response")
)

// APIError represents a non-2xx response from the DocuMind server.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// Is maps auth and quota statuses onto their sentinel errors so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrQuotaExceeded:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

// IsAuthError returns true for failures that must terminate the operation
// and drop the user back to login.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoToken) || errors.Is(err, ErrUnauthorized)
}

// IsQuotaExceeded returns true when the server reported quota exhaustion.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}
