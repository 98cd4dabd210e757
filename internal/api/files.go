// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// GetQuota returns the caller's upload allowance.
func (c *Client) GetQuota(ctx context.Context) (Quota, error) {
	var quota Quota
	if err := c.doJSON(ctx, http.MethodGet, "/api/upload/quota", nil, &quota); err != nil {
		return Quota{}, err
	}
	return quota, nil
}

// UploadFile sends one document to the server as multipart form data.
// Quota exhaustion surfaces as ErrQuotaExceeded (HTTP 429).
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		return UploadResult{}, err
	}
	body, err := c.do(req)
	if err != nil {
		return UploadResult{}, err
	}

	var result UploadResult
	if err := unmarshalBody(body, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// ListFiles returns the documents visible to the caller. The server
// wraps the records in an object, {"files": [...], "count": N}.
func (c *Client) ListFiles(ctx context.Context) ([]FileInfo, error) {
	var result struct {
		Files []FileInfo `json:"files"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/files", nil, &result); err != nil {
		return nil, err
	}
	return result.Files, nil
}

// DeleteFile removes an uploaded document by its server-side path. The
// path may span directories (e.g. "HR/Policies/handbook.pdf"), so each
// segment is escaped individually.
func (c *Client) DeleteFile(ctx context.Context, path string) error {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.doJSON(ctx, http.MethodDelete, "/api/files/"+strings.Join(segments, "/"), nil, nil)
}

// DownloadURL builds the link for fetching a source document.
func (c *Client) DownloadURL(filename string) string {
	return c.config.BaseURL + "/download/" + url.PathEscape(filename)
}
