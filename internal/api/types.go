// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/documind/documind-tui/internal/model"
)

// Chat is a chat session as the server reports it.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// ChatMessage is a stored message as returned by the messages endpoint.
// Sender and Text are the required fields; entries missing either are
// considered malformed.
type ChatMessage struct {
	Sender          string          `json:"sender"`
	Text            string          `json:"text"`
	Timestamp       Timestamp       `json:"timestamp"`
	CitedFiles      []string        `json:"cited_files,omitempty"`
	ConfidenceScore float64         `json:"confidence_score,omitempty"`
	SourceSnippets  []model.Snippet `json:"source_snippets,omitempty"`
}

// Answer is the response to a query.
type Answer struct {
	Answer           string          `json:"answer"`
	CitedFiles       []string        `json:"cited_files"`
	ConfidenceScore  float64         `json:"confidence_score"`
	SourceSnippets   []model.Snippet `json:"source_snippets"`
	DetectedLanguage string          `json:"detected_language,omitempty"`
	Error            string          `json:"error,omitempty"`
	Quota            string          `json:"quota,omitempty"`
}

// Quota describes the caller's upload allowance. A nil Limit means
// unlimited uploads; Remaining mirrors that.
type Quota struct {
	Used        *int
	Limit       *int
	Remaining   *int
	QuotaString string
}

// Unlimited reports whether no upload cap applies.
func (q Quota) Unlimited() bool {
	return q.Limit == nil
}

// UnmarshalJSON tolerates the server's mixed encoding: counts may be
// numbers, null, or the literal string "unlimited".
func (q *Quota) UnmarshalJSON(data []byte) error {
	var raw struct {
		Used        json.RawMessage `json:"used"`
		Limit       json.RawMessage `json:"limit"`
		Remaining   json.RawMessage `json:"remaining"`
		QuotaString string          `json:"quota_string"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.Used = optionalCount(raw.Used)
	q.Limit = optionalCount(raw.Limit)
	q.Remaining = optionalCount(raw.Remaining)
	q.QuotaString = raw.QuotaString
	return nil
}

func optionalCount(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	// Strings like "unlimited" mean no cap.
	return nil
}

// UploadResult is the server's acknowledgement of a stored file.
type UploadResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Quota   string `json:"quota"`
}

// FileInfo describes an uploaded document.
type FileInfo struct {
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	Domain     string    `json:"domain"`
	Category   string    `json:"category"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt Timestamp `json:"uploaded_at"`
	IsOwner    bool      `json:"is_owner"`
}

// Timestamp decodes the server's mixed time encodings: ISO-8601 strings
// for chat metadata, Unix seconds (possibly fractional) for filesystem
// scans.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	if s[0] == '"' {
		str, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
			if parsed, err := time.Parse(layout, str); err == nil {
				t.Time = parsed
				return nil
			}
		}
		// Unknown string format; leave the zero time rather than fail the
		// whole payload.
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	t.Time = time.Unix(sec, nsec)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
