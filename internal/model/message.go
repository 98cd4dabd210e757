// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "DocuMind"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// Valid reports whether the role is one the client knows how to render.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Snippet is a passage from a source document that supports an answer.
type Snippet struct {
	ID           int     `json:"id"`
	Filename     string  `json:"filename"`
	Category     string  `json:"category,omitempty"`
	Text         string  `json:"text"`
	Similarity   float64 `json:"similarity,omitempty"`
	RelevancePct int     `json:"relevance_pct,omitempty"`
}

// Message represents a single rendered turn in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Answer metadata, set on assistant messages only.
	CitedFiles []string  `json:"cited_files,omitempty"`
	Confidence float64   `json:"confidence_score,omitempty"`
	Snippets   []Snippet `json:"source_snippets,omitempty"`
	Language   string    `json:"detected_language,omitempty"`
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message carrying answer metadata.
func NewAssistantMessage(content string, cited []string, confidence float64, snippets []Snippet) *Message {
	m := NewMessage(RoleAssistant, content)
	m.CitedFiles = cited
	m.Confidence = confidence
	m.Snippets = snippets
	return m
}

// Preview returns a rune-safe truncated preview of the content.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}
