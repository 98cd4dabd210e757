// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Conversation is the client-side view of a chat session: its server
// identity plus the turns currently rendered.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewConversation creates an empty conversation.
func NewConversation(id, title string) *Conversation {
	return &Conversation{
		ID:        id,
		Title:     title,
		CreatedAt: time.Now(),
	}
}

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(m *Message) {
	c.Messages = append(c.Messages, m)
}

// Clear drops all rendered messages.
func (c *Conversation) Clear() {
	c.Messages = nil
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// LastAssistant returns the most recent assistant message, or nil.
func (c *Conversation) LastAssistant() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i]
		}
	}
	return nil
}
