// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
)

// CreateChat creates a new chat session with the given title.
func (c *Client) CreateChat(ctx context.Context, title string) (Chat, error) {
	payload := map[string]string{"title": title}
	var chat Chat
	if err := c.doJSON(ctx, http.MethodPost, "/api/chats", payload, &chat); err != nil {
		return Chat{}, err
	}
	return chat, nil
}

// ListChats returns the caller's chat sessions, newest first.
func (c *Client) ListChats(ctx context.Context) ([]Chat, error) {
	var chats []Chat
	if err := c.doJSON(ctx, http.MethodGet, "/api/chats", nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// DeleteChat removes a chat session.
func (c *Client) DeleteChat(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/chats/"+url.PathEscape(id), nil, nil)
}

// RenameChat updates a chat session's title.
func (c *Client) RenameChat(ctx context.Context, id, title string) error {
	payload := map[string]string{"title": title}
	return c.doJSON(ctx, http.MethodPut, "/api/chats/"+url.PathEscape(id)+"/title", payload, nil)
}

// GetMessages fetches the stored messages of a chat session. The payload
// must be a JSON array; anything else fails with ErrInvalidResponse.
// Individual entries that are not objects or lack sender/text are skipped
// with a logged warning rather than failing the load. The second return
// value counts the skipped entries.
func (c *Client) GetMessages(ctx context.Context, id string) ([]ChatMessage, int, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/chats/"+url.PathEscape(id)+"/messages", "", nil)
	if err != nil {
		return nil, 0, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, 0, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: messages payload is not an array", ErrInvalidResponse)
	}

	messages := make([]ChatMessage, 0, len(raw))
	skipped := 0
	for i, entry := range raw {
		var msg ChatMessage
		if err := json.Unmarshal(entry, &msg); err != nil || msg.Sender == "" || msg.Text == "" {
			log.Printf("chat %s: skipping malformed message at index %d", id, i)
			skipped++
			continue
		}
		messages = append(messages, msg)
	}
	return messages, skipped, nil
}

// Ask submits a query against the document corpus. An empty chatID asks
// the server to answer without persisting the exchange. A non-empty Error
// field in the response body counts as a failure even on HTTP 200.
func (c *Client) Ask(ctx context.Context, query, chatID string) (Answer, error) {
	payload := map[string]string{"query": query}
	if chatID != "" {
		payload["chat_id"] = chatID
	}

	var answer Answer
	if err := c.doJSON(ctx, http.MethodPost, "/chat", payload, &answer); err != nil {
		return Answer{}, err
	}
	if answer.Error != "" {
		return Answer{}, &APIError{Status: http.StatusOK, Message: answer.Error}
	}
	return answer, nil
}
