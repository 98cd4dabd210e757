// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/components"
)

// Bridge adapts the chat and upload managers, which run in command
// goroutines, to the Bubble Tea program. Every surface call turns into
// a message delivered through send, so all state mutation stays on the
// update loop.
//
// Confirm is the one synchronous surface: it posts the prompt and then
// blocks the calling goroutine on the response channel until the user
// answers or ctx is canceled.
type Bridge struct {
	send func(msg interface{})
}

// NewBridge creates a bridge that posts through send. Wire it to
// (*tea.Program).Send once the program exists.
func NewBridge(send func(msg interface{})) *Bridge {
	return &Bridge{send: send}
}

// AppendMessage implements chat.Renderer.
func (b *Bridge) AppendMessage(m *model.Message) {
	b.send(AppendMessageMsg{Message: m})
}

// ClearMessages implements chat.Renderer.
func (b *Bridge) ClearMessages() {
	b.send(ClearMessagesMsg{})
}

// ShowWelcome implements chat.Renderer.
func (b *Bridge) ShowWelcome() {
	b.send(ShowWelcomeMsg{})
}

// SetSessions implements chat.SessionList.
func (b *Bridge) SetSessions(chats []api.Chat, activeID string) {
	b.send(SetSessionsMsg{Sessions: chats, ActiveID: activeID})
}

// Success implements the Notifier surfaces.
func (b *Bridge) Success(msg string) {
	b.send(ToastMsg{Toast: components.NewSuccessToast(msg)})
}

// Error implements the Notifier surfaces.
func (b *Bridge) Error(msg string) {
	b.send(ToastMsg{Toast: components.NewErrorToast(msg)})
}

// Info implements the Notifier surfaces.
func (b *Bridge) Info(msg string) {
	b.send(ToastMsg{Toast: components.NewInfoToast(msg)})
}

// Confirm implements the Confirmer surfaces. The buffered channel lets
// the update loop resolve the dialog even if this goroutine already
// gave up on a canceled context.
func (b *Bridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	ch := make(chan bool, 1)
	b.send(ShowConfirmMsg{Prompt: prompt, Response: ch})
	select {
	case answer := <-ch:
		return answer, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
