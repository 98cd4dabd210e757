// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/model"
)

// Renderer is the message area the manager draws into. The TUI chat view
// implements it; tests use a recording stub.
type Renderer interface {
	// AppendMessage adds a turn to the rendered transcript.
	AppendMessage(m *model.Message)
	// ClearMessages empties the rendered transcript.
	ClearMessages()
	// ShowWelcome displays the empty-state placeholder.
	ShowWelcome()
}

// SessionList receives session-list refreshes, including which session to
// highlight as active.
type SessionList interface {
	SetSessions(chats []api.Chat, activeID string)
}

// Confirmer asks the user a yes/no question and blocks until answered.
// Implementations must return false, nil when the user declines.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Notifier surfaces transient status to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}
