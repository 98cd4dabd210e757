// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea application for the DocuMind
// terminal client.
//
// This file defines the Bubble Tea message types. Messages fall into
// two groups: those emitted by the Bridge from background manager
// goroutines (transcript updates, session refreshes, toasts, blocking
// confirmations) and those produced by the app's own commands (login
// results, file listings, upload progress, ticks).
package ui

import (
	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/config"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/components"
	"github.com/documind/documind-tui/internal/upload"
)

// AppendMessageMsg adds a turn to the transcript.
type AppendMessageMsg struct {
	Message *model.Message
}

// ClearMessagesMsg empties the transcript.
type ClearMessagesMsg struct{}

// ShowWelcomeMsg switches the message area to the empty-state banner.
type ShowWelcomeMsg struct{}

// SetSessionsMsg refreshes the sidebar session list.
type SetSessionsMsg struct {
	Sessions []api.Chat
	ActiveID string
}

// ToastMsg pushes a transient notification.
type ToastMsg struct {
	Toast components.Toast
}

// ShowConfirmMsg opens the modal yes/no prompt. The answer is written
// to Response; the sender blocks on it.
type ShowConfirmMsg struct {
	Prompt   string
	Response chan bool
}

// AuthExpiredMsg signals that a request came back 401 and credentials
// were cleared. The app drops to the login screen.
type AuthExpiredMsg struct{}

// LoginResultMsg reports the outcome of a login attempt.
type LoginResultMsg struct {
	Err error
}

// OpDoneMsg reports completion of a background chat operation. Errors
// are already surfaced through the Notifier, so Err is informational.
type OpDoneMsg struct {
	Err error
}

// QuotaMsg delivers a quota refresh for the status bar.
type QuotaMsg struct {
	Quota *api.Quota
	Err   error
}

// FilesMsg delivers the document list and quota for the files screen.
type FilesMsg struct {
	Files []api.FileInfo
	Quota api.Quota
	Err   error
}

// UploadProgressMsg reports per-file progress during a batch upload.
type UploadProgressMsg struct {
	Index int
	Total int
	Name  string
}

// UploadDoneMsg reports the consolidated batch summary. Err is set only
// when the batch never started (unreadable path).
type UploadDoneMsg struct {
	Summary upload.Summary
	Err     error
}

// PasswordChangedMsg reports the outcome of a password change.
type PasswordChangedMsg struct {
	Err error
}

// ConfigReloadedMsg delivers a live configuration reload from the
// file watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// toastTickMsg drives toast expiry.
type toastTickMsg struct{}
