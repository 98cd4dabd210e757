// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/documind/documind-tui/internal/ui/styles"
)

// ConfirmDialog is a modal yes/no prompt. The response channel lets a
// background operation block until the user answers; Resolve must be
// called exactly once per dialog.
type ConfirmDialog struct {
	Prompt   string
	Response chan<- bool

	resolved bool
}

// NewConfirmDialog creates a dialog that reports the answer on ch.
func NewConfirmDialog(prompt string, ch chan<- bool) *ConfirmDialog {
	return &ConfirmDialog{Prompt: prompt, Response: ch}
}

// Resolve answers the dialog. Extra calls are ignored so a stray
// keypress after dismissal cannot double-send.
func (d *ConfirmDialog) Resolve(answer bool) {
	if d.resolved {
		return
	}
	d.resolved = true
	if d.Response != nil {
		d.Response <- answer
	}
}

// Render draws the modal centered in the given dimensions.
func (d *ConfirmDialog) Render(theme *styles.Theme, width, height int) string {
	prompt := theme.ModalPrompt.Render(d.Prompt)
	hint := theme.ModalHint.Render("y: confirm    n/esc: cancel")
	box := theme.ModalBox.Render(prompt + "\n\n" + hint)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
