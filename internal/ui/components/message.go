// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/styles"
)

// MessageView renders a single conversation turn as a bubble.
type MessageView struct {
	Message  *model.Message
	MaxWidth int

	// Markdown renderer shared across messages, nil for plain output.
	Markdown *glamour.TermRenderer
}

// NewMarkdownRenderer builds the glamour renderer used for assistant
// answers. Plain rendering is used if construction fails.
func NewMarkdownRenderer(theme string, width int) *glamour.TermRenderer {
	style := "dark"
	if theme == "light" {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Render draws the message bubble with label, body, and citations.
func (v MessageView) Render(theme *styles.Theme) string {
	m := v.Message
	width := v.MaxWidth
	if width < 24 {
		width = 24
	}

	label := theme.MessageLabel.Render(m.Role.DisplayName())
	body := m.Content

	var bubble lipgloss.Style
	switch m.Role {
	case model.RoleUser:
		bubble = theme.UserBubble
	case model.RoleSystem:
		return theme.SystemBubble.MaxWidth(width).Render(body)
	default:
		bubble = theme.AssistantBubble
		if v.Markdown != nil {
			if out, err := v.Markdown.Render(body); err == nil {
				body = strings.TrimRight(out, "\n")
			}
		}
	}

	content := label + "\n" + body
	if extras := v.renderExtras(theme); extras != "" {
		content += "\n" + extras
	}
	return bubble.MaxWidth(width).Render(content)
}

func (v MessageView) renderExtras(theme *styles.Theme) string {
	m := v.Message
	var parts []string
	if len(m.CitedFiles) > 0 {
		parts = append(parts, theme.Citation.Render("Sources: "+strings.Join(m.CitedFiles, ", ")))
	}
	if m.Confidence > 0 {
		parts = append(parts, theme.Confidence.Render(fmt.Sprintf("Confidence: %.0f%%", m.Confidence)))
	}
	return strings.Join(parts, "\n")
}
