// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/ui/styles"
	"github.com/documind/documind-tui/internal/util"
)

// Sidebar lists chat sessions with the active one highlighted.
type Sidebar struct {
	Sessions []api.Chat
	ActiveID string
	Cursor   int
	Width    int
	Height   int
	Focused  bool
}

// NewSidebar creates a sidebar with the default width.
func NewSidebar() *Sidebar {
	return &Sidebar{Width: 32}
}

// SetSessions replaces the session list and clamps the cursor.
func (s *Sidebar) SetSessions(sessions []api.Chat, activeID string) {
	s.Sessions = sessions
	s.ActiveID = activeID
	if s.Cursor >= len(sessions) {
		s.Cursor = len(sessions) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// CursorUp moves the selection up one row.
func (s *Sidebar) CursorUp() {
	if s.Cursor > 0 {
		s.Cursor--
	}
}

// CursorDown moves the selection down one row.
func (s *Sidebar) CursorDown() {
	if s.Cursor < len(s.Sessions)-1 {
		s.Cursor++
	}
}

// Selected returns the session under the cursor, or nil when empty.
func (s *Sidebar) Selected() *api.Chat {
	if s.Cursor < 0 || s.Cursor >= len(s.Sessions) {
		return nil
	}
	return &s.Sessions[s.Cursor]
}

// Render draws the sidebar column.
func (s *Sidebar) Render(theme *styles.Theme) string {
	var b strings.Builder
	b.WriteString(theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n\n")

	if len(s.Sessions) == 0 {
		b.WriteString(theme.SessionEmpty.Render("No chats yet"))
	}

	inner := s.Width - 4
	if inner < 8 {
		inner = 8
	}
	for i, c := range s.Sessions {
		title := c.Title
		if title == "" {
			title = "Untitled"
		}
		line := util.TruncateWidth(title, inner)

		style := theme.SessionItem
		switch {
		case c.ID == s.ActiveID:
			style = theme.SessionItemActive
		case s.Focused && i == s.Cursor:
			style = theme.SessionItem.Underline(true)
		}
		if s.Focused && i == s.Cursor {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	col := theme.Sidebar.Width(s.Width)
	if s.Height > 0 {
		col = col.Height(s.Height)
	}
	return col.Render(lipgloss.NewStyle().MaxWidth(s.Width - 2).Render(b.String()))
}
