// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/documind/documind-tui/internal/ui/styles"
)

const welcomeLogo = `
  ____             __  __ _           _
 |  _ \  ___   ___|  \/  (_)_ __   __| |
 | | | |/ _ \ / __| |\/| | | '_ \ / _' |
 | |_| | (_) | (__| |  | | | | | | (_| |
 |____/ \___/ \___|_|  |_|_|_| |_|\__,_|
`

// Welcome renders the empty-conversation screen shown for a new chat.
type Welcome struct {
	Username string
	Width    int
}

// Render draws the welcome banner centered in the given width.
func (w Welcome) Render(theme *styles.Theme) string {
	var b strings.Builder

	b.WriteString(theme.HeaderBrand.Background(theme.Palette.Surface).Render(strings.TrimRight(welcomeLogo, "\n")))
	b.WriteString("\n\n")
	greeting := "Ask a question about your documents."
	if w.Username != "" {
		greeting = "Welcome back, " + w.Username + ". " + greeting
	}
	b.WriteString(theme.Muted.Render(greeting))
	b.WriteString("\n\n")

	hints := [][2]string{
		{"enter", "send question"},
		{"ctrl+n", "new chat"},
		{"ctrl+s", "chat list"},
		{"ctrl+f", "files"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			theme.ShortcutKey.Background(theme.Palette.Surface).Render(h[0])+
				theme.ShortcutDesc.Background(theme.Palette.Surface).Render(" "+h[1]))
	}
	b.WriteString(strings.Join(parts, "   "))

	if w.Width > 0 {
		return lipgloss.PlaceHorizontal(w.Width, lipgloss.Center, b.String())
	}
	return b.String()
}
