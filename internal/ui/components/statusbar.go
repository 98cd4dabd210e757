// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/ui/styles"
)

// StatusBar is the single-line footer showing identity, quota, and keys.
type StatusBar struct {
	Username string
	Role     string
	Quota    *api.Quota
	Busy     bool
	Width    int
}

// QuotaLabel formats the upload quota for display.
func (s *StatusBar) QuotaLabel() string {
	if s.Quota == nil {
		return ""
	}
	if s.Quota.Unlimited() {
		return "quota: unlimited"
	}
	return "quota: " + s.Quota.QuotaString
}

// Render draws the status bar padded to the full terminal width.
func (s *StatusBar) Render(theme *styles.Theme) string {
	var left strings.Builder
	if s.Username != "" {
		left.WriteString(theme.StatusUser.Render(s.Username))
		if s.Role != "" {
			left.WriteString(theme.ShortcutDesc.Render(" (" + s.Role + ")"))
		}
	}
	if q := s.QuotaLabel(); q != "" {
		if left.Len() > 0 {
			left.WriteString(theme.ShortcutDesc.Render("  │  "))
		}
		left.WriteString(theme.StatusQuota.Render(q))
	}
	if s.Busy {
		left.WriteString(theme.ShortcutDesc.Render("  │  "))
		left.WriteString(theme.Spinner.Background(theme.Palette.SurfaceDim).Render("working…"))
	}

	right := theme.ShortcutKey.Render("ctrl+h") + theme.ShortcutDesc.Render(" help")

	l := left.String()
	gap := s.Width - runewidth.StringWidth(stripANSI(l)) - runewidth.StringWidth(stripANSI(right)) - 2
	if gap < 1 {
		gap = 1
	}
	line := l + strings.Repeat(" ", gap) + right
	return theme.StatusBar.Width(s.Width).Render(line)
}

// stripANSI removes escape sequences so width math uses visible runes.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
