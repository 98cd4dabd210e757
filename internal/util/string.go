// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// FirstRunes returns the first max runes of s with no ellipsis. Counting
// runes rather than bytes keeps multi-byte UTF-8 characters intact, so a
// truncated session title never ends mid-character.
func FirstRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// TruncateRunes truncates s to at most max runes, appending "..." when
// anything was cut.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// TruncateWidth truncates s to a maximum display width in terminal columns,
// accounting for double-width (CJK) characters.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// NormalizeText collapses user input to NFC form and trims surrounding
// whitespace. Queries and title seeds pass through here before they are
// sent anywhere.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// RuneLen returns the number of runes in s. Safer than len() when the
// string may contain multi-byte characters.
func RuneLen(s string) int {
	return len([]rune(s))
}
