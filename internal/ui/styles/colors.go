// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the DocuMind TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette holds the color set for one theme. The active palette is
// selected from the user's theme setting, not from terminal detection,
// so the client renders the same on every terminal background.
type Palette struct {
	// Accent colors
	Accent     lipgloss.Color // brand, user highlights, selections
	AccentDim  lipgloss.Color // darker accent for backgrounds
	Secondary  lipgloss.Color // assistant messages, links

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color // main background
	SurfaceDim    lipgloss.Color // headers, footers
	SurfaceBright lipgloss.Color // highlighted rows, popups
	Overlay       lipgloss.Color // borders, dividers

	// Text
	Text       lipgloss.Color
	TextMuted  lipgloss.Color
	TextFaint  lipgloss.Color
	TextOnAccent lipgloss.Color
}

// DarkPalette is the default theme.
var DarkPalette = Palette{
	Accent:       lipgloss.Color("#22D3EE"),
	AccentDim:    lipgloss.Color("#164E63"),
	Secondary:    lipgloss.Color("#A78BFA"),
	Success:      lipgloss.Color("#34D399"),
	Warning:      lipgloss.Color("#FBBF24"),
	Danger:       lipgloss.Color("#FB7185"),
	Surface:      lipgloss.Color("#1E1E2E"),
	SurfaceDim:   lipgloss.Color("#181825"),
	SurfaceBright: lipgloss.Color("#313244"),
	Overlay:      lipgloss.Color("#45475A"),
	Text:         lipgloss.Color("#CDD6F4"),
	TextMuted:    lipgloss.Color("#9399B2"),
	TextFaint:    lipgloss.Color("#6C7086"),
	TextOnAccent: lipgloss.Color("#11111B"),
}

// LightPalette mirrors DarkPalette for light terminals.
var LightPalette = Palette{
	Accent:       lipgloss.Color("#0891B2"),
	AccentDim:    lipgloss.Color("#CFFAFE"),
	Secondary:    lipgloss.Color("#7C3AED"),
	Success:      lipgloss.Color("#059669"),
	Warning:      lipgloss.Color("#D97706"),
	Danger:       lipgloss.Color("#E11D48"),
	Surface:      lipgloss.Color("#FFFFFF"),
	SurfaceDim:   lipgloss.Color("#F5F5F5"),
	SurfaceBright: lipgloss.Color("#E4E4E7"),
	Overlay:      lipgloss.Color("#D4D4D8"),
	Text:         lipgloss.Color("#1C1917"),
	TextMuted:    lipgloss.Color("#57534E"),
	TextFaint:    lipgloss.Color("#A8A29E"),
	TextOnAccent: lipgloss.Color("#FFFFFF"),
}

// PaletteFor returns the palette for a theme name. Unknown names fall
// back to dark, matching the settings default.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return LightPalette
	}
	return DarkPalette
}
