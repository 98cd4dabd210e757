// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	Name         string
	Palette      Palette
	ColorProfile termenv.Profile

	// Layout dimensions, updated on terminal resize
	Width  int
	Height int

	// Application container
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderInfo  lipgloss.Style

	// Message bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	MessageLabel    lipgloss.Style
	Citation        lipgloss.Style
	Confidence      lipgloss.Style

	// Sidebar
	Sidebar           lipgloss.Style
	SidebarTitle      lipgloss.Style
	SessionItem       lipgloss.Style
	SessionItemActive lipgloss.Style
	SessionEmpty      lipgloss.Style

	// Input area
	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusQuota  lipgloss.Style
	StatusUser   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Toasts
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastWarning lipgloss.Style

	// Confirmation modal
	ModalBox    lipgloss.Style
	ModalPrompt lipgloss.Style
	ModalHint   lipgloss.Style

	// Forms (login, settings, password)
	FormBox     lipgloss.Style
	FormTitle   lipgloss.Style
	FormLabel   lipgloss.Style
	FormError   lipgloss.Style
	FormHint    lipgloss.Style

	// File browser
	TableHeader      lipgloss.Style
	TableRow         lipgloss.Style
	TableRowSelected lipgloss.Style

	// Source snippets
	SnippetBox    lipgloss.Style
	SnippetHeader lipgloss.Style
	SnippetScore  lipgloss.Style

	Spinner lipgloss.Style
	Muted   lipgloss.Style
	Faint   lipgloss.Style
}

// New creates a theme for the given theme name ("dark" or "light").
func New(name string) *Theme {
	p := PaletteFor(name)

	t := &Theme{
		Name:         name,
		Palette:      p,
		ColorProfile: termenv.ColorProfile(),
	}

	t.App = lipgloss.NewStyle().Foreground(p.Text)

	t.Header = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.SurfaceDim).
		Bold(true)
	t.HeaderInfo = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Background(p.SurfaceDim)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Padding(0, 1)
	t.SystemBubble = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)
	t.MessageLabel = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	t.Citation = lipgloss.NewStyle().
		Foreground(p.Secondary)
	t.Confidence = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)
	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Bold(true)
	t.SessionItem = lipgloss.NewStyle().
		Foreground(p.Text)
	t.SessionItemActive = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true)
	t.SessionEmpty = lipgloss.NewStyle().
		Foreground(p.TextFaint).
		Italic(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(p.TextFaint)

	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextMuted).
		Padding(0, 1)
	t.StatusQuota = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.Warning)
	t.StatusUser = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.Accent).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.SurfaceDim).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextFaint).
		Background(p.SurfaceDim)

	t.ToastSuccess = toastStyle(p.Success)
	t.ToastError = toastStyle(p.Danger)
	t.ToastInfo = toastStyle(p.Accent)
	t.ToastWarning = toastStyle(p.Warning)

	t.ModalBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.Warning).
		Padding(1, 2)
	t.ModalPrompt = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)
	t.ModalHint = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(1, 3)
	t.FormTitle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	t.FormLabel = lipgloss.NewStyle().
		Foreground(p.TextMuted)
	t.FormError = lipgloss.NewStyle().
		Foreground(p.Danger)
	t.FormHint = lipgloss.NewStyle().
		Foreground(p.TextFaint)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Bold(true).
		Underline(true)
	t.TableRow = lipgloss.NewStyle().
		Foreground(p.Text)
	t.TableRowSelected = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent)

	t.SnippetBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(p.Overlay).
		PaddingLeft(1)
	t.SnippetHeader = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	t.SnippetScore = lipgloss.NewStyle().
		Foreground(p.TextFaint)

	t.Spinner = lipgloss.NewStyle().Foreground(p.Accent)
	t.Muted = lipgloss.NewStyle().Foreground(p.TextMuted)
	t.Faint = lipgloss.NewStyle().Foreground(p.TextFaint)

	return t
}

func toastStyle(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(border).
		Padding(0, 1)
}

// SetSize records the terminal dimensions for layout calculations.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
