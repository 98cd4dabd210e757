// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/documind/documind-tui/internal/ui/components"
)

// View implements tea.Model.
func (m *Model) View() string {
	var screen string
	switch m.screen {
	case ScreenLogin:
		screen = m.centered(m.login.render(m.theme, m.busy))
	case ScreenFiles:
		screen = m.centered(m.files.render(m.theme, m.width-4, m.sess.CanUpload()))
	case ScreenSettings:
		screen = m.centered(m.prefs.render(m.theme))
	case ScreenPassword:
		screen = m.centered(m.password.render(m.theme, m.busy))
	default:
		screen = m.chatView()
	}

	if m.confirm != nil {
		return m.confirm.Render(m.theme, m.width, m.height)
	}

	if m.toasts.Len() > 0 {
		toasts := m.toasts.Render(m.theme, m.width-2)
		screen = overlayBottom(screen, toasts, m.height)
	}
	return screen
}

func (m *Model) chatView() string {
	header := m.renderHeader()

	body := m.viewport.View()
	if m.sidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.Render(m.theme), body)
	}

	inputLine := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
	if m.busy {
		inputLine = m.theme.InputContainer.Width(m.width - 2).
			Render(m.spinner.View() + " " + m.theme.Muted.Render("Waiting for answer…"))
	}

	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, inputLine, status)
}

func (m *Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render(" DocuMind ")
	info := m.theme.HeaderInfo.Render(m.client.BaseURL())
	return m.theme.Header.Width(m.width).Render(brand + " " + info)
}

func (m *Model) renderStatusBar() string {
	bar := &components.StatusBar{
		Username: m.sess.Username(),
		Role:     m.sess.Role(),
		Quota:    m.quota,
		Busy:     m.busy,
		Width:    m.width,
	}
	return bar.Render(m.theme)
}

func (m *Model) centered(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// overlayBottom pins block above the last line of base, pushing nothing
// around: it simply joins them when the height is unknown.
func overlayBottom(base, block string, height int) string {
	if height <= 0 {
		return base + "\n" + block
	}
	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")
	at := len(baseLines) - len(blockLines) - 1
	if at < 0 {
		return base
	}
	out := append([]string{}, baseLines[:at]...)
	out = append(out, blockLines...)
	out = append(out, baseLines[at+len(blockLines):]...)
	return strings.Join(out, "\n")
}
