// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/documind/documind-tui/internal/session"
	"github.com/documind/documind-tui/internal/ui/components"
	"github.com/documind/documind-tui/internal/ui/styles"
)

// settingsForm edits voice and theme preferences with arrow keys.
// Values live in a working copy; nothing persists until the user saves.
type settingsForm struct {
	working session.Settings
	row     int
	errMsg  string
}

const settingsRows = 4 // volume, rate, pitch, theme

func newSettingsForm(current session.Settings) settingsForm {
	return settingsForm{working: current}
}

func (f settingsForm) Init() tea.Cmd { return nil }

func (f *settingsForm) adjust(delta int) {
	switch f.row {
	case 0:
		f.working.VoiceVolume += delta * 5
		if f.working.VoiceVolume < 0 {
			f.working.VoiceVolume = 0
		}
		if f.working.VoiceVolume > 100 {
			f.working.VoiceVolume = 100
		}
	case 1:
		f.working.VoiceRate += float64(delta) * 0.1
		if f.working.VoiceRate < 0.5 {
			f.working.VoiceRate = 0.5
		}
		if f.working.VoiceRate > 2.0 {
			f.working.VoiceRate = 2.0
		}
	case 2:
		f.working.VoicePitch += float64(delta) * 0.1
		if f.working.VoicePitch < 0.5 {
			f.working.VoicePitch = 0.5
		}
		if f.working.VoicePitch > 2.0 {
			f.working.VoicePitch = 2.0
		}
	case 3:
		if f.working.Theme == "dark" {
			f.working.Theme = "light"
		} else {
			f.working.Theme = "dark"
		}
	}
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.prefs
	switch msg.String() {
	case "esc", "q":
		m.screen = ScreenChat
		return m, nil
	case "up", "k":
		if f.row > 0 {
			f.row--
		}
	case "down", "j", "tab":
		if f.row < settingsRows-1 {
			f.row++
		}
	case "left", "h":
		f.adjust(-1)
	case "right", "l", " ":
		f.adjust(1)
	case "enter", "ctrl+s":
		if err := m.settingsStore.Save(f.working); err != nil {
			f.errMsg = "Save failed: " + err.Error()
			return m, nil
		}
		m.settings = f.working
		m.applyTheme(f.working.Theme)
		m.screen = ScreenChat
		m.toasts.Push(components.NewSuccessToast("Settings saved"))
		return m, toastTick()
	}
	return m, nil
}

func (f settingsForm) render(theme *styles.Theme) string {
	rows := []struct {
		label string
		value string
	}{
		{"Voice volume", fmt.Sprintf("%d", f.working.VoiceVolume)},
		{"Voice rate", fmt.Sprintf("%.1f", f.working.VoiceRate)},
		{"Voice pitch", fmt.Sprintf("%.1f", f.working.VoicePitch)},
		{"Theme", f.working.Theme},
	}

	body := theme.FormTitle.Render("Settings") + "\n\n"
	for i, r := range rows {
		line := fmt.Sprintf("%-14s ◀ %s ▶", r.label, r.value)
		if i == f.row {
			body += theme.TableRowSelected.Render(line)
		} else {
			body += theme.TableRow.Render(line)
		}
		body += "\n"
	}
	if f.errMsg != "" {
		body += "\n" + theme.FormError.Render(f.errMsg)
	}
	body += "\n" + theme.FormHint.Render("←/→: change    enter: save    esc: discard")

	return theme.FormBox.Render(body)
}
