// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/documind/documind-tui/internal/ui/styles"
)

// passwordForm changes the account password. Validation mirrors the
// server's rules so obvious mistakes never leave the client.
type passwordForm struct {
	current     textinput.Model
	next        textinput.Model
	confirm     textinput.Model
	focus       int
	errMsg      string
	serverError string
}

const passwordMinLength = 6

func newPasswordForm() passwordForm {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 128
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		return ti
	}
	f := passwordForm{
		current: mk("current password"),
		next:    mk("new password"),
		confirm: mk("repeat new password"),
	}
	f.current.Focus()
	return f
}

func (f passwordForm) Init() tea.Cmd { return textinput.Blink }

// validate returns the first client-side problem, or "".
func (f *passwordForm) validate() string {
	switch {
	case f.current.Value() == "" || f.next.Value() == "" || f.confirm.Value() == "":
		return "All fields are required"
	case len(f.next.Value()) < passwordMinLength:
		return "New password must be at least 6 characters"
	case f.next.Value() != f.confirm.Value():
		return "New passwords do not match"
	}
	return ""
}

func (f *passwordForm) field(i int) *textinput.Model {
	switch i {
	case 0:
		return &f.current
	case 1:
		return &f.next
	default:
		return &f.confirm
	}
}

func (f *passwordForm) setFocus(i int) {
	f.focus = i
	for n := 0; n < 3; n++ {
		if n == i {
			f.field(n).Focus()
		} else {
			f.field(n).Blur()
		}
	}
}

func (m *Model) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.password
	switch msg.String() {
	case "esc":
		m.password = newPasswordForm()
		m.screen = ScreenChat
		return m, nil

	case "tab", "down":
		f.setFocus((f.focus + 1) % 3)
		return m, textinput.Blink
	case "shift+tab", "up":
		f.setFocus((f.focus + 2) % 3)
		return m, textinput.Blink

	case "enter":
		if f.focus < 2 {
			f.setFocus(f.focus + 1)
			return m, textinput.Blink
		}
		if msg := f.validate(); msg != "" {
			f.errMsg = msg
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		f.errMsg = ""
		f.serverError = ""
		m.busy = true
		return m, m.changePasswordCmd(f.current.Value(), f.next.Value())
	}

	var cmd tea.Cmd
	field := f.field(f.focus)
	*field, cmd = field.Update(msg)
	return m, cmd
}

func (f passwordForm) render(theme *styles.Theme, busy bool) string {
	body := theme.FormTitle.Render("Change password") + "\n\n" +
		theme.FormLabel.Render("Current password") + "\n" + f.current.View() + "\n\n" +
		theme.FormLabel.Render("New password") + "\n" + f.next.View() + "\n\n" +
		theme.FormLabel.Render("Repeat new password") + "\n" + f.confirm.View() + "\n"

	if f.errMsg != "" {
		body += "\n" + theme.FormError.Render(f.errMsg) + "\n"
	}
	if f.serverError != "" {
		body += "\n" + theme.FormError.Render(f.serverError) + "\n"
	}
	if busy {
		body += "\n" + theme.Muted.Render("Updating…") + "\n"
	}
	body += "\n" + theme.FormHint.Render("enter: submit    esc: cancel")

	return theme.FormBox.Render(body)
}
