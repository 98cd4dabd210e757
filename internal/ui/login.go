// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/ui/styles"
)

// loginForm is the credential entry screen.
type loginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	errMsg   string
}

func newLoginForm() loginForm {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginForm{username: user, password: pass}
}

func (f loginForm) Init() tea.Cmd {
	return textinput.Blink
}

// fail records a login failure for display. Bad credentials get a
// friendlier line than transport errors.
func (f *loginForm) fail(err error) {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Status == 401:
		f.errMsg = "Invalid username or password"
	default:
		f.errMsg = "Login failed: " + err.Error()
	}
	f.password.Reset()
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.login
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		f.focus = 1 - f.focus
		if f.focus == 0 {
			f.username.Focus()
			f.password.Blur()
		} else {
			f.password.Focus()
			f.username.Blur()
		}
		return m, textinput.Blink

	case "enter":
		if f.focus == 0 {
			f.focus = 1
			f.username.Blur()
			f.password.Focus()
			return m, textinput.Blink
		}
		user, pass := f.username.Value(), f.password.Value()
		if user == "" || pass == "" {
			f.errMsg = "Username and password are required"
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		f.errMsg = ""
		m.busy = true
		return m, m.loginCmd(user, pass)
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return m, cmd
}

func (f loginForm) render(theme *styles.Theme, busy bool) string {
	body := theme.FormTitle.Render("DocuMind") + "\n\n" +
		theme.FormLabel.Render("Username") + "\n" +
		f.username.View() + "\n\n" +
		theme.FormLabel.Render("Password") + "\n" +
		f.password.View() + "\n"

	if f.errMsg != "" {
		body += "\n" + theme.FormError.Render(f.errMsg) + "\n"
	}
	if busy {
		body += "\n" + theme.Muted.Render("Signing in…") + "\n"
	}
	body += "\n" + theme.FormHint.Render("enter: sign in    ctrl+c: quit")

	return theme.FormBox.Render(body)
}
