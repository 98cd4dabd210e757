// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/documind/documind-tui/internal/export"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.sidebar.Height = msg.Height - 3
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = msg.Height - 6
		m.input.Width = m.contentWidth() - 4
		m.markdown = components.NewMarkdownRenderer(m.theme.Name, m.contentWidth())
		m.rerenderTranscript()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastTickMsg:
		if m.toasts.Prune(time.Now()) {
			return m, toastTick()
		}
		return m, nil

	case ToastMsg:
		m.toasts.Push(msg.Toast)
		return m, toastTick()

	case ShowConfirmMsg:
		m.confirm = components.NewConfirmDialog(msg.Prompt, msg.Response)
		return m, nil

	// Bridge: transcript surface
	case AppendMessageMsg:
		m.showWelcome = false
		m.transcript = append(m.transcript, msg.Message)
		m.rerenderTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case ClearMessagesMsg:
		m.transcript = nil
		m.showWelcome = false
		m.rerenderTranscript()
		return m, nil

	case ShowWelcomeMsg:
		m.transcript = nil
		m.showWelcome = true
		m.rerenderTranscript()
		return m, nil

	case SetSessionsMsg:
		m.sidebar.SetSessions(msg.Sessions, msg.ActiveID)
		return m, nil

	case AuthExpiredMsg:
		m.screen = ScreenLogin
		m.login = newLoginForm()
		m.busy = false
		return m, m.login.Init()

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case OpDoneMsg:
		m.busy = false
		return m, nil

	case QuotaMsg:
		if msg.Err == nil {
			m.quota = msg.Quota
		}
		return m, nil

	case FilesMsg:
		m.busy = false
		m.files.loading = false
		if msg.Err == nil {
			m.files.setFiles(msg.Files)
			q := msg.Quota
			m.quota = &q
		}
		return m, nil

	case UploadProgressMsg:
		m.files.progress = msg
		return m, nil

	case UploadDoneMsg:
		m.busy = false
		m.files.progress = UploadProgressMsg{}
		if msg.Err != nil {
			m.toasts.Push(components.NewErrorToast("Upload failed: " + msg.Err.Error()))
			return m, toastTick()
		}
		m.files.loading = true
		return m, m.listFilesCmd()

	case PasswordChangedMsg:
		return m.handlePasswordResult(msg)

	case ConfigReloadedMsg:
		m.cfg = msg.Config
		m.sidebar.Width = msg.Config.UI.SidebarWidth
		if msg.Config.UI.Theme != m.theme.Name {
			m.applyTheme(msg.Config.UI.Theme)
		}
		m.toasts.Push(components.NewInfoToast("Configuration reloaded"))
		return m, toastTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.login.fail(msg.Err)
		return m, nil
	}
	m.screen = ScreenChat
	m.showWelcome = true
	m.markdown = components.NewMarkdownRenderer(m.theme.Name, m.contentWidth())
	m.input.Focus()
	return m, tea.Batch(m.listSessionsCmd(), m.quotaCmd())
}

func (m *Model) handlePasswordResult(msg PasswordChangedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.password.serverError = msg.Err.Error()
		return m, nil
	}
	m.password = newPasswordForm()
	m.screen = ScreenChat
	m.toasts.Push(components.NewSuccessToast("Password changed"))
	return m, toastTick()
}

// handleKey routes keys by overlay first, then active screen.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The confirmation modal swallows all input until answered.
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			m.confirm.Resolve(true)
			m.confirm = nil
		case "n", "N", "esc", "q":
			m.confirm.Resolve(false)
			m.confirm = nil
		}
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenLogin:
		return m.updateLogin(msg)
	case ScreenFiles:
		return m.updateFiles(msg)
	case ScreenSettings:
		return m.updateSettings(msg)
	case ScreenPassword:
		return m.updatePassword(msg)
	default:
		return m.updateChat(msg)
	}
}

func (m *Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n":
		if !m.busy {
			m.busy = true
			return m, m.newSessionCmd()
		}
		return m, nil

	case "ctrl+s", "tab":
		m.sidebarFocus = !m.sidebarFocus
		m.sidebar.Focused = m.sidebarFocus
		if m.sidebarFocus {
			m.input.Blur()
		} else {
			m.input.Focus()
		}
		return m, nil

	case "ctrl+b":
		m.sidebarOpen = !m.sidebarOpen
		m.viewport.Width = m.contentWidth()
		m.rerenderTranscript()
		return m, nil

	case "ctrl+f":
		m.screen = ScreenFiles
		m.files.loading = true
		return m, m.listFilesCmd()

	case "ctrl+o":
		m.screen = ScreenSettings
		m.prefs = newSettingsForm(m.settings)
		return m, m.prefs.Init()

	case "ctrl+w":
		m.screen = ScreenPassword
		m.password = newPasswordForm()
		return m, m.password.Init()

	case "ctrl+e":
		return m, m.exportCmd()

	case "pgup":
		m.viewport.ViewUp()
		return m, nil
	case "pgdown":
		m.viewport.ViewDown()
		return m, nil
	}

	if m.sidebarFocus {
		return m.updateSidebar(msg)
	}

	switch msg.String() {
	case "enter":
		text := m.input.Value()
		if text == "" || m.busy {
			return m, nil
		}
		m.input.Reset()
		m.busy = true
		return m, m.sendCmd(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.sidebar.CursorUp()
	case "down", "j":
		m.sidebar.CursorDown()
	case "enter":
		if c := m.sidebar.Selected(); c != nil && !m.busy {
			m.busy = true
			return m, m.loadSessionCmd(c.ID)
		}
	case "d", "delete":
		if c := m.sidebar.Selected(); c != nil && !m.busy {
			m.busy = true
			return m, m.deleteSessionCmd(c.ID, c.Title)
		}
	case "r":
		return m, m.listSessionsCmd()
	}
	return m, nil
}

func (m *Model) exportCmd() tea.Cmd {
	if len(m.transcript) == 0 {
		m.toasts.Push(components.NewInfoToast("Nothing to export"))
		return toastTick()
	}
	conv := model.NewConversation(m.sess.CurrentChatID(), "")
	for _, msg := range m.transcript {
		conv.Append(msg)
	}
	return func() tea.Msg {
		path, err := export.ExportMarkdown(conv, export.DefaultOptions())
		if err != nil {
			return ToastMsg{Toast: components.NewErrorToast("Export failed: " + err.Error())}
		}
		return ToastMsg{Toast: components.NewSuccessToast("Exported to " + path)}
	}
}

// rerenderTranscript rebuilds the viewport content from the transcript.
func (m *Model) rerenderTranscript() {
	if m.showWelcome {
		w := components.Welcome{Username: m.sess.Username(), Width: m.viewport.Width}
		m.viewport.SetContent(w.Render(m.theme))
		return
	}

	width := m.contentWidth()
	var blocks []string
	for _, msg := range m.transcript {
		mv := components.MessageView{Message: msg, MaxWidth: width, Markdown: m.markdown}
		blocks = append(blocks, mv.Render(m.theme))
		if len(msg.Snippets) > 0 {
			sv := components.NewSnippetView(msg.Snippets)
			sv.MaxWidth = width
			blocks = append(blocks, sv.Render(m.theme))
		}
		blocks = append(blocks, "")
	}
	content := ""
	for i, b := range blocks {
		if i > 0 {
			content += "\n"
		}
		content += b
	}
	m.viewport.SetContent(content)
}
