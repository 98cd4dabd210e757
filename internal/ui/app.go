// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/chat"
	"github.com/documind/documind-tui/internal/config"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/session"
	"github.com/documind/documind-tui/internal/ui/components"
	"github.com/documind/documind-tui/internal/ui/styles"
	"github.com/documind/documind-tui/internal/upload"
)

// Screen identifies the active view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenChat
	ScreenFiles
	ScreenSettings
	ScreenPassword
)

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	theme  *styles.Theme
	sess   *session.Session
	client *api.Client

	chatMgr *chat.Manager
	uploads *upload.Manager

	settingsStore *session.Store
	settings      session.Settings

	screen Screen
	width  int
	height int

	// Chat screen
	transcript   []*model.Message
	showWelcome  bool
	viewport     viewport.Model
	input        textinput.Model
	spinner      spinner.Model
	markdown     *glamour.TermRenderer
	sidebar      *components.Sidebar
	sidebarOpen  bool
	sidebarFocus bool
	busy         bool

	// Shared overlays
	toasts  components.ToastStack
	confirm *components.ConfirmDialog

	// Status bar
	quota *api.Quota

	// Sub-screens
	login    loginForm
	files    filesView
	prefs    settingsForm
	password passwordForm
}

// New assembles the root model. The managers are expected to be wired
// to a Bridge that posts into the program running this model.
func New(cfg *config.Config, sess *session.Session, client *api.Client,
	chatMgr *chat.Manager, uploads *upload.Manager, store *session.Store) *Model {

	settings := store.Load()
	theme := styles.New(settings.Theme)

	input := textinput.New()
	input.Placeholder = "Ask a question about your documents…"
	input.CharLimit = 4000
	input.Prompt = "❯ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := &Model{
		cfg:           cfg,
		theme:         theme,
		sess:          sess,
		client:        client,
		chatMgr:       chatMgr,
		uploads:       uploads,
		settingsStore: store,
		settings:      settings,
		screen:        ScreenLogin,
		showWelcome:   true,
		viewport:      viewport.New(80, 20),
		input:         input,
		spinner:       sp,
		sidebar:       components.NewSidebar(),
		sidebarOpen:   true,
	}
	m.sidebar.Width = cfg.UI.SidebarWidth
	m.login = newLoginForm()
	m.prefs = newSettingsForm(settings)
	m.password = newPasswordForm()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.login.Init())
}

// Theme exposes the active theme for components rendered elsewhere.
func (m *Model) Theme() *styles.Theme { return m.theme }

// applyTheme rebuilds styles after a theme change.
func (m *Model) applyTheme(name string) {
	m.theme = styles.New(name)
	m.spinner.Style = m.theme.Spinner
	m.markdown = components.NewMarkdownRenderer(name, m.contentWidth())
	m.rerenderTranscript()
}

func (m *Model) contentWidth() int {
	w := m.width
	if m.sidebarOpen {
		w -= m.sidebar.Width
	}
	w -= 4
	if w < 24 {
		w = 24
	}
	return w
}

// =============================================================================
// BACKGROUND COMMANDS
// =============================================================================

// Manager calls run in command goroutines. They report through the
// Bridge as they go; the returned messages only clear the busy flag.

func (m *Model) loginCmd(username, password string) tea.Cmd {
	client, sess := m.client, m.sess
	return func() tea.Msg {
		creds, err := client.Login(context.Background(), username, password)
		if err != nil {
			return LoginResultMsg{Err: err}
		}
		sess.SetCredentials(creds)
		return LoginResultMsg{}
	}
}

func (m *Model) sendCmd(text string) tea.Cmd {
	mgr := m.chatMgr
	return func() tea.Msg {
		return OpDoneMsg{Err: mgr.Send(context.Background(), text)}
	}
}

func (m *Model) loadSessionCmd(id string) tea.Cmd {
	mgr := m.chatMgr
	return func() tea.Msg {
		return OpDoneMsg{Err: mgr.LoadSession(context.Background(), id)}
	}
}

func (m *Model) deleteSessionCmd(id, title string) tea.Cmd {
	mgr := m.chatMgr
	return func() tea.Msg {
		return OpDoneMsg{Err: mgr.DeleteSession(context.Background(), id, title)}
	}
}

func (m *Model) newSessionCmd() tea.Cmd {
	mgr := m.chatMgr
	return func() tea.Msg {
		mgr.NewSession(context.Background())
		return OpDoneMsg{}
	}
}

func (m *Model) listSessionsCmd() tea.Cmd {
	mgr := m.chatMgr
	return func() tea.Msg {
		return OpDoneMsg{Err: mgr.ListSessions(context.Background())}
	}
}

func (m *Model) quotaCmd() tea.Cmd {
	mgr := m.uploads
	return func() tea.Msg {
		q, err := mgr.Quota(context.Background())
		if err != nil {
			return QuotaMsg{Err: err}
		}
		return QuotaMsg{Quota: &q}
	}
}

func (m *Model) listFilesCmd() tea.Cmd {
	mgr := m.uploads
	return func() tea.Msg {
		files, quota, err := mgr.ListFiles(context.Background())
		return FilesMsg{Files: files, Quota: quota, Err: err}
	}
}

func (m *Model) deleteFileCmd(path, name string) tea.Cmd {
	mgr := m.uploads
	return func() tea.Msg {
		deleted, files, quota, err := mgr.DeleteFile(context.Background(), path, name)
		if err != nil {
			return FilesMsg{Err: err}
		}
		if !deleted {
			// Declined: leave the table and quota untouched.
			return OpDoneMsg{}
		}
		return FilesMsg{Files: files, Quota: quota}
	}
}

func (m *Model) uploadCmd(paths []string) tea.Cmd {
	mgr := m.uploads
	return func() tea.Msg {
		files := make([]upload.File, 0, len(paths))
		for _, p := range paths {
			f, err := upload.FromPath(p)
			if err != nil {
				return UploadDoneMsg{Summary: upload.Summary{Failed: len(paths)}, Err: err}
			}
			files = append(files, f)
		}
		return UploadDoneMsg{Summary: mgr.Upload(context.Background(), files)}
	}
}

func (m *Model) changePasswordCmd(current, next string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return PasswordChangedMsg{Err: client.ChangePassword(context.Background(), current, next)}
	}
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
