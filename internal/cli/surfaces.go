// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/styles"
)

// Surfaces implements the chat and upload manager surfaces for plain
// terminal output. Everything writes to Out; Confirm reads through the
// prompt function so tests can script answers.
type Surfaces struct {
	Out    io.Writer
	Theme  *styles.Theme
	Prompt func(prompt string) (string, error)

	// Link builds the download URL for a cited document, so citations
	// print as fetchable links the way the web client renders them.
	Link func(filename string) string

	// Sessions kept from the last refresh, for /load and /delete by index.
	sessions []api.Chat
	activeID string
}

// NewSurfaces creates surfaces writing to out.
func NewSurfaces(out io.Writer, theme *styles.Theme, prompt func(string) (string, error)) *Surfaces {
	return &Surfaces{Out: out, Theme: theme, Prompt: prompt}
}

// AppendMessage implements chat.Renderer.
func (s *Surfaces) AppendMessage(m *model.Message) {
	label := s.Theme.MessageLabel.Render("[" + m.Role.DisplayName() + "]")
	fmt.Fprintf(s.Out, "%s %s\n", label, m.Content)
	if len(m.CitedFiles) > 0 {
		fmt.Fprintf(s.Out, "%s\n", s.Theme.Citation.Render("Sources: "+strings.Join(m.CitedFiles, ", ")))
		if s.Link != nil {
			for _, f := range m.CitedFiles {
				fmt.Fprintf(s.Out, "  %s\n", s.Theme.Faint.Render(s.Link(f)))
			}
		}
	}
	if m.Confidence > 0 {
		fmt.Fprintf(s.Out, "%s\n", s.Theme.Confidence.Render(fmt.Sprintf("Confidence: %.0f%%", m.Confidence)))
	}
	for i, snip := range m.Snippets {
		fmt.Fprintf(s.Out, "  %s\n", s.Theme.SnippetHeader.Render(fmt.Sprintf("[%d] %s (%d%% relevant)", i+1, snip.Filename, snip.RelevancePct)))
	}
	fmt.Fprintln(s.Out)
}

// ClearMessages implements chat.Renderer. Plain mode scrolls instead of
// repainting, so a separator is enough.
func (s *Surfaces) ClearMessages() {
	fmt.Fprintln(s.Out, s.Theme.Faint.Render(strings.Repeat("─", 40)))
}

// ShowWelcome implements chat.Renderer.
func (s *Surfaces) ShowWelcome() {
	fmt.Fprintln(s.Out, s.Theme.Muted.Render("New chat. Ask a question about your documents."))
}

// SetSessions implements chat.SessionList.
func (s *Surfaces) SetSessions(chats []api.Chat, activeID string) {
	s.sessions = chats
	s.activeID = activeID
}

// Sessions returns the last refreshed session list.
func (s *Surfaces) Sessions() ([]api.Chat, string) {
	return s.sessions, s.activeID
}

// SessionByArg resolves a /load or /delete argument: a 1-based index
// into the last listing, or a chat id.
func (s *Surfaces) SessionByArg(arg string) (api.Chat, bool) {
	for i, c := range s.sessions {
		if fmt.Sprintf("%d", i+1) == arg || c.ID == arg {
			return s.sessions[i], true
		}
	}
	return api.Chat{}, false
}

// Success implements the Notifier surfaces.
func (s *Surfaces) Success(msg string) {
	fmt.Fprintln(s.Out, lipgloss.NewStyle().Foreground(s.Theme.Palette.Success).Render("✓ "+msg))
}

// Error implements the Notifier surfaces.
func (s *Surfaces) Error(msg string) {
	fmt.Fprintln(s.Out, lipgloss.NewStyle().Foreground(s.Theme.Palette.Danger).Render("✗ "+msg))
}

// Info implements the Notifier surfaces.
func (s *Surfaces) Info(msg string) {
	fmt.Fprintln(s.Out, s.Theme.Muted.Render("· "+msg))
}

// Confirm implements the Confirmer surfaces.
func (s *Surfaces) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer, err := s.Prompt(prompt + " [y/N] ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
