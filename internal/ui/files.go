// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/ui/styles"
	"github.com/documind/documind-tui/internal/util"
)

// filesView is the document browser: list, delete, and upload entry.
type filesView struct {
	files    []api.FileInfo
	cursor   int
	loading  bool
	progress UploadProgressMsg

	// Upload prompt state. Paths are entered space-separated.
	prompting bool
	pathInput textinput.Model
}

func (v *filesView) setFiles(files []api.FileInfo) {
	v.files = files
	if v.cursor >= len(files) {
		v.cursor = len(files) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *filesView) selected() *api.FileInfo {
	if v.cursor < 0 || v.cursor >= len(v.files) {
		return nil
	}
	return &v.files[v.cursor]
}

func (m *Model) updateFiles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.files

	if v.prompting {
		switch msg.String() {
		case "esc":
			v.prompting = false
			return m, nil
		case "enter":
			paths := strings.Fields(v.pathInput.Value())
			v.prompting = false
			if len(paths) == 0 {
				return m, nil
			}
			m.busy = true
			return m, m.uploadCmd(paths)
		}
		var cmd tea.Cmd
		v.pathInput, cmd = v.pathInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.screen = ScreenChat
		return m, nil
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.files)-1 {
			v.cursor++
		}
	case "r":
		v.loading = true
		return m, m.listFilesCmd()
	case "d", "delete":
		if f := v.selected(); f != nil && !m.busy {
			m.busy = true
			path := f.Path
			if path == "" {
				path = f.Filename
			}
			return m, m.deleteFileCmd(path, f.Filename)
		}
	case "u":
		if !m.sess.CanUpload() {
			return m, nil
		}
		ti := textinput.New()
		ti.Placeholder = "/path/to/document.pdf …"
		ti.CharLimit = 1024
		ti.Width = 60
		ti.Focus()
		v.pathInput = ti
		v.prompting = true
		return m, textinput.Blink
	}
	return m, nil
}

func (v *filesView) render(theme *styles.Theme, width int, canUpload bool) string {
	var b strings.Builder
	b.WriteString(theme.FormTitle.Render("Documents"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(theme.Muted.Render("Loading…"))
	case len(v.files) == 0:
		b.WriteString(theme.SessionEmpty.Render("No documents uploaded yet"))
	default:
		b.WriteString(theme.TableHeader.Render(fmt.Sprintf("%-40s %10s %-12s %s", "Name", "Size", "Category", "Uploaded by")))
		b.WriteString("\n")
		for i, f := range v.files {
			row := fmt.Sprintf("%-40s %10s %-12s %s",
				util.TruncateWidth(f.Filename, 40),
				util.FormatBytes(f.Size),
				util.TruncateWidth(f.Category, 12),
				f.UploadedBy)
			style := theme.TableRow
			if i == v.cursor {
				style = theme.TableRowSelected
			}
			b.WriteString(style.Render(row))
			b.WriteString("\n")
		}
	}

	if v.progress.Total > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("Uploading %d/%d: %s", v.progress.Index, v.progress.Total, v.progress.Name)))
		b.WriteString("\n")
	}

	if v.prompting {
		b.WriteString("\n")
		b.WriteString(theme.FormLabel.Render("Paths to upload (space separated):"))
		b.WriteString("\n")
		b.WriteString(v.pathInput.View())
		b.WriteString("\n")
		b.WriteString(theme.FormHint.Render("enter: upload    esc: cancel"))
	} else {
		hints := "↑/↓: select    d: delete    r: refresh    esc: back"
		if canUpload {
			hints = "u: upload    " + hints
		}
		b.WriteString("\n")
		b.WriteString(theme.FormHint.Render(hints))
	}

	return theme.FormBox.MaxWidth(width).Render(b.String())
}
