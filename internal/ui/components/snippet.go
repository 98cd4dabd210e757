// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/styles"
	"github.com/documind/documind-tui/internal/util"
)

// SnippetView renders the source passages that back an answer.
type SnippetView struct {
	Snippets []model.Snippet
	MaxWidth int
	Expanded bool // show full passage text instead of a preview
}

// NewSnippetView creates a snippet view with a default width.
func NewSnippetView(snippets []model.Snippet) *SnippetView {
	return &SnippetView{Snippets: snippets, MaxWidth: 80}
}

// Render draws all snippets, one bordered block per source passage.
func (v *SnippetView) Render(theme *styles.Theme) string {
	if len(v.Snippets) == 0 {
		return ""
	}

	width := v.MaxWidth
	if width < 24 {
		width = 24
	}

	blocks := make([]string, 0, len(v.Snippets))
	for i, s := range v.Snippets {
		blocks = append(blocks, v.renderOne(theme, i+1, s, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (v *SnippetView) renderOne(theme *styles.Theme, n int, s model.Snippet, width int) string {
	header := theme.SnippetHeader.Render(fmt.Sprintf("[%d] %s", n, s.Filename))
	if s.Category != "" {
		header += " " + theme.Faint.Render("("+s.Category+")")
	}
	score := theme.SnippetScore.Render(fmt.Sprintf("%d%% relevant", s.RelevancePct))

	text := s.Text
	if !v.Expanded {
		text = util.TruncateRunes(text, 200)
	}
	body := highlightSnippet(text, s.Filename)
	body = lipgloss.NewStyle().MaxWidth(width - 2).Render(body)

	return theme.SnippetBox.Render(header + "  " + score + "\n" + body)
}

// highlightSnippet applies syntax highlighting when the source file has
// a recognizable extension. Prose documents come back unchanged.
func highlightSnippet(text, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return text
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return text
	}
	return strings.TrimRight(buf.String(), "\n")
}
