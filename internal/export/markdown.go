// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/documind/documind-tui/internal/model"
)

// MarkdownExporter renders the transcript as Markdown, including the
// citations, confidence and source snippets attached to answers.
type MarkdownExporter struct {
	opts *Options
}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{opts: opts}
}

// Export implements Exporter.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	var sb strings.Builder

	title := conv.Title
	if title == "" {
		title = "Chat Export"
	}
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")

	for _, msg := range conv.Messages {
		sb.WriteString("## ")
		sb.WriteString(msg.Role.DisplayName())
		if e.opts.IncludeTimestamps && !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("2006-01-02 15:04"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")

		if msg.Role == model.RoleAssistant {
			e.writeAnswerMetadata(&sb, msg)
		}
	}

	return []byte(sb.String()), nil
}

func (e *MarkdownExporter) writeAnswerMetadata(sb *strings.Builder, msg *model.Message) {
	if len(msg.CitedFiles) > 0 {
		sb.WriteString("**Sources:** ")
		sb.WriteString(strings.Join(msg.CitedFiles, ", "))
		sb.WriteString("\n\n")
	}
	if msg.Confidence > 0 {
		fmt.Fprintf(sb, "**Confidence:** %.0f%%\n\n", msg.Confidence)
	}
	for _, snip := range msg.Snippets {
		fmt.Fprintf(sb, "> **%s**", snip.Filename)
		if snip.RelevancePct > 0 {
			fmt.Fprintf(sb, " (%d%% relevant)", snip.RelevancePct)
		}
		sb.WriteString("\n> ")
		sb.WriteString(strings.ReplaceAll(snip.Text, "\n", "\n> "))
		sb.WriteString("\n\n")
	}
}

// FileExtension implements Exporter.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
