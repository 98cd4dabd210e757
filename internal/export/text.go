// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/documind/documind-tui/internal/model"
)

// TextExporter renders the transcript as "[Sender] text" blocks separated
// by blank lines.
type TextExporter struct {
	opts *Options
}

// NewTextExporter creates a plain-text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{opts: opts}
}

// Export implements Exporter.
func (e *TextExporter) Export(conv *model.Conversation) ([]byte, error) {
	blocks := make([]string, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		var sb strings.Builder
		sb.WriteString("[")
		sb.WriteString(msg.Role.DisplayName())
		sb.WriteString("] ")
		sb.WriteString(msg.Content)
		if e.opts.IncludeTimestamps && !msg.Timestamp.IsZero() {
			sb.WriteString("\n(")
			sb.WriteString(msg.Timestamp.Format("2006-01-02 15:04"))
			sb.WriteString(")")
		}
		blocks = append(blocks, sb.String())
	}
	return []byte(strings.Join(blocks, "\n\n") + "\n"), nil
}

// FileExtension implements Exporter.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}
