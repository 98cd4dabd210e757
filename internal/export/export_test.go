// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/documind/documind-tui/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation("c1", "Vacation policy")
	conv.Append(model.NewUserMessage("How many vacation days do I get?"))
	conv.Append(model.NewAssistantMessage(
		"You get 25 days per year.",
		[]string{"handbook.pdf"},
		91,
		[]model.Snippet{{ID: 1, Filename: "handbook.pdf", Text: "Employees accrue 25 vacation days.", RelevancePct: 87}},
	))
	return conv
}

func TestTextExport(t *testing.T) {
	content, err := NewTextExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatal(err)
	}
	got := string(content)

	if !strings.Contains(got, "[You] How many vacation days do I get?") {
		t.Errorf("user block missing:\n%s", got)
	}
	if !strings.Contains(got, "[DocuMind] You get 25 days per year.") {
		t.Errorf("assistant block missing:\n%s", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Error("blocks should be separated by a blank line")
	}
}

func TestMarkdownExportIncludesAnswerMetadata(t *testing.T) {
	content, err := NewMarkdownExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatal(err)
	}
	got := string(content)

	for _, want := range []string{
		"# Vacation policy",
		"## You",
		"## DocuMind",
		"**Sources:** handbook.pdf",
		"**Confidence:** 91%",
		"(87% relevant)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestJSONExportRoundTrips(t *testing.T) {
	content, err := NewJSONExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatal(err)
	}
	var decoded model.Conversation
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Title != "Vacation policy" || len(decoded.Messages) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestExportToFileNaming(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir

	path, err := ExportText(sampleConversation(), opts)
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "chat-export-"+time.Now().Format("2006-01-02")+".txt")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}
