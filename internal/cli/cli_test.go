// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/styles"
)

func TestRegistryParse(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name      string
		input     string
		isCommand bool
		resolved  bool
		args      []string
	}{
		{"plain query", "what is the leave policy", false, false, nil},
		{"known command", "/sessions", true, true, nil},
		{"alias", "/ls", true, true, nil},
		{"args", "/load 2", true, true, []string{"2"}},
		{"unknown", "/bogus", true, false, nil},
		{"whitespace", "  /help  ", true, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Parse(tt.input)
			if got.IsCommand != tt.isCommand {
				t.Errorf("IsCommand = %v, want %v", got.IsCommand, tt.isCommand)
			}
			if (got.Command != nil) != tt.resolved {
				t.Errorf("resolved = %v, want %v", got.Command != nil, tt.resolved)
			}
			if len(got.Args) != len(tt.args) {
				t.Errorf("args = %v, want %v", got.Args, tt.args)
			}
		})
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	names := NewRegistry().Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func newTestSurfaces(answers ...string) (*Surfaces, *bytes.Buffer) {
	var out bytes.Buffer
	i := 0
	prompt := func(string) (string, error) {
		if i >= len(answers) {
			return "", nil
		}
		a := answers[i]
		i++
		return a, nil
	}
	return NewSurfaces(&out, styles.New("dark"), prompt), &out
}

func TestSurfacesAppendMessage(t *testing.T) {
	s, out := newTestSurfaces()
	msg := model.NewAssistantMessage("See the handbook.", []string{"handbook.pdf"}, 88,
		[]model.Snippet{{ID: 1, Filename: "handbook.pdf", Text: "...", RelevancePct: 75}})
	s.AppendMessage(msg)

	text := out.String()
	for _, want := range []string{"DocuMind", "See the handbook.", "handbook.pdf", "88%", "75% relevant"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSurfacesConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"n", false},
		{"", false},
		{"whatever", false},
	}
	for _, tt := range tests {
		s, _ := newTestSurfaces(tt.answer)
		got, err := s.Confirm(context.Background(), "Delete?")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.answer, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestSurfacesConfirmCanceledContext(t *testing.T) {
	s, _ := newTestSurfaces("y")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if ok, err := s.Confirm(ctx, "Delete?"); ok || err == nil {
		t.Errorf("Confirm = %v, %v; want false, error", ok, err)
	}
}

func TestSessionByArg(t *testing.T) {
	s, _ := newTestSurfaces()
	s.SetSessions([]api.Chat{
		{ID: "abc", Title: "First"},
		{ID: "def", Title: "Second"},
	}, "abc")

	if c, ok := s.SessionByArg("2"); !ok || c.ID != "def" {
		t.Errorf("by index = %v, %v", c, ok)
	}
	if c, ok := s.SessionByArg("abc"); !ok || c.Title != "First" {
		t.Errorf("by id = %v, %v", c, ok)
	}
	if _, ok := s.SessionByArg("9"); ok {
		t.Error("out of range index resolved")
	}
}
