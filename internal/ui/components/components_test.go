// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.New("dark")
}

func TestToastExpiry(t *testing.T) {
	toast := NewSuccessToast("done")
	if toast.Expired(toast.CreatedAt.Add(time.Second)) {
		t.Error("toast expired too early")
	}
	if !toast.Expired(toast.CreatedAt.Add(SuccessDuration)) {
		t.Error("toast did not expire at its duration")
	}
}

func TestToastStackPrune(t *testing.T) {
	var stack ToastStack
	old := NewInfoToast("old")
	old.CreatedAt = time.Now().Add(-time.Minute)
	stack.Push(old)
	stack.Push(NewErrorToast("fresh"))

	if !stack.Prune(time.Now()) {
		t.Fatal("expected remaining toasts")
	}
	if stack.Len() != 1 {
		t.Errorf("len = %d, want 1", stack.Len())
	}
}

func TestSidebarHighlightsActive(t *testing.T) {
	sb := NewSidebar()
	sb.SetSessions([]api.Chat{
		{ID: "c1", Title: "Benefits questions"},
		{ID: "c2", Title: "Onboarding"},
	}, "c2")

	out := sb.Render(testTheme())
	if !strings.Contains(out, "Benefits questions") || !strings.Contains(out, "Onboarding") {
		t.Error("sidebar missing session titles")
	}
}

func TestSidebarEmptyState(t *testing.T) {
	sb := NewSidebar()
	sb.SetSessions(nil, "")
	if !strings.Contains(sb.Render(testTheme()), "No chats yet") {
		t.Error("empty sidebar missing placeholder")
	}
}

func TestSidebarCursorClamped(t *testing.T) {
	sb := NewSidebar()
	sb.SetSessions([]api.Chat{{ID: "a"}, {ID: "b"}, {ID: "c"}}, "")
	sb.Cursor = 2
	sb.SetSessions([]api.Chat{{ID: "a"}}, "")
	if sb.Cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", sb.Cursor)
	}
	sb.CursorUp()
	if sb.Cursor != 0 {
		t.Error("cursor moved above first row")
	}
	sb.CursorDown()
	if sb.Cursor != 0 {
		t.Error("cursor moved past last row")
	}
	if got := sb.Selected(); got == nil || got.ID != "a" {
		t.Errorf("Selected() = %v", got)
	}
}

func TestConfirmDialogResolveOnce(t *testing.T) {
	ch := make(chan bool, 1)
	d := NewConfirmDialog("Delete chat?", ch)
	d.Resolve(true)
	d.Resolve(false) // ignored

	select {
	case got := <-ch:
		if !got {
			t.Error("first answer lost")
		}
	default:
		t.Fatal("no answer delivered")
	}
	select {
	case <-ch:
		t.Fatal("second Resolve delivered an answer")
	default:
	}
}

func TestMessageViewRendersCitations(t *testing.T) {
	msg := model.NewAssistantMessage("See the handbook.", []string{"handbook.pdf"}, 85, nil)
	out := MessageView{Message: msg, MaxWidth: 80}.Render(testTheme())
	if !strings.Contains(out, "handbook.pdf") {
		t.Error("citations missing from rendered message")
	}
	if !strings.Contains(out, "85%") {
		t.Error("confidence missing from rendered message")
	}
}

func TestSnippetViewTruncatesPreview(t *testing.T) {
	long := strings.Repeat("policy text ", 50)
	v := NewSnippetView([]model.Snippet{
		{ID: 1, Filename: "policy.txt", Text: long, RelevancePct: 72},
	})
	out := v.Render(testTheme())
	if !strings.Contains(out, "policy.txt") || !strings.Contains(out, "72% relevant") {
		t.Error("snippet header incomplete")
	}
	if strings.Contains(out, long) {
		t.Error("preview should be truncated")
	}

	v.Expanded = true
	if !strings.Contains(v.Render(testTheme()), "policy text policy text") {
		t.Error("expanded view should keep full text")
	}
}

func TestStatusBarQuotaLabel(t *testing.T) {
	used, limit, remaining := 3, 20, 17
	bar := &StatusBar{
		Username: "erin",
		Role:     "User",
		Quota:    &api.Quota{Used: &used, Limit: &limit, Remaining: &remaining, QuotaString: "3/20"},
		Width:    80,
	}
	if got := bar.QuotaLabel(); got != "quota: 3/20" {
		t.Errorf("QuotaLabel = %q", got)
	}

	bar.Quota = &api.Quota{QuotaString: "Unlimited"}
	if got := bar.QuotaLabel(); got != "quota: unlimited" {
		t.Errorf("unlimited QuotaLabel = %q", got)
	}

	out := bar.Render(testTheme())
	if !strings.Contains(out, "erin") {
		t.Error("status bar missing username")
	}
}
