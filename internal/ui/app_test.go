// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/chat"
	"github.com/documind/documind-tui/internal/config"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/session"
	"github.com/documind/documind-tui/internal/upload"
)

// queueBridge records messages instead of posting to a program.
type queueBridge struct {
	bridge *Bridge
	msgs   []tea.Msg
}

func newQueueBridge() *queueBridge {
	q := &queueBridge{}
	q.bridge = NewBridge(func(msg interface{}) {
		q.msgs = append(q.msgs, msg)
	})
	return q
}

func newTestModel(t *testing.T) (*Model, *queueBridge) {
	t.Helper()

	sess := session.New()
	client := api.NewClient(sess, &api.ClientConfig{BaseURL: "http://127.0.0.1:0"})
	q := newQueueBridge()
	chatMgr := chat.NewManager(client, sess, q.bridge, q.bridge, q.bridge, q.bridge)
	uploads := upload.NewManager(client, q.bridge, q.bridge)
	store := session.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	cfg := config.Default()

	return New(cfg, sess, client, chatMgr, uploads, store), q
}

func TestBridgeForwardsSurfaceCalls(t *testing.T) {
	q := newQueueBridge()

	msg := model.NewUserMessage("hello")
	q.bridge.AppendMessage(msg)
	q.bridge.ClearMessages()
	q.bridge.ShowWelcome()
	q.bridge.SetSessions([]api.Chat{{ID: "c1"}}, "c1")
	q.bridge.Error("boom")

	if len(q.msgs) != 5 {
		t.Fatalf("got %d messages, want 5", len(q.msgs))
	}
	if am, ok := q.msgs[0].(AppendMessageMsg); !ok || am.Message != msg {
		t.Errorf("msgs[0] = %T", q.msgs[0])
	}
	if _, ok := q.msgs[1].(ClearMessagesMsg); !ok {
		t.Errorf("msgs[1] = %T", q.msgs[1])
	}
	if _, ok := q.msgs[2].(ShowWelcomeMsg); !ok {
		t.Errorf("msgs[2] = %T", q.msgs[2])
	}
	if sm, ok := q.msgs[3].(SetSessionsMsg); !ok || sm.ActiveID != "c1" {
		t.Errorf("msgs[3] = %#v", q.msgs[3])
	}
	if tm, ok := q.msgs[4].(ToastMsg); !ok || tm.Toast.Message != "boom" {
		t.Errorf("msgs[4] = %#v", q.msgs[4])
	}
}

func TestBridgeConfirmBlocksUntilAnswered(t *testing.T) {
	var prompt ShowConfirmMsg
	b := NewBridge(func(msg interface{}) {
		prompt = msg.(ShowConfirmMsg)
	})

	done := make(chan bool, 1)
	go func() {
		ok, err := b.Confirm(context.Background(), "Delete?")
		if err != nil {
			t.Errorf("Confirm error: %v", err)
		}
		done <- ok
	}()

	// Wait for the prompt to be posted, then answer it.
	deadline := time.After(2 * time.Second)
	for prompt.Response == nil {
		select {
		case <-deadline:
			t.Fatal("prompt never posted")
		case <-time.After(time.Millisecond):
		}
	}
	prompt.Response <- true

	select {
	case ok := <-done:
		if !ok {
			t.Error("answer lost")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Confirm did not return")
	}
}

func TestBridgeConfirmCanceledContext(t *testing.T) {
	b := NewBridge(func(interface{}) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := b.Confirm(ctx, "Delete?")
	if ok || err == nil {
		t.Errorf("Confirm = %v, %v; want false, error", ok, err)
	}
}

func TestUpdateTranscriptMessages(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(AppendMessageMsg{Message: model.NewUserMessage("hi")})
	if len(m.transcript) != 1 || m.showWelcome {
		t.Errorf("transcript = %d, welcome = %v", len(m.transcript), m.showWelcome)
	}

	m.Update(ClearMessagesMsg{})
	if len(m.transcript) != 0 {
		t.Error("transcript not cleared")
	}

	m.Update(ShowWelcomeMsg{})
	if !m.showWelcome {
		t.Error("welcome not shown")
	}
}

func TestUpdateAuthExpiredDropsToLogin(t *testing.T) {
	m, _ := newTestModel(t)
	m.screen = ScreenChat
	m.busy = true

	m.Update(AuthExpiredMsg{})
	if m.screen != ScreenLogin {
		t.Errorf("screen = %v, want login", m.screen)
	}
	if m.busy {
		t.Error("busy flag not cleared")
	}
}

func TestConfirmOverlayResolvesChannel(t *testing.T) {
	m, _ := newTestModel(t)
	ch := make(chan bool, 1)

	m.Update(ShowConfirmMsg{Prompt: "Delete chat?", Response: ch})
	if m.confirm == nil {
		t.Fatal("dialog not shown")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	select {
	case got := <-ch:
		if got {
			t.Error("decline delivered true")
		}
	default:
		t.Fatal("no answer delivered")
	}
	if m.confirm != nil {
		t.Error("dialog still open after answer")
	}
}

func TestSetSessionsUpdatesSidebar(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(SetSessionsMsg{
		Sessions: []api.Chat{{ID: "c1", Title: "First"}, {ID: "c2", Title: "Second"}},
		ActiveID: "c2",
	})
	if len(m.sidebar.Sessions) != 2 || m.sidebar.ActiveID != "c2" {
		t.Errorf("sidebar sessions = %d active = %q", len(m.sidebar.Sessions), m.sidebar.ActiveID)
	}
}

func TestDeclinedFileDeleteLeavesStateUntouched(t *testing.T) {
	sess := session.New()
	client := api.NewClient(sess, &api.ClientConfig{BaseURL: "http://127.0.0.1:0"})
	decline := NewBridge(func(msg interface{}) {
		if cm, ok := msg.(ShowConfirmMsg); ok {
			cm.Response <- false
		}
	})
	chatMgr := chat.NewManager(client, sess, decline, decline, decline, decline)
	uploads := upload.NewManager(client, decline, decline)
	store := session.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	m := New(config.Default(), sess, client, chatMgr, uploads, store)

	used, limit := 10, 100
	m.files.setFiles([]api.FileInfo{{Filename: "a.pdf", Path: "HR/a.pdf", Size: 10}})
	m.quota = &api.Quota{Used: &used, Limit: &limit}
	m.busy = true

	m.Update(m.deleteFileCmd("HR/a.pdf", "a.pdf")())

	if len(m.files.files) != 1 {
		t.Errorf("files = %d, want 1", len(m.files.files))
	}
	if m.quota == nil || m.quota.Limit == nil || *m.quota.Limit != limit {
		t.Errorf("quota changed: %#v", m.quota)
	}
	if m.busy {
		t.Error("busy flag not cleared")
	}
}

func TestViewRendersLoginFirst(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	out := m.View()
	if out == "" {
		t.Fatal("empty view")
	}
}
