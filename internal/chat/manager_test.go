// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/session"
)

// stubSurfaces implements Renderer, SessionList, Confirmer and Notifier,
// recording everything the manager does to them.
type stubSurfaces struct {
	mu            sync.Mutex
	rendered      []*model.Message
	clears        int
	welcomes      int
	sessions      []api.Chat
	activeID      string
	sessionSets   int
	confirmAnswer bool
	confirmCalls  []string
	successes     []string
	errors        []string
	infos         []string
}

func (s *stubSurfaces) AppendMessage(m *model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rendered = append(s.rendered, m)
}

func (s *stubSurfaces) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.rendered = nil
}

func (s *stubSurfaces) ShowWelcome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.welcomes++
}

func (s *stubSurfaces) SetSessions(chats []api.Chat, activeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = chats
	s.activeID = activeID
	s.sessionSets++
}

func (s *stubSurfaces) Confirm(ctx context.Context, prompt string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmCalls = append(s.confirmCalls, prompt)
	return s.confirmAnswer, nil
}

func (s *stubSurfaces) Success(msg string) { s.mu.Lock(); defer s.mu.Unlock(); s.successes = append(s.successes, msg) }
func (s *stubSurfaces) Error(msg string)   { s.mu.Lock(); defer s.mu.Unlock(); s.errors = append(s.errors, msg) }
func (s *stubSurfaces) Info(msg string)    { s.mu.Lock(); defer s.mu.Unlock(); s.infos = append(s.infos, msg) }

// fakeServer is a minimal DocuMind backend that records requests in order.
type fakeServer struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string

	messagesBody   string
	messagesStatus int
	createStatus   int
	askStatus      int
	deleteStatus   int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		bodies:         map[string]string{},
		messagesBody:   `[]`,
		messagesStatus: http.StatusOK,
		createStatus:   http.StatusOK,
		askStatus:      http.StatusOK,
		deleteStatus:   http.StatusOK,
	}
}

func (f *fakeServer) record(r *http.Request) string {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, key)
	f.bodies[key] = string(body)
	f.mu.Unlock()
	return key
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := f.record(r)
	switch {
	case key == "GET /api/chats":
		w.Write([]byte(`[{"id":"c1","title":"First"},{"id":"c2","title":"Second"}]`))
	case key == "POST /api/chats":
		if f.createStatus != http.StatusOK {
			w.WriteHeader(f.createStatus)
			w.Write([]byte(`{"error":"create failed"}`))
			return
		}
		w.Write([]byte(`{"id":"new-chat","title":"created"}`))
	case key == "POST /chat":
		if f.askStatus != http.StatusOK {
			w.WriteHeader(f.askStatus)
			w.Write([]byte(`{"error":"model unavailable"}`))
			return
		}
		w.Write([]byte(`{"answer":"the answer","cited_files":["doc.pdf"],"confidence_score":70,"source_snippets":[]}`))
	case strings.HasSuffix(key, "/messages"):
		if f.messagesStatus != http.StatusOK {
			w.WriteHeader(f.messagesStatus)
			w.Write([]byte(`{"error":"boom"}`))
			return
		}
		w.Write([]byte(f.messagesBody))
	case strings.HasSuffix(key, "/title"):
		w.Write([]byte(`{"status":"success"}`))
	case strings.HasPrefix(key, "DELETE /api/chats/"):
		if f.deleteStatus != http.StatusOK {
			w.WriteHeader(f.deleteStatus)
			w.Write([]byte(`{"error":"delete failed"}`))
			return
		}
		w.Write([]byte(`{"status":"success"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeServer) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == key {
			n++
		}
	}
	return n
}

func (f *fakeServer) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// posts returns only the mutating requests, in order.
func (f *fakeServer) posts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.requests {
		if !strings.HasPrefix(r, "GET ") {
			out = append(out, r)
		}
	}
	return out
}

func newTestManager(t *testing.T, fake *fakeServer) (*Manager, *stubSurfaces, *session.Session) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	sess := session.New()
	sess.SetCredentials(session.Credentials{Token: "tok", Username: "alice", Role: "User"})
	client := api.NewClient(sess, &api.ClientConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	surfaces := &stubSurfaces{}
	mgr := NewManager(client, sess, surfaces, surfaces, surfaces, surfaces)
	return mgr, surfaces, sess
}

func TestLoadSessionIsNoOpWhenAlreadyActive(t *testing.T) {
	fake := newFakeServer()
	fake.messagesBody = `[{"sender":"user","text":"hi"}]`
	mgr, _, _ := newTestManager(t, fake)
	ctx := context.Background()

	if err := mgr.LoadSession(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	if err := mgr.LoadSession(ctx, "c1"); err != nil {
		t.Fatal(err)
	}

	if n := fake.count("GET /api/chats/c1/messages"); n != 1 {
		t.Errorf("messages fetched %d times, want 1", n)
	}
}

func TestLoadSessionRendersValidSkipsMalformed(t *testing.T) {
	fake := newFakeServer()
	fake.messagesBody = `[
		{"sender":"user","text":"q1"},
		{"sender":"assistant","text":"a1"},
		42,
		{"sender":"user","text":"q2"}
	]`
	mgr, surfaces, sess := newTestManager(t, fake)

	if err := mgr.LoadSession(context.Background(), "c1"); err != nil {
		t.Fatalf("load should succeed overall: %v", err)
	}
	if len(surfaces.rendered) != 3 {
		t.Errorf("rendered %d messages, want 3", len(surfaces.rendered))
	}
	if sess.CurrentChatID() != "c1" {
		t.Errorf("currentChatID = %q", sess.CurrentChatID())
	}
	if len(surfaces.errors) != 0 {
		t.Errorf("unexpected error notifications: %v", surfaces.errors)
	}
	if len(surfaces.successes) == 0 || !strings.Contains(surfaces.successes[0], "3 messages") {
		t.Errorf("successes = %v", surfaces.successes)
	}
}

func TestLoadSessionFailurePreservesView(t *testing.T) {
	fake := newFakeServer()
	fake.messagesStatus = http.StatusInternalServerError
	mgr, surfaces, sess := newTestManager(t, fake)

	err := mgr.LoadSession(context.Background(), "c1")
	if err == nil {
		t.Fatal("expected error")
	}
	if surfaces.clears != 0 {
		t.Error("rendered area must not be cleared on a failed fetch")
	}
	if sess.CurrentChatID() != "" {
		t.Errorf("currentChatID changed to %q on failure", sess.CurrentChatID())
	}
	if len(surfaces.errors) != 1 {
		t.Errorf("errors = %v", surfaces.errors)
	}
}

func TestLoadSessionNonArrayPayloadPreservesView(t *testing.T) {
	fake := newFakeServer()
	fake.messagesBody = `{"unexpected":"object"}`
	mgr, surfaces, sess := newTestManager(t, fake)

	if err := mgr.LoadSession(context.Background(), "c1"); err == nil {
		t.Fatal("expected validation error")
	}
	if surfaces.clears != 0 || sess.CurrentChatID() != "" {
		t.Error("state must be untouched when the payload is not an array")
	}
}

func TestDeleteActiveSessionResetsState(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, sess := newTestManager(t, fake)
	surfaces.confirmAnswer = true
	sess.SetCurrentChatID("c1")

	if err := mgr.DeleteSession(context.Background(), "c1", "First"); err != nil {
		t.Fatal(err)
	}
	if sess.CurrentChatID() != "" {
		t.Errorf("currentChatID = %q, want cleared", sess.CurrentChatID())
	}
	if surfaces.clears != 1 || surfaces.welcomes != 1 {
		t.Errorf("clears=%d welcomes=%d, want 1/1", surfaces.clears, surfaces.welcomes)
	}
	if n := fake.count("DELETE /api/chats/c1"); n != 1 {
		t.Errorf("delete requests = %d", n)
	}
	if len(surfaces.confirmCalls) != 1 || !strings.Contains(surfaces.confirmCalls[0], "First") {
		t.Errorf("confirm prompts = %v", surfaces.confirmCalls)
	}
}

func TestDeleteOtherSessionKeepsActive(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, sess := newTestManager(t, fake)
	surfaces.confirmAnswer = true
	sess.SetCurrentChatID("c1")

	if err := mgr.DeleteSession(context.Background(), "c2", "Second"); err != nil {
		t.Fatal(err)
	}
	if sess.CurrentChatID() != "c1" {
		t.Errorf("active session should survive deleting another, got %q", sess.CurrentChatID())
	}
	if surfaces.clears != 0 {
		t.Error("transcript should not clear")
	}
}

func TestDeclinedDeleteIsNoOp(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, sess := newTestManager(t, fake)
	surfaces.confirmAnswer = false
	sess.SetCurrentChatID("c1")

	if err := mgr.DeleteSession(context.Background(), "c1", "First"); err != nil {
		t.Fatal(err)
	}
	if fake.total() != 0 {
		t.Errorf("declining must not issue requests, saw %v", fake.requests)
	}
	if sess.CurrentChatID() != "c1" {
		t.Error("state must not change on decline")
	}
	if len(surfaces.confirmCalls) != 1 {
		t.Errorf("confirm calls = %d", len(surfaces.confirmCalls))
	}
}

func TestSendCreatesSessionBeforeAsking(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, sess := newTestManager(t, fake)

	longQuery := "what is the maximum upload size for documents in this system"
	if err := mgr.Send(context.Background(), longQuery); err != nil {
		t.Fatal(err)
	}

	posts := fake.posts()
	if len(posts) != 2 || posts[0] != "POST /api/chats" || posts[1] != "POST /chat" {
		t.Fatalf("mutating requests = %v, want create then ask", posts)
	}

	var created struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(fake.bodies["POST /api/chats"]), &created); err != nil {
		t.Fatal(err)
	}
	if got := len([]rune(created.Title)); got != TitleRunes {
		t.Errorf("title %q has %d runes, want %d", created.Title, got, TitleRunes)
	}
	if !strings.HasPrefix(longQuery, created.Title) {
		t.Errorf("title %q is not a prefix of the query", created.Title)
	}

	if sess.CurrentChatID() != "new-chat" {
		t.Errorf("currentChatID = %q", sess.CurrentChatID())
	}
	if len(surfaces.rendered) != 2 {
		t.Fatalf("rendered %d turns, want user+assistant", len(surfaces.rendered))
	}
	if surfaces.rendered[0].Role != model.RoleUser || surfaces.rendered[1].Role != model.RoleAssistant {
		t.Errorf("turn roles = %v, %v", surfaces.rendered[0].Role, surfaces.rendered[1].Role)
	}
	if surfaces.rendered[1].CitedFiles[0] != "doc.pdf" {
		t.Errorf("citations lost: %+v", surfaces.rendered[1])
	}
}

func TestSendWithActiveSessionSkipsCreate(t *testing.T) {
	fake := newFakeServer()
	mgr, _, sess := newTestManager(t, fake)
	sess.SetCurrentChatID("c1")

	if err := mgr.Send(context.Background(), "follow-up"); err != nil {
		t.Fatal(err)
	}
	if n := fake.count("POST /api/chats"); n != 0 {
		t.Errorf("create called %d times for an active session", n)
	}
	var asked struct {
		ChatID string `json:"chat_id"`
	}
	json.Unmarshal([]byte(fake.bodies["POST /chat"]), &asked)
	if asked.ChatID != "c1" {
		t.Errorf("chat_id = %q", asked.ChatID)
	}
}

func TestSendContinuesWhenCreateFails(t *testing.T) {
	fake := newFakeServer()
	fake.createStatus = http.StatusInternalServerError
	mgr, surfaces, sess := newTestManager(t, fake)

	if err := mgr.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send must survive a create failure: %v", err)
	}
	if n := fake.count("POST /chat"); n != 1 {
		t.Errorf("ask requests = %d, want 1", n)
	}
	if sess.CurrentChatID() != "" {
		t.Errorf("currentChatID should stay empty, got %q", sess.CurrentChatID())
	}
	if len(surfaces.rendered) != 2 {
		t.Errorf("rendered %d turns, want 2", len(surfaces.rendered))
	}
}

func TestSendFailureKeepsOptimisticTurn(t *testing.T) {
	fake := newFakeServer()
	fake.askStatus = http.StatusInternalServerError
	mgr, surfaces, sess := newTestManager(t, fake)
	sess.SetCurrentChatID("c1")

	if err := mgr.Send(context.Background(), "doomed question"); err == nil {
		t.Fatal("expected error")
	}
	if len(surfaces.rendered) != 1 || surfaces.rendered[0].Role != model.RoleUser {
		t.Errorf("optimistic user turn missing: %v", surfaces.rendered)
	}
	if len(surfaces.errors) != 1 {
		t.Errorf("errors = %v", surfaces.errors)
	}
}

func TestSendEmptyQueryDoesNothing(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, _ := newTestManager(t, fake)

	if err := mgr.Send(context.Background(), "   "); err != nil {
		t.Fatal(err)
	}
	if fake.total() != 0 || len(surfaces.rendered) != 0 {
		t.Error("blank input must not render or send anything")
	}
}

func TestNewSessionResets(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, sess := newTestManager(t, fake)
	sess.SetCurrentChatID("c1")

	mgr.NewSession(context.Background())
	if sess.CurrentChatID() != "" {
		t.Error("currentChatID should clear")
	}
	if surfaces.clears != 1 || surfaces.welcomes != 1 {
		t.Errorf("clears=%d welcomes=%d", surfaces.clears, surfaces.welcomes)
	}
	if surfaces.sessionSets != 1 {
		t.Errorf("session list refreshed %d times", surfaces.sessionSets)
	}
}

func TestListSessionsHighlightsActive(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, sess := newTestManager(t, fake)
	sess.SetCurrentChatID("c2")

	if err := mgr.ListSessions(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(surfaces.sessions) != 2 {
		t.Errorf("sessions = %v", surfaces.sessions)
	}
	if surfaces.activeID != "c2" {
		t.Errorf("activeID = %q", surfaces.activeID)
	}
}

func TestRenameSessionTruncatesAndRefreshes(t *testing.T) {
	fake := newFakeServer()
	mgr, surfaces, _ := newTestManager(t, fake)

	long := strings.Repeat("workplace policy notes ", 4)
	if err := mgr.RenameSession(context.Background(), "c1", long); err != nil {
		t.Fatal(err)
	}

	if got := fake.count("PUT /api/chats/c1/title"); got != 1 {
		t.Errorf("rename requests = %d", got)
	}
	var payload struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(fake.bodies["PUT /api/chats/c1/title"]), &payload); err != nil {
		t.Fatal(err)
	}
	if got := len([]rune(payload.Title)); got != TitleRunes {
		t.Errorf("title length = %d runes, want %d", got, TitleRunes)
	}
	if surfaces.sessionSets != 1 {
		t.Errorf("session list refreshed %d times", surfaces.sessionSets)
	}
}

func TestRenameSessionRejectsEmptyTitle(t *testing.T) {
	fake := newFakeServer()
	mgr, _, _ := newTestManager(t, fake)

	if err := mgr.RenameSession(context.Background(), "c1", "   "); err == nil {
		t.Fatal("expected error for blank title")
	}
	if fake.total() != 0 {
		t.Errorf("%d requests sent for invalid rename", fake.total())
	}
}
