// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/session"
	"github.com/documind/documind-tui/internal/util"
)

// TitleRunes is how much of the first query becomes the session title.
const TitleRunes = 30

// Manager drives the chat session lifecycle: listing, creating, loading
// and deleting sessions, and the send protocol. All server traffic goes
// through the api client; all user-visible output goes through the
// injected surfaces.
type Manager struct {
	client   *api.Client
	sess     *session.Session
	renderer Renderer
	sessions SessionList
	confirm  Confirmer
	notify   Notifier
}

// NewManager wires a manager to its surfaces.
func NewManager(client *api.Client, sess *session.Session, r Renderer, sl SessionList, c Confirmer, n Notifier) *Manager {
	return &Manager{
		client:   client,
		sess:     sess,
		renderer: r,
		sessions: sl,
		confirm:  c,
		notify:   n,
	}
}

// ListSessions refreshes the session list. It is idempotent: calling it
// repeatedly converges on the server's state. The active session id is
// passed along so the list can highlight it; an empty slice lets the list
// render its empty state.
func (m *Manager) ListSessions(ctx context.Context) error {
	chats, err := m.client.ListChats(ctx)
	if err != nil {
		m.reportError("Failed to load sessions", err)
		return err
	}
	m.sessions.SetSessions(chats, m.sess.CurrentChatID())
	return nil
}

// refreshSessions updates the list after a mutation. Failures only log:
// a stale sidebar must not fail the operation that triggered the refresh.
func (m *Manager) refreshSessions(ctx context.Context) {
	chats, err := m.client.ListChats(ctx)
	if err != nil {
		log.Printf("session list refresh failed: %v", err)
		return
	}
	m.sessions.SetSessions(chats, m.sess.CurrentChatID())
}

// CreateSession creates a session titled with the first 30 runes of the
// seed. It does not change the active session.
func (m *Manager) CreateSession(ctx context.Context, titleSeed string) (api.Chat, error) {
	title := util.FirstRunes(util.NormalizeText(titleSeed), TitleRunes)
	if title == "" {
		title = "New Chat"
	}
	return m.client.CreateChat(ctx, title)
}

// LoadSession makes the given session active and renders its history.
//
// Loading the already-active session is a no-op. The rendered area is
// cleared only after the fetch succeeded and the payload proved to be a
// message array, so a failed load leaves the previous view intact.
// Malformed entries are skipped with a warning instead of failing the
// load.
//
// A slow stale response can still overwrite a newer selection if the user
// switches sessions faster than the server answers. Known and accepted;
// resolving it needs request generations, which nothing else here wants.
func (m *Manager) LoadSession(ctx context.Context, id string) error {
	if id == m.sess.CurrentChatID() {
		return nil
	}

	messages, skipped, err := m.client.GetMessages(ctx, id)
	if err != nil {
		m.reportError("Failed to load chat", err)
		return err
	}

	m.renderer.ClearMessages()
	m.sess.SetCurrentChatID(id)
	for i := range messages {
		m.renderer.AppendMessage(toModelMessage(&messages[i]))
	}
	if skipped > 0 {
		log.Printf("chat %s: %d malformed message(s) skipped", id, skipped)
	}

	m.refreshSessions(ctx)
	m.notify.Success(fmt.Sprintf("Loaded %d messages", len(messages)))
	return nil
}

// DeleteSession removes a session after explicit confirmation. Declining
// is a clean no-op: no request, no state change. Deleting the active
// session resets to the new-session state.
func (m *Manager) DeleteSession(ctx context.Context, id, title string) error {
	if title == "" {
		title = "Untitled Chat"
	}
	ok, err := m.confirm.Confirm(ctx, fmt.Sprintf("Delete chat %q? This cannot be undone.", title))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := m.client.DeleteChat(ctx, id); err != nil {
		m.reportError("Failed to delete chat", err)
		return err
	}

	if id == m.sess.CurrentChatID() {
		m.NewSession(ctx)
	} else {
		m.refreshSessions(ctx)
	}
	m.notify.Success("Chat deleted")
	return nil
}

// RenameSession sets a session's title and refreshes the list.
func (m *Manager) RenameSession(ctx context.Context, id, title string) error {
	title = util.FirstRunes(util.NormalizeText(title), TitleRunes)
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if err := m.client.RenameChat(ctx, id, title); err != nil {
		m.reportError("Failed to rename chat", err)
		return err
	}
	m.refreshSessions(ctx)
	m.notify.Success("Chat renamed")
	return nil
}

// NewSession resets to the empty state: no active session, cleared
// transcript, welcome placeholder. Purely client-side except for the list
// refresh.
func (m *Manager) NewSession(ctx context.Context) {
	m.sess.ClearCurrentChatID()
	m.renderer.ClearMessages()
	m.renderer.ShowWelcome()
	m.refreshSessions(ctx)
}

// Send runs the send protocol:
//
//  1. render the user's turn immediately;
//  2. with no active session, create one titled from the query before the
//     answer request (create failure logs and continues untitled);
//  3. submit the query;
//  4. render the assistant's answer with its citations and snippets;
//  5. refresh the session list, since the server may have retitled;
//  6. on failure, notify; the optimistic user turn stays visible.
func (m *Manager) Send(ctx context.Context, query string) error {
	query = util.NormalizeText(query)
	if query == "" {
		return nil
	}

	m.renderer.AppendMessage(model.NewUserMessage(query))

	chatID := m.sess.CurrentChatID()
	if chatID == "" {
		chat, err := m.CreateSession(ctx, query)
		if err != nil {
			// The answer request still goes out; the exchange just is
			// not persisted server-side.
			log.Printf("failed to create chat session: %v", err)
		} else {
			chatID = chat.ID
			m.sess.SetCurrentChatID(chat.ID)
		}
	}

	answer, err := m.client.Ask(ctx, query, chatID)
	if err != nil {
		m.reportError("Failed to get response", err)
		return err
	}

	reply := model.NewAssistantMessage(
		answer.Answer, answer.CitedFiles, answer.ConfidenceScore, answer.SourceSnippets)
	reply.Language = answer.DetectedLanguage
	m.renderer.AppendMessage(reply)
	m.notify.Success("Response received")
	m.refreshSessions(ctx)
	return nil
}

// reportError routes a failure to the notifier with a message matched to
// its class. Auth failures get the fixed re-login message since the
// client has already dropped its credentials.
func (m *Manager) reportError(prefix string, err error) {
	if api.IsAuthError(err) {
		m.notify.Error("Session expired. Please log in again.")
		return
	}
	m.notify.Error(prefix + ": " + err.Error())
}

// toModelMessage converts a stored wire message into a rendered turn.
// Unknown senders render as assistant turns, matching how the transcript
// treats anything that is not explicitly the user.
func toModelMessage(msg *api.ChatMessage) *model.Message {
	role := model.RoleAssistant
	if msg.Sender == "user" {
		role = model.RoleUser
	}
	out := model.NewMessage(role, msg.Text)
	if !msg.Timestamp.IsZero() {
		out.Timestamp = msg.Timestamp.Time
	}
	out.CitedFiles = msg.CitedFiles
	out.Confidence = msg.ConfidenceScore
	out.Snippets = msg.SourceSnippets
	return out
}
