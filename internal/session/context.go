// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "sync"

// Credentials holds the identity returned by a successful login.
type Credentials struct {
	Token       string
	Username    string
	Role        string
	Permissions []string
}

// Session is the client-session context. It replaces ad-hoc globals with a
// single mutex-guarded object holding the auth credentials and the active
// chat id. An empty CurrentChatID means the next send lazily creates a
// session on the server.
type Session struct {
	mu            sync.RWMutex
	creds         Credentials
	currentChatID string
}

// New creates an unauthenticated session context.
func New() *Session {
	return &Session{}
}

// SetCredentials stores the identity from a login response.
func (s *Session) SetCredentials(c Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
}

// ClearCredentials drops the token and identity. Called on logout and on
// any 401 from the server.
func (s *Session) ClearCredentials() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	s.currentChatID = ""
}

// Token returns the bearer token, or "" when not authenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// Authenticated reports whether a token is present. It says nothing about
// whether the server still accepts it.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Username returns the logged-in username.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

// Role returns the logged-in user's role.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Role
}

// HasPermission reports whether the permission list grants name. The "*"
// wildcard grants everything.
func (s *Session) HasPermission(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.creds.Permissions {
		if p == name || p == "*" {
			return true
		}
	}
	return false
}

// CanUpload reports whether the upload surface should be offered. Admins
// always can; others need the files.upload permission.
func (s *Session) CanUpload() bool {
	if s.Role() == "Admin" {
		return true
	}
	return s.HasPermission("files.upload")
}

// CurrentChatID returns the active chat id, or "" when no session is
// active.
func (s *Session) CurrentChatID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentChatID
}

// SetCurrentChatID marks a chat as the active session.
func (s *Session) SetCurrentChatID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentChatID = id
}

// ClearCurrentChatID resets to the new-session state.
func (s *Session) ClearCurrentChatID() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentChatID = ""
}
