// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSessionCredentials(t *testing.T) {
	s := New()
	if s.Authenticated() {
		t.Error("fresh session should not be authenticated")
	}

	s.SetCredentials(Credentials{
		Token:       "tok123",
		Username:    "alice",
		Role:        "User",
		Permissions: []string{"files.upload"},
	})
	if !s.Authenticated() {
		t.Error("expected authenticated after SetCredentials")
	}
	if s.Token() != "tok123" || s.Username() != "alice" {
		t.Errorf("unexpected identity: %q %q", s.Token(), s.Username())
	}
	if !s.HasPermission("files.upload") || s.HasPermission("admin.dashboard") {
		t.Error("permission check wrong")
	}

	s.SetCurrentChatID("chat9")
	s.ClearCredentials()
	if s.Authenticated() {
		t.Error("still authenticated after ClearCredentials")
	}
	if s.CurrentChatID() != "" {
		t.Error("active chat should reset with credentials")
	}
}

func TestCanUpload(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"admin without explicit permission", Credentials{Role: "Admin"}, true},
		{"user with permission", Credentials{Role: "User", Permissions: []string{"files.upload"}}, true},
		{"user with wildcard", Credentials{Role: "User", Permissions: []string{"*"}}, true},
		{"user without permission", Credentials{Role: "User"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetCredentials(tt.creds)
			if got := s.CanUpload(); got != tt.want {
				t.Errorf("CanUpload() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurrentChatID(t *testing.T) {
	s := New()
	if s.CurrentChatID() != "" {
		t.Error("fresh session should have empty chat id")
	}
	s.SetCurrentChatID("abc")
	if s.CurrentChatID() != "abc" {
		t.Errorf("got %q", s.CurrentChatID())
	}
	s.ClearCurrentChatID()
	if s.CurrentChatID() != "" {
		t.Error("expected empty after ClearCurrentChatID")
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetCurrentChatID("x")
			s.ClearCurrentChatID()
		}()
		go func() {
			defer wg.Done()
			_ = s.CurrentChatID()
			_ = s.Authenticated()
		}()
	}
	wg.Wait()
}

func TestSettingsLoadDefaults(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	got := st.Load()
	want := DefaultSettings()
	if got != want {
		t.Errorf("Load() on missing file = %+v, want %+v", got, want)
	}
}

func TestSettingsLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	// Only theme stored; everything else must keep its default.
	if err := os.WriteFile(path, []byte(`{"theme":"light"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got := NewStore(path).Load()
	if got.Theme != "light" {
		t.Errorf("theme = %q, want light", got.Theme)
	}
	if got.VoiceVolume != 100 || got.VoiceRate != 0.9 || got.VoicePitch != 1.0 {
		t.Errorf("defaults not preserved: %+v", got)
	}
}

func TestSettingsLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{nope`), 0o644); err != nil {
		t.Fatal(err)
	}
	got := NewStore(path).Load()
	if got != DefaultSettings() {
		t.Errorf("corrupt file should yield defaults, got %+v", got)
	}
}

func TestSettingsVolumeClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"voiceVolume":250}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path).Load(); got.VoiceVolume != 100 {
		t.Errorf("volume = %d, want clamp to 100", got.VoiceVolume)
	}

	if err := os.WriteFile(path, []byte(`{"voiceVolume":-5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path).Load(); got.VoiceVolume != 0 {
		t.Errorf("volume = %d, want clamp to 0", got.VoiceVolume)
	}
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "settings.json"))

	s := DefaultSettings()
	s.Theme = "light"
	s.VoiceVolume = 40
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := st.Load()
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}
