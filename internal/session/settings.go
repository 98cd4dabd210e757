// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/documind/documind-tui/internal/util"
)

// Settings are the user preferences persisted between runs.
type Settings struct {
	VoiceVolume int     `json:"voiceVolume"`
	VoiceRate   float64 `json:"voiceRate"`
	VoicePitch  float64 `json:"voicePitch"`
	Theme       string  `json:"theme"`
}

// DefaultSettings returns the built-in preference values.
func DefaultSettings() Settings {
	return Settings{
		VoiceVolume: 100,
		VoiceRate:   0.9,
		VoicePitch:  1.0,
		Theme:       "dark",
	}
}

// Store persists Settings as a JSON snapshot on disk.
type Store struct {
	path string
}

// NewStore creates a store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore creates a store at ~/.documind/settings.json.
func DefaultStore() (*Store, error) {
	dir, err := util.DataDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(dir, "settings.json")), nil
}

// Load reads the persisted settings and merges them over the defaults:
// fields present in the file win, absent fields keep their default. A
// missing or unreadable file yields pure defaults rather than an error.
func (st *Store) Load() Settings {
	s := DefaultSettings()

	data, err := os.ReadFile(st.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("settings: read %s: %v, using defaults", st.path, err)
		}
		return s
	}

	// Unmarshal over the prefilled struct so only keys present in the
	// file override defaults.
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("settings: corrupt %s: %v, using defaults", st.path, err)
		return DefaultSettings()
	}

	if s.VoiceVolume < 0 {
		s.VoiceVolume = 0
	} else if s.VoiceVolume > 100 {
		s.VoiceVolume = 100
	}
	return s
}

// Save persists the full settings snapshot atomically.
func (st *Store) Save(s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(st.path, data, 0o644)
}
